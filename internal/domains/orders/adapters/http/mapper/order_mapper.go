package mapper

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HenrryVelezC/minierp/internal/domains/orders/application/types"
)

// MutationOrderItem accepts unitPrice as a JSON number or a decimal string.
type MutationOrderItem struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// MutationOrder is the body accepted by create and update. Items replace the current lines.
type MutationOrder struct {
	CustomerID           uuid.UUID           `json:"customerId"`
	CustomerNameSnapshot string              `json:"customerNameSnapshot,omitempty"`
	Items                []MutationOrderItem `json:"items"`
}

// OrderItem is one line of an order. Amounts render as decimal strings.
type OrderItem struct {
	ID          uuid.UUID       `json:"id"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// Order is the HTTP representation of an order and its lines.
type Order struct {
	ID                   uuid.UUID       `json:"id"`
	CustomerID           uuid.UUID       `json:"customerId"`
	CustomerNameSnapshot string          `json:"customerNameSnapshot"`
	CreatedAt            time.Time       `json:"createdAt"`
	Items                []OrderItem     `json:"items"`
	Total                decimal.Decimal `json:"total"`
}

// ToOrderInput converts an inbound payload into the write model.
func ToOrderInput(o MutationOrder) types.OrderInput {
	items := make([]types.OrderItemInput, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, types.OrderItemInput{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return types.OrderInput{
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerNameSnapshot,
		Items:        items,
	}
}

// FromOrderView converts a read model to the transport representation.
func FromOrderView(v *types.OrderView) Order {
	if v == nil {
		return Order{}
	}
	items := make([]OrderItem, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, OrderItem{
			ID:          item.ID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		})
	}
	return Order{
		ID:                   v.ID,
		CustomerID:           v.CustomerID,
		CustomerNameSnapshot: v.CustomerName,
		CreatedAt:            v.CreatedAt,
		Items:                items,
		Total:                v.Total,
	}
}

// FromOrderViews converts a slice of read models.
func FromOrderViews(views []types.OrderView) []Order {
	result := make([]Order, 0, len(views))
	for i := range views {
		result = append(result, FromOrderView(&views[i]))
	}
	return result
}
