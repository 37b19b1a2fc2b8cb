package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HenrryVelezC/minierp/internal/domains/orders/domain"
)

// OrderItemInput is one requested line.
type OrderItemInput struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// OrderInput is the write model for create and update. Items fully replace the current lines.
type OrderInput struct {
	CustomerID   uuid.UUID
	CustomerName string
	Items        []OrderItemInput
}

type OrderItemView struct {
	ID          uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

type OrderView struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string
	CreatedAt    time.Time
	Items        []OrderItemView
	Total        decimal.Decimal
}

// Lines converts the item inputs into domain lines.
func (in OrderInput) Lines() []domain.LineInput {
	lines := make([]domain.LineInput, 0, len(in.Items))
	for _, item := range in.Items {
		lines = append(lines, domain.LineInput{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return lines
}

// NewOrderView projects an aggregate into its read model.
func NewOrderView(o *domain.Order) OrderView {
	items := o.Items()
	views := make([]OrderItemView, 0, len(items))
	for _, item := range items {
		views = append(views, OrderItemView{
			ID:          item.ID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
			LineTotal:   item.LineTotal(),
		})
	}
	return OrderView{
		ID:           o.ID(),
		CustomerID:   o.CustomerID(),
		CustomerName: o.CustomerNameSnapshot(),
		CreatedAt:    o.CreatedAt(),
		Items:        views,
		Total:        o.Total(),
	}
}
