package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MaxProductNameLength  = 200
	MaxCustomerNameLength = 200
)

var (
	ErrMissingID          = errors.New("order id is required")
	ErrMissingCustomer    = errors.New("order customer is required")
	ErrUnknownCustomer    = errors.New("order customer does not exist")
	ErrSnapshotTooLong    = errors.New("order customer name is too long")
	ErrNoItems            = errors.New("order must contain at least one item")
	ErrMissingCreatedAt   = errors.New("order creation time is required")
	ErrMissingItemID      = errors.New("order item id is required")
	ErrItemOrderMismatch  = errors.New("order item belongs to another order")
	ErrEmptyProductName   = errors.New("product name is required")
	ErrProductNameTooLong = errors.New("product name is too long")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrNegativePrice      = errors.New("unit price must not be negative")
)

// LineInput describes one requested order line before it becomes an OrderItem.
type LineInput struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// OrderItem is a line of an order. It only exists inside its Order.
type OrderItem struct {
	id          uuid.UUID
	orderID     uuid.UUID
	productName string
	quantity    int
	unitPrice   decimal.Decimal
}

// RestoreItem rebuilds an item from persisted state.
func RestoreItem(id, orderID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) OrderItem {
	return OrderItem{
		id:          id,
		orderID:     orderID,
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
	}
}

func (i OrderItem) ID() uuid.UUID              { return i.id }
func (i OrderItem) OrderID() uuid.UUID         { return i.orderID }
func (i OrderItem) ProductName() string        { return i.productName }
func (i OrderItem) Quantity() int              { return i.quantity }
func (i OrderItem) UnitPrice() decimal.Decimal { return i.unitPrice }

// LineTotal is quantity times unit price. It is derived, never stored.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// Validate checks the line on its own; ownership is checked by Order.Validate.
func (i OrderItem) Validate() error {
	if i.id == uuid.Nil {
		return ErrMissingItemID
	}
	return checkLine(i.productName, i.quantity, i.unitPrice)
}

// Order is the sales aggregate: a customer reference plus its lines.
type Order struct {
	id                   uuid.UUID
	customerID           uuid.UUID
	customerNameSnapshot string
	createdAt            time.Time
	items                []OrderItem
}

// NewOrder assigns identity and creation time, then applies the customer and the lines.
func NewOrder(customerID uuid.UUID, customerName string, lines []LineInput) (*Order, error) {
	o := &Order{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
	}
	if err := o.AssignCustomer(customerID, customerName); err != nil {
		return nil, err
	}
	if err := o.ReplaceItems(lines); err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. Items are copied.
func RestoreOrder(id, customerID uuid.UUID, customerName string, createdAt time.Time, items []OrderItem) *Order {
	return &Order{
		id:                   id,
		customerID:           customerID,
		customerNameSnapshot: customerName,
		createdAt:            createdAt,
		items:                append([]OrderItem(nil), items...),
	}
}

func (o *Order) ID() uuid.UUID                { return o.id }
func (o *Order) CustomerID() uuid.UUID        { return o.customerID }
func (o *Order) CustomerNameSnapshot() string { return o.customerNameSnapshot }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }

// Items returns a copy of the lines in insertion order.
func (o *Order) Items() []OrderItem {
	return append([]OrderItem(nil), o.items...)
}

// Total sums every line total.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// AssignCustomer sets the customer reference and the display-name snapshot taken with it.
func (o *Order) AssignCustomer(customerID uuid.UUID, customerName string) error {
	customerName = strings.TrimSpace(customerName)
	if customerID == uuid.Nil {
		return ErrMissingCustomer
	}
	if utf8.RuneCountInString(customerName) > MaxCustomerNameLength {
		return ErrSnapshotTooLong
	}
	o.customerID = customerID
	o.customerNameSnapshot = customerName
	return nil
}

// ReplaceItems swaps every line for the given ones. All lines are checked first;
// on failure the current lines are kept.
func (o *Order) ReplaceItems(lines []LineInput) error {
	if len(lines) == 0 {
		return ErrNoItems
	}
	items := make([]OrderItem, 0, len(lines))
	for i, line := range lines {
		name := strings.TrimSpace(line.ProductName)
		if err := checkLine(name, line.Quantity, line.UnitPrice); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, OrderItem{
			id:          uuid.New(),
			orderID:     o.id,
			productName: name,
			quantity:    line.Quantity,
			unitPrice:   line.UnitPrice,
		})
	}
	o.items = items
	return nil
}

// Validate re-checks the whole aggregate before it is handed to storage.
func (o *Order) Validate() error {
	if o.id == uuid.Nil {
		return ErrMissingID
	}
	if o.customerID == uuid.Nil {
		return ErrMissingCustomer
	}
	if utf8.RuneCountInString(o.customerNameSnapshot) > MaxCustomerNameLength {
		return ErrSnapshotTooLong
	}
	if o.createdAt.IsZero() {
		return ErrMissingCreatedAt
	}
	if len(o.items) == 0 {
		return ErrNoItems
	}
	for i, item := range o.items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if item.orderID != o.id {
			return fmt.Errorf("item %d: %w", i, ErrItemOrderMismatch)
		}
	}
	return nil
}

func checkLine(productName string, quantity int, unitPrice decimal.Decimal) error {
	if strings.TrimSpace(productName) == "" {
		return ErrEmptyProductName
	}
	if utf8.RuneCountInString(productName) > MaxProductNameLength {
		return ErrProductNameTooLong
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
