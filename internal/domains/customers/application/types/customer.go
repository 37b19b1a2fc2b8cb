package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/HenrryVelezC/minierp/internal/domains/customers/domain"
)

// CustomerView is the read model handed back to callers.
type CustomerView struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
}

// CustomerInput is the write model used for both create and update.
type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// NewCustomerView projects an aggregate into its read model.
func NewCustomerView(c *domain.Customer) CustomerView {
	return CustomerView{
		ID:        c.ID(),
		Name:      c.Name(),
		Email:     c.Email(),
		Phone:     c.Phone(),
		Address:   c.Address(),
		CreatedAt: c.CreatedAt(),
	}
}
