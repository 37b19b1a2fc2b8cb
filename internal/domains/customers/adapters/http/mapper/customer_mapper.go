package mapper

import (
	"time"

	"github.com/google/uuid"

	"github.com/HenrryVelezC/minierp/internal/domains/customers/application/types"
)

// MutationCustomer is the body accepted by create and update.
type MutationCustomer struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Customer is the HTTP representation of a customer.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToCustomerInput converts an inbound payload into the write model.
func ToCustomerInput(c MutationCustomer) types.CustomerInput {
	return types.CustomerInput{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
	}
}

// FromCustomerView converts a read model to the transport representation.
func FromCustomerView(v *types.CustomerView) Customer {
	if v == nil {
		return Customer{}
	}
	return Customer{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		Phone:     v.Phone,
		Address:   v.Address,
		CreatedAt: v.CreatedAt,
	}
}

// FromCustomerViews converts a slice of read models.
func FromCustomerViews(views []types.CustomerView) []Customer {
	result := make([]Customer, 0, len(views))
	for i := range views {
		result = append(result, FromCustomerView(&views[i]))
	}
	return result
}
