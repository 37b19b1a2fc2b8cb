// Package customers adapts the customers bounded context to the orders CustomerDirectory port.
package customers

import (
	"context"

	"github.com/google/uuid"

	customerports "github.com/HenrryVelezC/minierp/internal/domains/customers/ports"
	orderports "github.com/HenrryVelezC/minierp/internal/domains/orders/ports"
)

var _ orderports.CustomerDirectory = (*Directory)(nil)

// Directory answers customer lookups through the customers service.
type Directory struct {
	customers customerports.Service
}

func NewDirectory(customers customerports.Service) *Directory {
	return &Directory{customers: customers}
}

func (d *Directory) CustomerName(ctx context.Context, id uuid.UUID) (string, bool, error) {
	view, err := d.customers.Get(ctx, id)
	if err != nil {
		return "", false, err
	}
	if view == nil {
		return "", false, nil
	}
	return view.Name, true, nil
}
