package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/HenrryVelezC/minierp/internal/domains/customers/domain"
)

var (
	ErrNotFound = errors.New("customer not found")
	// ErrStorage wraps any fault raised by the storage engine. It is never retried.
	ErrStorage = errors.New("customer storage failure")
)

// Repository persists customer aggregates.
type Repository interface {
	// Get returns the customer, or nil when no row matches.
	Get(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	// Update overwrites the stored row; ErrNotFound when it no longer exists.
	Update(ctx context.Context, customer *domain.Customer) error
	// Delete is idempotent: removing an unknown id succeeds.
	Delete(ctx context.Context, id uuid.UUID) error
}
