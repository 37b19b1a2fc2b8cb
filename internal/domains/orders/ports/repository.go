package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/HenrryVelezC/minierp/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrStorage wraps any fault raised by the storage engine. It is never retried.
	ErrStorage = errors.New("order storage failure")
)

// Repository persists order aggregates together with their items.
type Repository interface {
	// Get returns the order with items populated, or nil when no row matches.
	Get(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	// Create writes the order and its items in one transaction.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// Update replaces the order row and every item atomically; ErrNotFound when the order is gone.
	Update(ctx context.Context, order *domain.Order) error
	// Delete removes the order and its items. Unknown ids succeed.
	Delete(ctx context.Context, id uuid.UUID) error
}
