package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/HenrryVelezC/minierp/internal/domains/orders/application/types"
)

// Service exposes order use cases to adapters.
type Service interface {
	List(ctx context.Context) ([]types.OrderView, error)
	Get(ctx context.Context, id uuid.UUID) (*types.OrderView, error)
	Create(ctx context.Context, input types.OrderInput) (*types.OrderView, error)
	Update(ctx context.Context, id uuid.UUID, input types.OrderInput) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
