package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/HenrryVelezC/minierp/internal/domains/customers/application/types"
)

// Service exposes customer use cases to adapters.
type Service interface {
	List(ctx context.Context) ([]types.CustomerView, error)
	Get(ctx context.Context, id uuid.UUID) (*types.CustomerView, error)
	Create(ctx context.Context, input types.CustomerInput) (*types.CustomerView, error)
	Update(ctx context.Context, id uuid.UUID, input types.CustomerInput) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
