package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/HenrryVelezC/minierp/internal/domains/identity/application/types"
)

// Service exposes identity use cases to adapters.
type Service interface {
	Register(ctx context.Context, input types.RegisterInput) (*types.UserView, error)
	Login(ctx context.Context, email, password string) (*types.Session, error)
	Me(ctx context.Context, userID uuid.UUID) (*types.UserView, error)
	ListUsers(ctx context.Context) ([]types.UserView, error)
	AssignRole(ctx context.Context, userID uuid.UUID, role string) (*types.UserView, error)
	EnsureSeed(ctx context.Context, email, password string) (bool, error)
}
