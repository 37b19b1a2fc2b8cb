package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/HenrryVelezC/minierp/internal/domains/identity/domain"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email is already registered")
	ErrStorage    = errors.New("user storage failure")
)

// Repository persists user accounts. Emails are unique and stored normalized.
type Repository interface {
	// Save inserts or replaces the user. ErrEmailTaken when another user owns the email.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
