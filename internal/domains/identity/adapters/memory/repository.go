package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/HenrryVelezC/minierp/internal/domains/identity/domain"
	"github.com/HenrryVelezC/minierp/internal/domains/identity/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps accounts in memory keyed by id with an email index.
type Repository struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*domain.User
	byEmail map[string]uuid.UUID
	seq     []uuid.UUID
}

func NewRepository() *Repository {
	return &Repository{
		users:   map[uuid.UUID]*domain.User{},
		byEmail: map[string]uuid.UUID{},
	}
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	stored := clone(user)
	email := strings.ToLower(stored.Email())
	r.mu.Lock()
	defer r.mu.Unlock()
	if owner, ok := r.byEmail[email]; ok && owner != stored.ID() {
		return nil, ports.ErrEmailTaken
	}
	if previous, ok := r.users[stored.ID()]; ok {
		delete(r.byEmail, strings.ToLower(previous.Email()))
	} else {
		r.seq = append(r.seq, stored.ID())
	}
	r.users[stored.ID()] = stored
	r.byEmail[email] = stored.ID()
	return clone(stored), nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return clone(r.users[id]), nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return clone(user), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.User, 0, len(r.seq))
	for _, id := range r.seq {
		list = append(list, clone(r.users[id]))
	}
	return list, nil
}

func clone(u *domain.User) *domain.User {
	return domain.RestoreUser(u.ID(), u.Email(), u.DisplayName(), u.PasswordHash(), u.Roles(), u.CreatedAt())
}
