package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/HenrryVelezC/minierp/internal/domains/customers/domain"
	"github.com/HenrryVelezC/minierp/internal/domains/customers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory customer persistence adapter.
type Repository struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]*domain.Customer
	order     []uuid.UUID
}

func NewRepository() *Repository {
	return &Repository{customers: map[uuid.UUID]*domain.Customer{}}
}

func (r *Repository) Get(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customer, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	clone := *customer
	return &clone, nil
}

// List returns customers in insertion order.
func (r *Repository) List(_ context.Context) ([]*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Customer, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.customers[id]
		list = append(list, &clone)
	}
	return list, nil
}

func (r *Repository) Create(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	clone := *customer
	if clone.ID() == uuid.Nil {
		clone = *domain.RestoreCustomer(uuid.New(), clone.Name(), clone.Email(), clone.Phone(), clone.Address(), clone.CreatedAt())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.customers[clone.ID()]; exists {
		return nil, errors.Join(ports.ErrStorage, errors.New("duplicate customer id"))
	}
	r.customers[clone.ID()] = &clone
	r.order = append(r.order, clone.ID())
	out := clone
	return &out, nil
}

func (r *Repository) Update(_ context.Context, customer *domain.Customer) error {
	if customer == nil {
		return errors.New("customer is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[customer.ID()]; !ok {
		return ports.ErrNotFound
	}
	clone := *customer
	r.customers[clone.ID()] = &clone
	return nil
}

func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return nil
	}
	delete(r.customers, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
