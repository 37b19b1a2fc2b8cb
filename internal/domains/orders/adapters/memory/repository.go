package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/HenrryVelezC/minierp/internal/domains/orders/domain"
	"github.com/HenrryVelezC/minierp/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.Order
	seq    []uuid.UUID
}

func NewRepository() *Repository {
	return &Repository{orders: map[uuid.UUID]*domain.Order{}}
}

func (r *Repository) Get(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return clone(order), nil
}

// List returns orders in insertion order.
func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.seq))
	for _, id := range r.seq {
		list = append(list, clone(r.orders[id]))
	}
	return list, nil
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	stored := clone(order)
	if stored.ID() == uuid.Nil {
		stored = withID(stored, uuid.New())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[stored.ID()]; exists {
		return nil, errors.Join(ports.ErrStorage, errors.New("duplicate order id"))
	}
	r.orders[stored.ID()] = stored
	r.seq = append(r.seq, stored.ID())
	return clone(stored), nil
}

func (r *Repository) Update(_ context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.orders[order.ID()]
	if !ok {
		return ports.ErrNotFound
	}
	stored := clone(order)
	// created_at is immutable once stored.
	r.orders[order.ID()] = domain.RestoreOrder(stored.ID(), stored.CustomerID(), stored.CustomerNameSnapshot(), current.CreatedAt(), stored.Items())
	return nil
}

func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return nil
	}
	delete(r.orders, id)
	for i, existing := range r.seq {
		if existing == id {
			r.seq = append(r.seq[:i], r.seq[i+1:]...)
			break
		}
	}
	return nil
}

func clone(o *domain.Order) *domain.Order {
	return domain.RestoreOrder(o.ID(), o.CustomerID(), o.CustomerNameSnapshot(), o.CreatedAt(), o.Items())
}

// withID re-keys an order and its items under a new identity.
func withID(o *domain.Order, id uuid.UUID) *domain.Order {
	items := o.Items()
	for i, item := range items {
		itemID := item.ID()
		if itemID == uuid.Nil {
			itemID = uuid.New()
		}
		items[i] = domain.RestoreItem(itemID, id, item.ProductName(), item.Quantity(), item.UnitPrice())
	}
	return domain.RestoreOrder(id, o.CustomerID(), o.CustomerNameSnapshot(), o.CreatedAt(), items)
}
