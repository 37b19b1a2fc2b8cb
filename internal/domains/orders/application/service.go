package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/HenrryVelezC/minierp/internal/domains/orders/application/types"
	"github.com/HenrryVelezC/minierp/internal/domains/orders/domain"
	"github.com/HenrryVelezC/minierp/internal/domains/orders/ports"
)

// Service orchestrates order use cases.
type Service struct {
	repo      ports.Repository
	customers ports.CustomerDirectory
}

type Option func(*Service)

// WithCustomerDirectory makes Create and Update reject unknown customers and
// fill a blank name snapshot from the directory.
func WithCustomerDirectory(dir ports.CustomerDirectory) Option {
	return func(s *Service) {
		s.customers = dir
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) List(ctx context.Context) ([]types.OrderView, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]types.OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, types.NewOrderView(o))
	}
	return views, nil
}

// Get returns nil when the order does not exist.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*types.OrderView, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil || order == nil {
		return nil, err
	}
	view := types.NewOrderView(order)
	return &view, nil
}

func (s *Service) Create(ctx context.Context, input types.OrderInput) (*types.OrderView, error) {
	name, err := s.resolveCustomer(ctx, input)
	if err != nil {
		return nil, err
	}
	order, err := domain.NewOrder(input.CustomerID, name, input.Lines())
	if err != nil {
		return nil, mapError(err)
	}
	if err := order.Validate(); err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	view := types.NewOrderView(created)
	return &view, nil
}

// Update reports false when the order does not exist. Items are replaced wholesale.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input types.OrderInput) (bool, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	name, err := s.resolveCustomer(ctx, input)
	if err != nil {
		return false, err
	}
	if err := existing.AssignCustomer(input.CustomerID, name); err != nil {
		return false, mapError(err)
	}
	if err := existing.ReplaceItems(input.Lines()); err != nil {
		return false, mapError(err)
	}
	if err := existing.Validate(); err != nil {
		return false, mapError(err)
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete is idempotent.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// resolveCustomer returns the snapshot to store. Without a directory the input is used as is.
func (s *Service) resolveCustomer(ctx context.Context, input types.OrderInput) (string, error) {
	name := strings.TrimSpace(input.CustomerName)
	if s.customers == nil || input.CustomerID == uuid.Nil {
		return name, nil
	}
	current, ok, err := s.customers.CustomerName(ctx, input.CustomerID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", mapError(domain.ErrUnknownCustomer)
	}
	if name == "" {
		name = current
	}
	return name, nil
}

var _ ports.Service = (*Service)(nil)
