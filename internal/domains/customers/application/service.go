package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/HenrryVelezC/minierp/internal/domains/customers/application/types"
	"github.com/HenrryVelezC/minierp/internal/domains/customers/domain"
	"github.com/HenrryVelezC/minierp/internal/domains/customers/ports"
)

// Service orchestrates customer use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]types.CustomerView, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]types.CustomerView, 0, len(customers))
	for _, c := range customers {
		views = append(views, types.NewCustomerView(c))
	}
	return views, nil
}

// Get returns nil when the customer does not exist.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*types.CustomerView, error) {
	customer, err := s.repo.Get(ctx, id)
	if err != nil || customer == nil {
		return nil, err
	}
	view := types.NewCustomerView(customer)
	return &view, nil
}

func (s *Service) Create(ctx context.Context, input types.CustomerInput) (*types.CustomerView, error) {
	customer, err := domain.NewCustomer(input.Name, input.Email, input.Phone, input.Address)
	if err != nil {
		return nil, mapError(err)
	}
	if err := customer.Validate(); err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, err
	}
	view := types.NewCustomerView(created)
	return &view, nil
}

// Update reports false when the customer does not exist.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input types.CustomerInput) (bool, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	if err := existing.Rename(input.Name); err != nil {
		return false, mapError(err)
	}
	if err := existing.UpdateContactInfo(input.Email, input.Phone, input.Address); err != nil {
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

// Delete removes the customer and reports whether it existed beforehand.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return false, err
	}
	return existing != nil, nil
}

var _ ports.Service = (*Service)(nil)
