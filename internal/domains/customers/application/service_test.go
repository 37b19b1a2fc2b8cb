package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HenrryVelezC/minierp/internal/domains/customers/application/types"
	"github.com/HenrryVelezC/minierp/internal/domains/customers/domain"
	"github.com/HenrryVelezC/minierp/internal/domains/customers/ports"
)

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*domain.Customer
	creates   int
	updates   int
	deletes   int
	failWith  error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[uuid.UUID]*domain.Customer{}}
}

func (f *fakeCustomerRepo) Get(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if c, ok := f.customers[id]; ok {
		copy := *c
		return &copy, nil
	}
	return nil, nil
}

func (f *fakeCustomerRepo) List(_ context.Context) ([]*domain.Customer, error) {
	var list []*domain.Customer
	for _, c := range f.customers {
		copy := *c
		list = append(list, &copy)
	}
	return list, nil
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	f.creates++
	copy := *c
	f.customers[c.ID()] = &copy
	return &copy, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, c *domain.Customer) error {
	f.updates++
	if _, ok := f.customers[c.ID()]; !ok {
		return ports.ErrNotFound
	}
	copy := *c
	f.customers[c.ID()] = &copy
	return nil
}

func (f *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deletes++
	delete(f.customers, id)
	return nil
}

func TestCreate_PersistsAndProjects(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewService(repo)

	view, err := svc.Create(context.Background(), types.CustomerInput{Name: " Acme ", Email: "a@acme.com"})
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.NotEqual(t, uuid.Nil, view.ID)
	assert.Equal(t, "Acme", view.Name)
	assert.Equal(t, 1, repo.creates)
}

func TestCreate_ValidationFailureNeverReachesRepository(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), types.CustomerInput{Name: "  "})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = svc.Create(context.Background(), types.CustomerInput{Name: "Acme", Email: "acme"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidEmail)

	assert.Zero(t, repo.creates)
}

func TestGet_MissingReturnsNil(t *testing.T) {
	svc := NewService(newFakeCustomerRepo())

	view, err := svc.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestUpdate(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, types.CustomerInput{Name: "Acme"})
	require.NoError(t, err)

	ok, err := svc.Update(ctx, created.ID, types.CustomerInput{Name: "Acme Corp", Phone: "555"})
	require.NoError(t, err)
	assert.True(t, ok)

	view, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", view.Name)
	assert.Equal(t, "555", view.Phone)
	assert.Equal(t, created.CreatedAt, view.CreatedAt)

	ok, err = svc.Update(ctx, created.ID, types.CustomerInput{Name: ""})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, ok)
	assert.Equal(t, 1, repo.updates)
}

func TestUpdate_MissingSkipsRepositoryWrite(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewService(repo)

	ok, err := svc.Update(context.Background(), uuid.New(), types.CustomerInput{Name: "Acme"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, repo.updates)
}

func TestDelete_ReportsExistence(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, types.CustomerInput{Name: "Acme"})
	require.NoError(t, err)

	existed, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestStorageErrorsPropagate(t *testing.T) {
	repo := newFakeCustomerRepo()
	repo.failWith = errors.Join(ports.ErrStorage, errors.New("disk full"))
	svc := NewService(repo)

	_, err := svc.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, ports.ErrStorage)
	require.NotErrorIs(t, err, ErrInvalidInput)
}
