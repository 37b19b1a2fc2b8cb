package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HenrryVelezC/minierp/internal/domains/customers/domain"
	"github.com/HenrryVelezC/minierp/internal/domains/customers/ports"
	"github.com/HenrryVelezC/minierp/internal/platform/database/dbtest"
)

func TestRepository_CreateGetList(t *testing.T) {
	repo := NewRepository(dbtest.SQLite(t))
	ctx := context.Background()

	acme, err := domain.NewCustomer("Acme", "a@acme.com", "555-0100", "1 Main St")
	require.NoError(t, err)
	created, err := repo.Create(ctx, acme)
	require.NoError(t, err)
	assert.Equal(t, acme.ID(), created.ID())

	fetched, err := repo.Get(ctx, acme.ID())
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Acme", fetched.Name())
	assert.Equal(t, "a@acme.com", fetched.Email())
	assert.Equal(t, "555-0100", fetched.Phone())
	assert.Equal(t, "1 Main St", fetched.Address())
	assert.WithinDuration(t, acme.CreatedAt(), fetched.CreatedAt(), time.Millisecond)

	globex, err := domain.NewCustomer("Globex", "", "", "")
	require.NoError(t, err)
	_, err = repo.Create(ctx, globex)
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Acme", list[0].Name())
	assert.Equal(t, "Globex", list[1].Name())
}

func TestRepository_GetMissingReturnsNil(t *testing.T) {
	repo := NewRepository(dbtest.SQLite(t))

	got, err := repo.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_Update(t *testing.T) {
	repo := NewRepository(dbtest.SQLite(t))
	ctx := context.Background()

	c, err := domain.NewCustomer("Acme", "", "", "")
	require.NoError(t, err)
	_, err = repo.Create(ctx, c)
	require.NoError(t, err)

	require.NoError(t, c.Rename("Acme Corp"))
	require.NoError(t, c.UpdateContactInfo("ops@acme.io", "", "2 Side St"))
	require.NoError(t, repo.Update(ctx, c))

	fetched, err := repo.Get(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", fetched.Name())
	assert.Equal(t, "ops@acme.io", fetched.Email())
	assert.Equal(t, "2 Side St", fetched.Address())

	ghost, err := domain.NewCustomer("Ghost", "", "", "")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Update(ctx, ghost), ports.ErrNotFound)
}

func TestRepository_DeleteIsIdempotent(t *testing.T) {
	repo := NewRepository(dbtest.SQLite(t))
	ctx := context.Background()

	c, err := domain.NewCustomer("Acme", "", "", "")
	require.NoError(t, err)
	_, err = repo.Create(ctx, c)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, c.ID()))
	require.NoError(t, repo.Delete(ctx, c.ID()))
	require.NoError(t, repo.Delete(ctx, uuid.New()))

	got, err := repo.Get(ctx, c.ID())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_DuplicateIDIsStorageError(t *testing.T) {
	repo := NewRepository(dbtest.SQLite(t))
	ctx := context.Background()

	c, err := domain.NewCustomer("Acme", "", "", "")
	require.NoError(t, err)
	_, err = repo.Create(ctx, c)
	require.NoError(t, err)

	_, err = repo.Create(ctx, c)
	assert.ErrorIs(t, err, ports.ErrStorage)
}

func TestRepository_Unconfigured(t *testing.T) {
	var repo *Repository
	_, err := repo.Get(context.Background(), uuid.New())
	assert.Error(t, err)
}
