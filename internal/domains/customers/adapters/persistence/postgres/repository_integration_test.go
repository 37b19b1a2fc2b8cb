//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/HenrryVelezC/minierp/internal/domains/customers/domain"
	"github.com/HenrryVelezC/minierp/internal/platform/migrations"
)

func setupCustomersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("minierp_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestRepository_PostgresRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCustomersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	c, err := domain.NewCustomer("Acme", "a@acme.com", "", "")
	require.NoError(t, err)
	_, err = repo.Create(ctx, c)
	require.NoError(t, err)

	require.NoError(t, c.Rename("Acme Corp"))
	require.NoError(t, repo.Update(ctx, c))

	fetched, err := repo.Get(ctx, c.ID())
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Acme Corp", fetched.Name())
	assert.WithinDuration(t, c.CreatedAt(), fetched.CreatedAt(), time.Millisecond)

	require.NoError(t, repo.Delete(ctx, c.ID()))
	gone, err := repo.Get(ctx, c.ID())
	require.NoError(t, err)
	assert.Nil(t, gone)
}
