package api

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	customertypes "github.com/HenrryVelezC/minierp/internal/domains/customers/application/types"
	identitydomain "github.com/HenrryVelezC/minierp/internal/domains/identity/domain"
	"github.com/HenrryVelezC/minierp/internal/platform/database"
	platformobservability "github.com/HenrryVelezC/minierp/internal/platform/observability"
)

func init() {
	identitydomain.PasswordCost = bcrypt.MinCost
}

func testConfig(driver database.Options) Config {
	return Config{
		Database:      driver,
		JWTSigningKey: testSigningKey,
		JWTIssuer:     "minierp",
		JWTAudience:   "minierp-web",
		TokenTTL:      time.Hour,
		AdminEmail:    "admin@minierp.local",
		AdminPassword: "Admin123$",
	}
}

func testInstruments() *platformobservability.Instruments {
	return &platformobservability.Instruments{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestBuildServices_SeedIsIdempotent(t *testing.T) {
	drivers := map[string]database.Options{
		"memory": {Driver: database.DriverMemory},
		"sqlite": {Driver: database.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "erp.db")},
	}
	for name, opts := range drivers {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			cfg := testConfig(opts)
			services, cleanup, err := BuildServices(ctx, cfg, testInstruments())
			require.NoError(t, err)
			t.Cleanup(cleanup)

			log := testInstruments().Logger
			require.NoError(t, seedAdmin(ctx, services.Identity, cfg, log))
			require.NoError(t, seedAdmin(ctx, services.Identity, cfg, log))

			users, err := services.Identity.ListUsers(ctx)
			require.NoError(t, err)
			require.Len(t, users, 1)
			assert.Contains(t, users[0].Roles, "Admin")

			session, err := services.Identity.Login(ctx, cfg.AdminEmail, cfg.AdminPassword)
			require.NoError(t, err)
			principal, err := services.Tokens.Parse(session.Token)
			require.NoError(t, err)
			assert.Equal(t, users[0].ID, principal.UserID)

			customer, err := services.Customers.Create(ctx, customertypes.CustomerInput{Name: "Acme"})
			require.NoError(t, err)
			got, err := services.Customers.Get(ctx, customer.ID)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "Acme", got.Name)
		})
	}
}

func TestBuildServices_RejectsUnknownDriver(t *testing.T) {
	_, _, err := BuildServices(context.Background(), testConfig(database.Options{Driver: "oracle"}), testInstruments())
	require.Error(t, err)
}
