//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"

	minierpserver "github.com/HenrryVelezC/minierp/go"
	customersmemory "github.com/HenrryVelezC/minierp/internal/domains/customers/adapters/memory"
	customersapp "github.com/HenrryVelezC/minierp/internal/domains/customers/application"
	customerdomain "github.com/HenrryVelezC/minierp/internal/domains/customers/domain"
	identitymemory "github.com/HenrryVelezC/minierp/internal/domains/identity/adapters/memory"
	identityapp "github.com/HenrryVelezC/minierp/internal/domains/identity/application"
	orderscustomers "github.com/HenrryVelezC/minierp/internal/domains/orders/adapters/customers"
	ordersmemory "github.com/HenrryVelezC/minierp/internal/domains/orders/adapters/memory"
	ordersapp "github.com/HenrryVelezC/minierp/internal/domains/orders/application"
	"github.com/HenrryVelezC/minierp/internal/platform/auth"
	pacttest "github.com/HenrryVelezC/minierp/test/pact"
)

func TestMiniErpProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	reset := func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
		app.reset(t)
		return nil, nil
	}
	verifier := pactprovider.NewVerifier()
	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers: models.StateHandlers{
			pacttest.StateAdminExists:     reset,
			pacttest.StateCustomersBase:   reset,
			pacttest.StateCustomerMissing: reset,
			pacttest.StateCustomerExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
				app.reset(t)
				if setup {
					app.seedCustomer(t)
				}
				return nil, nil
			},
		},
	})
	require.NoError(t, err)
}

// contractProviderApp rebuilds a memory-backed stack per provider state behind one stable server URL.
type contractProviderApp struct {
	mu        sync.RWMutex
	handler   http.Handler
	customers *customersmemory.Repository
	token     string
	server    *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(http.HandlerFunc(app.serveHTTP))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) serveHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	handler, token := a.handler, a.token
	a.mu.RUnlock()
	if r.Header.Get("Authorization") == "Bearer "+pacttest.ConsumerToken {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	handler.ServeHTTP(w, r)
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	tokens, err := auth.NewTokenIssuer("pact-provider-signing-key-0123456789", "minierp", "minierp-web", time.Hour)
	require.NoError(t, err)

	customerRepo := customersmemory.NewRepository()
	customerService := customersapp.NewService(customerRepo)
	orderService := ordersapp.NewService(
		ordersmemory.NewRepository(),
		ordersapp.WithCustomerDirectory(orderscustomers.NewDirectory(customerService)),
	)
	identityService := identityapp.NewService(identitymemory.NewRepository(), tokens)
	ctx := context.Background()
	_, err = identityService.EnsureSeed(ctx, pacttest.AdminEmail, pacttest.AdminPassword)
	require.NoError(t, err)
	session, err := identityService.Login(ctx, pacttest.AdminEmail, pacttest.AdminPassword)
	require.NoError(t, err)

	router := minierpserver.NewRouter(minierpserver.ApiHandleFunctions{
		AuthAPI:     minierpserver.NewAuthAPI(identityService),
		AdminAPI:    minierpserver.NewAdminAPI(identityService),
		CustomerAPI: minierpserver.NewCustomerAPI(customerService),
		OrderAPI:    minierpserver.NewOrderAPI(orderService),
	}, minierpserver.RouterOptions{Tokens: tokens})

	a.mu.Lock()
	defer a.mu.Unlock()
	a.handler = router
	a.customers = customerRepo
	a.token = session.Token
}

func (a *contractProviderApp) seedCustomer(t testing.TB) {
	t.Helper()
	customer := customerdomain.RestoreCustomer(
		pacttest.ExistingCustomerID,
		pacttest.ExampleCustomerName,
		"sales@acme.com",
		"555-0100",
		"1 Main St",
		time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC),
	)
	require.NoError(t, customer.Validate())
	a.mu.RLock()
	repo := a.customers
	a.mu.RUnlock()
	_, err := repo.Create(context.Background(), customer)
	require.NoError(t, err)
}
