package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	minierpserver "github.com/HenrryVelezC/minierp/go"

	customersmemory "github.com/HenrryVelezC/minierp/internal/domains/customers/adapters/memory"
	customersobs "github.com/HenrryVelezC/minierp/internal/domains/customers/adapters/observability"
	customerspostgres "github.com/HenrryVelezC/minierp/internal/domains/customers/adapters/persistence/postgres"
	customersapp "github.com/HenrryVelezC/minierp/internal/domains/customers/application"
	customersports "github.com/HenrryVelezC/minierp/internal/domains/customers/ports"

	identitymemory "github.com/HenrryVelezC/minierp/internal/domains/identity/adapters/memory"
	identityobs "github.com/HenrryVelezC/minierp/internal/domains/identity/adapters/observability"
	identitypostgres "github.com/HenrryVelezC/minierp/internal/domains/identity/adapters/persistence/postgres"
	identityapp "github.com/HenrryVelezC/minierp/internal/domains/identity/application"
	identityports "github.com/HenrryVelezC/minierp/internal/domains/identity/ports"

	orderscustomers "github.com/HenrryVelezC/minierp/internal/domains/orders/adapters/customers"
	ordersmemory "github.com/HenrryVelezC/minierp/internal/domains/orders/adapters/memory"
	ordersobs "github.com/HenrryVelezC/minierp/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/HenrryVelezC/minierp/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/HenrryVelezC/minierp/internal/domains/orders/application"
	ordersports "github.com/HenrryVelezC/minierp/internal/domains/orders/ports"

	"github.com/HenrryVelezC/minierp/internal/platform/auth"
	"github.com/HenrryVelezC/minierp/internal/platform/database"
	"github.com/HenrryVelezC/minierp/internal/platform/metrics"
	"github.com/HenrryVelezC/minierp/internal/platform/migrations"
	platformobservability "github.com/HenrryVelezC/minierp/internal/platform/observability"
)

const (
	serviceName     = "minierp-api"
	shutdownTimeout = 10 * time.Second
)

// Services is the fully decorated set of use cases shared by the API and the seed command.
type Services struct {
	Customers customersports.Service
	Orders    ordersports.Service
	Identity  identityports.Service
	Tokens    *auth.TokenIssuer
}

type repositories struct {
	customers customersports.Repository
	orders    ordersports.Repository
	users     identityports.Repository
}

// Run boots the MiniErp HTTP API and blocks until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Options{ServiceName: serviceName})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	services, cleanup, err := BuildServices(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.SeedDisabled {
		logger.Info("admin seed disabled")
	} else if err := seedAdmin(ctx, services.Identity, cfg, logger); err != nil {
		return err
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := minierpserver.NewRouter(minierpserver.ApiHandleFunctions{
		AuthAPI:     minierpserver.NewAuthAPI(services.Identity),
		AdminAPI:    minierpserver.NewAdminAPI(services.Identity),
		CustomerAPI: minierpserver.NewCustomerAPI(services.Customers),
		OrderAPI:    minierpserver.NewOrderAPI(services.Orders),
	}, minierpserver.RouterOptions{
		Tokens:         services.Tokens,
		ServiceName:    serviceName,
		Logger:         logger,
		Metrics:        metrics.New(),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("MiniErp API listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("MiniErp API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down MiniErp API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// Seed ensures the configured administrator account exists, then returns.
func Seed(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Options{
		ServiceName:    "minierp-seed",
		DisableTracing: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	if cfg.Database.Driver == database.DriverMemory {
		instruments.Logger.Warn("seeding the memory driver has no lasting effect")
	}
	services, cleanup, err := BuildServices(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()
	return seedAdmin(ctx, services.Identity, cfg, instruments.Logger)
}

// BuildServices opens storage, applies migrations, and wires every service with its observability decorator.
func BuildServices(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*Services, func(), error) {
	logger := instruments.Logger
	db, cleanup, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if db != nil {
		if err := migrations.Run(db.WithContext(ctx)); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}
	repos := buildRepositories(db)

	tokens, err := auth.NewTokenIssuer(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to configure tokens: %w", err)
	}

	customerService := customersobs.New(
		customersapp.NewService(repos.customers),
		customersobs.WithLogger(logger),
		customersobs.WithTracer(instruments.Tracer("internal.customers.application")),
		customersobs.WithMeter(instruments.Meter("internal.customers.application")),
	)
	orderService := ordersobs.New(
		ordersapp.NewService(repos.orders, ordersapp.WithCustomerDirectory(orderscustomers.NewDirectory(customerService))),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	identityService := identityobs.New(
		identityapp.NewService(repos.users, tokens),
		identityobs.WithLogger(logger),
		identityobs.WithTracer(instruments.Tracer("internal.identity.application")),
		identityobs.WithMeter(instruments.Meter("internal.identity.application")),
	)

	return &Services{
		Customers: customerService,
		Orders:    orderService,
		Identity:  identityService,
		Tokens:    tokens,
	}, cleanup, nil
}

func buildRepositories(db *gorm.DB) repositories {
	if db == nil {
		return repositories{
			customers: customersmemory.NewRepository(),
			orders:    ordersmemory.NewRepository(),
			users:     identitymemory.NewRepository(),
		}
	}
	return repositories{
		customers: customerspostgres.NewRepository(db),
		orders:    orderspostgres.NewRepository(db),
		users:     identitypostgres.NewRepository(db),
	}
}

func seedAdmin(ctx context.Context, identity identityports.Service, cfg Config, logger *slog.Logger) error {
	created, err := identity.EnsureSeed(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	if created {
		logger.Info("default admin account created", slog.String("user.email", cfg.AdminEmail))
	} else {
		logger.Info("default admin account already present", slog.String("user.email", cfg.AdminEmail))
	}
	return nil
}
