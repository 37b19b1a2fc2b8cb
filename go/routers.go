package minierpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/HenrryVelezC/minierp/internal/domains/identity/domain"
	"github.com/HenrryVelezC/minierp/internal/platform/auth"
	"github.com/HenrryVelezC/minierp/internal/platform/metrics"
	"github.com/HenrryVelezC/minierp/internal/platform/observability"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// Guards run before HandlerFunc, in order.
	Guards []gin.HandlerFunc
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions bundles every API group served by the router.
type ApiHandleFunctions struct {
	AuthAPI     AuthAPI
	AdminAPI    AdminAPI
	CustomerAPI CustomerAPI
	OrderAPI    OrderAPI
}

// RouterOptions carries the cross-cutting collaborators of the router.
type RouterOptions struct {
	// Tokens validates bearer tokens. Required.
	Tokens auth.TokenParser
	// ServiceName labels otelgin spans. Tracing middleware is skipped when empty.
	ServiceName string
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	// AllowedOrigins enables CORS for the listed origins.
	AllowedOrigins []string
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	return NewRouterWithGinEngine(router, handleFunctions, opts)
}

// NewRouterWithGinEngine adds the middleware stack and routes to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  opts.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Authorization", "Content-Type"},
			ExposeHeaders: []string{"Location"},
			MaxAge:        12 * time.Hour,
		}))
	}
	if opts.ServiceName != "" {
		router.Use(otelgin.Middleware(opts.ServiceName))
	}
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	if opts.Logger != nil {
		router.Use(observability.RequestLogger(opts.Logger))
	}
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	for _, route := range getRoutes(handleFunctions, opts.Tokens) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := append(append([]gin.HandlerFunc{}, route.Guards...), route.HandlerFunc)
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, handlers...)
		case http.MethodPost:
			router.POST(route.Pattern, handlers...)
		case http.MethodPut:
			router.PUT(route.Pattern, handlers...)
		case http.MethodDelete:
			router.DELETE(route.Pattern, handlers...)
		}
	}

	return router
}

// DefaultHandleFunc answers routes that have no handler bound.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions, tokens auth.TokenParser) []Route {
	authenticated := []gin.HandlerFunc{auth.RequireAuth(tokens)}
	writers := []gin.HandlerFunc{
		auth.RequireAuth(tokens),
		auth.RequireRoles(string(domain.RoleAdmin), string(domain.RoleManager)),
	}
	admins := []gin.HandlerFunc{
		auth.RequireAuth(tokens),
		auth.RequireRoles(string(domain.RoleAdmin)),
	}

	return []Route{
		{
			"Login",
			http.MethodPost,
			"/api/auth/login",
			nil,
			handleFunctions.AuthAPI.Login,
		},
		{
			"Me",
			http.MethodGet,
			"/api/auth/me",
			authenticated,
			handleFunctions.AuthAPI.Me,
		},
		{
			"Register",
			http.MethodPost,
			"/api/auth/register",
			admins,
			handleFunctions.AuthAPI.Register,
		},
		{
			"ListUsers",
			http.MethodGet,
			"/api/admin/users",
			admins,
			handleFunctions.AdminAPI.ListUsers,
		},
		{
			"AssignRole",
			http.MethodPost,
			"/api/admin/assign-role",
			admins,
			handleFunctions.AdminAPI.AssignRole,
		},
		{
			"ListCustomers",
			http.MethodGet,
			"/api/customers",
			authenticated,
			handleFunctions.CustomerAPI.ListCustomers,
		},
		{
			"GetCustomer",
			http.MethodGet,
			"/api/customers/:id",
			authenticated,
			handleFunctions.CustomerAPI.GetCustomer,
		},
		{
			"CreateCustomer",
			http.MethodPost,
			"/api/customers",
			writers,
			handleFunctions.CustomerAPI.CreateCustomer,
		},
		{
			"UpdateCustomer",
			http.MethodPut,
			"/api/customers/:id",
			writers,
			handleFunctions.CustomerAPI.UpdateCustomer,
		},
		{
			"DeleteCustomer",
			http.MethodDelete,
			"/api/customers/:id",
			admins,
			handleFunctions.CustomerAPI.DeleteCustomer,
		},
		{
			"ListOrders",
			http.MethodGet,
			"/api/orders",
			authenticated,
			handleFunctions.OrderAPI.ListOrders,
		},
		{
			"GetOrder",
			http.MethodGet,
			"/api/orders/:id",
			authenticated,
			handleFunctions.OrderAPI.GetOrder,
		},
		{
			"CreateOrder",
			http.MethodPost,
			"/api/orders",
			writers,
			handleFunctions.OrderAPI.CreateOrder,
		},
		{
			"UpdateOrder",
			http.MethodPut,
			"/api/orders/:id",
			writers,
			handleFunctions.OrderAPI.UpdateOrder,
		},
		{
			"DeleteOrder",
			http.MethodDelete,
			"/api/orders/:id",
			admins,
			handleFunctions.OrderAPI.DeleteOrder,
		},
	}
}
