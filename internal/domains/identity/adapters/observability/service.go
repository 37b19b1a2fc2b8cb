package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/HenrryVelezC/minierp/internal/domains/identity/application/types"
	"github.com/HenrryVelezC/minierp/internal/domains/identity/ports"
)

const tracerName = "github.com/HenrryVelezC/minierp/internal/domains/identity/adapters/observability/service"

// Service decorates the identity service with tracing, logging, and metrics.
// Passwords and tokens are never logged.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Register(ctx context.Context, input types.RegisterInput) (*types.UserView, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.Register")
	defer span.End()

	result, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register user", slog.String("user.email", input.Email))
	}
	span.SetAttributes(attribute.String("user.id", result.ID.String()))
	s.logInfo(ctx, "user registered", slog.String("user.id", result.ID.String()), slog.String("user.email", result.Email))
	return result, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*types.Session, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.Login")
	defer span.End()

	result, err := s.inner.Login(ctx, email, password)
	if err != nil {
		s.metrics.recordLogin(ctx, false)
		return nil, s.handleError(ctx, span, err, "login failed", slog.String("user.email", email))
	}
	s.metrics.recordLogin(ctx, true)
	span.SetAttributes(attribute.String("user.id", result.User.ID.String()))
	s.logInfo(ctx, "user logged in", slog.String("user.id", result.User.ID.String()))
	return result, nil
}

func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*types.UserView, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.Me", trace.WithAttributes(attribute.String("user.id", userID.String())))
	defer span.End()

	result, err := s.inner.Me(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load profile", slog.String("user.id", userID.String()))
	}
	return result, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]types.UserView, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.ListUsers")
	defer span.End()

	result, err := s.inner.ListUsers(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list users")
	}
	span.SetAttributes(attribute.Int("user.count", len(result)))
	return result, nil
}

func (s *Service) AssignRole(ctx context.Context, userID uuid.UUID, role string) (*types.UserView, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.AssignRole",
		trace.WithAttributes(attribute.String("user.id", userID.String()), attribute.String("user.role", role)))
	defer span.End()

	result, err := s.inner.AssignRole(ctx, userID, role)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to assign role", slog.String("user.id", userID.String()), slog.String("user.role", role))
	}
	s.logInfo(ctx, "role assigned", slog.String("user.id", userID.String()), slog.String("user.role", role))
	return result, nil
}

func (s *Service) EnsureSeed(ctx context.Context, email, password string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.EnsureSeed")
	defer span.End()

	created, err := s.inner.EnsureSeed(ctx, email, password)
	if err != nil {
		return false, s.handleError(ctx, span, err, "failed to seed administrator", slog.String("user.email", email))
	}
	span.SetAttributes(attribute.Bool("seed.created", created))
	if created {
		s.logInfo(ctx, "default administrator created", slog.String("user.email", email))
	} else {
		s.logInfo(ctx, "default administrator already present", slog.String("user.email", email))
	}
	return created, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	logins metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	logins, _ := m.Int64Counter("identity.service.logins", metric.WithDescription("Login attempts by outcome"))
	return serviceMetrics{logins: logins}
}

func (m serviceMetrics) recordLogin(ctx context.Context, ok bool) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("login.success", ok)))
	}
}

var _ ports.Service = (*Service)(nil)
