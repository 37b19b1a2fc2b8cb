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

	"github.com/HenrryVelezC/minierp/internal/domains/customers/application/types"
	"github.com/HenrryVelezC/minierp/internal/domains/customers/ports"
)

const tracerName = "github.com/HenrryVelezC/minierp/internal/domains/customers/adapters/observability/service"

// Service decorates the customers service with tracing, logging, and metrics.
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

// New wraps the core customers service.
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

func (s *Service) List(ctx context.Context) ([]types.CustomerView, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customers")
	}
	span.SetAttributes(attribute.Int("customer.count", len(result)))
	return result, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*types.CustomerView, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Get", trace.WithAttributes(attribute.String("customer.id", id.String())))
	defer span.End()

	result, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load customer", slog.String("customer.id", id.String()))
	}
	span.SetAttributes(attribute.Bool("customer.found", result != nil))
	return result, nil
}

func (s *Service) Create(ctx context.Context, input types.CustomerInput) (*types.CustomerView, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Create")
	defer span.End()

	s.logInfo(ctx, "creating customer", slog.String("customer.name", input.Name))
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create customer", slog.String("customer.name", input.Name))
	}
	span.SetAttributes(attribute.String("customer.id", result.ID.String()))
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "customer created", slog.String("customer.id", result.ID.String()))
	return result, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, input types.CustomerInput) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Update", trace.WithAttributes(attribute.String("customer.id", id.String())))
	defer span.End()

	s.logInfo(ctx, "updating customer", slog.String("customer.id", id.String()))
	updated, err := s.inner.Update(ctx, id, input)
	if err != nil {
		return false, s.handleError(ctx, span, err, "failed to update customer", slog.String("customer.id", id.String()))
	}
	span.SetAttributes(attribute.Bool("customer.found", updated))
	if updated {
		s.metrics.recordUpdated(ctx)
		s.logInfo(ctx, "customer updated", slog.String("customer.id", id.String()))
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Delete", trace.WithAttributes(attribute.String("customer.id", id.String())))
	defer span.End()

	s.logInfo(ctx, "deleting customer", slog.String("customer.id", id.String()))
	existed, err := s.inner.Delete(ctx, id)
	if err != nil {
		return false, s.handleError(ctx, span, err, "failed to delete customer", slog.String("customer.id", id.String()))
	}
	span.SetAttributes(attribute.Bool("customer.found", existed))
	if existed {
		s.metrics.recordDeleted(ctx)
		s.logInfo(ctx, "customer deleted", slog.String("customer.id", id.String()))
	}
	return existed, nil
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
	created metric.Int64Counter
	updated metric.Int64Counter
	deleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("customers.service.customers_created", metric.WithDescription("Number of customers created"))
	updated, _ := m.Int64Counter("customers.service.customers_updated", metric.WithDescription("Number of customers updated"))
	deleted, _ := m.Int64Counter("customers.service.customers_deleted", metric.WithDescription("Number of customers deleted"))
	return serviceMetrics{created: created, updated: updated, deleted: deleted}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.created != nil {
		m.created.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordUpdated(ctx context.Context) {
	if m.updated != nil {
		m.updated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.deleted != nil {
		m.deleted.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
