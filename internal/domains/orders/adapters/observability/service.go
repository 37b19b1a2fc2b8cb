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

	"github.com/HenrryVelezC/minierp/internal/domains/orders/application/types"
	"github.com/HenrryVelezC/minierp/internal/domains/orders/ports"
)

const tracerName = "github.com/HenrryVelezC/minierp/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
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

// New wraps the core orders service.
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

func (s *Service) List(ctx context.Context) ([]types.OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*types.OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Get", trace.WithAttributes(attribute.String("order.id", id.String())))
	defer span.End()

	result, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id.String()))
	}
	span.SetAttributes(attribute.Bool("order.found", result != nil))
	return result, nil
}

func (s *Service) Create(ctx context.Context, input types.OrderInput) (*types.OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Create",
		trace.WithAttributes(attribute.String("customer.id", input.CustomerID.String()), attribute.Int("order.items", len(input.Items))))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("customer.id", input.CustomerID.String()), slog.Int("order.items", len(input.Items)))
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.String("customer.id", input.CustomerID.String()))
	}
	span.SetAttributes(attribute.String("order.id", result.ID.String()), attribute.String("order.total", result.Total.String()))
	s.metrics.recordCreated(ctx, len(result.Items))
	s.logInfo(ctx, "order created",
		slog.String("order.id", result.ID.String()),
		slog.Int("order.items", len(result.Items)),
		slog.String("order.total", result.Total.String()))
	return result, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, input types.OrderInput) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Update",
		trace.WithAttributes(attribute.String("order.id", id.String()), attribute.Int("order.items", len(input.Items))))
	defer span.End()

	s.logInfo(ctx, "updating order", slog.String("order.id", id.String()), slog.Int("order.items", len(input.Items)))
	updated, err := s.inner.Update(ctx, id, input)
	if err != nil {
		return false, s.handleError(ctx, span, err, "failed to update order", slog.String("order.id", id.String()))
	}
	span.SetAttributes(attribute.Bool("order.found", updated))
	if updated {
		s.metrics.recordUpdated(ctx)
		s.logInfo(ctx, "order updated", slog.String("order.id", id.String()))
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.Delete", trace.WithAttributes(attribute.String("order.id", id.String())))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.String("order.id", id.String()))
	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.String("order.id", id.String()))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "order deleted", slog.String("order.id", id.String()))
	return nil
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
	created   metric.Int64Counter
	updated   metric.Int64Counter
	deleted   metric.Int64Counter
	itemCount metric.Int64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("orders.service.orders_created", metric.WithDescription("Number of orders created"))
	updated, _ := m.Int64Counter("orders.service.orders_updated", metric.WithDescription("Number of orders updated"))
	deleted, _ := m.Int64Counter("orders.service.orders_deleted", metric.WithDescription("Number of order delete requests"))
	itemCount, _ := m.Int64Histogram("orders.service.order_items", metric.WithDescription("Items per created order"))
	return serviceMetrics{created: created, updated: updated, deleted: deleted, itemCount: itemCount}
}

func (m serviceMetrics) recordCreated(ctx context.Context, items int) {
	if m.created != nil {
		m.created.Add(ctx, 1)
	}
	if m.itemCount != nil {
		m.itemCount.Record(ctx, int64(items))
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
