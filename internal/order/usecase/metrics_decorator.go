package usecase

import (
	"context"
	"time"

	"github.com/allisson/storefront/internal/metrics"
	orderDomain "github.com/allisson/storefront/internal/order/domain"
)

// orderUseCaseWithMetrics decorates OrderUseCase with metrics instrumentation.
type orderUseCaseWithMetrics struct {
	next    OrderUseCase
	metrics metrics.BusinessMetrics
}

// NewOrderUseCaseWithMetrics wraps an OrderUseCase with metrics recording.
func NewOrderUseCaseWithMetrics(useCase OrderUseCase, m metrics.BusinessMetrics) OrderUseCase {
	return &orderUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (o *orderUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, o.metrics, "order", operation, start, err)
}

// Get records metrics for order retrieval operations.
func (o *orderUseCaseWithMetrics) Get(ctx context.Context, orderID string) (*orderDomain.Order, error) {
	start := time.Now()
	order, err := o.next.Get(ctx, orderID)
	o.record(ctx, "get", start, err)
	return order, err
}

// List records metrics for order listing operations.
func (o *orderUseCaseWithMetrics) List(
	ctx context.Context,
	input *orderDomain.ListOrdersInput,
) ([]*orderDomain.Order, error) {
	start := time.Now()
	orders, err := o.next.List(ctx, input)
	o.record(ctx, "list", start, err)
	return orders, err
}

// AllowedTransitions records metrics for transition lookups.
func (o *orderUseCaseWithMetrics) AllowedTransitions(
	ctx context.Context,
	orderID string,
) (*orderDomain.Order, []orderDomain.OrderStatus, error) {
	start := time.Now()
	order, next, err := o.next.AllowedTransitions(ctx, orderID)
	o.record(ctx, "transitions", start, err)
	return order, next, err
}

// ChangeStatus records metrics for status changes.
func (o *orderUseCaseWithMetrics) ChangeStatus(
	ctx context.Context,
	order *orderDomain.Order,
	to orderDomain.OrderStatus,
) (*orderDomain.Order, error) {
	start := time.Now()
	updated, err := o.next.ChangeStatus(ctx, order, to)
	o.record(ctx, "change_status", start, err)
	return updated, err
}

// ChangeStatusByID records metrics for status changes addressed by order ID.
func (o *orderUseCaseWithMetrics) ChangeStatusByID(
	ctx context.Context,
	orderID string,
	to orderDomain.OrderStatus,
) (*orderDomain.Order, error) {
	start := time.Now()
	updated, err := o.next.ChangeStatusByID(ctx, orderID, to)
	o.record(ctx, "change_status", start, err)
	return updated, err
}
