package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	orderDomain "github.com/allisson/storefront/internal/order/domain"
)

type orderUseCase struct {
	repo   OrderRepository
	logger *slog.Logger
}

// NewOrderUseCase creates an OrderUseCase.
func NewOrderUseCase(repo OrderRepository, logger *slog.Logger) OrderUseCase {
	return &orderUseCase{repo: repo, logger: logger}
}

// Get fetches one order from the remote API.
func (o *orderUseCase) Get(ctx context.Context, orderID string) (*orderDomain.Order, error) {
	return o.repo.Get(ctx, orderID)
}

// List fetches a page of orders. A zero limit means DefaultListLimit; an optional status
// filter must name a known status.
func (o *orderUseCase) List(
	ctx context.Context,
	input *orderDomain.ListOrdersInput,
) ([]*orderDomain.Order, error) {
	normalized := orderDomain.ListOrdersInput{}
	if input != nil {
		normalized = *input
	}
	// Apply defaults before validating so the zero value is a usable query
	if normalized.Limit == 0 {
		normalized.Limit = orderDomain.DefaultListLimit
	}
	if err := normalized.Validate(); err != nil {
		return nil, err
	}
	return o.repo.List(ctx, &normalized)
}

// AllowedTransitions fetches the order and returns the statuses it may move to next.
// Terminal and unknown statuses yield an empty list.
func (o *orderUseCase) AllowedTransitions(
	ctx context.Context,
	orderID string,
) (*orderDomain.Order, []orderDomain.OrderStatus, error) {
	order, err := o.repo.Get(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, order.AllowedNext(), nil
}

// ChangeStatus moves order to status to.
//
// This method:
// 1. Checks the transition against the lifecycle table, so an illegal move never reaches the API
// 2. Sends PUT /order/status with {orderId, status}
// 3. Returns the order echoed by the server, or a local copy carrying the new status
//
// A 4xx answer other than 401 and 404 becomes a *ServerRejectedTransitionError; the client
// never overrides the server's decision.
func (o *orderUseCase) ChangeStatus(
	ctx context.Context,
	order *orderDomain.Order,
	to orderDomain.OrderStatus,
) (*orderDomain.Order, error) {
	// Reject illegal transitions locally
	req, err := orderDomain.NewUpdateStatusRequest(order, to)
	if err != nil {
		return nil, err
	}

	updated, err := o.repo.UpdateStatus(ctx, req)
	if err != nil {
		if asServerRejection(err) {
			o.logger.WarnContext(ctx, "order status change rejected by server",
				slog.String("order_id", order.ID),
				slog.String("from", order.Status.String()),
				slog.String("to", to.String()),
				slog.Any("error", err),
			)
			return nil, &orderDomain.ServerRejectedTransitionError{OrderID: order.ID, To: to, Cause: err}
		}
		return nil, err
	}

	o.logger.InfoContext(ctx, "order status changed",
		slog.String("order_id", order.ID),
		slog.String("from", order.Status.String()),
		slog.String("to", to.String()),
	)

	// The server may acknowledge without echoing the order
	if updated == nil || updated.ID == "" {
		local := *order
		local.Status = to
		return &local, nil
	}
	return updated, nil
}

// ChangeStatusByID fetches the order's current status first, then behaves like ChangeStatus.
func (o *orderUseCase) ChangeStatusByID(
	ctx context.Context,
	orderID string,
	to orderDomain.OrderStatus,
) (*orderDomain.Order, error) {
	order, err := o.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return o.ChangeStatus(ctx, order, to)
}

// asServerRejection reports a 4xx answer other than 401 and 404, which the pipeline and
// the repository surface on their own.
func asServerRejection(err error) bool {
	var statusErr *authDomain.StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	switch statusErr.StatusCode {
	case http.StatusUnauthorized, http.StatusNotFound:
		return false
	}
	return statusErr.IsClientError()
}
