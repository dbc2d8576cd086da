// Package usecase implements the order operations offered to an operator.
package usecase

import (
	"context"

	orderDomain "github.com/allisson/storefront/internal/order/domain"
)

// OrderRepository reads and updates orders on the remote API.
type OrderRepository interface {
	// Get retrieves an order by ID. Returns ErrOrderNotFound if not found.
	Get(ctx context.Context, orderID string) (*orderDomain.Order, error)

	// List retrieves a page of orders.
	List(ctx context.Context, input *orderDomain.ListOrdersInput) ([]*orderDomain.Order, error)

	// UpdateStatus sends PUT /order/status. It returns the order echoed by the server, or nil
	// when the server answered without one.
	UpdateStatus(ctx context.Context, req *orderDomain.UpdateStatusRequest) (*orderDomain.Order, error)
}

// OrderUseCase defines the order operations.
type OrderUseCase interface {
	// Get retrieves one order.
	Get(ctx context.Context, orderID string) (*orderDomain.Order, error)

	// List retrieves a page of orders. A zero Limit means DefaultListLimit.
	List(ctx context.Context, input *orderDomain.ListOrdersInput) ([]*orderDomain.Order, error)

	// AllowedTransitions fetches the order and returns the statuses it may move to.
	AllowedTransitions(ctx context.Context, orderID string) (*orderDomain.Order, []orderDomain.OrderStatus, error)

	// ChangeStatus moves order to status to. An illegal transition is refused locally with
	// *IllegalTransitionError and no network call; a remote refusal is returned as
	// *ServerRejectedTransitionError.
	ChangeStatus(
		ctx context.Context,
		order *orderDomain.Order,
		to orderDomain.OrderStatus,
	) (*orderDomain.Order, error)

	// ChangeStatusByID fetches the order, then behaves like ChangeStatus.
	ChangeStatusByID(
		ctx context.Context,
		orderID string,
		to orderDomain.OrderStatus,
	) (*orderDomain.Order, error)
}
