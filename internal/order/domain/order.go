package domain

import (
	"time"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/storefront/internal/errors"
)

// Order is the client view of an order as delivered by the remote API.
type Order struct {
	ID            string
	UserID        string
	Status        OrderStatus
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AllowedNext returns the transitions an operator may apply to this order.
func (o *Order) AllowedNext() []OrderStatus {
	return AllowedNext(o.Status)
}

// UpdateStatusRequest is the body of PUT /order/status.
type UpdateStatusRequest struct {
	OrderID string      `json:"orderId"`
	Status  OrderStatus `json:"status"`
}

// NewUpdateStatusRequest validates the transition locally and builds the request body.
// It returns an *IllegalTransitionError when the edge is not in the table.
func NewUpdateStatusRequest(order *Order, to OrderStatus) (*UpdateStatusRequest, error) {
	if order == nil || order.ID == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "order id is required")
	}
	if err := CheckTransition(order.Status, to); err != nil {
		return nil, err
	}
	return &UpdateStatusRequest{OrderID: order.ID, Status: to}, nil
}

// Listing bounds.
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// ListOrdersInput holds pagination for listing orders. An empty Status lists every order.
type ListOrdersInput struct {
	Offset int
	Limit  int
	Status OrderStatus
}

// Validate checks pagination bounds and the optional status filter.
func (in *ListOrdersInput) Validate() error {
	err := validation.ValidateStruct(in,
		validation.Field(&in.Offset, validation.Min(0)),
		validation.Field(&in.Limit, validation.Required, validation.Min(1), validation.Max(MaxListLimit)),
		validation.Field(&in.Status, validation.By(func(any) error {
			if in.Status == "" || in.Status.IsValid() {
				return nil
			}
			return ErrUnknownStatus
		})),
	)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}
	return nil
}
