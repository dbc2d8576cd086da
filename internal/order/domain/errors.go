package domain

import (
	"fmt"
	"strings"

	apperrors "github.com/allisson/storefront/internal/errors"
)

// Order workflow errors.
var (
	// ErrOrderNotFound indicates the remote API has no order with the requested ID.
	ErrOrderNotFound = apperrors.Wrap(apperrors.ErrNotFound, "order not found")

	// ErrUnknownStatus indicates a status string outside the known enum.
	ErrUnknownStatus = apperrors.Wrap(apperrors.ErrInvalidInput, "unknown order status")

	// ErrIllegalTransition indicates a transition refused locally by the status machine.
	ErrIllegalTransition = apperrors.Wrap(apperrors.ErrInvalidInput, "illegal order status transition")

	// ErrServerRejectedTransition indicates the remote API refused a locally legal transition.
	ErrServerRejectedTransition = apperrors.Wrap(apperrors.ErrConflict, "order status transition rejected")
)

// IllegalTransitionError is returned when an operator asks for a transition that is not
// an edge of the status machine. No network call is issued for it.
type IllegalTransitionError struct {
	From    OrderStatus
	To      OrderStatus
	Allowed []OrderStatus
}

func (e *IllegalTransitionError) Error() string {
	allowed := make([]string, 0, len(e.Allowed))
	for _, s := range e.Allowed {
		allowed = append(allowed, string(s))
	}
	if len(allowed) == 0 {
		return fmt.Sprintf("cannot move order from %s to %s: %s is terminal", e.From, e.To, e.From)
	}
	return fmt.Sprintf(
		"cannot move order from %s to %s: allowed transitions are %s",
		e.From, e.To, strings.Join(allowed, ", "),
	)
}

// Unwrap exposes ErrIllegalTransition, and through it apperrors.ErrInvalidInput.
func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// ServerRejectedTransitionError carries the remote refusal of a transition verbatim.
type ServerRejectedTransitionError struct {
	OrderID string
	To      OrderStatus
	Cause   error
}

func (e *ServerRejectedTransitionError) Error() string {
	return fmt.Sprintf("server rejected moving order %s to %s: %v", e.OrderID, e.To, e.Cause)
}

// Unwrap returns both the sentinel and the remote cause so callers can match either.
func (e *ServerRejectedTransitionError) Unwrap() []error {
	return []error{ErrServerRejectedTransition, e.Cause}
}
