// Package domain defines the order model and the order lifecycle state machine.
// The client only reads an order's status and proposes transitions; the remote
// API is the authority that persists the new value.
package domain

import (
	"fmt"
	"strings"

	apperrors "github.com/allisson/storefront/internal/errors"
)

// OrderStatus is the lifecycle status of an order.
type OrderStatus string

const (
	// StatusPending is the status of a freshly placed order.
	StatusPending OrderStatus = "PENDING"

	// StatusConfirmed is set once an operator accepts the order.
	StatusConfirmed OrderStatus = "CONFIRMED"

	// StatusShipping is set once the order has left the warehouse.
	StatusShipping OrderStatus = "SHIPPING"

	// StatusCompleted is terminal: the order was delivered.
	StatusCompleted OrderStatus = "COMPLETED"

	// StatusCancelled is terminal: the order will not be fulfilled.
	StatusCancelled OrderStatus = "CANCELLED"
)

// canceledAlias is the alternate spelling accepted on input.
const canceledAlias = "CANCELED"

// transitions is the only source of legal edges. Terminal statuses map to an empty list.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipping, StatusCancelled},
	StatusShipping:  {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// AllStatuses returns every known order status in lifecycle order.
func AllStatuses() []OrderStatus {
	return []OrderStatus{
		StatusPending,
		StatusConfirmed,
		StatusShipping,
		StatusCompleted,
		StatusCancelled,
	}
}

// ParseOrderStatus normalizes raw input into an OrderStatus. Input is trimmed and
// upper-cased, and the CANCELED spelling is folded into CANCELLED.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == canceledAlias {
		normalized = string(StatusCancelled)
	}

	status := OrderStatus(normalized)
	if !status.IsValid() {
		return "", apperrors.Wrap(ErrUnknownStatus, fmt.Sprintf("%q", raw))
	}
	return status, nil
}

// IsValid reports whether s is one of the five known statuses.
func (s OrderStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// AllowedNext returns the statuses reachable from current in one step. The returned
// slice is a copy; unknown and terminal statuses yield an empty slice.
func AllowedNext(current OrderStatus) []OrderStatus {
	next := transitions[current]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// IsLegalTransition reports whether an order in status from may be moved to status to.
func IsLegalTransition(from, to OrderStatus) bool {
	if from == to {
		return false
	}
	for _, candidate := range transitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func IsTerminal(s OrderStatus) bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CheckTransition returns nil for a legal transition and an *IllegalTransitionError
// carrying the legal set otherwise.
func CheckTransition(from, to OrderStatus) error {
	if IsLegalTransition(from, to) {
		return nil
	}
	return &IllegalTransitionError{
		From:    from,
		To:      to,
		Allowed: AllowedNext(from),
	}
}

// PaymentStatus is informational only; the status machine never changes it.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)
