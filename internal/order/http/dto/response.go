package dto

import (
	"time"

	orderDomain "github.com/allisson/storefront/internal/order/domain"
)

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id,omitempty"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status,omitempty"`
	AllowedNext   []string   `json:"allowed_next"`
	Terminal      bool       `json:"terminal"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// MapOrderToResponse converts a domain order to an API response.
func MapOrderToResponse(order *orderDomain.Order) OrderResponse {
	return OrderResponse{
		ID:            order.ID,
		UserID:        order.UserID,
		Status:        order.Status.String(),
		PaymentStatus: string(order.PaymentStatus),
		AllowedNext:   MapStatuses(order.AllowedNext()),
		Terminal:      orderDomain.IsTerminal(order.Status),
		CreatedAt:     optionalTime(order.CreatedAt),
		UpdatedAt:     optionalTime(order.UpdatedAt),
	}
}

// ListOrdersResponse represents a paginated list of orders in API responses.
type ListOrdersResponse struct {
	Data []OrderResponse `json:"data"`
}

// MapOrdersToListResponse converts a slice of domain orders to a list API response.
func MapOrdersToListResponse(orders []*orderDomain.Order) ListOrdersResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, MapOrderToResponse(order))
	}
	return ListOrdersResponse{Data: responses}
}

// TransitionsResponse lists the statuses an operator may move an order to.
type TransitionsResponse struct {
	OrderID  string   `json:"order_id"`
	Status   string   `json:"status"`
	Allowed  []string `json:"allowed"`
	Terminal bool     `json:"terminal"`
}

// MapTransitionsToResponse builds a TransitionsResponse.
func MapTransitionsToResponse(order *orderDomain.Order, allowed []orderDomain.OrderStatus) TransitionsResponse {
	return TransitionsResponse{
		OrderID:  order.ID,
		Status:   order.Status.String(),
		Allowed:  MapStatuses(allowed),
		Terminal: orderDomain.IsTerminal(order.Status),
	}
}

// IllegalTransitionDetails is attached to a refused transition.
type IllegalTransitionDetails struct {
	From    string   `json:"from"`
	To      string   `json:"to"`
	Allowed []string `json:"allowed"`
}

// MapStatuses converts statuses to strings; the result is never nil.
func MapStatuses(statuses []orderDomain.OrderStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, s.String())
	}
	return out
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
