// Package repository implements order persistence against the remote storefront API.
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	apperrors "github.com/allisson/storefront/internal/errors"
	orderDomain "github.com/allisson/storefront/internal/order/domain"
)

// Remote order endpoints.
const (
	OrderPath       = "/order"
	OrderStatusPath = "/order/status"
)

// APIClient is the subset of restclient.Client used by the repository.
type APIClient interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Put(ctx context.Context, path string, in, out any) error
}

// RESTOrderRepository reads and updates orders through the remote API. Requests go through
// the authenticated transport, so a 401 reaching this layer means the refresh already failed.
type RESTOrderRepository struct {
	client APIClient
	logger *slog.Logger
}

// NewRESTOrderRepository creates a new RESTOrderRepository. A nil logger uses slog.Default.
func NewRESTOrderRepository(client APIClient, logger *slog.Logger) *RESTOrderRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &RESTOrderRepository{client: client, logger: logger}
}

// Get fetches one order. A 404 answer maps to ErrOrderNotFound.
func (r *RESTOrderRepository) Get(ctx context.Context, orderID string) (*orderDomain.Order, error) {
	if orderID == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "order id is required")
	}

	var raw json.RawMessage
	if err := r.client.Get(ctx, OrderPath+"/"+url.PathEscape(orderID), nil, &raw); err != nil {
		if isNotFound(err) {
			return nil, apperrors.Wrapf(orderDomain.ErrOrderNotFound, "order %s", orderID)
		}
		return nil, err
	}

	var payload orderPayload
	if err := json.Unmarshal(unwrapOrder(raw), &payload); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrUnavailable, "malformed order payload: %v", err)
	}
	order := payload.toDomain()
	if order.ID == "" {
		return nil, apperrors.Wrapf(orderDomain.ErrOrderNotFound, "order %s", orderID)
	}
	return order, nil
}

// List fetches a page of orders.
func (r *RESTOrderRepository) List(
	ctx context.Context,
	input *orderDomain.ListOrdersInput,
) ([]*orderDomain.Order, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(input.Offset))
	query.Set("limit", strconv.Itoa(input.Limit))
	if input.Status != "" {
		query.Set("status", input.Status.String())
	}

	var raw json.RawMessage
	if err := r.client.Get(ctx, OrderPath, query, &raw); err != nil {
		return nil, err
	}

	payloads, err := decodeOrderList(raw)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrUnavailable, "malformed order list payload: %v", err)
	}

	orders := make([]*orderDomain.Order, 0, len(payloads))
	for _, p := range payloads {
		orders = append(orders, p.toDomain())
	}
	return orders, nil
}

// UpdateStatus sends PUT /order/status. It returns nil without error when the server
// acknowledges the change without echoing the order.
func (r *RESTOrderRepository) UpdateStatus(
	ctx context.Context,
	req *orderDomain.UpdateStatusRequest,
) (*orderDomain.Order, error) {
	var raw json.RawMessage
	if err := r.client.Put(ctx, OrderStatusPath, req, &raw); err != nil {
		if isNotFound(err) {
			return nil, apperrors.Wrapf(orderDomain.ErrOrderNotFound, "order %s", req.OrderID)
		}
		return nil, err
	}

	raw = unwrapOrder(raw)
	if len(bytes.TrimSpace(raw)) == 0 || raw[0] != '{' {
		return nil, nil
	}

	// The status change already succeeded; an unreadable echo only costs the fresh copy.
	var payload orderPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		r.logger.DebugContext(ctx, "ignoring undecodable order status response",
			slog.String("order_id", req.OrderID),
			slog.Any("error", err),
		)
		return nil, nil
	}
	if payload.id() == "" {
		return nil, nil
	}
	return payload.toDomain(), nil
}

func isNotFound(err error) bool {
	var statusErr *authDomain.StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// orderPayload accepts both "id" and "_id" identifiers.
type orderPayload struct {
	ID            string          `json:"id"`
	MongoID       string          `json:"_id"`
	UserID        string          `json:"userId"`
	User          json.RawMessage `json:"user"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

func (p *orderPayload) id() string {
	if p.ID != "" {
		return p.ID
	}
	return p.MongoID
}

func (p *orderPayload) userID() string {
	if p.UserID != "" {
		return p.UserID
	}
	if len(p.User) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(p.User, &asString); err == nil {
		return asString
	}
	var asObject struct {
		ID      string `json:"id"`
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(p.User, &asObject); err == nil {
		if asObject.ID != "" {
			return asObject.ID
		}
		return asObject.MongoID
	}
	return ""
}

// toDomain keeps an unknown status verbatim; such an order offers no transitions.
func (p *orderPayload) toDomain() *orderDomain.Order {
	status, err := orderDomain.ParseOrderStatus(p.Status)
	if err != nil {
		status = orderDomain.OrderStatus(p.Status)
	}
	return &orderDomain.Order{
		ID:            p.id(),
		UserID:        p.userID(),
		Status:        status,
		PaymentStatus: orderDomain.PaymentStatus(p.PaymentStatus),
		CreatedAt:     parseTime(p.CreatedAt),
		UpdatedAt:     parseTime(p.UpdatedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// unwrapOrder strips an {"order": {...}} wrapper.
func unwrapOrder(raw json.RawMessage) json.RawMessage {
	var wrapper struct {
		Order json.RawMessage `json:"order"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && len(wrapper.Order) > 0 && wrapper.Order[0] == '{' {
		return wrapper.Order
	}
	return raw
}

// decodeOrderList accepts a bare array or an object carrying the array under
// "orders", "items" or "rows".
func decodeOrderList(raw json.RawMessage) ([]orderPayload, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var list []orderPayload
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var wrapper struct {
		Orders []orderPayload `json:"orders"`
		Items  []orderPayload `json:"items"`
		Rows   []orderPayload `json:"rows"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, err
	}
	switch {
	case wrapper.Orders != nil:
		return wrapper.Orders, nil
	case wrapper.Items != nil:
		return wrapper.Items, nil
	default:
		return wrapper.Rows, nil
	}
}
