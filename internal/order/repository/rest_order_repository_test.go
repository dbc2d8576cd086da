package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	apperrors "github.com/allisson/storefront/internal/errors"
	orderDomain "github.com/allisson/storefront/internal/order/domain"
	"github.com/allisson/storefront/internal/restclient"
)

func newTestRepository(t *testing.T, handler http.HandlerFunc) *RESTOrderRepository {
	t.Helper()
	return newLoggedTestRepository(t, handler, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newLoggedTestRepository(t *testing.T, handler http.HandlerFunc, logger *slog.Logger) *RESTOrderRepository {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := restclient.New(server.URL, server.Client())
	require.NoError(t, err)
	return NewRESTOrderRepository(client, logger)
}

func TestRESTOrderRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success with data envelope and _id", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/order/ord-1", r.URL.Path)
			_, _ = io.WriteString(w, `{"data":{"_id":"ord-1","user":{"_id":"u-1"},"status":"canceled",`+
				`"paymentStatus":"FAILED","createdAt":"2026-01-02T03:04:05Z"}}`)
		})

		order, err := repo.Get(ctx, "ord-1")
		require.NoError(t, err)
		assert.Equal(t, "ord-1", order.ID)
		assert.Equal(t, "u-1", order.UserID)
		assert.Equal(t, orderDomain.StatusCancelled, order.Status)
		assert.Equal(t, orderDomain.PaymentFailed, order.PaymentStatus)
		assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), order.CreatedAt)
		assert.True(t, order.UpdatedAt.IsZero())
	})

	t.Run("Unknown status is kept and offers no transitions", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"order":{"id":"ord-2","userId":"u-2","status":"ON_HOLD"}}`)
		})

		order, err := repo.Get(ctx, "ord-2")
		require.NoError(t, err)
		assert.Equal(t, orderDomain.OrderStatus("ON_HOLD"), order.Status)
		assert.Empty(t, order.AllowedNext())
	})

	t.Run("Not found", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"no such order"}`)
		})

		_, err := repo.Get(ctx, "missing")
		assert.ErrorIs(t, err, orderDomain.ErrOrderNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Empty id", func(t *testing.T) {
		repo := NewRESTOrderRepository(nil, nil)
		_, err := repo.Get(ctx, "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestRESTOrderRepository_List(t *testing.T) {
	ctx := context.Background()

	bodies := []struct {
		name string
		body string
	}{
		{"bare array", `[{"id":"a","status":"PENDING"},{"id":"b","status":"SHIPPING"}]`},
		{"orders wrapper", `{"orders":[{"id":"a","status":"PENDING"},{"id":"b","status":"SHIPPING"}]}`},
		{"data items", `{"data":{"items":[{"id":"a","status":"PENDING"},{"id":"b","status":"SHIPPING"}]}}`},
		{"rows wrapper", `{"rows":[{"id":"a","status":"PENDING"},{"id":"b","status":"SHIPPING"}],"count":2}`},
	}

	for _, tt := range bodies {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/order", r.URL.Path)
				assert.Equal(t, "10", r.URL.Query().Get("offset"))
				assert.Equal(t, "20", r.URL.Query().Get("limit"))
				assert.Equal(t, "SHIPPING", r.URL.Query().Get("status"))
				_, _ = io.WriteString(w, tt.body)
			})

			orders, err := repo.List(ctx, &orderDomain.ListOrdersInput{
				Offset: 10,
				Limit:  20,
				Status: orderDomain.StatusShipping,
			})
			require.NoError(t, err)
			require.Len(t, orders, 2)
			assert.Equal(t, "a", orders[0].ID)
			assert.Equal(t, orderDomain.StatusShipping, orders[1].Status)
		})
	}

	t.Run("Status filter omitted", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, r.URL.Query().Has("status"))
			_, _ = io.WriteString(w, `[]`)
		})

		orders, err := repo.List(ctx, &orderDomain.ListOrdersInput{Limit: 50})
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("Malformed payload", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `"nope"`)
		})

		_, err := repo.List(ctx, &orderDomain.ListOrdersInput{Limit: 50})
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})
}

func TestRESTOrderRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends orderId and status", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/order/status", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]string{"orderId": "ord-1", "status": "COMPLETED"}, body)

			_, _ = io.WriteString(w, `{"data":{"id":"ord-1","status":"COMPLETED"}}`)
		})

		order, err := repo.UpdateStatus(ctx, &orderDomain.UpdateStatusRequest{
			OrderID: "ord-1",
			Status:  orderDomain.StatusCompleted,
		})
		require.NoError(t, err)
		assert.Equal(t, orderDomain.StatusCompleted, order.Status)
	})

	t.Run("Acknowledged without order", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"message":"status updated"}`)
		})

		order, err := repo.UpdateStatus(ctx, &orderDomain.UpdateStatusRequest{
			OrderID: "ord-1",
			Status:  orderDomain.StatusConfirmed,
		})
		require.NoError(t, err)
		assert.Nil(t, order)
	})

	t.Run("Undecodable echo is logged and treated as acknowledged", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
		repo := newLoggedTestRepository(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"data":{"id":42,"status":"CONFIRMED"}}`)
		}, logger)

		order, err := repo.UpdateStatus(ctx, &orderDomain.UpdateStatusRequest{
			OrderID: "ord-1",
			Status:  orderDomain.StatusConfirmed,
		})
		require.NoError(t, err)
		assert.Nil(t, order)
		assert.Contains(t, logs.String(), "ignoring undecodable order status response")
		assert.Contains(t, logs.String(), "order_id=ord-1")
	})

	t.Run("Rejection is returned as status error", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"message":"payment not settled"}`)
		})

		_, err := repo.UpdateStatus(ctx, &orderDomain.UpdateStatusRequest{
			OrderID: "ord-1",
			Status:  orderDomain.StatusShipping,
		})

		var statusErr *authDomain.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
		assert.Equal(t, "payment not settled", statusErr.Message)
	})
}
