// Package http provides HTTP handlers for browsing orders and driving their status machine.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	"github.com/allisson/storefront/internal/httputil"
	orderDomain "github.com/allisson/storefront/internal/order/domain"
	"github.com/allisson/storefront/internal/order/http/dto"
	orderUseCase "github.com/allisson/storefront/internal/order/usecase"
	customValidation "github.com/allisson/storefront/internal/validation"
)

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	orderUseCase orderUseCase.OrderUseCase
	logger       *slog.Logger
}

// NewOrderHandler creates a new order handler with required dependencies.
func NewOrderHandler(orderUseCase orderUseCase.OrderUseCase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
		logger:       logger,
	}
}

// ListHandler retrieves orders with pagination support.
// GET /v1/orders?offset=0&limit=50&status=PENDING
func (h *OrderHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	input := &orderDomain.ListOrdersInput{Offset: offset, Limit: limit}
	if raw := c.Query("status"); raw != "" {
		status, err := orderDomain.ParseOrderStatus(raw)
		if err != nil {
			httputil.HandleValidationErrorGin(c, err, h.logger)
			return
		}
		input.Status = status
	}

	orders, err := h.orderUseCase.List(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapOrdersToListResponse(orders))
}

// GetHandler retrieves an order by ID.
// GET /v1/orders/:id
func (h *OrderHandler) GetHandler(c *gin.Context) {
	order, err := h.orderUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapOrderToResponse(order))
}

// TransitionsHandler lists the statuses the order may move to.
// GET /v1/orders/:id/transitions
func (h *OrderHandler) TransitionsHandler(c *gin.Context) {
	order, allowed, err := h.orderUseCase.AllowedTransitions(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTransitionsToResponse(order, allowed))
}

// UpdateStatusHandler moves an order to a new status.
// PUT /v1/orders/:id/status
// Returns 422 with the allowed set for an illegal transition and 409 with the server
// message when the remote API refuses a legal one.
func (h *OrderHandler) UpdateStatusHandler(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Validate already accepted the value.
	to, _ := orderDomain.ParseOrderStatus(req.Status)

	order, err := h.orderUseCase.ChangeStatusByID(c.Request.Context(), c.Param("id"), to)
	if err != nil {
		h.handleTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapOrderToResponse(order))
}

func (h *OrderHandler) handleTransitionError(c *gin.Context, err error) {
	var illegal *orderDomain.IllegalTransitionError
	if errors.As(err, &illegal) {
		httputil.WriteErrorGin(c, http.StatusUnprocessableEntity, httputil.ErrorResponse{
			Error:   "illegal_transition",
			Message: illegal.Error(),
			Details: dto.IllegalTransitionDetails{
				From:    illegal.From.String(),
				To:      illegal.To.String(),
				Allowed: dto.MapStatuses(illegal.Allowed),
			},
		}, err, h.logger)
		return
	}

	var rejected *orderDomain.ServerRejectedTransitionError
	if errors.As(err, &rejected) {
		message := rejected.Error()
		var statusErr *authDomain.StatusError
		if errors.As(rejected.Cause, &statusErr) {
			message = statusErr.Message
		}
		httputil.WriteErrorGin(c, http.StatusConflict, httputil.ErrorResponse{
			Error:   "transition_rejected",
			Message: message,
		}, err, h.logger)
		return
	}

	httputil.HandleErrorGin(c, err, h.logger)
}
