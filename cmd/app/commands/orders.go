package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	orderDomain "github.com/allisson/storefront/internal/order/domain"
	"github.com/allisson/storefront/internal/order/http/dto"
	orderUseCase "github.com/allisson/storefront/internal/order/usecase"
)

// RunListOrders prints a page of orders, optionally filtered by status.
func RunListOrders(
	ctx context.Context,
	orderUseCase orderUseCase.OrderUseCase,
	logger *slog.Logger,
	writer io.Writer,
	offset int,
	limit int,
	status string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	input := &orderDomain.ListOrdersInput{Offset: offset, Limit: limit}
	if status != "" {
		parsed, err := orderDomain.ParseOrderStatus(status)
		if err != nil {
			return err
		}
		input.Status = parsed
	}

	orders, err := orderUseCase.List(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to list orders: %w", err)
	}

	logger.Debug("orders listed", slog.Int("count", len(orders)))

	if format == FormatJSON {
		return writeJSON(writer, dto.MapOrdersToListResponse(orders))
	}

	if len(orders) == 0 {
		_, err := fmt.Fprintln(writer, "No orders found")
		return err
	}

	tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tPAYMENT\tUSER\tCREATED")
	for _, order := range orders {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			order.ID,
			order.Status,
			orEmpty(string(order.PaymentStatus)),
			orEmpty(order.UserID),
			formatTime(order.CreatedAt),
		)
	}
	return tw.Flush()
}

// RunGetOrder prints one order with the statuses it may move to.
func RunGetOrder(
	ctx context.Context,
	orderUseCase orderUseCase.OrderUseCase,
	logger *slog.Logger,
	writer io.Writer,
	orderID string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	order, err := orderUseCase.Get(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}

	logger.Debug("order fetched", slog.String("order_id", order.ID))

	if format == FormatJSON {
		return writeJSON(writer, dto.MapOrderToResponse(order))
	}
	return outputOrderText(writer, "", order)
}

// RunOrderTransitions prints the statuses an order may move to.
func RunOrderTransitions(
	ctx context.Context,
	orderUseCase orderUseCase.OrderUseCase,
	logger *slog.Logger,
	writer io.Writer,
	orderID string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	order, allowed, err := orderUseCase.AllowedTransitions(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to get order transitions: %w", err)
	}

	logger.Debug("order transitions computed",
		slog.String("order_id", order.ID),
		slog.Int("allowed", len(allowed)),
	)

	if format == FormatJSON {
		return writeJSON(writer, dto.MapTransitionsToResponse(order, allowed))
	}

	if len(allowed) == 0 {
		_, err := fmt.Fprintf(writer, "Order %s is %s: no further transitions\n", order.ID, order.Status)
		return err
	}
	_, err = fmt.Fprintf(writer, "Order %s is %s: may move to %s\n",
		order.ID, order.Status, strings.Join(dto.MapStatuses(allowed), ", "))
	return err
}

// RunSetOrderStatus moves an order to status. Illegal transitions are refused before any
// request is sent.
func RunSetOrderStatus(
	ctx context.Context,
	orderUseCase orderUseCase.OrderUseCase,
	logger *slog.Logger,
	writer io.Writer,
	orderID string,
	status string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	to, err := orderDomain.ParseOrderStatus(status)
	if err != nil {
		return err
	}

	order, err := orderUseCase.ChangeStatusByID(ctx, orderID, to)
	if err != nil {
		return fmt.Errorf("failed to change order status: %w", err)
	}

	logger.Info("order status changed",
		slog.String("order_id", order.ID),
		slog.String("status", string(order.Status)),
	)

	if format == FormatJSON {
		return writeJSON(writer, dto.MapOrderToResponse(order))
	}
	return outputOrderText(writer, "Order status updated", order)
}

func outputOrderText(writer io.Writer, headline string, order *orderDomain.Order) error {
	tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	if headline != "" {
		_, _ = fmt.Fprintln(tw, headline)
	}
	_, _ = fmt.Fprintf(tw, "ID:\t%s\n", order.ID)
	_, _ = fmt.Fprintf(tw, "Status:\t%s\n", order.Status)
	_, _ = fmt.Fprintf(tw, "Payment:\t%s\n", orEmpty(string(order.PaymentStatus)))
	_, _ = fmt.Fprintf(tw, "User:\t%s\n", orEmpty(order.UserID))
	_, _ = fmt.Fprintf(tw, "Created:\t%s\n", formatTime(order.CreatedAt))
	_, _ = fmt.Fprintf(tw, "Updated:\t%s\n", formatTime(order.UpdatedAt))

	allowed := dto.MapStatuses(order.AllowedNext())
	if len(allowed) == 0 {
		_, _ = fmt.Fprintln(tw, "Next:\t(terminal)")
	} else {
		_, _ = fmt.Fprintf(tw, "Next:\t%s\n", strings.Join(allowed, ", "))
	}
	return tw.Flush()
}

func orEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
