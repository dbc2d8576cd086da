package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authUseCase "github.com/allisson/storefront/internal/auth/usecase"
)

// RunLogout forgets the stored session.
func RunLogout(
	ctx context.Context,
	authUseCase authUseCase.AuthUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if err := authUseCase.Logout(ctx); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}

	logger.Info("logout completed")

	if format == FormatJSON {
		return writeJSON(writer, map[string]any{"logged_out": true})
	}
	_, err := fmt.Fprintln(writer, "Logged out")
	return err
}
