package commands

import (
	"context"
	"fmt"
	"log/slog"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	authUseCase "github.com/allisson/storefront/internal/auth/usecase"
)

// RunLogin exchanges credentials for a session and stores it. An empty password is read
// from io.Reader so it stays out of the shell history.
func RunLogin(
	ctx context.Context,
	authUseCase authUseCase.AuthUseCase,
	logger *slog.Logger,
	email string,
	password string,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if password == "" {
		var err error
		if password, err = promptLine(io, "Password: "); err != nil {
			return err
		}
	}

	session, err := authUseCase.Login(ctx, &authDomain.LoginInput{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("failed to login: %w", err)
	}

	logger.Info("login completed")

	view := newSessionView(session)
	if format == FormatJSON {
		return writeJSON(io.Writer, view)
	}
	return outputSessionText(io.Writer, "Login successful", view)
}
