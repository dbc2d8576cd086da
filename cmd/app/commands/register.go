package commands

import (
	"context"
	"fmt"
	"log/slog"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	authUseCase "github.com/allisson/storefront/internal/auth/usecase"
)

// RunRegister creates an account and stores the session the server returns.
func RunRegister(
	ctx context.Context,
	authUseCase authUseCase.AuthUseCase,
	logger *slog.Logger,
	name string,
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

	session, err := authUseCase.Register(ctx, &authDomain.RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}

	logger.Info("registration completed")

	view := newSessionView(session)
	if format == FormatJSON {
		return writeJSON(io.Writer, view)
	}
	return outputSessionText(io.Writer, "Registration successful", view)
}
