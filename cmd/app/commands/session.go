package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	authUseCase "github.com/allisson/storefront/internal/auth/usecase"
	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

// sessionView is what the CLI prints about a session. Credentials are never printed.
type sessionView struct {
	Authenticated bool            `json:"authenticated"`
	User          json.RawMessage `json:"user,omitempty"`
}

func newSessionView(session *sessionDomain.Session) sessionView {
	if session == nil || !session.IsAuthenticated() {
		return sessionView{}
	}
	return sessionView{Authenticated: true, User: session.User}
}

// RunSession prints whether a session is stored and the user it belongs to.
func RunSession(
	ctx context.Context,
	authUseCase authUseCase.AuthUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	session, err := authUseCase.Current(ctx)
	if err != nil && !errors.Is(err, authDomain.ErrUnauthenticated) {
		return fmt.Errorf("failed to read session: %w", err)
	}

	view := newSessionView(session)
	logger.Debug("session read", slog.Bool("authenticated", view.Authenticated))

	if format == FormatJSON {
		return writeJSON(writer, view)
	}
	return outputSessionText(writer, "", view)
}

// outputSessionText prints headline (if any) followed by the session state.
func outputSessionText(writer io.Writer, headline string, view sessionView) error {
	if headline != "" {
		if _, err := fmt.Fprintln(writer, headline); err != nil {
			return err
		}
	}
	if !view.Authenticated {
		_, err := fmt.Fprintln(writer, "Not logged in")
		return err
	}
	if len(view.User) == 0 {
		_, err := fmt.Fprintln(writer, "Logged in")
		return err
	}
	_, err := fmt.Fprintf(writer, "Logged in as: %s\n", string(view.User))
	return err
}
