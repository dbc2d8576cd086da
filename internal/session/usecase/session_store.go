package usecase

import (
	"context"
	"log/slog"
	"sync"

	apperrors "github.com/allisson/storefront/internal/errors"
	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

type sessionStore struct {
	mu     sync.Mutex
	kv     KVStore
	sealer Sealer
	logger *slog.Logger
}

// NewSessionStore creates a SessionStore over kv. A nil sealer stores values as-is.
func NewSessionStore(kv KVStore, sealer Sealer, logger *slog.Logger) SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &sessionStore{kv: kv, sealer: sealer, logger: logger}
}

// Get returns a copy of the current session. A stored half session reads as empty.
func (s *sessionStore) Get(ctx context.Context) (*sessionDomain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

// Set replaces the session in one batch. An empty session clears it; a half session is
// rejected with ErrInvalidSession.
func (s *sessionStore) Set(ctx context.Context, session *sessionDomain.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	if session.IsEmpty() {
		return s.Clear(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	puts := map[string][]byte{
		sessionDomain.KeyAccessToken:  []byte(session.AccessToken),
		sessionDomain.KeyRefreshToken: []byte(session.RefreshToken),
	}
	batch := sessionDomain.Batch{Puts: puts}
	if len(session.User) > 0 {
		puts[sessionDomain.KeyUser] = append([]byte(nil), session.User...)
	} else {
		batch.Deletes = []string{sessionDomain.KeyUser}
	}

	if err := s.apply(ctx, batch); err != nil {
		return apperrors.Wrap(err, "failed to store session")
	}
	return nil
}

// Clear deletes both credentials and the user. It never reads the stored values, so an
// unreadable session can still be cleared.
func (s *sessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Apply(ctx, sessionDomain.Batch{Deletes: sessionDomain.Keys()}); err != nil {
		return apperrors.Wrap(err, "failed to clear session")
	}
	return nil
}

// UpdateAccessToken stores accessToken only if the session still holds refreshToken. It
// reports false without error when the session was cleared or replaced meanwhile, so a
// refresh that raced a logout cannot bring the old session back.
func (s *sessionStore) UpdateAccessToken(
	ctx context.Context,
	refreshToken, accessToken string,
) (bool, error) {
	if refreshToken == "" || accessToken == "" {
		return false, sessionDomain.ErrInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if !current.IsAuthenticated() || current.RefreshToken != refreshToken {
		return false, nil
	}

	batch := sessionDomain.Batch{Puts: map[string][]byte{sessionDomain.KeyAccessToken: []byte(accessToken)}}
	if err := s.apply(ctx, batch); err != nil {
		return false, apperrors.Wrap(err, "failed to update access token")
	}
	return true, nil
}

// Handle applies a login or logout event.
func (s *sessionStore) Handle(ctx context.Context, event sessionDomain.Event) error {
	switch event.Kind {
	case sessionDomain.EventLogin:
		if !event.Session.IsAuthenticated() {
			return sessionDomain.ErrInvalidSession
		}
		return s.Set(ctx, event.Session)
	case sessionDomain.EventLogout:
		return s.Clear(ctx)
	default:
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "unknown session event %q", event.Kind)
	}
}

// load must be called with mu held.
func (s *sessionStore) load(ctx context.Context) (*sessionDomain.Session, error) {
	values, err := s.kv.Get(ctx, sessionDomain.Keys()...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load session")
	}

	opened := make(map[string][]byte, len(values))
	for key, value := range values {
		plain, err := s.open(ctx, value)
		if err != nil {
			return nil, apperrors.Wrapf(err, "failed to open session value %s", key)
		}
		opened[key] = plain
	}

	session := &sessionDomain.Session{
		AccessToken:  string(opened[sessionDomain.KeyAccessToken]),
		RefreshToken: string(opened[sessionDomain.KeyRefreshToken]),
	}
	if !session.IsAuthenticated() {
		if !session.IsEmpty() {
			s.logger.WarnContext(ctx, "ignoring half session found in storage",
				slog.Bool("has_access_token", session.AccessToken != ""),
				slog.Bool("has_refresh_token", session.RefreshToken != ""),
			)
		}
		return &sessionDomain.Session{}, nil
	}
	if user := opened[sessionDomain.KeyUser]; len(user) > 0 {
		session.User = user
	}
	return session, nil
}

func (s *sessionStore) apply(ctx context.Context, batch sessionDomain.Batch) error {
	if s.sealer == nil {
		return s.kv.Apply(ctx, batch)
	}

	sealed := sessionDomain.Batch{Puts: make(map[string][]byte, len(batch.Puts)), Deletes: batch.Deletes}
	for key, value := range batch.Puts {
		ciphertext, err := s.sealer.Seal(ctx, value)
		if err != nil {
			return apperrors.Wrapf(err, "failed to seal session value %s", key)
		}
		sealed.Puts[key] = ciphertext
	}
	return s.kv.Apply(ctx, sealed)
}

func (s *sessionStore) open(ctx context.Context, value []byte) ([]byte, error) {
	if s.sealer == nil {
		return value, nil
	}
	return s.sealer.Open(ctx, value)
}
