package domain

// EventKind identifies a session lifecycle event raised by the UI layer.
type EventKind string

const (
	// EventLogin carries the session obtained from a successful login or registration.
	EventLogin EventKind = "login"

	// EventLogout asks the store to forget the current session.
	EventLogout EventKind = "logout"
)

// Event is consumed by the session store; it never produces one.
type Event struct {
	Kind    EventKind
	Session *Session
}

// LoginEvent builds a login event for s.
func LoginEvent(s *Session) Event {
	return Event{Kind: EventLogin, Session: s}
}

// LogoutEvent builds a logout event.
func LogoutEvent() Event {
	return Event{Kind: EventLogout}
}
