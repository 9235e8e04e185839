package auth

import "context"

// Store describes the persistence contracts the auth subsystem depends on.
// Implementations must keep the error semantics exact: the flow and the
// request authenticator branch on ErrNotFound and treat everything else as
// operational failure.
type Store interface {
	SessionStore
	UserStore
}

// SessionStore manages server-side session records.
type SessionStore interface {
	// CreateSession persists a new ACTIVE session.
	CreateSession(ctx context.Context, session *Session) error

	// InvalidateSession transitions a session to LOGGED_OFF. Affecting
	// zero records (absent or already logged off) is a hard failure
	// reported as ErrStorage, never a silent success.
	InvalidateSession(ctx context.Context, sessionID string) error

	// FindActiveSession returns the session only while it is ACTIVE.
	// Absent and logged-off records are both ErrNotFound; callers must
	// not be able to tell them apart.
	FindActiveSession(ctx context.Context, sessionID string) (*Session, error)
}

// UserStore retrieves identity records. Both lookups implicitly filter to
// ACTIVE users and return ErrNotFound otherwise.
type UserStore interface {
	FindUserByID(ctx context.Context, id string) (*User, error)
	FindUserByUsername(ctx context.Context, username string) (*User, error)
}
