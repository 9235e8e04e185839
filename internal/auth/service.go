package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service orchestrates the hasher, user lookup, session store, and token
// codec. All dependencies are injected once at construction; there is no
// package-level state.
type Service struct {
	store        Store
	codec        *Codec
	now          func() time.Time
	newSessionID func() string
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithSessionIDs overrides session id generation (useful for tests).
func WithSessionIDs(fn func() string) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.newSessionID = fn
		}
	}
}

// NewService constructs the authentication flow.
func NewService(store Store, codec *Codec, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, errors.New("auth: store is required")
	}
	if codec == nil {
		return nil, errors.New("auth: codec is required")
	}
	svc := &Service{
		store:        store,
		codec:        codec,
		now:          time.Now,
		newSessionID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Login authenticates a username/password pair, records a fresh ACTIVE
// session, and returns a signed token bound to it.
//
// An unknown username and a wrong password are deliberately collapsed into
// the same ErrInvalidCredentials so the wire response never reveals whether
// the account exists. Storage failures propagate unmapped.
func (s *Service) Login(ctx context.Context, username, password string) (TokenDetails, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return TokenDetails{}, ErrInvalidCredentials
	}

	user, err := s.store.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return TokenDetails{}, ErrInvalidCredentials
		}
		return TokenDetails{}, err
	}
	if !digestsEqual(HashPassword(password), user.PasswordDigest) {
		return TokenDetails{}, ErrInvalidCredentials
	}

	now := s.now().UTC()
	session := &Session{
		ID:        s.newSessionID(),
		UserID:    user.ID,
		Status:    SessionStatusActive,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionDuration),
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return TokenDetails{}, err
	}

	token, err := s.codec.Issue(user.ID, session.ID, session.ExpiresAt)
	if err != nil {
		return TokenDetails{}, fmt.Errorf("issue token: %w", err)
	}
	return TokenDetails{Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// Logout invalidates the session the caller authenticated with. It is only
// reachable behind the request authenticator, so the identity is trusted.
func (s *Service) Logout(ctx context.Context, identity Identity) error {
	return s.store.InvalidateSession(ctx, identity.SessionID)
}

type userResult struct {
	user *User
	err  error
}

type sessionResult struct {
	session *Session
	err     error
}

// Authenticate verifies a bearer token and cross-validates the session it
// references against the user it was issued to. The user and session
// lookups are independent and run concurrently; the first conclusive
// failure decides the outcome without waiting for the other lookup.
//
// The session/user cross-check is the enforcement point of the design: a
// correctly signed token becomes worthless the moment its session stops
// being ACTIVE, and a forged ref claim pointing at someone else's session
// is rejected even though both lookups individually succeed.
func (s *Service) Authenticate(ctx context.Context, token string) (Identity, error) {
	userID, sessionID, err := s.codec.Verify(token)
	if err != nil {
		return Identity{}, err
	}

	userCh := make(chan userResult, 1)
	sessionCh := make(chan sessionResult, 1)
	go func() {
		user, err := s.store.FindUserByID(ctx, userID)
		userCh <- userResult{user: user, err: err}
	}()
	go func() {
		session, err := s.store.FindActiveSession(ctx, sessionID)
		sessionCh <- sessionResult{session: session, err: err}
	}()

	var (
		user    *User
		session *Session
	)
	for i := 0; i < 2; i++ {
		select {
		case r := <-userCh:
			if r.err != nil {
				return Identity{}, mapLookupError(r.err)
			}
			user = r.user
		case r := <-sessionCh:
			if r.err != nil {
				return Identity{}, mapLookupError(r.err)
			}
			session = r.session
		}
	}

	if session.UserID != user.ID {
		return Identity{}, ErrSessionInvalid
	}
	return Identity{
		SessionID: session.ID,
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
	}, nil
}

func mapLookupError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrSessionInvalid
	}
	return err
}
