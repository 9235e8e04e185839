package auth

import (
	"context"
	"fmt"
	"sync"
)

var _ Store = (*MemStore)(nil)

// MemStore is an in-memory Store used in development mode, when no database
// DSN is configured. It honors the same error contracts as PGStore.
type MemStore struct {
	mu       sync.RWMutex
	users    map[string]*User
	sessions map[string]*Session
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:    make(map[string]*User),
		sessions: make(map[string]*Session),
	}
}

// SeedUser registers a user record. Intended for development fixtures and
// tests; production users come from seed migrations.
func (s *MemStore) SeedUser(user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = &user
}

func (s *MemStore) CreateSession(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.ID]; exists {
		return fmt.Errorf("%w: session %s already exists", ErrStorage, session.ID)
	}
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *MemStore) InvalidateSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok || session.Status != SessionStatusActive {
		return fmt.Errorf("%w: session %s not invalidated", ErrStorage, sessionID)
	}
	session.Status = SessionStatusLoggedOff
	return nil
}

func (s *MemStore) FindActiveSession(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok || session.Status != SessionStatusActive {
		return nil, ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *MemStore) FindUserByID(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok || user.Status != UserStatusActive {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemStore) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username == username && user.Status == UserStatusActive {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}
