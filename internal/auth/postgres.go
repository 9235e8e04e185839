package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) CreateSession(ctx context.Context, session *Session) error {
	_, err := s.db.ExecContext(ctx,
		`insert into sessions(id, user_id, status, created_at, expires_at) values($1,$2,$3,$4,$5)`,
		session.ID, session.UserID, session.Status, session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert session: %v", ErrStorage, err)
	}
	return nil
}

func (s *PGStore) InvalidateSession(ctx context.Context, sessionID string) error {
	res, err := s.db.ExecContext(ctx,
		`update sessions set status=$1 where id=$2 and status=$3`,
		SessionStatusLoggedOff, sessionID, SessionStatusActive,
	)
	if err != nil {
		return fmt.Errorf("%w: invalidate session: %v", ErrStorage, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: invalidate session: %v", ErrStorage, err)
	}
	// Zero rows means the session was absent or already logged off. Logout
	// must be observably effective, so this is a hard failure.
	if affected == 0 {
		return fmt.Errorf("%w: session %s not invalidated", ErrStorage, sessionID)
	}
	return nil
}

func (s *PGStore) FindActiveSession(ctx context.Context, sessionID string) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, user_id, status, created_at, expires_at from sessions where id=$1 and status=$2`,
		sessionID, SessionStatusActive,
	)
	var session Session
	if err := row.Scan(&session.ID, &session.UserID, &session.Status, &session.CreatedAt, &session.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find session: %v", ErrStorage, err)
	}
	return &session, nil
}

func (s *PGStore) FindUserByID(ctx context.Context, id string) (*User, error) {
	return s.findUser(ctx,
		`select id, username, password_digest, role, status from users where id=$1 and status=$2`, id)
}

func (s *PGStore) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.findUser(ctx,
		`select id, username, password_digest, role, status from users where username=$1 and status=$2`, username)
}

func (s *PGStore) findUser(ctx context.Context, query, key string) (*User, error) {
	row := s.db.QueryRowContext(ctx, query, key, UserStatusActive)
	var user User
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordDigest, &user.Role, &user.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find user: %v", ErrStorage, err)
	}
	return &user, nil
}
