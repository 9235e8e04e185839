package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGStoreCreateSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	session := &Session{
		ID:        "s-1",
		UserID:    "u-1",
		Status:    SessionStatusActive,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionDuration),
	}
	mock.ExpectExec("insert into sessions").
		WithArgs("s-1", "u-1", SessionStatusActive, session.CreatedAt, session.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := NewPGStore(db).CreateSession(context.Background(), session); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGStoreInvalidateSessionZeroRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("update sessions set status").
		WithArgs(SessionStatusLoggedOff, "s-1", SessionStatusActive).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewPGStore(db).InvalidateSession(context.Background(), "s-1")
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage on zero rows, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGStoreInvalidateSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("update sessions set status").
		WithArgs(SessionStatusLoggedOff, "s-1", SessionStatusActive).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := NewPGStore(db).InvalidateSession(context.Background(), "s-1"); err != nil {
		t.Fatalf("InvalidateSession: %v", err)
	}
}

func TestPGStoreFindActiveSessionNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select id, user_id, status, created_at, expires_at from sessions").
		WithArgs("s-1", SessionStatusActive).
		WillReturnError(sql.ErrNoRows)

	_, err = NewPGStore(db).FindActiveSession(context.Background(), "s-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStoreFindActiveSessionStorageFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select id, user_id, status, created_at, expires_at from sessions").
		WithArgs("s-1", SessionStatusActive).
		WillReturnError(errors.New("connection reset"))

	_, err = NewPGStore(db).FindActiveSession(context.Background(), "s-1")
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestPGStoreFindUserByUsernameFiltersActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "password_digest", "role", "status"}).
		AddRow("u-1", "admin", HashPassword("strongpassword"), "ADMIN", UserStatusActive)
	mock.ExpectQuery("select id, username, password_digest, role, status from users where username").
		WithArgs("admin", UserStatusActive).
		WillReturnRows(rows)

	user, err := NewPGStore(db).FindUserByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("FindUserByUsername: %v", err)
	}
	if user.ID != "u-1" || user.Role != RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGStoreFindUserByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select id, username, password_digest, role, status from users where id").
		WithArgs("u-1", UserStatusActive).
		WillReturnError(sql.ErrNoRows)

	_, err = NewPGStore(db).FindUserByID(context.Background(), "u-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
