package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Insert(ctx context.Context, service *Service) error {
	_, err := s.db.ExecContext(ctx,
		`insert into services(id, image, type, cpu, memory, created_at) values($1,$2,$3,$4,$5,$6)`,
		service.ID, service.Image, service.Type, service.CPU, service.Memory, service.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrIDInUse
		}
		return fmt.Errorf("%w: insert service: %v", ErrStorage, err)
	}
	return nil
}

func (s *PGStore) List(ctx context.Context, order SortOrder) ([]Service, error) {
	query := `select id, image, type, cpu, memory, created_at from services order by created_at asc`
	if order == SortByImage {
		query = `select id, image, type, cpu, memory, created_at from services order by image asc, created_at asc`
	}
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list services: %v", ErrStorage, err)
	}
	defer rows.Close()

	var services []Service
	for rows.Next() {
		var svc Service
		if err := rows.Scan(&svc.ID, &svc.Image, &svc.Type, &svc.CPU, &svc.Memory, &svc.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan service: %v", ErrStorage, err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list services: %v", ErrStorage, err)
	}
	return services, nil
}

func (s *PGStore) Get(ctx context.Context, id string) (*Service, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, image, type, cpu, memory, created_at from services where id=$1`, id)
	var svc Service
	if err := row.Scan(&svc.ID, &svc.Image, &svc.Type, &svc.CPU, &svc.Memory, &svc.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find service: %v", ErrStorage, err)
	}
	return &svc, nil
}
