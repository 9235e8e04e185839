package registry

import "context"

// Store persists service descriptors.
type Store interface {
	// Insert stores a new descriptor. A duplicate id is ErrIDInUse; the
	// storage unique constraint is the single authority, there is no
	// read-before-write existence check.
	Insert(ctx context.Context, service *Service) error

	List(ctx context.Context, order SortOrder) ([]Service, error)

	// Get returns ErrNotFound for an absent id.
	Get(ctx context.Context, id string) (*Service, error)
}
