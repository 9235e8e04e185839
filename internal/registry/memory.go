package registry

import (
	"context"
	"sort"
	"sync"
)

var _ Store = (*MemStore)(nil)

// MemStore is an in-memory Store used in development mode.
type MemStore struct {
	mu       sync.RWMutex
	services map[string]*Service
}

func NewMemStore() *MemStore {
	return &MemStore{services: make(map[string]*Service)}
}

func (s *MemStore) Insert(ctx context.Context, service *Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.services[service.ID]; exists {
		return ErrIDInUse
	}
	copied := *service
	s.services[service.ID] = &copied
	return nil
}

func (s *MemStore) List(ctx context.Context, order SortOrder) ([]Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	services := make([]Service, 0, len(s.services))
	for _, svc := range s.services {
		services = append(services, *svc)
	}
	sort.Slice(services, func(i, j int) bool {
		if order == SortByImage && services[i].Image != services[j].Image {
			return services[i].Image < services[j].Image
		}
		return services[i].CreatedAt.Before(services[j].CreatedAt)
	})
	return services, nil
}

func (s *MemStore) Get(ctx context.Context, id string) (*Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svc, ok := s.services[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *svc
	return &copied, nil
}
