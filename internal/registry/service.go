package registry

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"time"

	"dps.dev/internal/ids"
	"dps.dev/internal/obs"
)

// Deployer is the external deployment provider. Deploy is fire-and-forget;
// Status reflects whatever the provider currently knows about the id.
type Deployer interface {
	Deploy(id, image string)
	Status(id string) string
}

// Manager provides descriptor registration, lookup, and deployment
// scheduling on top of a Store and a Deployer.
type Manager struct {
	store    Store
	deployer Deployer
	now      func() time.Time
	newID    func() string
}

// ManagerOption configures Manager behavior.
type ManagerOption func(*Manager)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ManagerOption {
	return func(m *Manager) {
		if fn != nil {
			m.now = fn
		}
	}
}

// NewManager constructs a Manager.
func NewManager(store Store, deployer Deployer, opts ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, errors.New("registry: store is required")
	}
	if deployer == nil {
		return nil, errors.New("registry: deployer is required")
	}
	m := &Manager{
		store:    store,
		deployer: deployer,
		now:      time.Now,
		newID:    ids.New,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Create registers a descriptor and returns its id. Clients may supply an
// id; otherwise one is generated. A duplicate id surfaces as ErrIDInUse
// straight from the store's unique constraint.
func (m *Manager) Create(ctx context.Context, service Service) (string, error) {
	if service.ID == "" {
		service.ID = m.newID()
	}
	service.CreatedAt = m.now().UTC()
	service.DeploymentStatus = ""
	if err := m.store.Insert(ctx, &service); err != nil {
		return "", err
	}
	return service.ID, nil
}

// List returns all descriptors in the requested order.
func (m *Manager) List(ctx context.Context, order SortOrder) ([]Service, error) {
	return m.store.List(ctx, order)
}

// Get returns a descriptor with its live deployment status attached.
func (m *Manager) Get(ctx context.Context, id string) (*Service, error) {
	service, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	service.DeploymentStatus = m.deployer.Status(service.ID)
	return service, nil
}

// Deploy schedules deployment of a registered descriptor and returns
// immediately; the handoff to the provider happens in the background.
// Logs identify the service by an id digest, never the raw id.
func (m *Manager) Deploy(ctx context.Context, id string) error {
	service, err := m.store.Get(ctx, id)
	if err != nil {
		return err
	}
	digest := idDigest(service.ID)
	go func() {
		obs.LogInfo("starting service deployment", map[string]any{"service": digest})
		m.deployer.Deploy(service.ID, service.Image)
		obs.LogInfo("service deployment scheduled", map[string]any{"service": digest})
	}()
	return nil
}

func idDigest(id string) string {
	sum := md5.Sum([]byte(id))
	return hex.EncodeToString(sum[:])
}
