// Package deploy simulates the external deployment provider the registry
// hands descriptors to. The provider is an opaque collaborator: the rest of
// the system only ever schedules a deployment and polls its status.
package deploy

import (
	"sync"
	"time"
)

const (
	StatusPending = "PENDING"
	StatusRunning = "RUNNING"
)

const defaultStartupDelay = 2 * time.Second

// Simulator tracks deployments in memory. A scheduled deployment reports
// PENDING until the simulated startup delay elapses, then RUNNING.
type Simulator struct {
	mu       sync.Mutex
	statuses map[string]string
	delay    time.Duration
}

// Option configures Simulator behavior.
type Option func(*Simulator)

// WithStartupDelay overrides the simulated startup delay (useful for tests).
func WithStartupDelay(d time.Duration) Option {
	return func(s *Simulator) {
		if d >= 0 {
			s.delay = d
		}
	}
}

func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		statuses: make(map[string]string),
		delay:    defaultStartupDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deploy schedules a deployment. The image is accepted for contract parity
// with the real provider; the simulation only tracks the id.
func (s *Simulator) Deploy(id, image string) {
	s.mu.Lock()
	s.statuses[id] = StatusPending
	s.mu.Unlock()

	time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		s.statuses[id] = StatusRunning
		s.mu.Unlock()
	})
}

// Status reports the deployment state for an id. Unknown ids are PENDING.
func (s *Simulator) Status(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.statuses[id]; ok {
		return status
	}
	return StatusPending
}
