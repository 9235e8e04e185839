package registry

import (
	"errors"
	"time"
)

// ServiceType distinguishes the two supported deployment descriptor kinds.
type ServiceType string

const (
	TypeDeployment  ServiceType = "Deployment"
	TypeStatefulSet ServiceType = "StatefulSet"
)

// SortOrder selects the listing order for services.
type SortOrder string

const (
	SortByCreated SortOrder = "created"
	SortByImage   SortOrder = "image"
)

// Service is a registered deployment descriptor. DeploymentStatus is
// transient: it is resolved from the deployment provider on reads and never
// persisted.
type Service struct {
	ID               string      `json:"id"`
	Image            string      `json:"image"`
	Type             ServiceType `json:"type"`
	CPU              float64     `json:"cpu,omitempty"`
	Memory           int64       `json:"memory,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	DeploymentStatus string      `json:"deploymentStatus,omitempty"`
}

var (
	ErrNotFound = errors.New("registry: service not found")
	ErrIDInUse  = errors.New("registry: service id already in use")
	ErrStorage  = errors.New("registry: storage failure")
)
