package core

import (
	"context"
	"fmt"
	"log"
)

// Interface defines a common interface for all services
type Interface interface {
	Start(ctx context.Context) error
	Stop()
}

type entry struct {
	name    string
	service Interface
}

// Registry starts services in registration order and stops them in reverse
type Registry struct {
	services []entry
	started  int
}

// NewRegistry creates a new core registry
func NewRegistry() *Registry {
	return &Registry{
		services: make([]entry, 0),
	}
}

// Register adds a named service to the registry
func (sr *Registry) Register(name string, service Interface) {
	sr.services = append(sr.services, entry{name: name, service: service})
}

// Len returns the number of registered services
func (sr *Registry) Len() int {
	return len(sr.services)
}

// Names returns service names in registration order
func (sr *Registry) Names() []string {
	names := make([]string, len(sr.services))
	for i, e := range sr.services {
		names[i] = e.name
	}
	return names
}

// StartAll starts all registered services. When one fails, the services
// started before it are stopped again.
func (sr *Registry) StartAll(ctx context.Context) error {
	for i, e := range sr.services {
		if err := e.service.Start(ctx); err != nil {
			sr.started = i
			sr.StopAll()
			return fmt.Errorf("failed to start %s: %w", e.name, err)
		}
		log.Printf("Core: started %s", e.name)
	}
	sr.started = len(sr.services)
	return nil
}

// StopAll stops started services in reverse order. It is safe to call twice.
func (sr *Registry) StopAll() {
	for i := sr.started - 1; i >= 0; i-- {
		log.Printf("Core: stopping %s", sr.services[i].name)
		sr.services[i].service.Stop()
	}
	sr.started = 0
}
