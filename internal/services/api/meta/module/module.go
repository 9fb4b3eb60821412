// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "potholes/internal/modkit"
	"potholes/internal/modkit/httpkit"

	metahttp "potholes/internal/services/api/meta/http"
)

// ServiceName is reported by the health and service endpoints
const ServiceName = "potholes-api"

// Module implements the modkit.Module interface
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	d := metahttp.Deps{ServiceName: ServiceName, StartedAt: time.Now()}
	// keep the interface nil when no store is wired so the check reports skipped
	if p := deps.Pinger(); p != nil {
		d.Mongo = p
	}
	return &Module{b: b, deps: d}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(sr httpkit.Router) { metahttp.Register(sr, m.deps) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.b.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
