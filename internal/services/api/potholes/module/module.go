// Package module wires pothole records into the API using modkit
package module

import (
	"context"
	"time"

	modkit "potholes/internal/modkit"
	"potholes/internal/modkit/httpkit"
	"potholes/internal/modkit/repokit"
	mongox "potholes/internal/platform/store/mongo"
	"potholes/internal/services/api/potholes/domain"
	pothttp "potholes/internal/services/api/potholes/http"
	potrepo "potholes/internal/services/api/potholes/repo"
	potsvc "potholes/internal/services/api/potholes/service"
)

// DefaultCollection is used when MONGO_COLLECTION is unset
const DefaultCollection = "potholes"

// indexTimeout bounds index creation at startup
const indexTimeout = 10 * time.Second

// Module implements the potholes module
type Module struct {
	b   modkit.Built
	svc potsvc.Service
}

// New constructs the potholes module over the configured collection
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	name := deps.Cfg.Prefix("MONGO_").MayString("COLLECTION", DefaultCollection)
	col := repokit.RequireCollection(deps.Collection(name))

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()
	if err := mongox.EnsureIndexes(ctx, col, potrepo.Indexes()...); err != nil {
		deps.Log.Warn().Err(err).Str("collection", name).Msg("pothole indexes not ensured")
	}

	return NewWithRepo(deps, repokit.MustBind(potrepo.NewMongo(), col), opts...)
}

// NewWithRepo constructs the module over any repo, used by tests
func NewWithRepo(deps modkit.Deps, repo domain.Repo, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("potholes"),
		modkit.WithPrefix("/potholes"),
	}, opts...)...)

	return &Module{
		b:   b,
		svc: potsvc.New(repo, potsvc.WithMetrics(deps.Metrics)),
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(sr httpkit.Router) { pothttp.Register(sr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Ports exposes the service to other modules
func (m *Module) Ports() any { return domain.ServicePort(m.svc) }
