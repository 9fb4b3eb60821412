// Package api provides the HTTP API for the application
package api

import (
	"time"

	"potholes/internal/platform/config"
	"potholes/internal/platform/logger"
	"potholes/internal/platform/metrics"
	phttp "potholes/internal/platform/net/http"
	"potholes/internal/platform/store"

	"potholes/internal/modkit"
	"potholes/internal/modkit/httpkit"
	"potholes/internal/modkit/swaggerkit"

	metahttp "potholes/internal/services/api/meta/http"
	metamod "potholes/internal/services/api/meta/module"
	potholesmod "potholes/internal/services/api/potholes/module"
)

// slowRequest marks slow requests in the access log
const slowRequest = 500 * time.Millisecond

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Metrics        *metrics.Metrics
	EnableSwagger  bool
	EnableProfiler bool
	CORSOrigins    []string
}

// Deps builds the shared module dependencies from opt
func (opt Options) Deps() modkit.Deps {
	d := modkit.Deps{
		Cfg:     opt.Config,
		Store:   opt.Store,
		Metrics: opt.Metrics,
	}
	if opt.Logger != nil {
		d.Log = *opt.Logger
	}
	return d
}

// Modules constructs the API modules over deps; the potholes module needs an open store
func Modules(deps modkit.Deps) []modkit.Module {
	return []modkit.Module{
		metamod.New(deps),
		potholesmod.New(deps),
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	MountModules(r, opt, Modules(opt.Deps())...)
}

// MountModules installs the root stack, the root endpoints and mods under /api
func MountModules(r phttp.Router, opt Options, mods ...modkit.Module) {
	r.Use(httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		Metrics:     opt.Metrics,
		SlowRequest: slowRequest,
	})...)

	r.Get("/", metahttp.Liveness)
	if opt.Metrics != nil {
		r.Handle("/metrics", opt.Metrics.Handler())
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPI(r, nil, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}
