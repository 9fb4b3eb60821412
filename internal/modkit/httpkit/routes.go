package httpkit

import "net/http"

// APIPrefix is where every JSON module is mounted
const APIPrefix = "/api"

// MountUnder mounts a subrouter at prefix and applies per-module middlewares
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountAPI mounts a subrouter under /api, applies any per-scope middleware,
// then invokes mount to register module routes on that scoped router
//
// example:
//
//	httpkit.MountAPI(r, nil, func(api httpkit.Router) {
//	  potholes.MountRoutes(api)
//	})
func MountAPI(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, APIPrefix, mw, mount)
}
