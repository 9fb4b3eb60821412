package modkit

import (
	"net/http"

	"potholes/internal/modkit/httpkit"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler

	// router hooks set via options and exposed to modules
	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build applies Option funcs to an internal buildCfg and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	// defaults for hooks
	if c.subrouter == nil {
		c.subrouter = func(r httpkit.Router) httpkit.Router { return r }
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		Subrouter: c.subrouter,
		Register:  c.register,
	}
}

// Mount attaches the built module under its prefix with its middleware, subrouter and register hooks
// extra runs after Register so modules can add their own routes on the same subrouter
func (b Built) Mount(r httpkit.Router, extra func(httpkit.Router)) {
	r.Route(b.Prefix, func(sr httpkit.Router) {
		if len(b.Mw) > 0 {
			sr.Use(b.Mw...)
		}
		sr = b.Subrouter(sr)
		b.Register(sr)
		if extra != nil {
			extra(sr)
		}
	})
}
