// Package http provides http transport for pothole records
package http

import (
	stdhttp "net/http"

	"potholes/internal/modkit/httpkit"
	"potholes/internal/modkit/repokit"
	"potholes/internal/services/api/potholes/domain"
	svc "potholes/internal/services/api/potholes/service"
)

// Register mounts pothole endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON(r, "/", h.create)
	httpkit.Get(r, "/", h.list)

	r.Group(func(r httpkit.Router) {
		r.Use(requireID)
		httpkit.Get(r, "/{id}", h.get)
		httpkit.PatchJSON(r, "/{id}", h.update)
	})
}

// requireID answers Invalid ID before any body is read
func requireID(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if _, err := repokit.ObjectID(httpkit.URLParam(r, "id")); err != nil {
			httpkit.Handle(func(*stdhttp.Request) httpkit.Response { return httpkit.Error(err) })(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type handlers struct{ svc svc.Service }

// create answers 201 with the stored record
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	return h.svc.Create(r.Context(), in)
}

// list reads status, limit and skip from the query string
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	limit, err := httpkit.QueryInt(r, "limit", domain.DefaultLimit)
	if err != nil {
		return nil, err
	}
	skip, err := httpkit.QueryInt(r, "skip", 0)
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), domain.ListInput{
		Status: domain.Status(httpkit.QueryString(r, "status", "")),
		Skip:   skip,
		Limit:  limit,
	})
}

func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.FindByID(r.Context(), httpkit.URLParam(r, "id"))
}

// update applies status and metadata only
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	return h.svc.UpdateByID(r.Context(), httpkit.URLParam(r, "id"), in)
}
