package httpkit

import (
	"net/http"

	phttp "potholes/internal/platform/net/http"
)

// Get registers a no-body handler; a returned Response is written as is
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// PostJSON binds and validates a T body and answers 201 on success
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// PatchJSON binds and validates a T body and answers 200 on success
func PatchJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PatchJSON(r, path, h)
}
