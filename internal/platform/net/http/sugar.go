package http

import "net/http"

// PostJSON mounts a pure JSON handler for POST that answers 201 on success
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(http.StatusCreated, h))
}

// PatchJSON mounts a pure JSON handler for PATCH
func PatchJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Patch(path, JSONHandler(http.StatusOK, h))
}
