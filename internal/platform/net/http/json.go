package http

import (
	"net/http"

	"potholes/internal/platform/net/http/bind"
)

// JSONHandler binds and validates a T body, calls fn and writes its result with status
func JSONHandler[T any](status int, fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return Response{Status: status, Body: out}
	})
}
