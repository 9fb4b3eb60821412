// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "potholes/internal/platform/net/http"
)

type (
	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router

	// ErrorBody is the body written for failed requests
	ErrorBody = phttp.ErrorBody
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// Error returns a response that maps an error to status and error body
func Error(err error) Response { return phttp.Error(err) }

// Message writes {"message": msg} with the given status
func Message(w http.ResponseWriter, status int, msg string) { phttp.Message(w, status, msg) }

// URLParam returns a trimmed chi path parameter
func URLParam(r *http.Request, name string) string { return phttp.URLParam(r, name) }

// QueryString returns a trimmed query value or def
func QueryString(r *http.Request, key, def string) string { return phttp.QueryString(r, key, def) }

// QueryInt parses an integer query value or returns a validation error naming key
func QueryInt(r *http.Request, key string, def int) (int, error) { return phttp.QueryInt(r, key, def) }

// Call adapts a handler that takes no JSON body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Handle lets you directly adapt a Response-returning function if you prefer
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}
