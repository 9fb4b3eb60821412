// Package http provides helpers for writing JSON responses and mounting handlers
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "potholes/internal/platform/errors"
	"potholes/internal/platform/logger"
	pnet "potholes/internal/platform/net"
)

// ErrorBody is the response body for every failed request
type ErrorBody struct {
	Message   string         `json:"message"`
	Code      perr.ErrorCode `json:"code"`
	Field     string         `json:"field,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Named("http").Warn().Err(err).Int("status", status).Msg("encode response")
	}
}

// Message writes {"message": msg} with the given status
func Message(w stdhttp.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// RespondError maps a project error to a status and error body and writes it
// 5xx causes are logged here and never reach the client
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status := perr.HTTPStatus(err)
	if status >= stdhttp.StatusInternalServerError {
		ev := logger.C(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status)
		if e, ok := perr.As(err); ok && e.Op() != "" {
			ev = ev.Str("op", e.Op())
		}
		ev.Msg("request failed")
	}
	wr := perr.WireFrom(err)
	JSON(w, status, ErrorBody{
		Message:   wr.Message,
		Code:      wr.Code,
		Field:     wr.Field,
		RequestID: pnet.RequestID(r.Context()),
	})
}

//
// Return-style helpers for early returns in handlers
//

// Response is a functional response object for return-style handlers
type Response struct {
	Status int
	Body   any
	// optional headers if a handler wants to add any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	JSON(w, status, resp.Body)
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response that maps the error to status and error body
func Error(err error) Response { return Response{Body: err} }
