package http

import (
	stdhttp "net/http"
	"strconv"
	"strings"

	perr "potholes/internal/platform/errors"

	"github.com/go-chi/chi/v5"
)

// URLParam returns a trimmed path parameter
func URLParam(r *stdhttp.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}

// QueryString returns a trimmed query value or def when absent
func QueryString(r *stdhttp.Request, key, def string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
		return v
	}
	return def
}

// QueryInt parses an integer query value, returning def when absent
// a present but non-numeric value is a validation error naming the key
func QueryInt(r *stdhttp.Request, key string, def int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, perr.WithField(perr.Validationf("%s must be an integer", key), key)
	}
	return n, nil
}
