package middleware

import (
	"net/http"
	"strings"

	pnet "potholes/internal/platform/net"

	"github.com/google/uuid"
)

// HeaderRequestID carries the request id in both directions
const HeaderRequestID = "X-Request-ID"

// maxInboundID caps caller supplied ids so log lines stay bounded
const maxInboundID = 128

// newID is swapped in tests
var newID = uuid.NewString

// RequestID propagates a caller supplied X-Request-ID or mints a uuid,
// stores it on the context and echoes it on the response
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(HeaderRequestID))
			if id == "" || len(id) > maxInboundID || strings.ContainsAny(id, "\r\n") {
				id = newID()
			}
			w.Header().Set(HeaderRequestID, id)
			next.ServeHTTP(w, r.WithContext(pnet.WithRequest(r.Context(), id)))
		})
	}
}
