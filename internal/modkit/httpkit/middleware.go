package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"potholes/internal/platform/metrics"
	"potholes/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// CORSOrigins are the allowed origins, empty means any
	CORSOrigins []string
	// Metrics records request counts and latency, nil disables it
	Metrics *metrics.Metrics
	// SlowRequest marks slower requests at warn level in the access log, 0 disables it
	SlowRequest time.Duration
}

// CommonStack returns the root middleware slice, outermost first
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		o.Metrics.Middleware,

		// safety
		middleware.RecoverJSON,

		// cross-origin
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),

		middleware.Compress(flate.BestSpeed),
		middleware.NoCache(),
		middleware.StripSlashes(),
	}
}
