package middleware

import (
	stdhttp "net/http"
	"runtime/debug"

	perr "potholes/internal/platform/errors"
	"potholes/internal/platform/logger"
	phttp "potholes/internal/platform/net/http"
)

// RecoverJSON converts panics into a JSON 500 error body and logs the stack with request id
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			phttp.RespondError(w, r, perr.PanicErrf("internal server error"))
		}()
		next.ServeHTTP(w, r)
	})
}
