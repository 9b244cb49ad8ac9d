package middleware

import (
	"net/http"
	"runtime/debug"

	perr "scribe/internal/platform/errors"
	"scribe/internal/platform/logger"
	pnet "scribe/internal/platform/net"
	phttp "scribe/internal/platform/net/http"
)

// Recover turns a handler panic into a logged 500 envelope
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Str("path", r.URL.Path).
				Msg("panic recovered")

			env := pnet.Failure(perr.New(perr.CodeInternal, "internal error"), reqID)
			phttp.JSON(w, env.StatusCode, env)
		}()
		next.ServeHTTP(w, r)
	})
}
