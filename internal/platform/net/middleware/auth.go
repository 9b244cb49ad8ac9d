package middleware

import (
	"net/http"

	perr "scribe/internal/platform/errors"
	"scribe/internal/platform/logger"
	pnet "scribe/internal/platform/net"
	phttp "scribe/internal/platform/net/http"
)

// AuthPort resolves the calling user from a request
type AuthPort interface {
	Parse(r *http.Request) (userID string, err error)
}

// Auth puts the user p resolves on the request and logger context.
// Unresolved requests get a 401 envelope; a nil port passes everything through
func Auth(p AuthPort) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			uid, err := p.Parse(r)
			if err != nil {
				if _, coded := perr.As(err); !coded {
					err = perr.Wrap(err, perr.CodeUnauthorized, "unauthorized")
				}
				phttp.Fail(w, r, err)
				return
			}
			reqID := pnet.RequestID(r.Context())
			ctx := pnet.WithRequest(r.Context(), reqID, uid)
			ctx = logger.WithRequest(ctx, reqID, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
