package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"scribe/internal/platform/net/middleware"
)

// APIPrefix is where versioned routes live
const APIPrefix = "/api/v1"

// MountAPIV1 scopes mount under APIPrefix with stack applied
func MountAPIV1(r Router, stack []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(APIPrefix, func(api Router) {
		api.Use(stack...)
		mount(api)
	})
}

// Protected groups routes that need a resolved user
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(g Router) {
		g.Use(middleware.Auth(p))
		fn(g)
	})
}

// CommonStack is the middleware every API route runs through
func CommonStack(origins ...string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLog(500 * time.Millisecond),
		middleware.Recover,
		middleware.NoCache(),
		middleware.CORS(origins),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}
