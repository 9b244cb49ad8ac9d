package httpkit

import (
	"net/http"

	perr "scribe/internal/platform/errors"
	pnet "scribe/internal/platform/net"
)

// User returns the caller the auth middleware resolved
func User(r *http.Request) (string, error) {
	if uid := pnet.UserID(r.Context()); uid != "" {
		return uid, nil
	}
	return "", perr.Unauthorizedf("missing user id")
}
