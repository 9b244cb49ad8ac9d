// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	perrs "scribe/internal/platform/errors"
)

// UserHeader carries the caller id set by the fronting gateway
const UserHeader = "X-User-ID"

// HeaderPort implements middleware.AuthPort by trusting a gateway supplied user header
type HeaderPort struct {
	// Header overrides UserHeader when set
	Header string
}

// NewHeaderPort returns a port reading UserHeader
func NewHeaderPort() *HeaderPort { return &HeaderPort{} }

// Parse returns the canonical user uuid from the header
// returns unauthorized when the header is missing or not a uuid
func (p *HeaderPort) Parse(r *http.Request) (string, error) {
	name := UserHeader
	if p != nil && p.Header != "" {
		name = p.Header
	}
	raw := strings.TrimSpace(r.Header.Get(name))
	if raw == "" {
		return "", perrs.Unauthorizedf("missing user id")
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return "", perrs.Unauthorizedf("invalid user id")
	}
	return id.String(), nil
}
