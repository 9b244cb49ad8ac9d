package httpkit

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	perrs "scribe/internal/platform/errors"
)

// Param returns a trimmed chi path parameter, empty when absent
func Param(r *http.Request, key string) string {
	return strings.TrimSpace(chi.URLParam(r, key))
}

// QueryInt reads an integer query parameter, def when absent
func QueryInt(r *http.Request, key string, def int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, perrs.WithField(perrs.InvalidArgf("%s must be an integer", key), key)
	}
	return n, nil
}

// QueryBool reads a boolean query parameter, def when absent
func QueryBool(r *http.Request, key string, def bool) (bool, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, perrs.WithField(perrs.InvalidArgf("%s must be a boolean", key), key)
	}
	return b, nil
}
