// Package http holds the server, router adapter and JSON responders
package http

import (
	"encoding/json"
	"net/http"

	"scribe/internal/platform/logger"
	pnet "scribe/internal/platform/net"
)

// Envelope is the response body shape
type Envelope = pnet.Envelope

// JSON writes v as application/json with the given status
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Named("http").Warn().Err(err).Msg("encode response")
	}
}

// Write answers with data wrapped in a success envelope. 204 has no body
func Write(w http.ResponseWriter, r *http.Request, status int, data any) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	JSON(w, status, pnet.Success(status, data, pnet.RequestID(r.Context())))
}

// Fail answers with the failure envelope for err. Server side failures are logged
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	env := pnet.Failure(err, pnet.RequestID(r.Context()))
	if env.StatusCode >= http.StatusInternalServerError {
		logger.C(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("code", string(env.Code)).
			Msg("request failed")
	}
	JSON(w, env.StatusCode, env)
}
