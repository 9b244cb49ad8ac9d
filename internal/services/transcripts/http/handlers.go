// Package http provides http transport for transcripts
package http

import (
	stdhttp "net/http"
	"strings"
	"time"

	"scribe/internal/modkit/httpkit"
	perr "scribe/internal/platform/errors"
	"scribe/internal/platform/net/http/bind"
	"scribe/internal/services/transcripts/domain"
)

// Register mounts transcript endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.Create(r, "/", h.create)
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.PutJSON(r, "/{id}/final", h.final)
	httpkit.Delete(r, "/{id}", h.delete)
}

type handlers struct{ svc domain.ServicePort }

// POST /transcripts: store and personalise a new transcript.
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Create(r.Context(), uid, in)
}

// GET /transcripts: list transcripts newest first.
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	var in domain.ListInput
	if in.Limit, err = httpkit.QueryInt(r, "limit", 0); err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(r.URL.Query().Get("before")); v != "" {
		ts, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, perr.WithField(perr.InvalidArgf("before must be an RFC3339 timestamp"), "before")
		}
		in.Before = &ts
	}
	if err := bind.Validate(in); err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), uid, in)
}

// GET /transcripts/{id}: fetch one transcript.
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), uid, httpkit.Param(r, "id"))
}

// PUT /transcripts/{id}/final: save the user's edited text and learn from it.
func (h *handlers) final(r *stdhttp.Request, in domain.FinalInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.UpdateFinal(r.Context(), uid, httpkit.Param(r, "id"), in)
}

// DELETE /transcripts/{id}: delete one transcript.
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	id := httpkit.Param(r, "id")
	if err := h.svc.Delete(r.Context(), uid, id); err != nil {
		return nil, err
	}
	return map[string]string{"deleted": id}, nil
}
