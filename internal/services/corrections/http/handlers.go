// Package http provides http transport for the correction store
package http

import (
	stdhttp "net/http"

	"scribe/internal/modkit/httpkit"
	"scribe/internal/platform/net/http/bind"
	"scribe/internal/services/corrections/domain"
)

// Register mounts correction endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// history for the calling user
	httpkit.Get(r, "/", h.list)
	httpkit.Delete(r, "/", h.clear)

	httpkit.Get(r, "/{id}", h.get)
	httpkit.Post(r, "/{id}/disable", h.disable)
	httpkit.Post(r, "/{id}/enable", h.enable)
}

type handlers struct{ svc domain.ServicePort }

// GET /corrections: list learned corrections.
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	in, err := listInput(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Browse(r.Context(), uid, in)
}

// GET /corrections/{id}: fetch one correction.
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), uid, httpkit.Param(r, "id"))
}

// POST /corrections/{id}/disable: stop applying a correction.
func (h *handlers) disable(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Disable(r.Context(), uid, httpkit.Param(r, "id"))
}

// POST /corrections/{id}/enable: resume applying a correction.
func (h *handlers) enable(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Enable(r.Context(), uid, httpkit.Param(r, "id"))
}

// DELETE /corrections: forget every learned correction.
func (h *handlers) clear(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Clear(r.Context(), uid)
}

func listInput(r *stdhttp.Request) (domain.ListInput, error) {
	var in domain.ListInput
	var err error
	if in.MinCount, err = httpkit.QueryInt(r, "min_count", 0); err != nil {
		return in, err
	}
	if in.IncludeDisabled, err = httpkit.QueryBool(r, "include_disabled", false); err != nil {
		return in, err
	}
	if in.Limit, err = httpkit.QueryInt(r, "limit", 0); err != nil {
		return in, err
	}
	return in, bind.Validate(in)
}
