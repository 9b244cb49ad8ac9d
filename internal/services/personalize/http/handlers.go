// Package http exposes a personalisation dry run for the calling user
package http

import (
	stdhttp "net/http"

	"scribe/internal/modkit/httpkit"
	"scribe/internal/services/personalize/domain"
)

// Register mounts personalisation endpoints on the given router
func Register(r httpkit.Router, l domain.LearnerPort) {
	h := &handlers{learner: l}
	httpkit.PostJSON(r, "/preview", h.preview)
}

type handlers struct{ learner domain.LearnerPort }

// POST /personalize/preview: personalise text without storing it.
func (h *handlers) preview(r *stdhttp.Request, in domain.PreviewInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.learner.Personalize(r.Context(), uid, in.Text, in.MinCount), nil
}
