// Package module wires transcripts into the API
package module

import (
	"scribe/internal/modkit"
	"scribe/internal/modkit/httpkit"
	persdomain "scribe/internal/services/personalize/domain"
	"scribe/internal/services/transcripts/domain"
	trhttp "scribe/internal/services/transcripts/http"
	trrepo "scribe/internal/services/transcripts/repo"
	trsvc "scribe/internal/services/transcripts/service"
)

// Ports exposed by the transcripts module
type Ports struct {
	Service domain.ServicePort
}

// Needs are the ports the transcripts module consumes via modkit.WithPorts
type Needs struct {
	Learner persdomain.LearnerPort
}

// Module is the transcripts API module
type Module struct{ modkit.Base }

// NewReader returns the raw text source the personalisation module consumes.
// It is built before the module so the two can be wired without a cycle
func NewReader(deps modkit.Deps) persdomain.RawTextSource {
	return trsvc.NewReader(deps.PG, trrepo.NewPG())
}

// New constructs the transcripts module; it requires WithPorts(Needs)
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("transcripts"),
		modkit.WithPrefix("/transcripts"),
	}, opts...)...)

	in, ok := b.Ports.(Needs)
	if !ok || in.Learner == nil {
		panic("transcripts module: expected WithPorts(Needs) with a Learner")
	}

	o := FromConfig(deps.Cfg)
	svc := trsvc.New(deps.PG, trrepo.NewPG(), in.Learner, trsvc.Config{
		MaxChars:  o.MaxChars,
		PageLimit: o.PageLimit,
	})

	return &Module{Base: modkit.NewBase(b, Ports{Service: svc}, func(r httpkit.Router) {
		trhttp.Register(r, svc)
	})}
}
