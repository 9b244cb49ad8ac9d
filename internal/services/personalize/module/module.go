// Package module wires the personalisation engine into the API
package module

import (
	"scribe/internal/modkit"
	"scribe/internal/modkit/httpkit"
	"scribe/internal/platform/metrics"
	"scribe/internal/services/personalize/domain"
	"scribe/internal/services/personalize/events"
	pershttp "scribe/internal/services/personalize/http"
	perssvc "scribe/internal/services/personalize/service"
)

// Ports exposed by the personalisation module
type Ports struct {
	Learner domain.LearnerPort
}

// Module is the personalisation API module
type Module struct{ modkit.Base }

// New constructs the personalisation module. It requires WithPorts(domain.Ports)
// carrying the correction store and the raw text source
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("personalize"),
		modkit.WithPrefix("/personalize"),
	}, opts...)...)

	in, ok := b.Ports.(domain.Ports)
	if !ok || in.Store == nil || in.Source == nil {
		panic("personalize module: expected WithPorts(domain.Ports) with Store and Source")
	}

	o := FromConfig(deps.Cfg)
	var sink domain.EventSink = events.Nop{}
	if o.Events && deps.CH != nil {
		sink = events.NewCH(deps.CH)
	}
	svc := perssvc.New(in.Store, in.Source, sink, metrics.Default(), perssvc.Config{MinCount: o.MinCount})

	return &Module{Base: modkit.NewBase(b, Ports{Learner: svc}, func(r httpkit.Router) {
		pershttp.Register(r, svc)
	})}
}
