// Package module wires the correction store into the API
package module

import (
	"scribe/internal/modkit"
	"scribe/internal/modkit/httpkit"
	"scribe/internal/services/corrections/domain"
	corrhttp "scribe/internal/services/corrections/http"
	corrrepo "scribe/internal/services/corrections/repo"
	corrsvc "scribe/internal/services/corrections/service"
)

// Ports exposed by the corrections module
type Ports struct {
	Store   domain.StorePort
	Service domain.ServicePort
}

// Module is the corrections API module
type Module struct{ modkit.Base }

// New constructs the corrections module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("corrections"),
		modkit.WithPrefix("/corrections"),
	}, opts...)...)

	o := FromConfig(deps.Cfg)
	svc := corrsvc.New(deps.PG, corrrepo.NewPG(), corrsvc.Config{PageLimit: o.PageLimit})

	return &Module{Base: modkit.NewBase(b, Ports{Store: svc, Service: svc}, func(r httpkit.Router) {
		corrhttp.Register(r, svc)
	})}
}
