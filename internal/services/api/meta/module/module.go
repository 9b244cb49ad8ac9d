// Package module mounts the meta endpoints
package module

import (
	"time"

	"scribe/internal/core/version"
	"scribe/internal/modkit"
	"scribe/internal/modkit/httpkit"
	metahttp "scribe/internal/services/api/meta/http"
)

// New constructs the meta module. Postgres is required for readiness,
// clickhouse is not
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	started := time.Now()
	return modkit.NewBase(b, nil, func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			Service:   version.Info().Service,
			StartedAt: started,
			Timeout:   deps.Cfg.Prefix("CORE_API_").MayDuration("READY_TIMEOUT", 2*time.Second),
			Probes: []metahttp.Probe{
				{Name: "pg", Check: pinger(deps.PG)},
				{Name: "ch", Optional: true, Check: pinger(deps.CH)},
			},
		})
	})
}

func pinger(v any) metahttp.Pinger {
	p, _ := v.(metahttp.Pinger)
	return p
}
