// Package api provides the HTTP API for the application
package api

import (
	"net/http"

	"scribe/internal/platform/config"
	"scribe/internal/platform/logger"
	"scribe/internal/platform/metrics"
	phttp "scribe/internal/platform/net/http"
	"scribe/internal/platform/net/middleware"
	"scribe/internal/platform/store"

	"scribe/internal/modkit"
	"scribe/internal/modkit/httpkit"
	"scribe/internal/modkit/module"
	"scribe/internal/modkit/swaggerkit"

	metamod "scribe/internal/services/api/meta/module"
	corrdomain "scribe/internal/services/corrections/domain"
	corrmod "scribe/internal/services/corrections/module"
	persdomain "scribe/internal/services/personalize/domain"
	persmod "scribe/internal/services/personalize/module"
	trmod "scribe/internal/services/transcripts/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store

	// Auth resolves the calling user; defaults to the X-User-ID header port
	Auth middleware.AuthPort
	// Metrics records request durations when set
	Metrics *metrics.Metrics
	// MetricsHandler is mounted at /metrics when set
	MetricsHandler http.Handler

	// Docs serves the OpenAPI document and UI under /api/docs
	Docs swaggerkit.Options

	CORSOrigins    []string
	EnableProfiler bool
}

// Mount wires every module onto r and returns them in mount order
func Mount(r phttp.Router, opt Options) []module.Module {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}
	auth := opt.Auth
	if auth == nil {
		auth = httpkit.NewHeaderPort()
	}

	// corrections own the store and transcripts own raw text.
	// personalize needs both and transcripts need the learner back,
	// so the raw text reader is built ahead of the transcripts module
	corr := corrmod.New(deps)
	reader := trmod.NewReader(deps)
	pers := persmod.New(deps, modkit.WithPorts(persdomain.Ports{
		Store:  module.MustPortsOf[corrdomain.StorePort](corr),
		Source: reader,
	}))
	tr := trmod.New(deps, modkit.WithPorts(trmod.Needs{
		Learner: module.MustPortsOf[persdomain.LearnerPort](pers),
	}))

	public := []module.Module{metamod.New(deps)}
	protected := []module.Module{corr, pers, tr}

	r.Use(middleware.Heartbeat("/ping"))
	if opt.MetricsHandler != nil {
		r.Handle("/metrics", opt.MetricsHandler)
	}
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	swaggerkit.Mount(r, opt.Docs)

	stack := httpkit.CommonStack(opt.CORSOrigins...)
	if opt.Metrics != nil {
		stack = append(stack, metrics.Middleware(opt.Metrics))
	}

	log := logger.Named("api")
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range public {
			m.MountRoutes(api)
		}
		httpkit.Protected(api, auth, func(pr httpkit.Router) {
			for _, m := range protected {
				m.MountRoutes(pr)
			}
		})
	})
	all := append(public, protected...)
	for _, m := range all {
		log.Debug().Str("module", m.Name()).Str("prefix", httpkit.APIPrefix+m.Prefix()).Msg("module mounted")
	}
	return all
}
