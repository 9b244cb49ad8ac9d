// Command scribe-api serves transcripts, learned corrections and personalisation over HTTP
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"scribe/internal/core/version"
	"scribe/internal/modkit/swaggerkit"
	"scribe/internal/platform/config"
	"scribe/internal/platform/logger"
	"scribe/internal/platform/metrics"
	phttp "scribe/internal/platform/net/http"
	"scribe/internal/platform/store"

	"scribe/internal/services/api"
	"scribe/internal/services/schema"
)

func main() {
	// a missing .env is fine, the process env still applies
	_ = godotenv.Load()

	l := logger.Get()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.New()); err != nil {
		l.Error().Err(err).Msg("scribe-api stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, root config.Conf) error {
	l := logger.Named("main")
	apiCfg := root.Prefix("CORE_API_")

	shutdownMetrics, err := metrics.InitProvider(ctx, metrics.ProviderConfig{
		ServiceName:    version.Info().Service,
		ServiceVersion: version.Info().Version,
	})
	if err != nil {
		return err
	}

	st, err := store.Open(ctx, store.FromConfig(root, "api"), store.WithLogger(*logger.Get()))
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if apiCfg.MayBool("MIGRATE", false) {
		if _, err := schema.ApplyPG(ctx, st.PG); err != nil {
			return err
		}
		if st.CH != nil {
			if err := schema.ApplyCH(ctx, st.CH); err != nil {
				return err
			}
		}
	}

	srv := phttp.NewServer(apiCfg)
	var metricsHandler = metrics.Handler()
	if !apiCfg.MayBool("METRICS", true) {
		metricsHandler = nil
	}
	api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Metrics:        metrics.Default(),
		MetricsHandler: metricsHandler,
		CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		Docs: swaggerkit.Options{
			Enabled:     apiCfg.MayBool("DOCS", false),
			TitleSuffix: apiCfg.MayString("DOCS_TITLE_SUFFIX", ""),
		},
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), apiCfg.MayDuration("SHUTDOWN_TIMEOUT", 15*time.Second))
		defer cancel()
		l.Info().Msg("shutting down")
		return errors.Join(srv.Shutdown(sctx), shutdownMetrics(sctx))
	})
	return g.Wait()
}
