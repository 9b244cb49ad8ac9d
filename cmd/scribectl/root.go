package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"scribe/internal/core/version"
	"scribe/internal/platform/config"
	"scribe/internal/platform/logger"
	"scribe/internal/platform/store"
	corrdomain "scribe/internal/services/corrections/domain"
	corrrepo "scribe/internal/services/corrections/repo"
	corrsvc "scribe/internal/services/corrections/service"
)

// env is what commands need from the outside world; tests swap it
type env struct {
	openStore   func(ctx context.Context) (*store.Store, error)
	corrections func(st *store.Store) corrdomain.ServicePort
}

func defaultEnv() env {
	return env{
		openStore: func(ctx context.Context) (*store.Store, error) {
			return store.Open(ctx, store.FromConfig(config.New(), "ctl"), store.WithLogger(*logger.Get()))
		},
		corrections: func(st *store.Store) corrdomain.ServicePort {
			return corrsvc.New(st.PG, corrrepo.NewPG(), corrsvc.Config{})
		},
	}
}

func newRootCmd(e env) *cobra.Command {
	root := &cobra.Command{
		Use:           "scribectl",
		Short:         "Operate the scribe personalisation engine",
		Version:       version.Info().Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newMigrateCmd(e),
		newExtractCmd(),
		newApplyCmd(),
		newCorrectionsCmd(e),
	)
	return root
}

// withStore opens the store for one command and closes it afterwards
func withStore(ctx context.Context, e env, fn func(st *store.Store) error) (err error) {
	st, err := e.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, st.Close(context.Background()))
	}()
	return fn(st)
}
