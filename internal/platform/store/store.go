// Package store opens the storage backends and exposes the narrow seams
// repos are written against
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"scribe/internal/platform/logger"
	ch "scribe/internal/platform/store/ch"
	"scribe/internal/platform/store/pg"
)

// Store holds the opened backends. A nil field means the backend is disabled
type Store struct {
	Log logger.Logger
	PG  TxRunner
	CH  Clickhouse
}

// Row is a single result row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set. Close must be called once iteration stops
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a statement did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the sql surface repos use
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner runs fn in a transaction; fn's error rolls it back
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the analytics sink surface
type Clickhouse interface {
	Exec(ctx context.Context, sql string, args ...any) error
	Insert(ctx context.Context, table string, rows [][]any) error
	Ping(ctx context.Context) error
	Close() error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Option configures Open
type Option func(*Store) error

// WithLogger sets the logger the query tracer writes to
func WithLogger(l logger.Logger) Option {
	return func(s *Store) error {
		s.Log = l
		return nil
	}
}

// Open connects every backend enabled in cfg
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: zerolog.Nop()}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	if cfg.PG.Enabled {
		if cfg.PG.URL == "" {
			return nil, errors.New("store: postgres enabled without a url")
		}
		pool, err := pg.Connect(ctx, pg.Config{
			URL:         cfg.PG.URL,
			AppName:     cfg.AppName,
			MaxConns:    cfg.PG.MaxConns,
			Attempts:    cfg.PG.ConnectRetries,
			PingTimeout: cfg.PG.PingTimeout,
			Tracer: &pg.Tracer{
				Log:  s.Log,
				Slow: time.Duration(cfg.PG.SlowQueryMs) * time.Millisecond,
				All:  cfg.PG.LogSQL,
			},
		})
		if err != nil {
			return nil, err
		}
		s.PG = newPGStore(pool)
	}

	if cfg.CH.Enabled {
		c, err := ch.Open(ctx, ch.Config{
			URL:         cfg.CH.URL,
			Role:        cfg.CH.ClientName,
			Tag:         cfg.CH.ClientTag,
			DialTimeout: cfg.CH.DialTimeout,
		})
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("store: clickhouse: %w", err)
		}
		s.CH = c
	}
	return s, nil
}

// Close releases every opened backend
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() }); ok {
		c.Close()
	}
	return errors.Join(errs...)
}
