// Package pg opens the pgx pool and waits for the server to answer
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool and the connect loop
type Config struct {
	URL      string
	AppName  string
	MaxConns int32

	// Attempts bounds the ping loop, default 20
	Attempts int
	// PingTimeout bounds each ping, default 3s
	PingTimeout time.Duration

	Tracer pgx.QueryTracer
}

const (
	backoffStart = 150 * time.Millisecond
	backoffMax   = 2 * time.Second
)

// seams
var (
	newPool   = pgxpool.NewWithConfig
	ping      = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }
	closePool = func(p *pgxpool.Pool) { p.Close() }
	sleep     = func(ctx context.Context, d time.Duration) error {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}
	}
)

// Connect builds the pool and pings it with capped exponential backoff.
// The pool is only returned once a ping succeeds
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if cfg.Tracer != nil {
		pcfg.ConnConfig.Tracer = cfg.Tracer
	}

	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg: new pool: %w", err)
	}

	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = 20
	}
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	var last error
	wait := backoffStart
	for i := 1; i <= attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		last = ping(pctx, pool)
		cancel()
		if last == nil {
			return pool, nil
		}
		if i == attempts {
			break
		}
		if err := sleep(ctx, wait); err != nil {
			closePool(pool)
			return nil, err
		}
		wait = min(wait*2, backoffMax)
	}
	closePool(pool)
	return nil, fmt.Errorf("pg: no answer after %d attempts: %w", attempts, last)
}
