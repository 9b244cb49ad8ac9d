// Package http serves liveness, readiness and build info
package http

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"scribe/internal/core/version"
	"scribe/internal/modkit/httpkit"
	phttp "scribe/internal/platform/net/http"
)

// Pinger reports whether a backend answers
type Pinger interface {
	Ping(context.Context) error
}

// Probe is one backend readiness depends on. A nil Check means the
// backend is not configured
type Probe struct {
	Name     string
	Optional bool
	Check    Pinger
}

// Deps are the handler dependencies
type Deps struct {
	Service   string
	StartedAt time.Time
	Probes    []Probe
	Timeout   time.Duration
	Now       func() time.Time
}

// Check statuses
const (
	StatusOK       = "ok"
	StatusFail     = "fail"
	StatusSkipped  = "skipped"
	StatusDegraded = "degraded"
)

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Timeout <= 0 {
		d.Timeout = 2 * time.Second
	}
	h := &handlers{Deps: d}

	httpkit.Get(r, "/health", h.health)
	r.Get("/ready", h.ready)
	httpkit.Get(r, "/version", func(*http.Request) (any, error) { return version.Info(), nil })
	httpkit.Get(r, "/service", h.service)
}

type handlers struct{ Deps }

// Health is the liveness payload
type Health struct {
	OK      bool      `json:"ok"`
	Service string    `json:"service"`
	Started time.Time `json:"started"`
	Now     time.Time `json:"now"`
}

// Check is the outcome of one probe
type Check struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Elapsed string `json:"elapsed,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Readiness sums up every probe
type Readiness struct {
	Status string    `json:"status"`
	Checks []Check   `json:"checks"`
	Now    time.Time `json:"now"`
}

// Service describes the running process
type Service struct {
	Name    string    `json:"name"`
	Started time.Time `json:"started"`
	Uptime  int64     `json:"uptime_seconds"`
}

func (h *handlers) health(*http.Request) (any, error) {
	return Health{OK: true, Service: h.Service, Started: h.StartedAt.UTC(), Now: h.Now().UTC()}, nil
}

func (h *handlers) service(*http.Request) (any, error) {
	return Service{
		Name:    h.Service,
		Started: h.StartedAt.UTC(),
		Uptime:  int64(h.Now().Sub(h.StartedAt) / time.Second),
	}, nil
}

// ready answers 503 when a required probe fails or is missing; an
// optional failure only degrades the service
func (h *handlers) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	checks := make([]Check, len(h.Probes))
	var g errgroup.Group
	for i, p := range h.Probes {
		g.Go(func() error {
			checks[i] = probe(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	out := Readiness{Status: StatusOK, Checks: checks, Now: h.Now().UTC()}
	for i, c := range checks {
		switch {
		case c.Status == StatusOK:
		case !h.Probes[i].Optional:
			out.Status = StatusFail
		case c.Status == StatusFail && out.Status == StatusOK:
			out.Status = StatusDegraded
		}
	}

	status := http.StatusOK
	if out.Status == StatusFail {
		status = http.StatusServiceUnavailable
	}
	phttp.Write(w, r, status, out)
}

func probe(ctx context.Context, p Probe) Check {
	if p.Check == nil {
		return Check{Name: p.Name, Status: StatusSkipped}
	}
	start := time.Now()
	err := p.Check.Ping(ctx)
	c := Check{Name: p.Name, Status: StatusOK, Elapsed: time.Since(start).Round(time.Microsecond).String()}
	if err != nil {
		c.Status, c.Error = StatusFail, err.Error()
	}
	return c
}
