// Package logger owns the process wide zerolog root and its request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"scribe/internal/platform/config/raw"
)

// Logger is the project logging type
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level   string
	Format  string // "console" or "json"
	Service string
	Caller  bool
	Writer  io.Writer
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE and LOG_CALLER
func FromEnv() Options { return fromEnv(raw.New()) }

func fromEnv(e raw.Env) Options {
	e = e.Prefix("LOG_")
	return Options{
		Level:   strings.ToLower(e.Get("LEVEL", "info")),
		Format:  strings.ToLower(e.Get("FORMAT", "console")),
		Service: e.Get("SERVICE", ""),
		Caller:  e.GetBool("CALLER", false),
	}
}

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

var root atomic.Pointer[Logger]

// New builds a logger from opt without installing it
func New(opt Options) Logger {
	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	zc := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
	if opt.Service != "" {
		zc = zc.Str("service", opt.Service)
	}
	if opt.Caller {
		zc = zc.Caller()
	}
	return zc.Logger()
}

// Init installs a root built from opt
func Init(opt Options) {
	l := New(opt)
	root.Store(&l)
}

// Get returns the root, building it from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	l := New(FromEnv())
	root.CompareAndSwap(nil, &l)
	return root.Load()
}

// Set swaps the root and returns a func restoring the previous one
func Set(l Logger) (restore func()) {
	prev := root.Swap(&l)
	return func() { root.Store(prev) }
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyUserID
)

// WithRequest stores the ids C adds to every line
func WithRequest(ctx context.Context, reqID, userID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	if userID != "" {
		ctx = context.WithValue(ctx, keyUserID, userID)
	}
	return ctx
}

// RequestFields returns the ids WithRequest stored on ctx
func RequestFields(ctx context.Context) (reqID, userID string) {
	reqID, _ = ctx.Value(keyRequestID).(string)
	userID, _ = ctx.Value(keyUserID).(string)
	return reqID, userID
}

// C returns a child of the root carrying request_id and user_id from ctx
func C(ctx context.Context) *Logger {
	reqID, userID := RequestFields(ctx)
	if reqID == "" && userID == "" {
		return Get()
	}
	zc := Get().With()
	if reqID != "" {
		zc = zc.Str("request_id", reqID)
	}
	if userID != "" {
		zc = zc.Str("user_id", userID)
	}
	l := zc.Logger()
	return &l
}

// Named returns a child of the root tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
