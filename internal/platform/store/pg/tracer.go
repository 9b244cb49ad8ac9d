package pg

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"scribe/internal/platform/logger"
)

// argLimit bounds logged string args so transcript bodies stay out of logs
const argLimit = 64

// Tracer logs queries through zerolog. Slow queries always log at warn;
// the rest only when All is set
type Tracer struct {
	Log  logger.Logger
	Slow time.Duration
	All  bool
}

type traceKey struct{}

type started struct {
	sql  string
	args []any
	at   time.Time
}

// TraceQueryStart implements pgx.QueryTracer
func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, started{sql: data.SQL, args: data.Args, at: time.Now()})
}

// TraceQueryEnd implements pgx.QueryTracer
func (t *Tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	s, ok := ctx.Value(traceKey{}).(started)
	if !ok {
		return
	}
	elapsed := time.Since(s.at)
	slow := t.Slow > 0 && elapsed >= t.Slow
	if !slow && !t.All {
		return
	}

	evt := t.Log.Debug()
	if slow {
		evt = t.Log.Warn()
	}
	if reqID, userID := logger.RequestFields(ctx); reqID != "" || userID != "" {
		evt = evt.Str("request_id", reqID).Str("user_id", userID)
	}
	evt.Str("component", "pg").
		Dur("elapsed", elapsed).
		Bool("slow", slow).
		Str("sql", compact(s.sql)).
		Interface("args", clip(s.args)).
		Int64("rows", data.CommandTag.RowsAffected()).
		Err(data.Err).
		Msg("pg query")
}

func clip(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		str, ok := a.(string)
		if r := []rune(str); ok && len(r) > argLimit {
			a = fmt.Sprintf("%s...(%d chars)", string(r[:argLimit]), len(r))
		}
		out[i] = a
	}
	return out
}

func compact(sql string) string { return strings.Join(strings.Fields(sql), " ") }
