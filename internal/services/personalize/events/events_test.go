package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"scribe/internal/core/learn"
	"scribe/internal/platform/store"
	"scribe/internal/services/personalize/domain"
)

type fakeCH struct {
	table string
	rows  [][]any
	err   error
	calls int
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	f.calls++
	f.table, f.rows = table, rows
	return f.err
}
func (f *fakeCH) Exec(context.Context, string, ...any) error { return nil }
func (f *fakeCH) Ping(context.Context) error                 { return nil }
func (f *fakeCH) Close() error                               { return nil }

var _ store.Clickhouse = (*fakeCH)(nil)

func TestRecord_WritesRowsInColumnOrder(t *testing.T) {
	t.Parallel()

	uid, tid := uuid.New(), uuid.New()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))
	f := &fakeCH{}
	err := NewCH(f).Record(context.Background(), []domain.Event{{
		UserID: uid.String(), TranscriptID: tid.String(),
		Original: "pub", Corrected: "office", Kind: learn.KindWord, ObservedAt: at,
	}})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if f.table != Table || len(f.rows) != 1 {
		t.Fatalf("table=%q rows=%d", f.table, len(f.rows))
	}
	row := f.rows[0]
	if row[0] != uid || row[1] != tid || row[2] != "pub" || row[3] != "office" || row[4] != "word" {
		t.Fatalf("row=%v", row)
	}
	if got := row[5].(time.Time); !got.Equal(at) || got.Location() != time.UTC {
		t.Fatalf("observed_at=%v", got)
	}
}

func TestRecord_DropsBadIDsAndSkipsEmptyBatch(t *testing.T) {
	t.Parallel()

	f := &fakeCH{}
	err := NewCH(f).Record(context.Background(), []domain.Event{{UserID: "nope", TranscriptID: uuid.NewString()}})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if f.calls != 0 {
		t.Fatalf("insert called %d times for an empty batch", f.calls)
	}
}

func TestRecord_PropagatesInsertError(t *testing.T) {
	t.Parallel()

	f := &fakeCH{err: errors.New("ch down")}
	err := NewCH(f).Record(context.Background(), []domain.Event{{UserID: uuid.NewString(), TranscriptID: uuid.NewString()}})
	if err == nil {
		t.Fatalf("want error")
	}
}

func TestNop(t *testing.T) {
	t.Parallel()

	if err := (Nop{}).Record(context.Background(), nil); err != nil {
		t.Fatalf("Nop.Record: %v", err)
	}
}
