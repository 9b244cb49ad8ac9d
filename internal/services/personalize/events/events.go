// Package events writes learned corrections to ClickHouse for analytics
package events

import (
	"context"

	"github.com/google/uuid"

	"scribe/internal/platform/store"
	"scribe/internal/services/personalize/domain"
)

// Table is the ClickHouse table learned corrections land in
const Table = "correction_events"

// CH appends events to ClickHouse
type CH struct {
	ch store.Clickhouse
}

// NewCH returns a sink over ch
func NewCH(ch store.Clickhouse) *CH { return &CH{ch: ch} }

// Record inserts events as one batch. Events with non uuid ids are dropped
func (s *CH) Record(ctx context.Context, evs []domain.Event) error {
	rows := make([][]any, 0, len(evs))
	for _, e := range evs {
		uid, err := uuid.Parse(e.UserID)
		if err != nil {
			continue
		}
		tid, err := uuid.Parse(e.TranscriptID)
		if err != nil {
			continue
		}
		rows = append(rows, []any{uid, tid, e.Original, e.Corrected, string(e.Kind), e.ObservedAt.UTC()})
	}
	if len(rows) == 0 {
		return nil
	}
	return s.ch.Insert(ctx, Table, rows)
}

// Nop discards events
type Nop struct{}

// Record does nothing
func (Nop) Record(context.Context, []domain.Event) error { return nil }
