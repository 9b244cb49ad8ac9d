// Package domain defines the personalisation engine's types and ports
package domain

import (
	"context"
	"time"

	"scribe/internal/core/learn"
	corrdomain "scribe/internal/services/corrections/domain"
)

// Skip reasons reported on EditResult when learning could not start
const (
	SkipRawTextNotFound    = "raw_text_not_found"
	SkipRawTextUnavailable = "raw_text_unavailable"
)

// EditResult summarises what one edit taught the store.
// Failures are counted here and never returned as an error
type EditResult struct {
	CorrectionsEmitted int             `json:"corrections_emitted"`
	CorrectionsStored  int             `json:"corrections_stored"`
	CorrectionsFailed  int             `json:"corrections_failed"`
	Skipped            string          `json:"skipped,omitempty"`
	Corrections        []learn.Emitted `json:"corrections,omitempty"`
}

// Result is a personalised text plus what changed it
type Result struct {
	Text       string      `json:"text"`
	Applied    []learn.Hit `json:"applied,omitempty"`
	FailedOpen bool        `json:"failed_open,omitempty"`
	// Skipped counts stored corrections ignored for a blank or punctuation-only side
	Skipped int `json:"skipped,omitempty"`
}

// Event is one learned correction as written to the analytics sink
type Event struct {
	UserID       string
	TranscriptID string
	Original     string
	Corrected    string
	Kind         learn.Kind
	ObservedAt   time.Time
}

// RawTextSource is the host transcript store the engine reads raw text from.
// It returns a NOT_FOUND coded error when the transcript is missing or
// belongs to another user
type RawTextSource interface {
	RawText(ctx context.Context, userID, transcriptID string) (string, error)
}

// EventSink receives learned corrections on a best effort basis
type EventSink interface {
	Record(ctx context.Context, events []Event) error
}

// LearnerPort is the engine surface the host calls
type LearnerPort interface {
	// OnEdit learns from the difference between the stored raw text and edited
	OnEdit(ctx context.Context, userID, transcriptID, edited string) EditResult
	// Personalize applies the user's corrections with count >= minCount to raw.
	// minCount <= 0 uses the configured default
	Personalize(ctx context.Context, userID, raw string, minCount int) Result
}

// Ports are the collaborators the engine consumes, injected with modkit.WithPorts
type Ports struct {
	Store  corrdomain.StorePort
	Source RawTextSource
}
