// Package service implements the personalisation lifecycle: learning from
// edits and replaying learned corrections over new transcripts
package service

import (
	"context"
	"strings"
	"time"

	"scribe/internal/core/learn"
	perr "scribe/internal/platform/errors"
	"scribe/internal/platform/logger"
	"scribe/internal/platform/metrics"
	corrdomain "scribe/internal/services/corrections/domain"
	"scribe/internal/services/personalize/domain"
)

// Config for the coordinator
type Config struct {
	// MinCount is the default threshold; <= 0 means learn.DefaultMinCount
	MinCount int
	// Now defaults to time.Now
	Now func() time.Time
}

// Svc coordinates the correction store, the host transcript store and the
// pure learn package
type Svc struct {
	store   corrdomain.StorePort
	source  domain.RawTextSource
	events  domain.EventSink
	metrics *metrics.Metrics
	cfg     Config
	log     *logger.Logger
}

var _ domain.LearnerPort = (*Svc)(nil)

// New constructs the coordinator. events and m may be nil
func New(store corrdomain.StorePort, source domain.RawTextSource, events domain.EventSink, m *metrics.Metrics, cfg Config) *Svc {
	if store == nil {
		panic("personalize.Service requires a non nil correction store")
	}
	if source == nil {
		panic("personalize.Service requires a non nil raw text source")
	}
	if cfg.MinCount <= 0 {
		cfg.MinCount = learn.DefaultMinCount
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Svc{
		store:   store,
		source:  source,
		events:  events,
		metrics: m,
		cfg:     cfg,
		log:     logger.Named("personalize"),
	}
}

// OnEdit fetches the raw text behind transcriptID, extracts corrections
// against edited and upserts each one in emission order. One failed upsert
// does not stop the rest
func (s *Svc) OnEdit(ctx context.Context, userID, transcriptID, edited string) domain.EditResult {
	log := s.log.With().Str("user_id", userID).Str("transcript_id", transcriptID).Logger()

	raw, err := s.source.RawText(ctx, userID, transcriptID)
	if err != nil {
		reason := domain.SkipRawTextUnavailable
		if perr.IsCode(err, perr.CodeNotFound) {
			reason = domain.SkipRawTextNotFound
		}
		log.Warn().Err(err).Str("reason", reason).Msg("learning skipped")
		return domain.EditResult{Skipped: reason}
	}

	emitted := learn.Extract(raw, edited)
	res := domain.EditResult{CorrectionsEmitted: len(emitted), Corrections: emitted}
	if len(emitted) == 0 {
		return res
	}
	s.recordKinds(ctx, emitted)

	for i, e := range emitted {
		if err := ctx.Err(); err != nil {
			left := len(emitted) - i
			res.CorrectionsFailed += left
			log.Warn().Err(err).Int("abandoned", left).Msg("learning cancelled")
			break
		}
		if _, err := s.store.Upsert(ctx, userID, e.Original, e.Corrected); err != nil {
			res.CorrectionsFailed++
			log.Error().Err(err).
				Str("original", e.Original).
				Str("corrected", e.Corrected).
				Str("code", string(perr.CodeOf(err))).
				Msg("correction upsert failed")
			continue
		}
		res.CorrectionsStored++
	}
	s.metrics.RecordUpsertFailures(ctx, res.CorrectionsFailed)

	if res.CorrectionsStored > 0 {
		s.publish(ctx, userID, transcriptID, emitted)
	}

	ev := log.Info()
	if res.CorrectionsFailed > 0 {
		ev = log.Warn()
	}
	ev.Int("emitted", res.CorrectionsEmitted).
		Int("stored", res.CorrectionsStored).
		Int("failed", res.CorrectionsFailed).
		Msg("learned from edit")
	return res
}

// Personalize rewrites raw with the user's eligible corrections.
// Any store failure returns raw unchanged with FailedOpen set
func (s *Svc) Personalize(ctx context.Context, userID, raw string, minCount int) domain.Result {
	if minCount <= 0 {
		minCount = s.cfg.MinCount
	}
	if strings.TrimSpace(raw) == "" {
		return domain.Result{Text: raw}
	}

	start := s.cfg.Now()
	list, err := s.store.List(ctx, userID, minCount)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("correction store unavailable, returning raw text")
		s.metrics.RecordPersonalize(ctx, s.cfg.Now().Sub(start).Seconds(), true)
		return domain.Result{Text: raw, FailedOpen: true}
	}

	out := learn.Apply(raw, corrdomain.Rules(list), minCount)
	if out.Skipped > 0 {
		s.log.Warn().Str("user_id", userID).Int("skipped", out.Skipped).Msg("ignored corrections with an empty side")
	}

	applied := 0
	for _, h := range out.Applied {
		applied += h.Count
	}
	s.metrics.RecordApplied(ctx, applied)
	s.metrics.RecordPersonalize(ctx, s.cfg.Now().Sub(start).Seconds(), false)

	return domain.Result{Text: out.Text, Applied: out.Applied, Skipped: out.Skipped}
}

func (s *Svc) recordKinds(ctx context.Context, emitted []learn.Emitted) {
	var words, phrases int
	for _, e := range emitted {
		if e.Kind == learn.KindPhrase {
			phrases++
		} else {
			words++
		}
	}
	s.metrics.RecordExtracted(ctx, string(learn.KindWord), words)
	s.metrics.RecordExtracted(ctx, string(learn.KindPhrase), phrases)
}

// publish hands emitted corrections to the analytics sink; errors are logged only
func (s *Svc) publish(ctx context.Context, userID, transcriptID string, emitted []learn.Emitted) {
	if s.events == nil {
		return
	}
	at := s.cfg.Now()
	evs := make([]domain.Event, len(emitted))
	for i, e := range emitted {
		evs[i] = domain.Event{
			UserID:       userID,
			TranscriptID: transcriptID,
			Original:     e.Original,
			Corrected:    e.Corrected,
			Kind:         e.Kind,
			ObservedAt:   at,
		}
	}
	if err := s.events.Record(ctx, evs); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Int("events", len(evs)).Msg("correction events not recorded")
	}
}
