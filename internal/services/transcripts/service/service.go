// Package service contains transcript workflows. Creating a transcript
// personalises it; saving a final text teaches the personalisation engine
package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"scribe/internal/core/textclean"
	"scribe/internal/modkit/repokit"
	perr "scribe/internal/platform/errors"
	"scribe/internal/platform/logger"
	persdomain "scribe/internal/services/personalize/domain"
	"scribe/internal/services/transcripts/domain"
	"scribe/internal/services/transcripts/repo"
)

// Config for the transcripts service
type Config struct {
	// MaxChars caps raw and final text length in runes; defaults to 200000
	MaxChars int
	// PageLimit caps List results; defaults to 100
	PageLimit int
}

// Svc implements the transcripts service
type Svc struct {
	*Reader
	learner persdomain.LearnerPort
	cfg     Config
	log     *logger.Logger
}

var _ domain.ServicePort = (*Svc)(nil)

// New constructs a transcripts service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], learner persdomain.LearnerPort, cfg Config) *Svc {
	if learner == nil {
		panic("transcripts.Service requires a non nil learner")
	}
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = 200000
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 100
	}
	return &Svc{
		Reader:  NewReader(db, binder),
		learner: learner,
		cfg:     cfg,
		log:     logger.Named("transcripts"),
	}
}

// Create sanitises the recogniser output, personalises it and stores both
func (s *Svc) Create(ctx context.Context, userID string, in domain.CreateInput) (domain.Created, error) {
	if err := checkUser(userID); err != nil {
		return domain.Created{}, err
	}
	raw := textclean.Clean(in.RawText)
	if err := s.checkLen(raw, "raw_text"); err != nil {
		return domain.Created{}, err
	}

	p := s.learner.Personalize(ctx, userID, raw, in.MinCount)

	t, err := s.store().Insert(ctx, repo.NewTranscript{
		UserID:           userID,
		Title:            strings.TrimSpace(in.Title),
		RawText:          raw,
		PersonalizedText: p.Text,
	})
	if err != nil {
		return domain.Created{}, perr.FromPostgres(err, "insert transcript")
	}
	s.log.Debug().Str("user_id", userID).Str("transcript_id", t.ID).
		Int("rules_applied", len(p.Applied)).Bool("failed_open", p.FailedOpen).
		Msg("transcript created")
	return domain.Created{Transcript: t, Applied: p.Applied, FailedOpen: p.FailedOpen}, nil
}

// Get returns one transcript owned by userID
func (s *Svc) Get(ctx context.Context, userID, id string) (domain.Transcript, error) {
	if err := checkIDs(userID, id); err != nil {
		return domain.Transcript{}, err
	}
	t, err := s.store().Get(ctx, userID, id)
	return t, perr.FromPostgres(err, "get transcript")
}

// List pages the user's transcripts newest first
func (s *Svc) List(ctx context.Context, userID string, in domain.ListInput) ([]domain.Transcript, error) {
	if err := checkUser(userID); err != nil {
		return nil, err
	}
	limit := in.Limit
	if limit <= 0 || limit > s.cfg.PageLimit {
		limit = s.cfg.PageLimit
	}
	out, err := s.store().List(ctx, userID, in.Before, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list transcripts")
	}
	if out == nil {
		out = []domain.Transcript{}
	}
	return out, nil
}

// UpdateFinal saves the user's edit and then learns from it.
// Learning outcome never fails the save
func (s *Svc) UpdateFinal(ctx context.Context, userID, id string, in domain.FinalInput) (domain.Edited, error) {
	if err := checkIDs(userID, id); err != nil {
		return domain.Edited{}, err
	}
	final := textclean.Clean(in.FinalText)
	if err := s.checkLen(final, "final_text"); err != nil {
		return domain.Edited{}, err
	}

	t, err := s.store().SetFinal(ctx, userID, id, final)
	if err != nil {
		return domain.Edited{}, perr.FromPostgres(err, "save final text")
	}

	learned := s.learner.OnEdit(ctx, userID, id, final)
	return domain.Edited{Transcript: t, Learning: learned}, nil
}

// Delete removes one transcript owned by userID
func (s *Svc) Delete(ctx context.Context, userID, id string) error {
	if err := checkIDs(userID, id); err != nil {
		return err
	}
	if err := s.store().Delete(ctx, userID, id); err != nil {
		return perr.FromPostgres(err, "delete transcript")
	}
	s.log.Info().Str("user_id", userID).Str("transcript_id", id).Msg("transcript deleted")
	return nil
}

func (s *Svc) checkLen(text, field string) error {
	if n := utf8.RuneCountInString(text); n > s.cfg.MaxChars {
		return perr.WithField(perr.InvalidArgf("%s is %d characters, limit is %d", field, n, s.cfg.MaxChars), field)
	}
	return nil
}

// Reader serves raw text to the personalisation engine
type Reader struct {
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

var _ persdomain.RawTextSource = (*Reader)(nil)

// NewReader constructs a raw text reader
func NewReader(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Reader {
	if db == nil {
		panic("transcripts.Reader requires a non nil TxRunner")
	}
	if binder == nil {
		panic("transcripts.Reader requires a non nil Repo binder")
	}
	return &Reader{binder: binder, db: db}
}

func (r *Reader) store() repo.Repo { return r.binder.Bind(r.db) }

// RawText returns the stored recogniser output. Another user's transcript
// is reported as not found
func (r *Reader) RawText(ctx context.Context, userID, id string) (string, error) {
	if err := checkIDs(userID, id); err != nil {
		return "", err
	}
	raw, err := r.store().RawText(ctx, userID, id)
	return raw, perr.FromPostgres(err, "get raw text")
}

func checkUser(userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return perr.InvalidArgf("user id must be a uuid")
	}
	return nil
}

func checkIDs(userID, id string) error {
	if err := checkUser(userID); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return perr.WithField(perr.InvalidArgf("transcript id must be a uuid"), "id")
	}
	return nil
}

