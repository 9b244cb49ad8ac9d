// Package service contains correction store workflows
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"scribe/internal/modkit/repokit"
	perr "scribe/internal/platform/errors"
	"scribe/internal/platform/logger"
	"scribe/internal/services/corrections/domain"
	"scribe/internal/services/corrections/repo"
)

// Service defines the corrections service contract
type Service interface {
	domain.ServicePort
}

// Config for the corrections service
type Config struct {
	// PageLimit caps Browse results; defaults to 500 if <= 0
	PageLimit int
}

// Svc implements the corrections service
type Svc struct {
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	cfg    Config
	log    *logger.Logger
}

// New constructs a corrections service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], cfg Config) *Svc {
	if db == nil {
		panic("corrections.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("corrections.Service requires a non nil Repo binder")
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 500
	}
	return &Svc{binder: binder, db: db, cfg: cfg, log: logger.Named("corrections")}
}

func (s *Svc) store() repo.Repo { return s.binder.Bind(s.db) }

// Upsert records one observation of original -> corrected for userID.
// A unique violation means a concurrent writer inserted the row first;
// the observation is then applied once more as an increment
func (s *Svc) Upsert(ctx context.Context, userID, original, corrected string) (domain.Correction, error) {
	if err := checkUser(userID); err != nil {
		return domain.Correction{}, err
	}
	original = strings.TrimSpace(original)
	corrected = strings.TrimSpace(corrected)
	if original == "" || corrected == "" {
		return domain.Correction{}, perr.InvalidArgf("original and corrected must be non-empty")
	}

	c, err := s.store().Upsert(ctx, userID, original, corrected)
	if err == nil {
		return c, nil
	}
	if !perr.IsDuplicateKey(err) {
		return domain.Correction{}, perr.FromPostgres(err, "upsert correction")
	}

	s.log.Debug().Str("user_id", userID).Str("original", original).Msg("upsert lost insert race, retrying as increment")
	c, err = s.store().Increment(ctx, userID, original, corrected)
	if err != nil {
		if perr.IsCode(err, perr.CodeNotFound) {
			return domain.Correction{}, err
		}
		return domain.Correction{}, perr.FromPostgres(err, "increment correction")
	}
	return c, nil
}

// List returns enabled corrections with count >= minCount for userID
func (s *Svc) List(ctx context.Context, userID string, minCount int) ([]domain.Correction, error) {
	if err := checkUser(userID); err != nil {
		return nil, err
	}
	out, err := s.store().List(ctx, userID, repo.Filter{MinCount: minCount})
	if err != nil {
		return nil, perr.FromPostgres(err, "list corrections")
	}
	return out, nil
}

// Browse lists corrections for display, optionally including disabled ones
func (s *Svc) Browse(ctx context.Context, userID string, in domain.ListInput) ([]domain.Correction, error) {
	if err := checkUser(userID); err != nil {
		return nil, err
	}
	limit := in.Limit
	if limit <= 0 || limit > s.cfg.PageLimit {
		limit = s.cfg.PageLimit
	}
	out, err := s.store().List(ctx, userID, repo.Filter{
		MinCount:        in.MinCount,
		IncludeDisabled: in.IncludeDisabled,
		Limit:           limit,
	})
	if err != nil {
		return nil, perr.FromPostgres(err, "browse corrections")
	}
	if out == nil {
		out = []domain.Correction{}
	}
	return out, nil
}

// Get returns one correction owned by userID
func (s *Svc) Get(ctx context.Context, userID, id string) (domain.Correction, error) {
	if err := checkIDs(userID, id); err != nil {
		return domain.Correction{}, err
	}
	c, err := s.store().Get(ctx, userID, id)
	return c, perr.FromPostgres(err, "get correction")
}

// Disable stops a correction from being applied
func (s *Svc) Disable(ctx context.Context, userID, id string) (domain.Correction, error) {
	return s.setDisabled(ctx, userID, id, true)
}

// Enable lets a disabled correction apply again
func (s *Svc) Enable(ctx context.Context, userID, id string) (domain.Correction, error) {
	return s.setDisabled(ctx, userID, id, false)
}

func (s *Svc) setDisabled(ctx context.Context, userID, id string, disabled bool) (domain.Correction, error) {
	if err := checkIDs(userID, id); err != nil {
		return domain.Correction{}, err
	}
	c, err := s.store().SetDisabled(ctx, userID, id, disabled)
	if err != nil {
		return domain.Correction{}, perr.FromPostgres(err, "update correction")
	}
	s.log.Info().Str("user_id", userID).Str("correction_id", id).Bool("disabled", disabled).Msg("correction toggled")
	return c, nil
}

// Clear removes the user's entire correction history
func (s *Svc) Clear(ctx context.Context, userID string) (domain.ClearResult, error) {
	if err := checkUser(userID); err != nil {
		return domain.ClearResult{}, err
	}
	var n int64
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		n, err = s.binder.Bind(q).DeleteAll(ctx, userID)
		return err
	})
	if err != nil {
		return domain.ClearResult{}, perr.FromPostgres(err, "clear corrections")
	}
	s.log.Info().Str("user_id", userID).Int64("deleted", n).Msg("correction history cleared")
	return domain.ClearResult{Deleted: n}, nil
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
		return perr.WithField(perr.InvalidArgf("correction id must be a uuid"), "id")
	}
	return nil
}

