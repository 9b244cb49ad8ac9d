// Package repo provides the Postgres correction store
package repo

import (
	"context"
	"fmt"
	"strings"

	"scribe/internal/modkit/repokit"
	perr "scribe/internal/platform/errors"
	"scribe/internal/platform/store"
	"scribe/internal/services/corrections/domain"
)

// Repo is the correction persistence surface used by the service layer
type Repo interface {
	Upsert(ctx context.Context, userID, original, corrected string) (domain.Correction, error)
	Increment(ctx context.Context, userID, original, corrected string) (domain.Correction, error)
	List(ctx context.Context, userID string, f Filter) ([]domain.Correction, error)
	Get(ctx context.Context, userID, id string) (domain.Correction, error)
	SetDisabled(ctx context.Context, userID, id string, disabled bool) (domain.Correction, error)
	DeleteAll(ctx context.Context, userID string) (int64, error)
}

// Filter narrows List. Limit <= 0 means no limit
type Filter struct {
	MinCount        int
	IncludeDisabled bool
	Limit           int
}

type (
	// PG is a Postgres implementation of the correction repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const cols = `id::text, user_id::text, original_token, corrected_token, count, first_seen_at, last_seen_at, disabled`

// Upsert inserts a new observation or bumps the existing row in one statement
func (r *queries) Upsert(ctx context.Context, userID, original, corrected string) (domain.Correction, error) {
	const sql = `
		INSERT INTO corrections (user_id, original_token, corrected_token)
		VALUES ($1::uuid, $2, $3)
		ON CONFLICT (user_id, original_token, corrected_token) DO UPDATE
		SET count        = corrections.count + 1,
		    last_seen_at = now()
		RETURNING ` + cols
	return scanOne(r.q.QueryRow(ctx, sql, userID, original, corrected))
}

// Increment bumps an existing row; used after losing an insert race
func (r *queries) Increment(ctx context.Context, userID, original, corrected string) (domain.Correction, error) {
	const sql = `
		UPDATE corrections
		SET count = count + 1, last_seen_at = now()
		WHERE user_id = $1::uuid AND original_token = $2 AND corrected_token = $3
		RETURNING ` + cols
	c, err := scanOne(r.q.QueryRow(ctx, sql, userID, original, corrected))
	if store.NoRows(err) {
		return domain.Correction{}, perr.NotFoundf("correction %q -> %q not found", original, corrected)
	}
	return c, err
}

// List returns the user's corrections ordered by count then recency
func (r *queries) List(ctx context.Context, userID string, f Filter) ([]domain.Correction, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`SELECT ` + cols + `
		FROM corrections
		WHERE user_id = ` + arg(userID) + `::uuid
	`)
	if !f.IncludeDisabled {
		sb.WriteString("  AND disabled = false\n")
	}
	if f.MinCount > 0 {
		sb.WriteString("  AND count >= " + arg(f.MinCount) + "\n")
	}
	sb.WriteString("ORDER BY count DESC, last_seen_at DESC, id")
	if f.Limit > 0 {
		sb.WriteString("\nLIMIT " + arg(f.Limit))
	}

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Correction
	for rows.Next() {
		var c domain.Correction
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.Original, &c.Corrected,
			&c.Count, &c.FirstSeenAt, &c.LastSeenAt, &c.Disabled,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Get fetches one correction owned by userID
func (r *queries) Get(ctx context.Context, userID, id string) (domain.Correction, error) {
	const sql = `SELECT ` + cols + ` FROM corrections WHERE user_id = $1::uuid AND id = $2::uuid`
	c, err := scanOne(r.q.QueryRow(ctx, sql, userID, id))
	if store.NoRows(err) {
		return domain.Correction{}, perr.NotFoundf("correction %s not found", id)
	}
	return c, err
}

// SetDisabled flips the disabled flag and leaves count alone
func (r *queries) SetDisabled(ctx context.Context, userID, id string, disabled bool) (domain.Correction, error) {
	const sql = `
		UPDATE corrections SET disabled = $3
		WHERE user_id = $1::uuid AND id = $2::uuid
		RETURNING ` + cols
	c, err := scanOne(r.q.QueryRow(ctx, sql, userID, id, disabled))
	if store.NoRows(err) {
		return domain.Correction{}, perr.NotFoundf("correction %s not found", id)
	}
	return c, err
}

// DeleteAll removes every correction for userID
func (r *queries) DeleteAll(ctx context.Context, userID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM corrections WHERE user_id = $1::uuid`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanOne(row repokit.Row) (domain.Correction, error) {
	var c domain.Correction
	err := row.Scan(
		&c.ID, &c.UserID, &c.Original, &c.Corrected,
		&c.Count, &c.FirstSeenAt, &c.LastSeenAt, &c.Disabled,
	)
	if err != nil {
		return domain.Correction{}, err
	}
	return c, nil
}
