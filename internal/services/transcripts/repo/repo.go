// Package repo provides the Postgres transcript store
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scribe/internal/modkit/repokit"
	perr "scribe/internal/platform/errors"
	"scribe/internal/platform/store"
	"scribe/internal/services/transcripts/domain"
)

// Repo is the transcript persistence surface used by the service layer
type Repo interface {
	Insert(ctx context.Context, in NewTranscript) (domain.Transcript, error)
	Get(ctx context.Context, userID, id string) (domain.Transcript, error)
	List(ctx context.Context, userID string, before *time.Time, limit int) ([]domain.Transcript, error)
	SetFinal(ctx context.Context, userID, id, final string) (domain.Transcript, error)
	Delete(ctx context.Context, userID, id string) error
	RawText(ctx context.Context, userID, id string) (string, error)
}

// NewTranscript is the row Insert writes
type NewTranscript struct {
	UserID           string
	Title            string
	RawText          string
	PersonalizedText string
}

type (
	// PG is a Postgres implementation of the transcript repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const cols = `id::text, user_id::text, title, raw_text, personalized_text, final_text, created_at, updated_at`

// Insert stores a new transcript and returns it with server defaults filled in
func (r *queries) Insert(ctx context.Context, in NewTranscript) (domain.Transcript, error) {
	const sql = `
		INSERT INTO transcripts (user_id, title, raw_text, personalized_text)
		VALUES ($1::uuid, $2, $3, $4)
		RETURNING ` + cols
	return scan(r.q.QueryRow(ctx, sql, in.UserID, in.Title, in.RawText, in.PersonalizedText))
}

// Get fetches one transcript owned by userID
func (r *queries) Get(ctx context.Context, userID, id string) (domain.Transcript, error) {
	const sql = `SELECT ` + cols + ` FROM transcripts WHERE user_id = $1::uuid AND id = $2::uuid`
	t, err := store.One(ctx, r.q, scan, sql, userID, id)
	if perr.IsCode(err, perr.CodeNotFound) {
		return domain.Transcript{}, perr.NotFoundf("transcript %s not found", id)
	}
	return t, err
}

// List returns the user's transcripts newest first, optionally before a cursor
func (r *queries) List(ctx context.Context, userID string, before *time.Time, limit int) ([]domain.Transcript, error) {
	var sb strings.Builder
	args := []any{userID}
	sb.WriteString(`SELECT ` + cols + `
		FROM transcripts
		WHERE user_id = $1::uuid
	`)
	if before != nil {
		args = append(args, *before)
		sb.WriteString(fmt.Sprintf("  AND created_at < $%d\n", len(args)))
	}
	sb.WriteString("ORDER BY created_at DESC, id DESC")
	if limit > 0 {
		args = append(args, limit)
		sb.WriteString(fmt.Sprintf("\nLIMIT $%d", len(args)))
	}
	return store.Many(ctx, r.q, scan, sb.String(), args...)
}

// SetFinal saves the user's edit; raw and personalised text are untouched
func (r *queries) SetFinal(ctx context.Context, userID, id, final string) (domain.Transcript, error) {
	const sql = `
		UPDATE transcripts SET final_text = $3, updated_at = now()
		WHERE user_id = $1::uuid AND id = $2::uuid
		RETURNING ` + cols
	t, err := scan(r.q.QueryRow(ctx, sql, userID, id, final))
	if store.NoRows(err) {
		return domain.Transcript{}, perr.NotFoundf("transcript %s not found", id)
	}
	return t, err
}

// Delete removes one transcript owned by userID
func (r *queries) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM transcripts WHERE user_id = $1::uuid AND id = $2::uuid`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("transcript %s not found", id)
	}
	return nil
}

// RawText returns the recogniser output for one transcript owned by userID
func (r *queries) RawText(ctx context.Context, userID, id string) (string, error) {
	const sql = `SELECT raw_text FROM transcripts WHERE user_id = $1::uuid AND id = $2::uuid`
	raw, err := store.Scalar[string](ctx, r.q, sql, userID, id)
	if store.NoRows(err) {
		return "", perr.NotFoundf("transcript %s not found", id)
	}
	return raw, err
}

func scan(row repokit.Row) (domain.Transcript, error) {
	var t domain.Transcript
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.RawText,
		&t.PersonalizedText, &t.FinalText, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Transcript{}, err
	}
	return t, nil
}
