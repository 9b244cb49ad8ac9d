// Package schema owns the postgres and clickhouse DDL and applies it in version order
package schema

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"scribe/internal/platform/logger"
	"scribe/internal/platform/store"
)

//go:embed pg/*.sql ch/*.sql
var files embed.FS

// lockKey serialises concurrent migrators on the same database
const lockKey = 0x736372696265 // "scribe"

// Migration is one numbered DDL file
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// PG returns the embedded postgres migrations in version order
func PG() ([]Migration, error) { return load(files, "pg") }

// CH returns the embedded clickhouse migrations in version order
func CH() ([]Migration, error) { return load(files, "ch") }

func load(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", dir, err)
	}
	var out []Migration
	seen := map[int]string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		var v int
		if _, err := fmt.Sscanf(name, "%d_", &v); err != nil || v <= 0 {
			return nil, fmt.Errorf("schema: bad migration name %s/%s", dir, name)
		}
		if prev, dup := seen[v]; dup {
			return nil, fmt.Errorf("schema: version %d used by %s and %s", v, prev, name)
		}
		seen[v] = name
		body, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("schema: read %s: %w", name, err)
		}
		out = append(out, Migration{Version: v, Name: name, SQL: string(body)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

const ddlVersions = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    INTEGER      PRIMARY KEY,
    name       TEXT         NOT NULL,
    applied_at TIMESTAMPTZ  NOT NULL DEFAULT now()
)`

// ApplyPG runs every pending postgres migration, one transaction each.
// It returns the versions it applied
func ApplyPG(ctx context.Context, db store.TxRunner) ([]int, error) {
	ms, err := PG()
	if err != nil {
		return nil, err
	}
	return applyPG(ctx, db, ms)
}

func applyPG(ctx context.Context, db store.TxRunner, ms []Migration) ([]int, error) {
	log := logger.C(ctx).With().Str("component", "schema").Logger()

	if _, err := db.Exec(ctx, ddlVersions); err != nil {
		return nil, fmt.Errorf("schema: create schema_migrations: %w", err)
	}

	var applied []int
	for _, m := range ms {
		ran := false
		err := db.Tx(ctx, func(q store.RowQuerier) error {
			if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(lockKey)); err != nil {
				return err
			}
			done, err := store.Scalar[bool](ctx, q,
				`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, m.Version)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
			if _, err := q.Exec(ctx, m.SQL); err != nil {
				return err
			}
			ran = true
			return store.ExecOne(ctx, q,
				`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.Version, m.Name)
		})
		if err != nil {
			return applied, fmt.Errorf("schema: apply %s: %w", m.Name, err)
		}
		if ran {
			log.Info().Int("version", m.Version).Str("name", m.Name).Msg("pg migration applied")
			applied = append(applied, m.Version)
		}
	}
	return applied, nil
}

// ApplyCH runs every clickhouse migration; they are written to be idempotent
func ApplyCH(ctx context.Context, ch store.Clickhouse) error {
	ms, err := CH()
	if err != nil {
		return err
	}
	for _, m := range ms {
		if err := ch.Exec(ctx, m.SQL); err != nil {
			return fmt.Errorf("schema: apply ch %s: %w", m.Name, err)
		}
	}
	logger.C(ctx).Info().Str("component", "schema").Int("count", len(ms)).Msg("ch migrations applied")
	return nil
}
