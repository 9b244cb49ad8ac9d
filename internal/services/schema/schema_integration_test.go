//go:build integration_pg
// +build integration_pg

package schema

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	perr "scribe/internal/platform/errors"
	"scribe/internal/platform/store"
	corrrepo "scribe/internal/services/corrections/repo"
	trrepo "scribe/internal/services/transcripts/repo"
)

const (
	alice = "6f1c2b8e-0d4a-4c1e-9b7a-2f3e4d5c6b7a"
	bob   = "0b7c4a8e-3f1d-4c55-9d7e-5a0f0e6f2b11"
)

func startPostgres(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "postgres",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, port.Port())
}

func openStore(t *testing.T, dsn string) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), store.Config{
		AppName: "scribe-schema-integration",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 4},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return st
}

func TestMigrationsAndRepos_Integration(t *testing.T) {
	st := openStore(t, startPostgres(t))
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	applied, err := ApplyPG(ctx, st.PG)
	if err != nil {
		t.Fatalf("ApplyPG: %v", err)
	}
	if len(applied) != 2 {
		t.Fatalf("applied = %v, want two migrations", applied)
	}
	again, err := ApplyPG(ctx, st.PG)
	if err != nil || len(again) != 0 {
		t.Fatalf("rerun applied %v err %v, want nothing", again, err)
	}

	t.Run("corrections", func(t *testing.T) {
		r := corrrepo.NewPG().Bind(st.PG)

		first, err := r.Upsert(ctx, alice, "pub", "office")
		if err != nil {
			t.Fatalf("Upsert: %v", err)
		}
		if first.Count != 1 || first.Disabled {
			t.Fatalf("first = %+v", first)
		}
		second, err := r.Upsert(ctx, alice, "pub", "office")
		if err != nil {
			t.Fatalf("Upsert again: %v", err)
		}
		if second.ID != first.ID || second.Count != 2 {
			t.Fatalf("second = %+v, want same row with count 2", second)
		}
		if !second.LastSeenAt.After(first.LastSeenAt) && !second.LastSeenAt.Equal(first.LastSeenAt) {
			t.Fatalf("last_seen_at moved backwards")
		}

		if _, err := r.Upsert(ctx, alice, "teh", "the"); err != nil {
			t.Fatalf("Upsert teh: %v", err)
		}
		if _, err := r.Upsert(ctx, bob, "pub", "office"); err != nil {
			t.Fatalf("Upsert bob: %v", err)
		}

		list, err := r.List(ctx, alice, corrrepo.Filter{})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(list) != 2 || list[0].Original != "pub" {
			t.Fatalf("list = %+v, want pub first by count", list)
		}
		ranked, err := r.List(ctx, alice, corrrepo.Filter{MinCount: 2})
		if err != nil || len(ranked) != 1 {
			t.Fatalf("min count list = %+v err %v", ranked, err)
		}

		off, err := r.SetDisabled(ctx, alice, first.ID, true)
		if err != nil || !off.Disabled || off.Count != 2 {
			t.Fatalf("disable = %+v err %v", off, err)
		}
		enabled, err := r.List(ctx, alice, corrrepo.Filter{})
		if err != nil || len(enabled) != 1 {
			t.Fatalf("enabled list = %+v err %v", enabled, err)
		}
		all, err := r.List(ctx, alice, corrrepo.Filter{IncludeDisabled: true})
		if err != nil || len(all) != 2 {
			t.Fatalf("full list = %+v err %v", all, err)
		}

		if _, err := r.Get(ctx, bob, first.ID); !perr.IsCode(err, perr.CodeNotFound) {
			t.Fatalf("cross-user Get err = %v, want not found", err)
		}
		if _, err := r.Increment(ctx, alice, "nope", "never"); !perr.IsCode(err, perr.CodeNotFound) {
			t.Fatalf("Increment missing err = %v, want not found", err)
		}

		n, err := r.DeleteAll(ctx, alice)
		if err != nil || n != 2 {
			t.Fatalf("DeleteAll = %d err %v", n, err)
		}
		left, err := r.List(ctx, bob, corrrepo.Filter{})
		if err != nil || len(left) != 1 {
			t.Fatalf("bob lost rows: %+v err %v", left, err)
		}
	})

	t.Run("corrections reject blank sides", func(t *testing.T) {
		r := corrrepo.NewPG().Bind(st.PG)
		if _, err := r.Upsert(ctx, alice, "  ", "x"); err == nil {
			t.Fatalf("expected check violation for blank original")
		}
	})

	t.Run("transcripts", func(t *testing.T) {
		r := trrepo.NewPG().Bind(st.PG)

		older, err := r.Insert(ctx, trrepo.NewTranscript{UserID: alice, RawText: "meet me at the pub", PersonalizedText: "meet me at the office"})
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
		newer, err := r.Insert(ctx, trrepo.NewTranscript{UserID: alice, Title: "notes", RawText: "b", PersonalizedText: "b"})
		if err != nil {
			t.Fatalf("Insert newer: %v", err)
		}

		list, err := r.List(ctx, alice, nil, 10)
		if err != nil || len(list) != 2 || list[0].ID != newer.ID {
			t.Fatalf("list = %+v err %v", list, err)
		}
		page, err := r.List(ctx, alice, &newer.CreatedAt, 10)
		if err != nil {
			t.Fatalf("List before: %v", err)
		}
		for _, tr := range page {
			if !tr.CreatedAt.Before(newer.CreatedAt) {
				t.Fatalf("cursor leaked %+v", tr)
			}
		}

		edited, err := r.SetFinal(ctx, alice, older.ID, "meet me at the office now")
		if err != nil || edited.FinalText == nil || *edited.FinalText != "meet me at the office now" {
			t.Fatalf("SetFinal = %+v err %v", edited, err)
		}
		if edited.RawText != older.RawText || edited.PersonalizedText != older.PersonalizedText {
			t.Fatalf("SetFinal touched raw or personalised text: %+v", edited)
		}

		raw, err := r.RawText(ctx, alice, older.ID)
		if err != nil || raw != "meet me at the pub" {
			t.Fatalf("RawText = %q err %v", raw, err)
		}
		if _, err := r.RawText(ctx, bob, older.ID); !perr.IsCode(err, perr.CodeNotFound) {
			t.Fatalf("cross-user RawText err = %v", err)
		}

		if err := r.Delete(ctx, alice, older.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if err := r.Delete(ctx, alice, older.ID); !perr.IsCode(err, perr.CodeNotFound) {
			t.Fatalf("second Delete err = %v", err)
		}
		if _, err := r.Get(ctx, alice, older.ID); !perr.IsCode(err, perr.CodeNotFound) {
			t.Fatalf("Get after delete err = %v", err)
		}
	})
}
