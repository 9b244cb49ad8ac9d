package http

import (
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	perr "scribe/internal/platform/errors"
	pnet "scribe/internal/platform/net"
	phttp "scribe/internal/platform/net/http"
	persdomain "scribe/internal/services/personalize/domain"
	"scribe/internal/services/transcripts/domain"
)

type stubSvc struct {
	lastUser string
	lastID   string
	lastIn   any
	err      error
}

func (s *stubSvc) Create(_ context.Context, u string, in domain.CreateInput) (domain.Created, error) {
	s.lastUser, s.lastIn = u, in
	return domain.Created{Transcript: domain.Transcript{ID: "t1", RawText: in.RawText, PersonalizedText: in.RawText}}, s.err
}

func (s *stubSvc) Get(_ context.Context, u, id string) (domain.Transcript, error) {
	s.lastUser, s.lastID = u, id
	return domain.Transcript{ID: id}, s.err
}

func (s *stubSvc) List(_ context.Context, u string, in domain.ListInput) ([]domain.Transcript, error) {
	s.lastUser, s.lastIn = u, in
	return []domain.Transcript{}, s.err
}

func (s *stubSvc) UpdateFinal(_ context.Context, u, id string, in domain.FinalInput) (domain.Edited, error) {
	s.lastUser, s.lastID, s.lastIn = u, id, in
	return domain.Edited{
		Transcript: domain.Transcript{ID: id, FinalText: &in.FinalText},
		Learning:   persdomain.EditResult{CorrectionsEmitted: 1, CorrectionsStored: 1},
	}, s.err
}

func (s *stubSvc) Delete(_ context.Context, u, id string) error {
	s.lastUser, s.lastID = u, id
	return s.err
}

func (s *stubSvc) RawText(context.Context, string, string) (string, error) { return "", nil }

const uid = "6f1c2b8e-0d4a-4c1e-9b7a-2f3e4d5c6b7a"

func newRouter(svc domain.ServicePort, withUser bool) stdhttp.Handler {
	m := chi.NewRouter()
	if withUser {
		m.Use(func(next stdhttp.Handler) stdhttp.Handler {
			return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
				next.ServeHTTP(w, r.WithContext(pnet.WithUser(r.Context(), uid)))
			})
		})
	}
	r := phttp.AdaptChi(m)
	r.Route("/transcripts", func(rr phttp.Router) { Register(rr, svc) })
	return m
}

func do(t *testing.T, h stdhttp.Handler, method, target, body string) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	h.ServeHTTP(rec, req)
	var env phttp.Envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
		}
	}
	return rec, env
}

func TestCreate(t *testing.T) {
	t.Parallel()
	svc := &stubSvc{}
	rec, _ := do(t, newRouter(svc, true), stdhttp.MethodPost, "/transcripts/", `{"raw_text":"see you at the pub","min_count":1}`)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	in, _ := svc.lastIn.(domain.CreateInput)
	if svc.lastUser != uid || in.RawText != "see you at the pub" || in.MinCount != 1 {
		t.Fatalf("user=%q in=%+v", svc.lastUser, in)
	}
}

func TestCreate_RejectsBadThreshold(t *testing.T) {
	t.Parallel()
	svc := &stubSvc{}
	rec, env := do(t, newRouter(svc, true), stdhttp.MethodPost, "/transcripts/", `{"raw_text":"x","min_count":-2}`)
	if rec.Code != stdhttp.StatusBadRequest || env.Code != perr.CodeValidation {
		t.Fatalf("status=%d code=%v", rec.Code, env.Code)
	}
	if svc.lastUser != "" {
		t.Fatalf("service called")
	}
}

func TestFinal_PassesIDAndBody(t *testing.T) {
	t.Parallel()
	svc := &stubSvc{}
	rec, env := do(t, newRouter(svc, true), stdhttp.MethodPut, "/transcripts/t-9/final", `{"final_text":"see you at the office"}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if svc.lastID != "t-9" {
		t.Fatalf("id=%q", svc.lastID)
	}
	data, _ := env.Data.(map[string]any)
	learning, _ := data["learning"].(map[string]any)
	if learning["corrections_emitted"] != float64(1) {
		t.Fatalf("learning=%v", data["learning"])
	}
}

func TestList_ParsesCursor(t *testing.T) {
	t.Parallel()
	svc := &stubSvc{}
	h := newRouter(svc, true)

	rec, _ := do(t, h, stdhttp.MethodGet, "/transcripts/?limit=5&before=2026-04-01T10:00:00Z", "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	in, _ := svc.lastIn.(domain.ListInput)
	want := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	if in.Limit != 5 || in.Before == nil || !in.Before.Equal(want) {
		t.Fatalf("in=%+v", in)
	}

	if rec, _ := do(t, h, stdhttp.MethodGet, "/transcripts/?before=yesterday", ""); rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("bad cursor status=%d", rec.Code)
	}
}

func TestDelete_NotFound(t *testing.T) {
	t.Parallel()
	svc := &stubSvc{err: perr.NotFoundf("transcript x not found")}
	rec, env := do(t, newRouter(svc, true), stdhttp.MethodDelete, "/transcripts/x", "")
	if rec.Code != stdhttp.StatusNotFound || env.Code != perr.CodeNotFound {
		t.Fatalf("status=%d code=%v", rec.Code, env.Code)
	}
}

func TestMissingUserIsUnauthorized(t *testing.T) {
	t.Parallel()
	rec, _ := do(t, newRouter(&stubSvc{}, false), stdhttp.MethodGet, "/transcripts/abc", "")
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status=%d", rec.Code)
	}
}
