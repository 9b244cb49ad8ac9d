package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "scribe/internal/platform/errors"
	pnet "scribe/internal/platform/net"
	phttp "scribe/internal/platform/net/http"
	"scribe/internal/services/corrections/domain"
)

type stubSvc struct {
	lastUser string
	lastID   string
	lastIn   domain.ListInput
	err      error
}

func (s *stubSvc) Upsert(context.Context, string, string, string) (domain.Correction, error) {
	return domain.Correction{}, nil
}

func (s *stubSvc) List(context.Context, string, int) ([]domain.Correction, error) { return nil, nil }

func (s *stubSvc) Disable(_ context.Context, u, id string) (domain.Correction, error) {
	s.lastUser, s.lastID = u, id
	return domain.Correction{ID: id, Disabled: true}, s.err
}

func (s *stubSvc) Enable(_ context.Context, u, id string) (domain.Correction, error) {
	s.lastUser, s.lastID = u, id
	return domain.Correction{ID: id}, s.err
}

func (s *stubSvc) Get(_ context.Context, u, id string) (domain.Correction, error) {
	s.lastUser, s.lastID = u, id
	return domain.Correction{ID: id}, s.err
}

func (s *stubSvc) Browse(_ context.Context, u string, in domain.ListInput) ([]domain.Correction, error) {
	s.lastUser, s.lastIn = u, in
	return []domain.Correction{{ID: "c1", Original: "pub", Corrected: "office", Count: 2}}, s.err
}

func (s *stubSvc) Clear(_ context.Context, u string) (domain.ClearResult, error) {
	s.lastUser = u
	return domain.ClearResult{Deleted: 4}, s.err
}

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
	r.Route("/corrections", func(rr phttp.Router) { Register(rr, svc) })
	return m
}

func do(t *testing.T, h stdhttp.Handler, method, target string) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	var env phttp.Envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
		}
	}
	return rec, env
}

func TestList_PassesQueryAndUser(t *testing.T) {
	t.Parallel()
	svc := &stubSvc{}
	rec, _ := do(t, newRouter(svc, true), stdhttp.MethodGet, "/corrections/?min_count=3&include_disabled=true&limit=20")

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if svc.lastUser != uid {
		t.Fatalf("user = %q", svc.lastUser)
	}
	want := domain.ListInput{MinCount: 3, IncludeDisabled: true, Limit: 20}
	if svc.lastIn != want {
		t.Fatalf("input = %+v, want %+v", svc.lastIn, want)
	}
}

func TestList_RejectsBadQuery(t *testing.T) {
	t.Parallel()
	svc := &stubSvc{}
	h := newRouter(svc, true)

	if rec, _ := do(t, h, stdhttp.MethodGet, "/corrections/?min_count=abc"); rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("non-int status = %d", rec.Code)
	}
	if rec, env := do(t, h, stdhttp.MethodGet, "/corrections/?limit=9999"); rec.Code != stdhttp.StatusBadRequest || env.Code != perr.CodeValidation {
		t.Fatalf("limit too large status = %d code = %v", rec.Code, env.Code)
	}
}

func TestDisableEnable_RouteParam(t *testing.T) {
	t.Parallel()
	svc := &stubSvc{}
	h := newRouter(svc, true)

	if rec, _ := do(t, h, stdhttp.MethodPost, "/corrections/abc-123/disable"); rec.Code != stdhttp.StatusOK {
		t.Fatalf("disable status = %d", rec.Code)
	}
	if svc.lastID != "abc-123" {
		t.Fatalf("id = %q", svc.lastID)
	}
	if rec, _ := do(t, h, stdhttp.MethodPost, "/corrections/xyz/enable"); rec.Code != stdhttp.StatusOK || svc.lastID != "xyz" {
		t.Fatalf("enable status = %d id = %q", rec.Code, svc.lastID)
	}
}

func TestGet_NotFoundMapsTo404(t *testing.T) {
	t.Parallel()
	svc := &stubSvc{err: perr.NotFoundf("correction x not found")}
	rec, env := do(t, newRouter(svc, true), stdhttp.MethodGet, "/corrections/x")

	if rec.Code != stdhttp.StatusNotFound || env.Code != perr.CodeNotFound {
		t.Fatalf("status = %d code = %v", rec.Code, env.Code)
	}
}

func TestClear(t *testing.T) {
	t.Parallel()
	svc := &stubSvc{}
	rec, _ := do(t, newRouter(svc, true), stdhttp.MethodDelete, "/corrections/")
	if rec.Code != stdhttp.StatusOK || svc.lastUser != uid {
		t.Fatalf("status = %d user = %q", rec.Code, svc.lastUser)
	}
}

func TestMissingUserIsUnauthorized(t *testing.T) {
	t.Parallel()
	rec, _ := do(t, newRouter(&stubSvc{}, false), stdhttp.MethodGet, "/corrections/")
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}
