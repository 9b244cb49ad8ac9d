package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	pnet "scribe/internal/platform/net"
	phttp "scribe/internal/platform/net/http"
	"scribe/internal/services/personalize/domain"
)

type stubLearner struct {
	user, text string
	minCount   int
	calls      int
}

func (s *stubLearner) OnEdit(context.Context, string, string, string) domain.EditResult {
	return domain.EditResult{}
}

func (s *stubLearner) Personalize(_ context.Context, userID, raw string, minCount int) domain.Result {
	s.calls++
	s.user, s.text, s.minCount = userID, raw, minCount
	return domain.Result{Text: strings.ReplaceAll(raw, "pub", "office")}
}

const uid = "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"

func newRouter(l domain.LearnerPort, withUser bool) stdhttp.Handler {
	m := chi.NewRouter()
	if withUser {
		m.Use(func(next stdhttp.Handler) stdhttp.Handler {
			return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
				next.ServeHTTP(w, r.WithContext(pnet.WithUser(r.Context(), uid)))
			})
		})
	}
	r := phttp.AdaptChi(m)
	r.Route("/personalize", func(rr phttp.Router) { Register(rr, l) })
	return m
}

func post(t *testing.T, h stdhttp.Handler, body string) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodPost, "/personalize/preview", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return rec, env
}

func TestPreview_OK(t *testing.T) {
	t.Parallel()

	l := &stubLearner{}
	rec, env := post(t, newRouter(l, true), `{"text":"see you at the pub","min_count":1}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body.String())
	}
	if l.user != uid || l.minCount != 1 || l.text != "see you at the pub" {
		t.Fatalf("learner got user=%q min=%d text=%q", l.user, l.minCount, l.text)
	}
	data, _ := env.Data.(map[string]any)
	if data["text"] != "see you at the office" {
		t.Fatalf("data=%v", env.Data)
	}
}

func TestPreview_RequiresUser(t *testing.T) {
	t.Parallel()

	l := &stubLearner{}
	rec, _ := post(t, newRouter(l, false), `{"text":"x"}`)
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("code=%d", rec.Code)
	}
	if l.calls != 0 {
		t.Fatalf("learner called without a user")
	}
}

func TestPreview_ValidatesBody(t *testing.T) {
	t.Parallel()

	l := &stubLearner{}
	for _, body := range []string{`{"text":""}`, `{"text":"x","min_count":-1}`} {
		rec, _ := post(t, newRouter(l, true), body)
		if rec.Code != stdhttp.StatusBadRequest {
			t.Fatalf("%s: code=%d", body, rec.Code)
		}
	}
	if l.calls != 0 {
		t.Fatalf("learner called with invalid input")
	}
}
