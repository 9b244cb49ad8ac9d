package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := New(mp)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func sumWith(t *testing.T, rm metricdata.ResourceMetrics, name string, kv ...attribute.KeyValue) int64 {
	t.Helper()
	m := findMetric(rm, name)
	if m == nil {
		t.Fatalf("metric %q not found", name)
	}
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("metric %q is %T, want Sum[int64]", name, m.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		match := true
		for _, want := range kv {
			if got, ok := dp.Attributes.Value(want.Key); !ok || got != want.Value {
				match = false
			}
		}
		if match {
			total += dp.Value
		}
	}
	return total
}

func TestRecordExtracted_ByKind(t *testing.T) {
	t.Parallel()

	m, reader := newTestMetrics(t)
	ctx := context.Background()
	m.RecordExtracted(ctx, "word", 2)
	m.RecordExtracted(ctx, "phrase", 1)
	m.RecordExtracted(ctx, "word", 0)

	rm := collect(t, reader)
	if got := sumWith(t, rm, "scribe.corrections.extracted", attribute.String("kind", "word")); got != 2 {
		t.Fatalf("word=%d", got)
	}
	if got := sumWith(t, rm, "scribe.corrections.extracted", attribute.String("kind", "phrase")); got != 1 {
		t.Fatalf("phrase=%d", got)
	}
}

func TestRecordPersonalize_FailOpenCounts(t *testing.T) {
	t.Parallel()

	m, reader := newTestMetrics(t)
	ctx := context.Background()
	m.RecordPersonalize(ctx, 0.01, false)
	m.RecordPersonalize(ctx, 0.02, true)
	m.RecordApplied(ctx, 3)
	m.RecordUpsertFailures(ctx, 1)

	rm := collect(t, reader)
	if got := sumWith(t, rm, "scribe.personalize.fail_open"); got != 1 {
		t.Fatalf("fail_open=%d", got)
	}
	if got := sumWith(t, rm, "scribe.corrections.applied"); got != 3 {
		t.Fatalf("applied=%d", got)
	}
	if got := sumWith(t, rm, "scribe.corrections.upsert_failures"); got != 1 {
		t.Fatalf("upsert_failures=%d", got)
	}

	h := findMetric(rm, "scribe.personalize.duration")
	if h == nil {
		t.Fatalf("duration histogram missing")
	}
	hist, ok := h.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("duration is %T", h.Data)
	}
	var n uint64
	for _, dp := range hist.DataPoints {
		n += dp.Count
	}
	if n != 2 {
		t.Fatalf("duration count=%d", n)
	}
}

func TestNilMetrics_NoPanic(t *testing.T) {
	t.Parallel()

	var m *Metrics
	ctx := context.Background()
	m.RecordExtracted(ctx, "word", 1)
	m.RecordUpsertFailures(ctx, 1)
	m.RecordApplied(ctx, 1)
	m.RecordPersonalize(ctx, 1, true)
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	t.Parallel()

	m, reader := newTestMetrics(t)
	r := chi.NewRouter()
	r.Use(Middleware(m))
	r.Get("/transcripts/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/transcripts/abc", nil))
	if rr.Code != http.StatusTeapot {
		t.Fatalf("code=%d", rr.Code)
	}

	rm := collect(t, reader)
	h := findMetric(rm, "scribe.http.request.duration")
	if h == nil {
		t.Fatalf("http duration missing")
	}
	hist := h.Data.(metricdata.Histogram[float64])
	if len(hist.DataPoints) != 1 {
		t.Fatalf("points=%d", len(hist.DataPoints))
	}
	attrs := hist.DataPoints[0].Attributes
	if v, _ := attrs.Value("route"); v.AsString() != "/transcripts/{id}" {
		t.Fatalf("route=%q", v.AsString())
	}
	if v, _ := attrs.Value("status"); v.AsString() != "418" {
		t.Fatalf("status=%q", v.AsString())
	}
}

func TestMiddleware_NilMetricsPassThrough(t *testing.T) {
	t.Parallel()

	called := false
	h := Middleware(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Fatalf("next not called")
	}
}

func TestInitProvider_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	shutdown, err := InitProvider(context.Background(), ProviderConfig{ServiceVersion: "test", Registerer: reg})
	if err != nil {
		t.Fatalf("InitProvider: %v", err)
	}
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	if _, err := reg.Gather(); err != nil {
		t.Fatalf("Gather: %v", err)
	}
}
