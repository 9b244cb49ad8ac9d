// Package metrics holds the OpenTelemetry instruments recorded by scribe
// and the Prometheus bridge that exposes them on /metrics
package metrics

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "scribe"

// Metrics groups every instrument the engine records
type Metrics struct {
	// CorrectionsExtracted counts extractor output, by kind (word, phrase)
	CorrectionsExtracted metric.Int64Counter

	// UpsertFailures counts corrections that could not be persisted
	UpsertFailures metric.Int64Counter

	// CorrectionsApplied counts replacements made by the applier
	CorrectionsApplied metric.Int64Counter

	// FailOpen counts personalise calls that returned raw text because the store failed
	FailOpen metric.Int64Counter

	PersonalizeDuration metric.Float64Histogram
	HTTPRequestDuration metric.Float64Histogram
}

// New creates the instruments on mp
func New(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	out := &Metrics{}
	var err error

	if out.CorrectionsExtracted, err = m.Int64Counter("scribe.corrections.extracted",
		metric.WithDescription("Corrections emitted by the extractor, by kind."),
	); err != nil {
		return nil, err
	}
	if out.UpsertFailures, err = m.Int64Counter("scribe.corrections.upsert_failures",
		metric.WithDescription("Corrections dropped because the store rejected them."),
	); err != nil {
		return nil, err
	}
	if out.CorrectionsApplied, err = m.Int64Counter("scribe.corrections.applied",
		metric.WithDescription("Replacements made while personalising text."),
	); err != nil {
		return nil, err
	}
	if out.FailOpen, err = m.Int64Counter("scribe.personalize.fail_open",
		metric.WithDescription("Personalise calls that returned raw text after a store failure."),
	); err != nil {
		return nil, err
	}
	if out.PersonalizeDuration, err = m.Float64Histogram("scribe.personalize.duration",
		metric.WithDescription("Time to load rules and personalise one text."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if out.HTTPRequestDuration, err = m.Float64Histogram("scribe.http.request.duration",
		metric.WithDescription("HTTP request latency by method, route and status."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	return out, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// Default returns the process wide instruments built on otel.GetMeterProvider.
// Call InitProvider first if the instruments should be exported
func Default() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = New(otel.GetMeterProvider())
		if err != nil {
			panic("metrics: create default instruments: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordExtracted adds n extracted corrections of the given kind
func (m *Metrics) RecordExtracted(ctx context.Context, kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.CorrectionsExtracted.Add(ctx, int64(n), metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordUpsertFailures adds n failed upserts
func (m *Metrics) RecordUpsertFailures(ctx context.Context, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.UpsertFailures.Add(ctx, int64(n))
}

// RecordApplied adds n replacements
func (m *Metrics) RecordApplied(ctx context.Context, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.CorrectionsApplied.Add(ctx, int64(n))
}

// RecordPersonalize records one personalise call
func (m *Metrics) RecordPersonalize(ctx context.Context, seconds float64, failedOpen bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if failedOpen {
		outcome = "fail_open"
		m.FailOpen.Add(ctx, 1)
	}
	m.PersonalizeDuration.Record(ctx, seconds, metric.WithAttributes(attribute.String("outcome", outcome)))
}
