// Package observe holds the OpenTelemetry instruments and tracer used to
// watch calls against the remote wiki and the edits they produce.
//
// Tests should build a [Metrics] with [NewMetrics] over their own
// [metric.MeterProvider] instead of relying on the global provider.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/heartmarshall/agpb-backend"

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the application's metric instruments. All fields are safe
// for concurrent use. The Record methods are no-ops on a nil *Metrics.
type Metrics struct {
	// RemoteRequests counts remote API calls by api, action and status.
	RemoteRequests metric.Int64Counter

	// RemoteDuration tracks remote API call latency by api and action.
	RemoteDuration metric.Float64Histogram

	// Edits counts orchestrated edits by edit_type and outcome.
	Edits metric.Int64Counter

	// LedgerFailures counts contribution rows that could not be written after
	// a successful remote edit.
	LedgerFailures metric.Int64Counter

	// HTTPRequestDuration tracks inbound HTTP latency by method, route and status.
	HTTPRequestDuration metric.Float64Histogram
}

var latencyBuckets = []float64{
	0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
}

// NewMetrics creates all instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.RemoteRequests, err = m.Int64Counter("agpb.remote.requests",
		metric.WithDescription("Remote API requests by api, action, and status."),
	); err != nil {
		return nil, err
	}
	if met.RemoteDuration, err = m.Float64Histogram("agpb.remote.duration",
		metric.WithDescription("Latency of remote API requests."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Edits, err = m.Int64Counter("agpb.edits",
		metric.WithDescription("Orchestrated edits by edit type and outcome."),
	); err != nil {
		return nil, err
	}
	if met.LedgerFailures, err = m.Int64Counter("agpb.ledger.failures",
		metric.WithDescription("Contribution rows lost after a successful remote edit."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("agpb.http.request.duration",
		metric.WithDescription("Inbound HTTP request latency."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns a Metrics instance built on the global meter
// provider. It panics if instrument creation fails.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordRemote records one remote API call.
func (m *Metrics) RecordRemote(ctx context.Context, api, action, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	apiAttr := attribute.String("api", api)
	actionAttr := attribute.String("action", action)
	m.RemoteRequests.Add(ctx, 1, metric.WithAttributes(apiAttr, actionAttr, attribute.String("status", status)))
	m.RemoteDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(apiAttr, actionAttr))
}

// RecordEdit records the outcome of one orchestrated edit.
func (m *Metrics) RecordEdit(ctx context.Context, editType, outcome string) {
	if m == nil {
		return
	}
	m.Edits.Add(ctx, 1, metric.WithAttributes(
		attribute.String("edit_type", editType),
		attribute.String("outcome", outcome),
	))
}

// RecordLedgerFailure records a contribution row that was not persisted.
func (m *Metrics) RecordLedgerFailure(ctx context.Context, editType string) {
	if m == nil {
		return
	}
	m.LedgerFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("edit_type", editType)))
}

// RecordHTTP records one inbound request.
func (m *Metrics) RecordHTTP(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	))
}

// Outcome maps an error to an outcome label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
