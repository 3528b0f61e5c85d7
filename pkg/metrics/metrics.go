// Package metrics owns the OpenTelemetry instruments of the service and the
// Prometheus exporter they are read through.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "pen"

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// NewMeterProvider returns a meter provider whose readings are registered on
// reg through the OpenTelemetry Prometheus exporter.
func NewMeterProvider(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}

// Recorder records domain events. A nil *Recorder is valid and records nothing.
type Recorder struct {
	verdicts     metric.Int64Counter
	decisions    metric.Int64Counter
	scanDuration metric.Float64Histogram
	jobs         metric.Int64Counter
}

// NewRecorder creates the instruments on mp.
func NewRecorder(mp metric.MeterProvider) (*Recorder, error) {
	meter := mp.Meter(meterName)

	verdicts, err := meter.Int64Counter("pen_scan_verdicts",
		metric.WithDescription("Scan verdicts by status."))
	if err != nil {
		return nil, fmt.Errorf("could not create verdict counter: %w", err)
	}

	decisions, err := meter.Int64Counter("pen_access_decisions",
		metric.WithDescription("Access decisions by scope and outcome."))
	if err != nil {
		return nil, fmt.Errorf("could not create decision counter: %w", err)
	}

	scanDuration, err := meter.Float64Histogram("pen_scan_duration",
		metric.WithUnit("s"),
		metric.WithDescription("Time spent evaluating a URL, delay excluded."),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create scan histogram: %w", err)
	}

	jobs, err := meter.Int64Counter("pen_jobs",
		metric.WithDescription("Background jobs by kind and outcome."))
	if err != nil {
		return nil, fmt.Errorf("could not create job counter: %w", err)
	}

	return &Recorder{
		verdicts:     verdicts,
		decisions:    decisions,
		scanDuration: scanDuration,
		jobs:         jobs,
	}, nil
}

func (r *Recorder) Verdict(ctx context.Context, status string) {
	if r == nil {
		return
	}
	r.verdicts.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// Decision counts an access decision. scope is "route" or "content".
func (r *Recorder) Decision(ctx context.Context, scope, kind string) {
	if r == nil {
		return
	}
	r.decisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scope", scope),
		attribute.String("decision", kind),
	))
}

func (r *Recorder) ScanDuration(ctx context.Context, evaluator string, d time.Duration) {
	if r == nil {
		return
	}
	r.scanDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("evaluator", evaluator)))
}

func (r *Recorder) Job(ctx context.Context, kind string, failed bool) {
	if r == nil {
		return
	}
	outcome := "ok"
	if failed {
		outcome = "failed"
	}
	r.jobs.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}
