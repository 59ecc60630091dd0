package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ActionMetrics counts action outcomes and records their latency
type ActionMetrics struct {
	results  metric.Int64Counter
	duration metric.Float64Histogram
}

// NewActionMetrics creates the instruments on the given meter
func NewActionMetrics(meter metric.Meter) (*ActionMetrics, error) {
	results, err := meter.Int64Counter("orgdesk.action.results",
		metric.WithDescription("Action results by action name and status"),
		metric.WithUnit("{result}"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("orgdesk.action.duration",
		metric.WithDescription("Action latency"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	return &ActionMetrics{results: results, duration: duration}, nil
}

// ObserveAction records one finished action
func (m *ActionMetrics) ObserveAction(ctx context.Context, action, status string, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("status", status),
	)
	m.results.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}
