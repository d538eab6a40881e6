package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otel_metric "go.opentelemetry.io/otel/metric"
)

type NormalizeMetrics struct {
	normalized otel_metric.Int64Counter
	failed     otel_metric.Int64Counter
	dropped    otel_metric.Int64Counter
}

func NewNormalizeMetrics() (*NormalizeMetrics, error) {
	meter := otel.Meter("options-cleaner/normalize")

	normalized, err := meter.Int64Counter("option_records.normalized", otel_metric.WithDescription("records written after normalization"))
	if err != nil {
		return nil, fmt.Errorf("NewNormalizeMetrics: %w", err)
	}

	failed, err := meter.Int64Counter("option_records.failed", otel_metric.WithDescription("records rejected during load or normalization"))
	if err != nil {
		return nil, fmt.Errorf("NewNormalizeMetrics: %w", err)
	}

	dropped, err := meter.Int64Counter("option_records.dropped", otel_metric.WithDescription("records outside the run scope"))
	if err != nil {
		return nil, fmt.Errorf("NewNormalizeMetrics: %w", err)
	}

	return &NormalizeMetrics{
		normalized: normalized,
		failed:     failed,
		dropped:    dropped,
	}, nil
}

func (m *NormalizeMetrics) Record(ctx context.Context, source string, normalized, failed, dropped int) {
	attrs := otel_metric.WithAttributes(attribute.String("source", source))
	m.normalized.Add(ctx, int64(normalized), attrs)
	m.failed.Add(ctx, int64(failed), attrs)
	m.dropped.Add(ctx, int64(dropped), attrs)
}
