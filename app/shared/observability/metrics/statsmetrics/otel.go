package statsmetrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics implements StatsMetrics on an OTel meter.
type OTelMetrics struct {
	operationAttempts  metric.Int64Counter
	operationSuccesses metric.Int64Counter
	operationFailures  metric.Int64Counter
	operationDuration  metric.Float64Histogram
	jobsEnqueued       metric.Int64Counter
	artifactsBuilt     metric.Int64Counter
	handlerAttempts    metric.Int64Counter
	handlerSuccesses   metric.Int64Counter
	handlerFailures    metric.Int64Counter
	handlerDuration    metric.Float64Histogram
}

// NewOTelMetrics builds the stats instrument set on the given meter.
func NewOTelMetrics(meter metric.Meter) (*OTelMetrics, error) {
	m := &OTelMetrics{}

	var err error
	if m.operationAttempts, err = meter.Int64Counter("stats_operation_attempts_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.operationSuccesses, err = meter.Int64Counter("stats_operation_successes_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.operationFailures, err = meter.Int64Counter("stats_operation_failures_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.operationDuration, err = meter.Float64Histogram("stats_operation_duration_seconds"); err != nil {
		return nil, fmt.Errorf("failed to create histogram: %w", err)
	}
	if m.jobsEnqueued, err = meter.Int64Counter("stats_jobs_enqueued_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.artifactsBuilt, err = meter.Int64Counter("stats_artifacts_built_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.handlerAttempts, err = meter.Int64Counter("stats_handler_attempts_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.handlerSuccesses, err = meter.Int64Counter("stats_handler_successes_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.handlerFailures, err = meter.Int64Counter("stats_handler_failures_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.handlerDuration, err = meter.Float64Histogram("stats_handler_duration_seconds"); err != nil {
		return nil, fmt.Errorf("failed to create histogram: %w", err)
	}

	return m, nil
}

func operationAttrs(operation, service string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("service", service),
	)
}

func (m *OTelMetrics) RecordOperationAttempt(ctx context.Context, operation, service string) {
	m.operationAttempts.Add(ctx, 1, operationAttrs(operation, service))
}

func (m *OTelMetrics) RecordOperationSuccess(ctx context.Context, operation, service string) {
	m.operationSuccesses.Add(ctx, 1, operationAttrs(operation, service))
}

func (m *OTelMetrics) RecordOperationFailure(ctx context.Context, operation, service string) {
	m.operationFailures.Add(ctx, 1, operationAttrs(operation, service))
}

func (m *OTelMetrics) RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration) {
	m.operationDuration.Record(ctx, duration.Seconds(), operationAttrs(operation, service))
}

func (m *OTelMetrics) RecordJobEnqueued(ctx context.Context, kind string) {
	m.jobsEnqueued.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *OTelMetrics) RecordArtifactBuilt(ctx context.Context) {
	m.artifactsBuilt.Add(ctx, 1)
}

func handlerAttrs(handlerName string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("handler", handlerName))
}

func (m *OTelMetrics) RecordHandlerAttempt(ctx context.Context, handlerName string) {
	m.handlerAttempts.Add(ctx, 1, handlerAttrs(handlerName))
}

func (m *OTelMetrics) RecordHandlerSuccess(ctx context.Context, handlerName string) {
	m.handlerSuccesses.Add(ctx, 1, handlerAttrs(handlerName))
}

func (m *OTelMetrics) RecordHandlerFailure(ctx context.Context, handlerName string) {
	m.handlerFailures.Add(ctx, 1, handlerAttrs(handlerName))
}

func (m *OTelMetrics) RecordHandlerDuration(ctx context.Context, handlerName string, duration time.Duration) {
	m.handlerDuration.Record(ctx, duration.Seconds(), handlerAttrs(handlerName))
}

var _ StatsMetrics = (*OTelMetrics)(nil)
