package matchmetrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// OTelMetrics implements MatchMetrics on an OTel meter.
type OTelMetrics struct {
	operationAttempts  metric.Int64Counter
	operationSuccesses metric.Int64Counter
	operationFailures  metric.Int64Counter
	operationDuration  metric.Float64Histogram
	matchesCreated     metric.Int64Counter
	matchesCompleted   metric.Int64Counter
	inningsAdvanced    metric.Int64Counter
	handlerAttempts    metric.Int64Counter
	handlerSuccesses   metric.Int64Counter
	handlerFailures    metric.Int64Counter
	handlerDuration    metric.Float64Histogram
}

// NewOTelMetrics builds the match lifecycle instrument set on the given meter.
func NewOTelMetrics(meter metric.Meter) (*OTelMetrics, error) {
	m := &OTelMetrics{}

	var err error
	if m.operationAttempts, err = meter.Int64Counter("match_operation_attempts_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.operationSuccesses, err = meter.Int64Counter("match_operation_successes_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.operationFailures, err = meter.Int64Counter("match_operation_failures_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.operationDuration, err = meter.Float64Histogram("match_operation_duration_seconds"); err != nil {
		return nil, fmt.Errorf("failed to create histogram: %w", err)
	}
	if m.matchesCreated, err = meter.Int64Counter("match_created_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.matchesCompleted, err = meter.Int64Counter("match_completed_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.inningsAdvanced, err = meter.Int64Counter("match_innings_advanced_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.handlerAttempts, err = meter.Int64Counter("match_handler_attempts_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.handlerSuccesses, err = meter.Int64Counter("match_handler_successes_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.handlerFailures, err = meter.Int64Counter("match_handler_failures_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.handlerDuration, err = meter.Float64Histogram("match_handler_duration_seconds"); err != nil {
		return nil, fmt.Errorf("failed to create histogram: %w", err)
	}

	return m, nil
}

func operationAttrs(operation string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("operation", operation))
}

func formatAttrs(format sharedtypes.MatchFormat) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("format", string(format)))
}

func (m *OTelMetrics) RecordOperationAttempt(ctx context.Context, operation string, _ sharedtypes.MatchID) {
	m.operationAttempts.Add(ctx, 1, operationAttrs(operation))
}

func (m *OTelMetrics) RecordOperationSuccess(ctx context.Context, operation string, _ sharedtypes.MatchID) {
	m.operationSuccesses.Add(ctx, 1, operationAttrs(operation))
}

func (m *OTelMetrics) RecordOperationFailure(ctx context.Context, operation string, _ sharedtypes.MatchID) {
	m.operationFailures.Add(ctx, 1, operationAttrs(operation))
}

func (m *OTelMetrics) RecordOperationDuration(ctx context.Context, operation string, duration time.Duration) {
	m.operationDuration.Record(ctx, duration.Seconds(), operationAttrs(operation))
}

func (m *OTelMetrics) RecordMatchCreated(ctx context.Context, format sharedtypes.MatchFormat) {
	m.matchesCreated.Add(ctx, 1, formatAttrs(format))
}

func (m *OTelMetrics) RecordMatchCompleted(ctx context.Context, format sharedtypes.MatchFormat) {
	m.matchesCompleted.Add(ctx, 1, formatAttrs(format))
}

func (m *OTelMetrics) RecordInningsAdvanced(ctx context.Context, _ sharedtypes.MatchID) {
	m.inningsAdvanced.Add(ctx, 1)
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

var _ MatchMetrics = (*OTelMetrics)(nil)
