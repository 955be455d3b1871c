package scoringmetrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// OTelMetrics implements ScoringMetrics on an OTel meter.
type OTelMetrics struct {
	operationAttempts    metric.Int64Counter
	operationSuccesses   metric.Int64Counter
	operationFailures    metric.Int64Counter
	operationDuration    metric.Float64Histogram
	deliveryOutcomes     metric.Int64Counter
	wickets              metric.Int64Counter
	undos                metric.Int64Counter
	broadcastFailures    metric.Int64Counter
	concurrencyConflicts metric.Int64Counter
	handlerAttempts      metric.Int64Counter
	handlerSuccesses     metric.Int64Counter
	handlerFailures      metric.Int64Counter
	handlerDuration      metric.Float64Histogram
}

// NewOTelMetrics builds the scoring instrument set on the given meter.
func NewOTelMetrics(meter metric.Meter) (*OTelMetrics, error) {
	m := &OTelMetrics{}

	var err error
	if m.operationAttempts, err = meter.Int64Counter("scoring_operation_attempts_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.operationSuccesses, err = meter.Int64Counter("scoring_operation_successes_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.operationFailures, err = meter.Int64Counter("scoring_operation_failures_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.operationDuration, err = meter.Float64Histogram("scoring_operation_duration_seconds"); err != nil {
		return nil, fmt.Errorf("failed to create histogram: %w", err)
	}
	if m.deliveryOutcomes, err = meter.Int64Counter("scoring_delivery_outcomes_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.wickets, err = meter.Int64Counter("scoring_wickets_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.undos, err = meter.Int64Counter("scoring_undos_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.broadcastFailures, err = meter.Int64Counter("scoring_broadcast_failures_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.concurrencyConflicts, err = meter.Int64Counter("scoring_concurrency_conflicts_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.handlerAttempts, err = meter.Int64Counter("scoring_handler_attempts_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.handlerSuccesses, err = meter.Int64Counter("scoring_handler_successes_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.handlerFailures, err = meter.Int64Counter("scoring_handler_failures_total"); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.handlerDuration, err = meter.Float64Histogram("scoring_handler_duration_seconds"); err != nil {
		return nil, fmt.Errorf("failed to create histogram: %w", err)
	}

	return m, nil
}

func operationAttrs(operation string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("operation", operation))
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

func (m *OTelMetrics) RecordDeliveryOutcome(ctx context.Context, outcome sharedtypes.DeliveryOutcome) {
	m.deliveryOutcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(outcome))))
}

func (m *OTelMetrics) RecordWicket(ctx context.Context, kind sharedtypes.DismissalType) {
	m.wickets.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(kind))))
}

func (m *OTelMetrics) RecordUndo(ctx context.Context, _ sharedtypes.MatchID) {
	m.undos.Add(ctx, 1)
}

func (m *OTelMetrics) RecordBroadcastFailure(ctx context.Context, topic string) {
	m.broadcastFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("topic", topic)))
}

func (m *OTelMetrics) RecordConcurrencyConflict(ctx context.Context, _ sharedtypes.MatchID) {
	m.concurrencyConflicts.Add(ctx, 1)
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

var _ ScoringMetrics = (*OTelMetrics)(nil)
