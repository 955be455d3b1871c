package scoringmetrics

import (
	"context"
	"time"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// ScoringMetrics records instrumentation for the scoring engine.
type ScoringMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string, matchID sharedtypes.MatchID)
	RecordOperationSuccess(ctx context.Context, operation string, matchID sharedtypes.MatchID)
	RecordOperationFailure(ctx context.Context, operation string, matchID sharedtypes.MatchID)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)

	RecordDeliveryOutcome(ctx context.Context, outcome sharedtypes.DeliveryOutcome)
	RecordWicket(ctx context.Context, kind sharedtypes.DismissalType)
	RecordUndo(ctx context.Context, matchID sharedtypes.MatchID)
	RecordBroadcastFailure(ctx context.Context, topic string)
	RecordConcurrencyConflict(ctx context.Context, matchID sharedtypes.MatchID)

	RecordHandlerAttempt(ctx context.Context, handlerName string)
	RecordHandlerSuccess(ctx context.Context, handlerName string)
	RecordHandlerFailure(ctx context.Context, handlerName string)
	RecordHandlerDuration(ctx context.Context, handlerName string, duration time.Duration)
}
