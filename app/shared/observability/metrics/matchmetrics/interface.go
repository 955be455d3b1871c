package matchmetrics

import (
	"context"
	"time"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// MatchMetrics records instrumentation for the match lifecycle module.
type MatchMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string, matchID sharedtypes.MatchID)
	RecordOperationSuccess(ctx context.Context, operation string, matchID sharedtypes.MatchID)
	RecordOperationFailure(ctx context.Context, operation string, matchID sharedtypes.MatchID)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)

	RecordMatchCreated(ctx context.Context, format sharedtypes.MatchFormat)
	RecordMatchCompleted(ctx context.Context, format sharedtypes.MatchFormat)
	RecordInningsAdvanced(ctx context.Context, matchID sharedtypes.MatchID)

	RecordHandlerAttempt(ctx context.Context, handlerName string)
	RecordHandlerSuccess(ctx context.Context, handlerName string)
	RecordHandlerFailure(ctx context.Context, handlerName string)
	RecordHandlerDuration(ctx context.Context, handlerName string, duration time.Duration)
}
