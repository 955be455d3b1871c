package statsmetrics

import (
	"context"
	"time"
)

// StatsMetrics records instrumentation for the stats module: the scorecard
// job queue and the artifact builder.
type StatsMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)

	RecordJobEnqueued(ctx context.Context, kind string)
	RecordArtifactBuilt(ctx context.Context)

	RecordHandlerAttempt(ctx context.Context, handlerName string)
	RecordHandlerSuccess(ctx context.Context, handlerName string)
	RecordHandlerFailure(ctx context.Context, handlerName string)
	RecordHandlerDuration(ctx context.Context, handlerName string, duration time.Duration)
}
