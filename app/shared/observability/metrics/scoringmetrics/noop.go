package scoringmetrics

import (
	"context"
	"time"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// NoOpMetrics discards all measurements. Used in tests.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, sharedtypes.MatchID)  {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, sharedtypes.MatchID)  {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, sharedtypes.MatchID)  {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration)       {}
func (NoOpMetrics) RecordDeliveryOutcome(context.Context, sharedtypes.DeliveryOutcome)   {}
func (NoOpMetrics) RecordWicket(context.Context, sharedtypes.DismissalType)              {}
func (NoOpMetrics) RecordUndo(context.Context, sharedtypes.MatchID)                      {}
func (NoOpMetrics) RecordBroadcastFailure(context.Context, string)                       {}
func (NoOpMetrics) RecordConcurrencyConflict(context.Context, sharedtypes.MatchID)       {}
func (NoOpMetrics) RecordHandlerAttempt(context.Context, string)                         {}
func (NoOpMetrics) RecordHandlerSuccess(context.Context, string)                         {}
func (NoOpMetrics) RecordHandlerFailure(context.Context, string)                         {}
func (NoOpMetrics) RecordHandlerDuration(context.Context, string, time.Duration)         {}

var _ ScoringMetrics = (*NoOpMetrics)(nil)
