package statsmetrics

import (
	"context"
	"time"
)

// NoOpMetrics discards all measurements. Used in tests.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (NoOpMetrics) RecordJobEnqueued(context.Context, string)                              {}
func (NoOpMetrics) RecordArtifactBuilt(context.Context)                                    {}
func (NoOpMetrics) RecordHandlerAttempt(context.Context, string)                           {}
func (NoOpMetrics) RecordHandlerSuccess(context.Context, string)                           {}
func (NoOpMetrics) RecordHandlerFailure(context.Context, string)                           {}
func (NoOpMetrics) RecordHandlerDuration(context.Context, string, time.Duration)           {}

var _ StatsMetrics = (*NoOpMetrics)(nil)
