package statsqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	statsservice "github.com/crease-live/crease-backend/app/modules/stats/application"
	"github.com/crease-live/crease-backend/app/shared/observability/attr"
)

// ScorecardWorker renders and stores the scorecard artifact for a finished
// match. The build is idempotent, so River's retries are safe.
type ScorecardWorker struct {
	river.WorkerDefaults[ScorecardJob]

	logger  *slog.Logger
	service statsservice.Service
}

// NewScorecardWorker creates a new ScorecardWorker.
func NewScorecardWorker(logger *slog.Logger, service statsservice.Service) *ScorecardWorker {
	return &ScorecardWorker{
		logger:  logger,
		service: service,
	}
}

func (w *ScorecardWorker) Work(ctx context.Context, job *river.Job[ScorecardJob]) error {
	w.logger.InfoContext(ctx, "Scorecard job started",
		attr.String("match_id", job.Args.MatchID),
		attr.Int("attempt", job.Attempt),
	)

	if _, err := w.service.BuildScorecard(ctx, job.Args.Request); err != nil {
		w.logger.ErrorContext(ctx, "Scorecard job failed",
			attr.String("match_id", job.Args.MatchID),
			attr.Error(err),
		)
		return fmt.Errorf("failed to build scorecard for match %s: %w", job.Args.MatchID, err)
	}

	w.logger.InfoContext(ctx, "Scorecard job completed",
		attr.String("match_id", job.Args.MatchID),
	)
	return nil
}
