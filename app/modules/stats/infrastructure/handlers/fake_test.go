package statshandlers

import (
	"context"

	statsservice "github.com/crease-live/crease-backend/app/modules/stats/application"
	statsqueue "github.com/crease-live/crease-backend/app/modules/stats/infrastructure/queue"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// FakeQueueService is a programmable stub for the scorecard queue.
type FakeQueueService struct {
	Enqueued []statsservice.BuildScorecardRequest

	EnqueueScorecardFunc func(ctx context.Context, req statsservice.BuildScorecardRequest) error
}

func (f *FakeQueueService) EnqueueScorecard(ctx context.Context, req statsservice.BuildScorecardRequest) error {
	if f.EnqueueScorecardFunc != nil {
		return f.EnqueueScorecardFunc(ctx, req)
	}
	f.Enqueued = append(f.Enqueued, req)
	return nil
}

func (f *FakeQueueService) GetQueuedJobs(ctx context.Context, matchID sharedtypes.MatchID) ([]statsqueue.JobInfo, error) {
	return nil, nil
}

func (f *FakeQueueService) HealthCheck(ctx context.Context) error { return nil }

func (f *FakeQueueService) Start(ctx context.Context) error { return nil }

func (f *FakeQueueService) Stop(ctx context.Context) error { return nil }

var _ statsqueue.QueueService = (*FakeQueueService)(nil)
