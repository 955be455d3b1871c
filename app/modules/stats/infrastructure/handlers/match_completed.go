package statshandlers

import (
	"context"
	"errors"

	statsservice "github.com/crease-live/crease-backend/app/modules/stats/application"
	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/utils/handlerwrapper"
)

// HandleMatchCompleted queues the scorecard build for a finished match. The
// heavy rendering happens on the River worker, not on the bus consumer.
func (h *StatsHandlers) HandleMatchCompleted(
	ctx context.Context,
	payload *matchevents.MatchCompletedPayloadV1,
) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload is nil")
	}

	err := h.queue.EnqueueScorecard(ctx, statsservice.BuildScorecardRequest{
		MatchID:    payload.MatchID,
		RoomID:     payload.RoomID,
		ResultText: payload.ResultText,
	})
	if err != nil {
		return nil, err
	}

	return nil, nil
}
