package matchhandlers

import (
	"context"
	"errors"

	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/observability/attr"
	"github.com/crease-live/crease-backend/app/shared/utils/handlerwrapper"
)

// HandleInningsCompleted moves the match forward once the engine has closed
// an innings. A redelivered message finds the match already advanced; the
// resulting invalid-state error is treated as done, not retried.
func (h *MatchHandlers) HandleInningsCompleted(
	ctx context.Context,
	payload *matchevents.InningsCompletedPayloadV1,
) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload is nil")
	}

	if _, err := h.service.AdvanceInnings(ctx, payload.MatchID); err != nil {
		if errors.Is(err, scoringdomain.ErrInvalidState) {
			h.logger.InfoContext(ctx, "Innings already advanced, skipping",
				attr.MatchID("match_id", payload.MatchID),
				attr.Int("innings_number", payload.InningsNumber),
			)
			return nil, nil
		}
		return nil, err
	}

	return nil, nil
}
