package scoringhandlers

import (
	"context"
	"errors"

	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/utils/handlerwrapper"
)

// HandleUndoRequested reverses the most recent delivery of the match.
func (h *ScoringHandlers) HandleUndoRequested(
	ctx context.Context,
	payload *matchevents.UndoRequestedPayloadV1,
) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload is nil")
	}

	result, err := h.service.UndoLastDelivery(ctx, *payload)
	if err != nil {
		return nil, err
	}

	if result.IsFailure() {
		return []handlerwrapper.Result{
			{
				Topic:   matchevents.UndoRejectedV1,
				Payload: result.Failure,
			},
		}, nil
	}

	return nil, nil
}
