package scoringhandlers

import (
	"context"
	"errors"

	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/utils/handlerwrapper"
)

// HandleDeliveryRequested records one delivery. Success broadcasts are
// published by the service; the handler only emits the rejection event for
// handled business failures. Infrastructure errors propagate so the router
// retries the message.
func (h *ScoringHandlers) HandleDeliveryRequested(
	ctx context.Context,
	payload *matchevents.DeliveryRequestedPayloadV1,
) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload is nil")
	}

	result, err := h.service.RecordDelivery(ctx, *payload)
	if err != nil {
		return nil, err
	}

	if result.IsFailure() {
		return []handlerwrapper.Result{
			{
				Topic:   matchevents.DeliveryRejectedV1,
				Payload: result.Failure,
			},
		}, nil
	}

	return nil, nil
}
