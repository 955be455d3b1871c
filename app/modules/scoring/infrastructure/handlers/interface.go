package scoringhandlers

import (
	"context"

	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/utils/handlerwrapper"
)

// Handlers defines the message handlers of the scoring module.
type Handlers interface {
	HandleDeliveryRequested(ctx context.Context, payload *matchevents.DeliveryRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleUndoRequested(ctx context.Context, payload *matchevents.UndoRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
