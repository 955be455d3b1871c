package matchhandlers

import (
	"context"

	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/utils/handlerwrapper"
)

// Handlers defines the message handlers of the match module.
type Handlers interface {
	HandleInningsCompleted(ctx context.Context, payload *matchevents.InningsCompletedPayloadV1) ([]handlerwrapper.Result, error)
}
