package statshandlers

import (
	"context"

	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/utils/handlerwrapper"
)

// Handlers defines the message handlers of the stats module.
type Handlers interface {
	HandleMatchCompleted(ctx context.Context, payload *matchevents.MatchCompletedPayloadV1) ([]handlerwrapper.Result, error)
}
