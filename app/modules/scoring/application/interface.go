package scoringservice

import (
	"context"

	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
	"github.com/crease-live/crease-backend/app/shared/utils/results"
)

// DeliveryOperationResult carries the outcome of recording one delivery: the
// broadcast payload on success, a rejection on a handled business failure.
type DeliveryOperationResult = results.OperationResult[matchevents.BallUpdatedPayloadV1, matchevents.DeliveryRejectedPayloadV1]

// UndoOperationResult carries the outcome of reversing the last delivery.
type UndoOperationResult = results.OperationResult[matchevents.BallUndonePayloadV1, matchevents.UndoRejectedPayloadV1]

// Service is the scoring engine's application surface. Operations on the
// same match are serialized; broadcasts are best-effort and never fail the
// operation.
type Service interface {
	RecordDelivery(ctx context.Context, req matchevents.DeliveryRequestedPayloadV1) (DeliveryOperationResult, error)
	UndoLastDelivery(ctx context.Context, req matchevents.UndoRequestedPayloadV1) (UndoOperationResult, error)

	GetMatchState(ctx context.Context, matchID sharedtypes.MatchID) (*scoringdomain.Match, []*scoringdomain.Innings, error)
	ListEvents(ctx context.Context, matchID sharedtypes.MatchID, inningsNumber int) ([]scoringdomain.ScoreEvent, error)
}
