package scoringhandlers

import (
	"context"

	scoringservice "github.com/crease-live/crease-backend/app/modules/scoring/application"
	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// FakeScoringService is a programmable stub for the scoring service.
type FakeScoringService struct {
	RecordDeliveryFunc   func(ctx context.Context, req matchevents.DeliveryRequestedPayloadV1) (scoringservice.DeliveryOperationResult, error)
	UndoLastDeliveryFunc func(ctx context.Context, req matchevents.UndoRequestedPayloadV1) (scoringservice.UndoOperationResult, error)
}

func (f *FakeScoringService) RecordDelivery(ctx context.Context, req matchevents.DeliveryRequestedPayloadV1) (scoringservice.DeliveryOperationResult, error) {
	if f.RecordDeliveryFunc != nil {
		return f.RecordDeliveryFunc(ctx, req)
	}
	return scoringservice.DeliveryOperationResult{}, nil
}

func (f *FakeScoringService) UndoLastDelivery(ctx context.Context, req matchevents.UndoRequestedPayloadV1) (scoringservice.UndoOperationResult, error) {
	if f.UndoLastDeliveryFunc != nil {
		return f.UndoLastDeliveryFunc(ctx, req)
	}
	return scoringservice.UndoOperationResult{}, nil
}

func (f *FakeScoringService) GetMatchState(ctx context.Context, matchID sharedtypes.MatchID) (*scoringdomain.Match, []*scoringdomain.Innings, error) {
	return nil, nil, nil
}

func (f *FakeScoringService) ListEvents(ctx context.Context, matchID sharedtypes.MatchID, inningsNumber int) ([]scoringdomain.ScoreEvent, error) {
	return nil, nil
}

var _ scoringservice.Service = (*FakeScoringService)(nil)
