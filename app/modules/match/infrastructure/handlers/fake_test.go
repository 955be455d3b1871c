package matchhandlers

import (
	"context"

	matchservice "github.com/crease-live/crease-backend/app/modules/match/application"
	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// FakeMatchService is a programmable stub for the match lifecycle service.
type FakeMatchService struct {
	AdvanceInningsFunc func(ctx context.Context, matchID sharedtypes.MatchID) (*scoringdomain.Match, error)
}

func (f *FakeMatchService) CreateMatch(ctx context.Context, params matchservice.CreateMatchParams) (*scoringdomain.Match, error) {
	return nil, nil
}

func (f *FakeMatchService) StartMatch(ctx context.Context, matchID sharedtypes.MatchID, battingFirst sharedtypes.TeamTag) (*scoringdomain.Match, error) {
	return nil, nil
}

func (f *FakeMatchService) AdvanceInnings(ctx context.Context, matchID sharedtypes.MatchID) (*scoringdomain.Match, error) {
	if f.AdvanceInningsFunc != nil {
		return f.AdvanceInningsFunc(ctx, matchID)
	}
	return nil, nil
}

func (f *FakeMatchService) AbandonMatch(ctx context.Context, matchID sharedtypes.MatchID) (*scoringdomain.Match, error) {
	return nil, nil
}

func (f *FakeMatchService) GetScorecard(ctx context.Context, matchID sharedtypes.MatchID) (*matchservice.Scorecard, error) {
	return nil, nil
}

var _ matchservice.Service = (*FakeMatchService)(nil)
