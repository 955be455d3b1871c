package api

import (
	"context"

	matchservice "github.com/crease-live/crease-backend/app/modules/match/application"
	scoringservice "github.com/crease-live/crease-backend/app/modules/scoring/application"
	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	scoringdb "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories"
	statsservice "github.com/crease-live/crease-backend/app/modules/stats/application"
	statsdb "github.com/crease-live/crease-backend/app/modules/stats/infrastructure/repositories"
	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// FakeScoringService is a programmable scoring service double.
type FakeScoringService struct {
	Match   *scoringdomain.Match
	Innings []*scoringdomain.Innings
	Events  []scoringdomain.ScoreEvent

	RecordDeliveryFunc   func(ctx context.Context, req matchevents.DeliveryRequestedPayloadV1) (scoringservice.DeliveryOperationResult, error)
	UndoLastDeliveryFunc func(ctx context.Context, req matchevents.UndoRequestedPayloadV1) (scoringservice.UndoOperationResult, error)

	RecordedRequests []matchevents.DeliveryRequestedPayloadV1
	UndoRequests     []matchevents.UndoRequestedPayloadV1
}

func (f *FakeScoringService) RecordDelivery(ctx context.Context, req matchevents.DeliveryRequestedPayloadV1) (scoringservice.DeliveryOperationResult, error) {
	f.RecordedRequests = append(f.RecordedRequests, req)
	if f.RecordDeliveryFunc != nil {
		return f.RecordDeliveryFunc(ctx, req)
	}
	return scoringservice.DeliveryOperationResult{}, nil
}

func (f *FakeScoringService) UndoLastDelivery(ctx context.Context, req matchevents.UndoRequestedPayloadV1) (scoringservice.UndoOperationResult, error) {
	f.UndoRequests = append(f.UndoRequests, req)
	if f.UndoLastDeliveryFunc != nil {
		return f.UndoLastDeliveryFunc(ctx, req)
	}
	return scoringservice.UndoOperationResult{}, nil
}

func (f *FakeScoringService) GetMatchState(ctx context.Context, matchID sharedtypes.MatchID) (*scoringdomain.Match, []*scoringdomain.Innings, error) {
	if f.Match == nil || f.Match.ID != matchID {
		return nil, nil, scoringdb.ErrNotFound
	}
	return f.Match, f.Innings, nil
}

func (f *FakeScoringService) ListEvents(ctx context.Context, matchID sharedtypes.MatchID, inningsNumber int) ([]scoringdomain.ScoreEvent, error) {
	if f.Match == nil || f.Match.ID != matchID {
		return nil, scoringdb.ErrNotFound
	}
	return f.Events, nil
}

var _ scoringservice.Service = (*FakeScoringService)(nil)

// FakeMatchService is a programmable match service double.
type FakeMatchService struct {
	CreateMatchFunc    func(ctx context.Context, params matchservice.CreateMatchParams) (*scoringdomain.Match, error)
	StartMatchFunc     func(ctx context.Context, matchID sharedtypes.MatchID, battingFirst sharedtypes.TeamTag) (*scoringdomain.Match, error)
	AdvanceInningsFunc func(ctx context.Context, matchID sharedtypes.MatchID) (*scoringdomain.Match, error)
	AbandonMatchFunc   func(ctx context.Context, matchID sharedtypes.MatchID) (*scoringdomain.Match, error)
	GetScorecardFunc   func(ctx context.Context, matchID sharedtypes.MatchID) (*matchservice.Scorecard, error)
}

func (f *FakeMatchService) CreateMatch(ctx context.Context, params matchservice.CreateMatchParams) (*scoringdomain.Match, error) {
	if f.CreateMatchFunc != nil {
		return f.CreateMatchFunc(ctx, params)
	}
	return nil, scoringdb.ErrNotFound
}

func (f *FakeMatchService) StartMatch(ctx context.Context, matchID sharedtypes.MatchID, battingFirst sharedtypes.TeamTag) (*scoringdomain.Match, error) {
	if f.StartMatchFunc != nil {
		return f.StartMatchFunc(ctx, matchID, battingFirst)
	}
	return nil, scoringdb.ErrNotFound
}

func (f *FakeMatchService) AdvanceInnings(ctx context.Context, matchID sharedtypes.MatchID) (*scoringdomain.Match, error) {
	if f.AdvanceInningsFunc != nil {
		return f.AdvanceInningsFunc(ctx, matchID)
	}
	return nil, scoringdb.ErrNotFound
}

func (f *FakeMatchService) AbandonMatch(ctx context.Context, matchID sharedtypes.MatchID) (*scoringdomain.Match, error) {
	if f.AbandonMatchFunc != nil {
		return f.AbandonMatchFunc(ctx, matchID)
	}
	return nil, scoringdb.ErrNotFound
}

func (f *FakeMatchService) GetScorecard(ctx context.Context, matchID sharedtypes.MatchID) (*matchservice.Scorecard, error) {
	if f.GetScorecardFunc != nil {
		return f.GetScorecardFunc(ctx, matchID)
	}
	return nil, scoringdb.ErrNotFound
}

var _ matchservice.Service = (*FakeMatchService)(nil)

// FakeStatsService serves canned artifacts.
type FakeStatsService struct {
	Artifact *statsdb.ScorecardArtifact
}

func (f *FakeStatsService) BuildScorecard(ctx context.Context, req statsservice.BuildScorecardRequest) (*statsdb.ScorecardArtifact, error) {
	return f.Artifact, nil
}

func (f *FakeStatsService) GetArtifact(ctx context.Context, matchID sharedtypes.MatchID) (*statsdb.ScorecardArtifact, error) {
	if f.Artifact == nil || f.Artifact.MatchID != matchID {
		return nil, statsdb.ErrNotFound
	}
	return f.Artifact, nil
}

var _ statsservice.Service = (*FakeStatsService)(nil)
