package statsservice

import (
	"context"

	statsdb "github.com/crease-live/crease-backend/app/modules/stats/infrastructure/repositories"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// BuildScorecardRequest carries what the scorecard worker needs. RoomID and
// the result line ride along from the completion event so the builder never
// has to re-derive the result.
type BuildScorecardRequest struct {
	MatchID    sharedtypes.MatchID `json:"match_id"`
	RoomID     sharedtypes.RoomID  `json:"room_id"`
	ResultText string              `json:"result_text"`
}

// Service builds and serves scorecard artifacts for finished matches.
type Service interface {
	BuildScorecard(ctx context.Context, req BuildScorecardRequest) (*statsdb.ScorecardArtifact, error)
	GetArtifact(ctx context.Context, matchID sharedtypes.MatchID) (*statsdb.ScorecardArtifact, error)
}
