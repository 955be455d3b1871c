package matchservice

import (
	"context"

	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// CreateMatchParams carries everything needed to set up a match.
type CreateMatchParams struct {
	RoomID      sharedtypes.RoomID      `json:"room_id"`
	Format      sharedtypes.MatchFormat `json:"format"`
	CustomOvers int                     `json:"custom_overs,omitempty"`
	TeamA       sharedtypes.Team        `json:"team_a"`
	TeamB       sharedtypes.Team        `json:"team_b"`
}

// Scorecard is the aggregated read model of one match.
type Scorecard struct {
	Match      *scoringdomain.Match     `json:"match"`
	Innings    []*scoringdomain.Innings `json:"innings"`
	ResultText string                   `json:"result_text,omitempty"`
}

// Service owns the match lifecycle: creation, innings handover, and the
// final result. The ball-by-ball engine closes an innings; moving the match
// forward from there is this service's call.
type Service interface {
	CreateMatch(ctx context.Context, params CreateMatchParams) (*scoringdomain.Match, error)
	StartMatch(ctx context.Context, matchID sharedtypes.MatchID, battingFirst sharedtypes.TeamTag) (*scoringdomain.Match, error)
	AdvanceInnings(ctx context.Context, matchID sharedtypes.MatchID) (*scoringdomain.Match, error)
	AbandonMatch(ctx context.Context, matchID sharedtypes.MatchID) (*scoringdomain.Match, error)
	GetScorecard(ctx context.Context, matchID sharedtypes.MatchID) (*Scorecard, error)
}
