package scoringdomain

import (
	"time"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// Match is the scoring engine's view of a match: teams, format, and
// lifecycle status. Room ownership and membership are external concerns.
type Match struct {
	ID         sharedtypes.MatchID     `json:"id"`
	RoomID     sharedtypes.RoomID      `json:"room_id"`
	Format     sharedtypes.MatchFormat `json:"format"`
	CustomOvers int                    `json:"custom_overs,omitempty"`
	TeamA      sharedtypes.Team        `json:"team_a"`
	TeamB      sharedtypes.Team        `json:"team_b"`
	Status     sharedtypes.MatchStatus `json:"status"`
	InningsCount int                   `json:"innings_count"`
	CurrentInnings int                 `json:"current_innings"`
}

// Team returns the team carrying the given tag.
func (m *Match) Team(tag sharedtypes.TeamTag) sharedtypes.Team {
	if tag == sharedtypes.TeamA {
		return m.TeamA
	}
	return m.TeamB
}

// TotalOvers returns the overs per innings for this match: the format's
// figure, or CustomOvers for CUSTOM matches. Zero means unlimited.
func (m *Match) TotalOvers() int {
	if m.Format == sharedtypes.FormatCustom {
		return m.CustomOvers
	}
	return m.Format.TotalOvers()
}

// Extras is the per-innings extras breakdown.
type Extras struct {
	Wides   int `json:"wides"`
	NoBalls int `json:"no_balls"`
	Byes    int `json:"byes"`
	LegByes int `json:"leg_byes"`
	Total   int `json:"total"`
}

// BattingStat is one batter's line in the innings. A row exists once the
// batter has faced a ball or been dismissed.
type BattingStat struct {
	PlayerID   sharedtypes.PlayerID      `json:"player_id"`
	Runs       int                       `json:"runs"`
	BallsFaced int                       `json:"balls_faced"`
	Fours      int                       `json:"fours"`
	Sixes      int                       `json:"sixes"`
	Out        bool                      `json:"out"`
	Dismissal  sharedtypes.DismissalType `json:"dismissal,omitempty"`
	OnStrike   bool                      `json:"on_strike"`
}

// BowlingStat is one bowler's line in the innings. RunsThisOver tracks runs
// conceded in the over in progress and resets when the over completes; it
// exists only for maiden detection.
type BowlingStat struct {
	PlayerID       sharedtypes.PlayerID `json:"player_id"`
	OversBowled    int                  `json:"overs_bowled"`
	BallsInOver    int                  `json:"balls_in_over"`
	RunsConceded   int                  `json:"runs_conceded"`
	Wickets        int                  `json:"wickets"`
	ExtrasConceded int                  `json:"extras_conceded"`
	DotBalls       int                  `json:"dot_balls"`
	Maidens        int                  `json:"maidens"`
	RunsThisOver   int                  `json:"runs_this_over"`
}

// Partnership is the running contribution of one pair of batters. The last
// element of an innings' partnership list is always the pair in progress;
// BatterB is empty while a new batter is awaited after a wicket.
type Partnership struct {
	BatterA sharedtypes.PlayerID `json:"batter_a"`
	BatterB sharedtypes.PlayerID `json:"batter_b"`
	Runs    int                  `json:"runs"`
	Balls   int                  `json:"balls"`
}

// FallOfWicket captures the score and over/ball at the moment of a
// dismissal.
type FallOfWicket struct {
	PlayerID sharedtypes.PlayerID `json:"player_id"`
	Wicket   int                  `json:"wicket"`
	Score    int                  `json:"score"`
	Over     int                  `json:"over"`
	Ball     int                  `json:"ball"`
}

// Innings is the mutable aggregate for one innings of a match.
//
// Invariants: BallsInOver is always in [0,5]; when a legal delivery would
// take it to 6 it resets to 0 and OversCompleted increments. Wickets never
// exceeds team size minus one. At most one batting row has OnStrike set.
type Innings struct {
	Number          int                  `json:"number"`
	BattingTeam     sharedtypes.TeamTag  `json:"batting_team"`
	BowlingTeam     sharedtypes.TeamTag  `json:"bowling_team"`
	Runs            int                  `json:"runs"`
	Wickets         int                  `json:"wickets"`
	OversCompleted  int                  `json:"overs_completed"`
	BallsInOver     int                  `json:"balls_in_over"`
	Extras          Extras               `json:"extras"`
	Target          int                  `json:"target,omitempty"`
	StrikerID       sharedtypes.PlayerID `json:"striker_id"`
	NonStrikerID    sharedtypes.PlayerID `json:"non_striker_id"`
	CurrentBowlerID sharedtypes.PlayerID `json:"current_bowler_id"`
	LastOverBowlerID sharedtypes.PlayerID `json:"last_over_bowler_id"`
	Completed       bool                 `json:"completed"`
	BattingStats    []BattingStat        `json:"batting_stats"`
	BowlingStats    []BowlingStat        `json:"bowling_stats"`
	Partnerships    []Partnership        `json:"partnerships"`
	FallOfWickets   []FallOfWicket       `json:"fall_of_wickets"`
}

// WicketDetail describes the dismissal carried by a wicket delivery.
type WicketDetail struct {
	PlayerID  sharedtypes.PlayerID      `json:"player_id"`
	Kind      sharedtypes.DismissalType `json:"kind"`
	FielderID sharedtypes.PlayerID      `json:"fielder_id,omitempty"`
}

// Delivery is one ball as submitted by the scorer. After a mid-over wicket
// the vacated end is empty on the innings; the next delivery's striker or
// non-striker names the incoming batter.
type Delivery struct {
	Outcome      sharedtypes.DeliveryOutcome `json:"outcome"`
	Runs         int                         `json:"runs"`
	ExtraRuns    int                         `json:"extra_runs"`
	StrikerID    sharedtypes.PlayerID        `json:"striker_id"`
	NonStrikerID sharedtypes.PlayerID        `json:"non_striker_id"`
	BowlerID     sharedtypes.PlayerID        `json:"bowler_id"`
	Wicket       *WicketDetail               `json:"wicket,omitempty"`
}

// TransitionFlags is the structured outcome descriptor of one transition.
type TransitionFlags struct {
	StrikeRotated    bool `json:"strike_rotated"`
	OverCompleted    bool `json:"over_completed"`
	InningsCompleted bool `json:"innings_completed"`
	WicketFallen     bool `json:"wicket_fallen"`
}

// ScoreEvent is the immutable ledger record of one applied delivery. It
// captures enough pre-delivery context for the undo engine to apply the
// exact inverse without recomputing from current state. Events are
// tombstoned by undo, never deleted.
type ScoreEvent struct {
	ID            sharedtypes.EventID `json:"id"`
	MatchID       sharedtypes.MatchID `json:"match_id"`
	InningsNumber int                 `json:"innings_number"`

	// Over/Ball are the coordinates before the delivery was applied: the
	// completed-overs count and the balls already bowled in the over.
	Over int `json:"over"`
	Ball int `json:"ball"`

	Outcome   sharedtypes.DeliveryOutcome `json:"outcome"`
	Runs      int                         `json:"runs"`
	ExtraRuns int                         `json:"extra_runs"`
	Wicket    *WicketDetail               `json:"wicket,omitempty"`

	// Pre-delivery identities and bookkeeping, recorded for exact reversal.
	StrikerID            sharedtypes.PlayerID `json:"striker_id"`
	NonStrikerID         sharedtypes.PlayerID `json:"non_striker_id"`
	BowlerID             sharedtypes.PlayerID `json:"bowler_id"`
	PreCurrentBowlerID   sharedtypes.PlayerID `json:"pre_current_bowler_id"`
	PreLastOverBowlerID  sharedtypes.PlayerID `json:"pre_last_over_bowler_id"`
	PreBowlerRunsThisOver int                 `json:"pre_bowler_runs_this_over"`
	PreBowlerBallsInOver int                  `json:"pre_bowler_balls_in_over"`
	CreatedBattingRow    bool                 `json:"created_batting_row"`
	CreatedDismissedRow  bool                 `json:"created_dismissed_row"`
	CreatedBowlingRow    bool                 `json:"created_bowling_row"`
	CreatedPartnership   bool                 `json:"created_partnership"`
	FilledPartnershipSlot bool                `json:"filled_partnership_slot"`
	Maiden               bool                 `json:"maiden"`

	// Resulting cumulative snapshot.
	TotalRuns int             `json:"total_runs"`
	Wickets   int             `json:"wickets"`
	Flags     TransitionFlags `json:"flags"`

	CreatedAt time.Time `json:"created_at"`

	// Tombstone. Set exactly once by the undo engine.
	Reversed   bool              `json:"reversed"`
	ReversedBy sharedtypes.UserID `json:"reversed_by,omitempty"`
	ReversedAt *time.Time        `json:"reversed_at,omitempty"`
}
