package scoringdb

import (
	"time"

	"github.com/uptrace/bun"

	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// Match is the persisted match row. Team lists are stored as jsonb; the
// scoring engine never queries into them.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`

	ID             sharedtypes.MatchID     `bun:"id,pk,type:uuid"`
	RoomID         sharedtypes.RoomID      `bun:"room_id,notnull"`
	Format         sharedtypes.MatchFormat `bun:"format,notnull"`
	CustomOvers    int                     `bun:"custom_overs"`
	TeamA          sharedtypes.Team        `bun:"team_a,type:jsonb"`
	TeamB          sharedtypes.Team        `bun:"team_b,type:jsonb"`
	Status         sharedtypes.MatchStatus `bun:"status,notnull"`
	InningsCount   int                     `bun:"innings_count,notnull"`
	CurrentInnings int                     `bun:"current_innings,notnull"`
	CreatedAt      time.Time               `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt      time.Time               `bun:",nullzero,notnull,default:current_timestamp"`
}

// Innings is the persisted innings aggregate. The per-player collections live
// as jsonb; Version is bumped on every write and checked optimistically so
// two scorers racing on the same match cannot interleave.
type Innings struct {
	bun.BaseModel `bun:"table:innings,alias:i"`

	MatchID          sharedtypes.MatchID  `bun:"match_id,pk,type:uuid"`
	Number           int                  `bun:"number,pk"`
	BattingTeam      sharedtypes.TeamTag  `bun:"batting_team,notnull"`
	BowlingTeam      sharedtypes.TeamTag  `bun:"bowling_team,notnull"`
	Runs             int                  `bun:"runs,notnull"`
	Wickets          int                  `bun:"wickets,notnull"`
	OversCompleted   int                  `bun:"overs_completed,notnull"`
	BallsInOver      int                  `bun:"balls_in_over,notnull"`
	Extras           scoringdomain.Extras `bun:"extras,type:jsonb"`
	Target           int                  `bun:"target"`
	StrikerID        sharedtypes.PlayerID `bun:"striker_id,nullzero"`
	NonStrikerID     sharedtypes.PlayerID `bun:"non_striker_id,nullzero"`
	CurrentBowlerID  sharedtypes.PlayerID `bun:"current_bowler_id,nullzero"`
	LastOverBowlerID sharedtypes.PlayerID `bun:"last_over_bowler_id,nullzero"`
	Completed        bool                 `bun:"completed,notnull"`

	BattingStats  []scoringdomain.BattingStat  `bun:"batting_stats,type:jsonb"`
	BowlingStats  []scoringdomain.BowlingStat  `bun:"bowling_stats,type:jsonb"`
	Partnerships  []scoringdomain.Partnership  `bun:"partnerships,type:jsonb"`
	FallOfWickets []scoringdomain.FallOfWicket `bun:"fall_of_wickets,type:jsonb"`

	Version   int64     `bun:"version,notnull"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// ScoreEvent is one row of the append-only delivery ledger. The full domain
// event is stored as jsonb; the indexed columns exist for ordering and for
// finding the latest active (non-reversed) event. Seq is assigned by the
// database and totally orders the ledger per match.
type ScoreEvent struct {
	bun.BaseModel `bun:"table:score_events,alias:se"`

	ID            sharedtypes.EventID      `bun:"id,pk,type:uuid"`
	Seq           int64                    `bun:"seq,autoincrement"`
	MatchID       sharedtypes.MatchID      `bun:"match_id,notnull,type:uuid"`
	InningsNumber int                      `bun:"innings_number,notnull"`
	Reversed      bool                     `bun:"reversed,notnull"`
	Payload       scoringdomain.ScoreEvent `bun:"payload,type:jsonb"`
	CreatedAt     time.Time                `bun:",nullzero,notnull,default:current_timestamp"`
}

func matchToRow(m *scoringdomain.Match) *Match {
	return &Match{
		ID:             m.ID,
		RoomID:         m.RoomID,
		Format:         m.Format,
		CustomOvers:    m.CustomOvers,
		TeamA:          m.TeamA,
		TeamB:          m.TeamB,
		Status:         m.Status,
		InningsCount:   m.InningsCount,
		CurrentInnings: m.CurrentInnings,
	}
}

func matchToDomain(row *Match) *scoringdomain.Match {
	return &scoringdomain.Match{
		ID:             row.ID,
		RoomID:         row.RoomID,
		Format:         row.Format,
		CustomOvers:    row.CustomOvers,
		TeamA:          row.TeamA,
		TeamB:          row.TeamB,
		Status:         row.Status,
		InningsCount:   row.InningsCount,
		CurrentInnings: row.CurrentInnings,
	}
}

func inningsToRow(matchID sharedtypes.MatchID, inn *scoringdomain.Innings, version int64) *Innings {
	return &Innings{
		MatchID:          matchID,
		Number:           inn.Number,
		BattingTeam:      inn.BattingTeam,
		BowlingTeam:      inn.BowlingTeam,
		Runs:             inn.Runs,
		Wickets:          inn.Wickets,
		OversCompleted:   inn.OversCompleted,
		BallsInOver:      inn.BallsInOver,
		Extras:           inn.Extras,
		Target:           inn.Target,
		StrikerID:        inn.StrikerID,
		NonStrikerID:     inn.NonStrikerID,
		CurrentBowlerID:  inn.CurrentBowlerID,
		LastOverBowlerID: inn.LastOverBowlerID,
		Completed:        inn.Completed,
		BattingStats:     inn.BattingStats,
		BowlingStats:     inn.BowlingStats,
		Partnerships:     inn.Partnerships,
		FallOfWickets:    inn.FallOfWickets,
		Version:          version,
	}
}

func inningsToDomain(row *Innings) *scoringdomain.Innings {
	return &scoringdomain.Innings{
		Number:           row.Number,
		BattingTeam:      row.BattingTeam,
		BowlingTeam:      row.BowlingTeam,
		Runs:             row.Runs,
		Wickets:          row.Wickets,
		OversCompleted:   row.OversCompleted,
		BallsInOver:      row.BallsInOver,
		Extras:           row.Extras,
		Target:           row.Target,
		StrikerID:        row.StrikerID,
		NonStrikerID:     row.NonStrikerID,
		CurrentBowlerID:  row.CurrentBowlerID,
		LastOverBowlerID: row.LastOverBowlerID,
		Completed:        row.Completed,
		BattingStats:     row.BattingStats,
		BowlingStats:     row.BowlingStats,
		Partnerships:     row.Partnerships,
		FallOfWickets:    row.FallOfWickets,
	}
}
