package matchevents

import (
	"time"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// Inbound topics consumed by the scoring router. Bus-first clients publish
// these instead of calling the HTTP gateway.
const (
	DeliveryRequestedV1 = "match.delivery.requested.v1"
	UndoRequestedV1     = "match.undo.requested.v1"
)

// Broadcast topics published after a scoring transition. Subscribers must
// treat BallUndoneV1 as an authoritative correction superseding the most
// recent BallUpdatedV1 for the same match.
const (
	BallUpdatedV1      = "match.ball.updated.v1"
	WicketFallenV1     = "match.wicket.fallen.v1"
	StrikeRotatedV1    = "match.strike.rotated.v1"
	OverCompletedV1    = "match.over.completed.v1"
	InningsCompletedV1 = "match.innings.completed.v1"
	BallUndoneV1       = "match.ball.undone.v1"

	DeliveryRejectedV1 = "match.delivery.rejected.v1"
	UndoRejectedV1     = "match.undo.rejected.v1"

	MatchCompletedV1 = "match.completed.v1"
)

// WicketInfo describes a dismissal inside event payloads.
type WicketInfo struct {
	PlayerID  sharedtypes.PlayerID      `json:"player_id"`
	Kind      sharedtypes.DismissalType `json:"kind"`
	FielderID sharedtypes.PlayerID      `json:"fielder_id,omitempty"`
}

// DeliveryRequestedPayloadV1 asks the scoring engine to record one delivery.
// After a mid-over wicket the striker (or non-striker, for a run out at the
// non-striker's end) names the incoming batter.
type DeliveryRequestedPayloadV1 struct {
	MatchID      sharedtypes.MatchID         `json:"match_id"`
	RoomID       sharedtypes.RoomID          `json:"room_id"`
	RequestedBy  sharedtypes.UserID          `json:"requested_by"`
	Outcome      sharedtypes.DeliveryOutcome `json:"outcome"`
	Runs         int                         `json:"runs"`
	ExtraRuns    int                         `json:"extra_runs"`
	StrikerID    sharedtypes.PlayerID        `json:"striker_id"`
	NonStrikerID sharedtypes.PlayerID        `json:"non_striker_id"`
	BowlerID     sharedtypes.PlayerID        `json:"bowler_id"`
	Wicket       *WicketInfo                 `json:"wicket,omitempty"`
}

// UndoRequestedPayloadV1 asks the engine to reverse the most recent delivery.
type UndoRequestedPayloadV1 struct {
	MatchID     sharedtypes.MatchID `json:"match_id"`
	RoomID      sharedtypes.RoomID  `json:"room_id"`
	RequestedBy sharedtypes.UserID  `json:"requested_by"`
}

// InningsSummaryV1 is the cumulative state snapshot attached to broadcasts.
type InningsSummaryV1 struct {
	InningsNumber  int                  `json:"innings_number"`
	BattingTeam    sharedtypes.TeamTag  `json:"batting_team"`
	Runs           int                  `json:"runs"`
	Wickets        int                  `json:"wickets"`
	OversCompleted int                  `json:"overs_completed"`
	BallsInOver    int                  `json:"balls_in_over"`
	ExtrasTotal    int                  `json:"extras_total"`
	Target         int                  `json:"target,omitempty"`
	StrikerID      sharedtypes.PlayerID `json:"striker_id"`
	NonStrikerID   sharedtypes.PlayerID `json:"non_striker_id"`
	BowlerID       sharedtypes.PlayerID `json:"bowler_id"`
	Completed      bool                 `json:"completed"`
}

// BallUpdatedPayloadV1 is the full outcome payload for one recorded delivery.
type BallUpdatedPayloadV1 struct {
	MatchID          sharedtypes.MatchID         `json:"match_id"`
	RoomID           sharedtypes.RoomID          `json:"room_id"`
	EventID          sharedtypes.EventID         `json:"event_id"`
	Over             int                         `json:"over"`
	Ball             int                         `json:"ball"`
	Outcome          sharedtypes.DeliveryOutcome `json:"outcome"`
	Runs             int                         `json:"runs"`
	ExtraRuns        int                         `json:"extra_runs"`
	Wicket           *WicketInfo                 `json:"wicket,omitempty"`
	StrikeRotated    bool                        `json:"strike_rotated"`
	OverCompleted    bool                        `json:"over_completed"`
	InningsCompleted bool                        `json:"innings_completed"`
	Summary          InningsSummaryV1            `json:"summary"`
	RecordedAt       time.Time                   `json:"recorded_at"`
}

// WicketFallenPayloadV1 announces a dismissal.
type WicketFallenPayloadV1 struct {
	MatchID sharedtypes.MatchID `json:"match_id"`
	RoomID  sharedtypes.RoomID  `json:"room_id"`
	Wicket  WicketInfo          `json:"wicket"`
	Score   int                 `json:"score"`
	Over    int                 `json:"over"`
	Ball    int                 `json:"ball"`
	Summary InningsSummaryV1    `json:"summary"`
}

// StrikeRotatedPayloadV1 announces that the batters crossed.
type StrikeRotatedPayloadV1 struct {
	MatchID      sharedtypes.MatchID  `json:"match_id"`
	RoomID       sharedtypes.RoomID   `json:"room_id"`
	StrikerID    sharedtypes.PlayerID `json:"striker_id"`
	NonStrikerID sharedtypes.PlayerID `json:"non_striker_id"`
}

// OverCompletedPayloadV1 announces a completed over.
type OverCompletedPayloadV1 struct {
	MatchID        sharedtypes.MatchID  `json:"match_id"`
	RoomID         sharedtypes.RoomID   `json:"room_id"`
	OversCompleted int                  `json:"overs_completed"`
	BowlerID       sharedtypes.PlayerID `json:"bowler_id"`
	Maiden         bool                 `json:"maiden"`
	Summary        InningsSummaryV1     `json:"summary"`
}

// InningsCompletedPayloadV1 announces that the innings closed. Advancing the
// match to the next innings is the match module's decision, not the engine's.
type InningsCompletedPayloadV1 struct {
	MatchID       sharedtypes.MatchID `json:"match_id"`
	RoomID        sharedtypes.RoomID  `json:"room_id"`
	InningsNumber int                 `json:"innings_number"`
	Summary       InningsSummaryV1    `json:"summary"`
}

// BallUndonePayloadV1 announces a reversed delivery.
type BallUndonePayloadV1 struct {
	MatchID         sharedtypes.MatchID  `json:"match_id"`
	RoomID          sharedtypes.RoomID   `json:"room_id"`
	ReversedEventID sharedtypes.EventID  `json:"reversed_event_id"`
	ReversedBy      sharedtypes.UserID   `json:"reversed_by"`
	StrikerID       sharedtypes.PlayerID `json:"striker_id"`
	NonStrikerID    sharedtypes.PlayerID `json:"non_striker_id"`
	Summary         InningsSummaryV1     `json:"summary"`
}

// Rejection codes carried by the rejected payloads. Transports map them onto
// their own status vocabulary.
const (
	CodeValidation          = "VALIDATION"
	CodeRuleViolation       = "RULE_VIOLATION"
	CodeInvalidState        = "INVALID_STATE"
	CodeNotFound            = "NOT_FOUND"
	CodeNothingToUndo       = "NOTHING_TO_UNDO"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
)

// DeliveryRejectedPayloadV1 reports a delivery that failed validation or a
// cricket rule. State was not mutated.
type DeliveryRejectedPayloadV1 struct {
	MatchID sharedtypes.MatchID `json:"match_id"`
	RoomID  sharedtypes.RoomID  `json:"room_id"`
	Code    string              `json:"code"`
	Reason  string              `json:"reason"`
}

// UndoRejectedPayloadV1 reports an undo that could not be applied.
type UndoRejectedPayloadV1 struct {
	MatchID sharedtypes.MatchID `json:"match_id"`
	RoomID  sharedtypes.RoomID  `json:"room_id"`
	Code    string              `json:"code"`
	Reason  string              `json:"reason"`
}

// MatchCompletedPayloadV1 announces the end of the match; the stats module
// consumes it to build the scorecard artifact.
type MatchCompletedPayloadV1 struct {
	MatchID     sharedtypes.MatchID `json:"match_id"`
	RoomID      sharedtypes.RoomID  `json:"room_id"`
	WinnerTeam  sharedtypes.TeamTag `json:"winner_team,omitempty"`
	ResultText  string              `json:"result_text"`
	CompletedAt time.Time           `json:"completed_at"`
}
