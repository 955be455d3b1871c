package sharedtypes

import (
	"database/sql/driver"

	"github.com/google/uuid"
)

// MatchID uniquely identifies a match.
type MatchID uuid.UUID

func (id MatchID) String() string {
	return uuid.UUID(id).String()
}

// MarshalText renders the canonical string form; it also makes JSON encode
// the ID as a string rather than a byte array.
func (id MatchID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

func (id *MatchID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = MatchID(u)
	return nil
}

// Value implements driver.Valuer for uuid columns.
func (id MatchID) Value() (driver.Value, error) {
	return uuid.UUID(id).Value()
}

// Scan implements sql.Scanner for uuid columns.
func (id *MatchID) Scan(src interface{}) error {
	var u uuid.UUID
	if err := u.Scan(src); err != nil {
		return err
	}
	*id = MatchID(u)
	return nil
}

// ParseMatchID parses a string form of a MatchID.
func ParseMatchID(s string) (MatchID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return MatchID{}, err
	}
	return MatchID(u), nil
}

// EventID uniquely identifies a score event in the ledger.
type EventID uuid.UUID

func (id EventID) String() string {
	return uuid.UUID(id).String()
}

func (id EventID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

func (id *EventID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = EventID(u)
	return nil
}

// Value implements driver.Valuer for uuid columns.
func (id EventID) Value() (driver.Value, error) {
	return uuid.UUID(id).Value()
}

// Scan implements sql.Scanner for uuid columns.
func (id *EventID) Scan(src interface{}) error {
	var u uuid.UUID
	if err := u.Scan(src); err != nil {
		return err
	}
	*id = EventID(u)
	return nil
}

// ParseEventID parses a string form of an EventID.
func ParseEventID(s string) (EventID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return EventID{}, err
	}
	return EventID(u), nil
}

// RoomID identifies the room that owns a match. Room lifecycle is managed
// externally; the scoring core only scopes broadcasts by it.
type RoomID string

// UserID identifies an authenticated account. Identity is managed externally.
type UserID string

// PlayerID identifies a player within a match's team lists.
type PlayerID string

// TeamTag names one of the two sides of a match.
type TeamTag string

const (
	TeamA TeamTag = "team_a"
	TeamB TeamTag = "team_b"
)

// Opponent returns the other side.
func (t TeamTag) Opponent() TeamTag {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// Player is one entry in a team's ordered player list.
type Player struct {
	ID   PlayerID `json:"id"`
	Name string   `json:"name"`
}

// Team is one side of a match.
type Team struct {
	Tag     TeamTag  `json:"tag"`
	Name    string   `json:"name"`
	Players []Player `json:"players"`
}

// HasPlayer reports whether the team contains the given player.
func (t Team) HasPlayer(id PlayerID) bool {
	for _, p := range t.Players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// MatchFormat determines total overs per innings and the per-bowler over cap.
type MatchFormat string

const (
	FormatT10    MatchFormat = "T10"
	FormatT20    MatchFormat = "T20"
	FormatODI    MatchFormat = "ODI"
	FormatTest   MatchFormat = "TEST"
	FormatCustom MatchFormat = "CUSTOM"
)

// IsValid reports whether the format is one of the known formats.
func (f MatchFormat) IsValid() bool {
	switch f {
	case FormatT10, FormatT20, FormatODI, FormatTest, FormatCustom:
		return true
	}
	return false
}

// TotalOvers returns the overs per innings for the format, or 0 when
// unlimited (TEST) or caller-defined (CUSTOM).
func (f MatchFormat) TotalOvers() int {
	switch f {
	case FormatT10:
		return 10
	case FormatT20:
		return 20
	case FormatODI:
		return 50
	}
	return 0
}

// BowlerOverCap returns the maximum overs a single bowler may bowl, or 0
// when unlimited.
func (f MatchFormat) BowlerOverCap() int {
	switch f {
	case FormatT10:
		return 2
	case FormatT20:
		return 4
	case FormatODI:
		return 10
	}
	return 0
}

// MatchStatus is the match lifecycle state.
type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusAbandoned MatchStatus = "abandoned"
)

// DeliveryOutcome classifies one delivery. It is a closed set; anything else
// is rejected by validation.
type DeliveryOutcome string

const (
	OutcomeNormal   DeliveryOutcome = "normal"
	OutcomeWide     DeliveryOutcome = "wide"
	OutcomeNoBall   DeliveryOutcome = "no_ball"
	OutcomeBye      DeliveryOutcome = "bye"
	OutcomeLegBye   DeliveryOutcome = "leg_bye"
	OutcomeWicket   DeliveryOutcome = "wicket"
	OutcomeDeadBall DeliveryOutcome = "dead_ball"
)

// IsValid reports whether the outcome is a member of the closed set.
func (o DeliveryOutcome) IsValid() bool {
	switch o {
	case OutcomeNormal, OutcomeWide, OutcomeNoBall, OutcomeBye, OutcomeLegBye, OutcomeWicket, OutcomeDeadBall:
		return true
	}
	return false
}

// Legal reports whether the delivery counts toward the six-ball over.
func (o DeliveryOutcome) Legal() bool {
	switch o {
	case OutcomeWide, OutcomeNoBall, OutcomeDeadBall:
		return false
	}
	return true
}

// DismissalType classifies how a batter was out.
type DismissalType string

const (
	DismissalBowled    DismissalType = "bowled"
	DismissalCaught    DismissalType = "caught"
	DismissalLBW       DismissalType = "lbw"
	DismissalRunOut    DismissalType = "run_out"
	DismissalStumped   DismissalType = "stumped"
	DismissalHitWicket DismissalType = "hit_wicket"
	DismissalRetired   DismissalType = "retired"
)

// IsValid reports whether the dismissal type is a member of the closed set.
func (d DismissalType) IsValid() bool {
	switch d {
	case DismissalBowled, DismissalCaught, DismissalLBW, DismissalRunOut, DismissalStumped, DismissalHitWicket, DismissalRetired:
		return true
	}
	return false
}
