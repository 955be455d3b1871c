package scoringdomain

import (
	"time"

	"github.com/google/uuid"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// ballsPerOver is fixed; the engine does not model shortened overs.
const ballsPerOver = 6

// maxPhysicalRuns bounds the runs a single delivery can plausibly produce.
const maxPhysicalRuns = 6

// NewInnings builds an empty innings. Target is zero except for the chasing
// innings.
func NewInnings(number int, battingTeam sharedtypes.TeamTag, target int) *Innings {
	return &Innings{
		Number:      number,
		BattingTeam: battingTeam,
		BowlingTeam: battingTeam.Opponent(),
		Target:      target,
	}
}

// deliveryDeltas are the numeric contributions of one delivery. Apply adds
// them; Undo subtracts the same numbers, so the two paths cannot drift.
type deliveryDeltas struct {
	total          int
	batterRuns     int
	wides          int
	noBalls        int
	byes           int
	legByes        int
	bowlerConceded int
	runningRuns    int
	legal          bool
	facedBall      bool
}

// classifyDelivery maps an outcome and its run counts onto score deltas.
//
// Wide and no-ball carry a one-run penalty plus any physical running; byes
// and leg-byes are extras only; a dead ball counts nothing. Runs off the bat
// (normal, wicket, no-ball) credit the striker. Byes and leg-byes do not
// count against the bowler.
func classifyDelivery(outcome sharedtypes.DeliveryOutcome, runs, extraRuns int) deliveryDeltas {
	switch outcome {
	case sharedtypes.OutcomeWide:
		return deliveryDeltas{
			total:          1 + extraRuns,
			wides:          1 + extraRuns,
			bowlerConceded: 1 + extraRuns,
			runningRuns:    extraRuns,
		}
	case sharedtypes.OutcomeNoBall:
		return deliveryDeltas{
			total:          1 + runs + extraRuns,
			noBalls:        1 + extraRuns,
			batterRuns:     runs,
			bowlerConceded: 1 + runs + extraRuns,
			runningRuns:    runs,
			facedBall:      true,
		}
	case sharedtypes.OutcomeBye:
		return deliveryDeltas{
			total:       runs,
			byes:        runs,
			runningRuns: runs,
			legal:       true,
			facedBall:   true,
		}
	case sharedtypes.OutcomeLegBye:
		return deliveryDeltas{
			total:       runs,
			legByes:     runs,
			runningRuns: runs,
			legal:       true,
			facedBall:   true,
		}
	case sharedtypes.OutcomeDeadBall:
		return deliveryDeltas{}
	default: // normal, wicket
		return deliveryDeltas{
			total:          runs,
			batterRuns:     runs,
			bowlerConceded: runs,
			runningRuns:    runs,
			legal:          true,
			facedBall:      true,
		}
	}
}

// Apply runs the scoring transition for one delivery: it validates the
// request against the current teams and innings, consults the
// bowler-eligibility policy, mutates the innings, and returns the ledger
// event plus the structured outcome flags. On error the innings is
// untouched.
//
// After a mid-over wicket the vacated end is empty on the innings; the
// delivery that follows names the incoming batter at that end.
func Apply(m *Match, inn *Innings, d Delivery, now time.Time) (*ScoreEvent, TransitionFlags, error) {
	if err := validateDelivery(m, inn, d); err != nil {
		return nil, TransitionFlags{}, err
	}
	if err := CheckBowlerEligibility(m, inn, d.BowlerID); err != nil {
		return nil, TransitionFlags{}, err
	}

	deltas := classifyDelivery(d.Outcome, d.Runs, d.ExtraRuns)
	flags := TransitionFlags{}

	ev := &ScoreEvent{
		ID:                  sharedtypes.EventID(uuid.New()),
		MatchID:             m.ID,
		InningsNumber:       inn.Number,
		Over:                inn.OversCompleted,
		Ball:                inn.BallsInOver,
		Outcome:             d.Outcome,
		Runs:                d.Runs,
		ExtraRuns:           d.ExtraRuns,
		Wicket:              d.Wicket,
		StrikerID:           d.StrikerID,
		NonStrikerID:        d.NonStrikerID,
		BowlerID:            d.BowlerID,
		PreCurrentBowlerID:  inn.CurrentBowlerID,
		PreLastOverBowlerID: inn.LastOverBowlerID,
		CreatedAt:           now,
	}

	// Resolve the crease. A pending end left empty by a wicket is filled by
	// the identities on this delivery.
	inn.StrikerID = d.StrikerID
	inn.NonStrikerID = d.NonStrikerID

	// Step 1: runs and extras.
	inn.Runs += deltas.total
	inn.Extras.Wides += deltas.wides
	inn.Extras.NoBalls += deltas.noBalls
	inn.Extras.Byes += deltas.byes
	inn.Extras.LegByes += deltas.legByes
	inn.Extras.Total += deltas.wides + deltas.noBalls + deltas.byes + deltas.legByes

	// Step 3: batting stats. Rows are created lazily on first appearance.
	if deltas.facedBall {
		idx, created := ensureBattingRow(inn, d.StrikerID)
		ev.CreatedBattingRow = created
		row := &inn.BattingStats[idx]
		row.BallsFaced++
		row.Runs += deltas.batterRuns
		switch deltas.batterRuns {
		case 4:
			row.Fours++
		case 6:
			row.Sixes++
		}
	}

	// Bowling stats. A dead ball is not charged to anyone.
	var bowlerIdx = -1
	if d.Outcome != sharedtypes.OutcomeDeadBall {
		var created bool
		bowlerIdx, created = ensureBowlingRow(inn, d.BowlerID)
		ev.CreatedBowlingRow = created
		row := &inn.BowlingStats[bowlerIdx]
		ev.PreBowlerRunsThisOver = row.RunsThisOver
		ev.PreBowlerBallsInOver = row.BallsInOver
		row.RunsConceded += deltas.bowlerConceded
		row.ExtrasConceded += deltas.wides + deltas.noBalls
		row.RunsThisOver += deltas.bowlerConceded
		if deltas.legal && deltas.total == 0 {
			row.DotBalls++
		}
		inn.CurrentBowlerID = d.BowlerID
	}

	// Step 2: the six-ball over. Only legal deliveries advance it.
	if deltas.legal {
		inn.BallsInOver++
		if bowlerIdx >= 0 {
			inn.BowlingStats[bowlerIdx].BallsInOver++
		}
		if inn.BallsInOver == ballsPerOver {
			flags.OverCompleted = true
			inn.BallsInOver = 0
			inn.OversCompleted++
			if bowlerIdx >= 0 {
				row := &inn.BowlingStats[bowlerIdx]
				row.OversBowled++
				row.BallsInOver = 0
				if row.RunsThisOver == 0 {
					row.Maidens++
					ev.Maiden = true
				}
				row.RunsThisOver = 0
			}
			inn.LastOverBowlerID = d.BowlerID
			inn.CurrentBowlerID = ""
		}
	}

	// Step 6 (first half): the delivery belongs to the partnership that was
	// at the crease when it was bowled.
	if len(inn.Partnerships) == 0 {
		inn.Partnerships = append(inn.Partnerships, Partnership{
			BatterA: d.StrikerID,
			BatterB: d.NonStrikerID,
		})
		ev.CreatedPartnership = true
	}
	last := &inn.Partnerships[len(inn.Partnerships)-1]
	// A pair opened by a wicket holds only the survivor; the incoming
	// batter's first delivery completes it.
	if last.BatterB == "" {
		incoming := d.StrikerID
		if incoming == last.BatterA {
			incoming = d.NonStrikerID
		}
		last.BatterB = incoming
		ev.FilledPartnershipSlot = true
	}
	last.Runs += deltas.total
	if deltas.legal {
		last.Balls++
	}

	// Step 4: the wicket.
	if d.Outcome == sharedtypes.OutcomeWicket {
		flags.WicketFallen = true
		inn.Wickets++

		dismissedIdx, created := ensureBattingRow(inn, d.Wicket.PlayerID)
		ev.CreatedDismissedRow = created
		dismissed := &inn.BattingStats[dismissedIdx]
		dismissed.Out = true
		dismissed.Dismissal = d.Wicket.Kind

		if deltas.legal && bowlerIdx >= 0 {
			inn.BowlingStats[bowlerIdx].Wickets++
		}

		inn.FallOfWickets = append(inn.FallOfWickets, FallOfWicket{
			PlayerID: d.Wicket.PlayerID,
			Wicket:   inn.Wickets,
			Score:    inn.Runs,
			Over:     ev.Over,
			Ball:     ev.Ball + 1,
		})
	}

	// Step 5: strike rotation. Odd physical running XORed with over
	// completion; a wicket suppresses the running component and leaves the
	// vacated end pending.
	if flags.WicketFallen {
		surviving := inn.NonStrikerID
		if d.Wicket.PlayerID == inn.NonStrikerID {
			surviving = inn.StrikerID
		}
		if flags.OverCompleted {
			inn.StrikerID = surviving
			inn.NonStrikerID = ""
		} else if d.Wicket.PlayerID == inn.StrikerID {
			inn.StrikerID = ""
		} else {
			inn.NonStrikerID = ""
		}

		// Step 6 (second half): a new pair begins with the survivor.
		inn.Partnerships = append(inn.Partnerships, Partnership{
			BatterA: surviving,
		})
	} else {
		rotate := (deltas.runningRuns%2 == 1) != flags.OverCompleted
		if rotate {
			inn.StrikerID, inn.NonStrikerID = inn.NonStrikerID, inn.StrikerID
			flags.StrikeRotated = true
		}
	}
	syncStrikeFlags(inn)

	// Step 7: innings completion.
	maxWickets := len(m.Team(inn.BattingTeam).Players) - 1
	allOut := maxWickets > 0 && inn.Wickets >= maxWickets
	oversDone := m.TotalOvers() > 0 && inn.OversCompleted >= m.TotalOvers() && inn.BallsInOver == 0
	targetReached := inn.Target > 0 && inn.Runs >= inn.Target
	if allOut || oversDone || targetReached {
		inn.Completed = true
		flags.InningsCompleted = true
	}

	ev.TotalRuns = inn.Runs
	ev.Wickets = inn.Wickets
	ev.Flags = flags

	return ev, flags, nil
}

// validateDelivery checks structural completeness and that the named players
// are where the request says they are. It never mutates state.
func validateDelivery(m *Match, inn *Innings, d Delivery) error {
	if m.Status != sharedtypes.MatchStatusLive {
		return NewInvalidStateError("match %s is %s, not live", m.ID, m.Status)
	}
	if inn.Completed {
		return NewInvalidStateError("innings %d is already completed", inn.Number)
	}
	if !d.Outcome.IsValid() {
		return NewValidationError("unknown delivery outcome %q", d.Outcome)
	}
	if d.Runs < 0 || d.Runs > maxPhysicalRuns {
		return NewValidationError("runs %d out of range [0,%d]", d.Runs, maxPhysicalRuns)
	}
	if d.ExtraRuns < 0 || d.ExtraRuns > maxPhysicalRuns {
		return NewValidationError("extra runs %d out of range [0,%d]", d.ExtraRuns, maxPhysicalRuns)
	}
	if d.StrikerID == "" || d.NonStrikerID == "" || d.BowlerID == "" {
		return NewValidationError("striker, non-striker and bowler are all required")
	}
	if d.StrikerID == d.NonStrikerID {
		return NewValidationError("striker and non-striker cannot both be %s", d.StrikerID)
	}

	battingTeam := m.Team(inn.BattingTeam)
	bowlingTeam := m.Team(inn.BowlingTeam)
	if !battingTeam.HasPlayer(d.StrikerID) {
		return NewValidationError("striker %s is not in the batting team", d.StrikerID)
	}
	if !battingTeam.HasPlayer(d.NonStrikerID) {
		return NewValidationError("non-striker %s is not in the batting team", d.NonStrikerID)
	}
	if !bowlingTeam.HasPlayer(d.BowlerID) {
		return NewValidationError("bowler %s is not in the bowling team", d.BowlerID)
	}

	// The crease must line up with the innings pointers; an empty pointer is
	// a vacated end being filled by this delivery.
	if inn.StrikerID != "" && d.StrikerID != inn.StrikerID {
		return NewValidationError("striker %s is not at the crease (expected %s)", d.StrikerID, inn.StrikerID)
	}
	if inn.NonStrikerID != "" && d.NonStrikerID != inn.NonStrikerID {
		return NewValidationError("non-striker %s is not at the crease (expected %s)", d.NonStrikerID, inn.NonStrikerID)
	}
	for _, id := range []sharedtypes.PlayerID{d.StrikerID, d.NonStrikerID} {
		if idx := findBattingRow(inn, id); idx >= 0 && inn.BattingStats[idx].Out {
			return NewValidationError("batter %s has already been dismissed", id)
		}
	}

	if d.Outcome == sharedtypes.OutcomeWicket {
		if d.Wicket == nil {
			return NewValidationError("wicket outcome requires wicket details")
		}
		if !d.Wicket.Kind.IsValid() {
			return NewValidationError("unknown dismissal type %q", d.Wicket.Kind)
		}
		if d.Wicket.PlayerID != d.StrikerID && d.Wicket.PlayerID != d.NonStrikerID {
			return NewValidationError("dismissed player %s is not at the crease", d.Wicket.PlayerID)
		}
	} else if d.Wicket != nil {
		return NewValidationError("wicket details are only valid on a wicket outcome")
	}

	return nil
}

// findBattingRow returns the index of a batter's row, or -1.
func findBattingRow(inn *Innings, id sharedtypes.PlayerID) int {
	for i := range inn.BattingStats {
		if inn.BattingStats[i].PlayerID == id {
			return i
		}
	}
	return -1
}

// ensureBattingRow returns a stable index for the batter's row, creating it
// when the batter appears for the first time.
func ensureBattingRow(inn *Innings, id sharedtypes.PlayerID) (int, bool) {
	if idx := findBattingRow(inn, id); idx >= 0 {
		return idx, false
	}
	inn.BattingStats = append(inn.BattingStats, BattingStat{PlayerID: id})
	return len(inn.BattingStats) - 1, true
}

// findBowlingRow returns the index of a bowler's row, or -1.
func findBowlingRow(inn *Innings, id sharedtypes.PlayerID) int {
	for i := range inn.BowlingStats {
		if inn.BowlingStats[i].PlayerID == id {
			return i
		}
	}
	return -1
}

// ensureBowlingRow returns a stable index for the bowler's row, creating it
// when the bowler appears for the first time.
func ensureBowlingRow(inn *Innings, id sharedtypes.PlayerID) (int, bool) {
	if idx := findBowlingRow(inn, id); idx >= 0 {
		return idx, false
	}
	inn.BowlingStats = append(inn.BowlingStats, BowlingStat{PlayerID: id})
	return len(inn.BowlingStats) - 1, true
}

// syncStrikeFlags makes the batting rows' on-strike markers agree with the
// innings striker pointer.
func syncStrikeFlags(inn *Innings) {
	for i := range inn.BattingStats {
		inn.BattingStats[i].OnStrike = inn.StrikerID != "" && inn.BattingStats[i].PlayerID == inn.StrikerID
	}
}
