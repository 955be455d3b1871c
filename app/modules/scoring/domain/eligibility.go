package scoringdomain

import "github.com/crease-live/crease-backend/app/shared/types/sharedtypes"

// CheckBowlerEligibility is the format-dependent policy consulted before a
// delivery is accepted.
//
// The no-consecutive-overs rule is evaluated only at the first ball of a new
// over: a bowler cannot be the bowler of record for the over starting at
// ball N+1 if they bowled the over ending at ball N. The per-bowler over cap
// applies at any point; TEST and CUSTOM formats are uncapped.
func CheckBowlerEligibility(m *Match, inn *Innings, bowlerID sharedtypes.PlayerID) error {
	startingNewOver := inn.BallsInOver == 0 && inn.OversCompleted > 0
	if startingNewOver && bowlerID == inn.LastOverBowlerID {
		return NewRuleViolationError("bowler %s bowled the previous over and cannot bowl consecutive overs", bowlerID)
	}

	overCap := m.Format.BowlerOverCap()
	if overCap > 0 {
		if idx := findBowlingRow(inn, bowlerID); idx >= 0 && inn.BowlingStats[idx].OversBowled >= overCap {
			return NewRuleViolationError("bowler %s has reached the %s limit of %d overs", bowlerID, m.Format, overCap)
		}
	}

	return nil
}
