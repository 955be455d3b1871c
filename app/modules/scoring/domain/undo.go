package scoringdomain

import (
	"time"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// Undo applies the exact numeric inverse of the transition recorded by ev,
// using only the fields stored on the event, never values recomputed from
// the current state. The event is tombstoned with the caller's identity; an
// undo always reopens play by clearing the innings completion flag.
func Undo(inn *Innings, ev *ScoreEvent, by sharedtypes.UserID, now time.Time) error {
	if ev.Reversed {
		return NewInvalidStateError("event %s is already reversed", ev.ID)
	}
	if ev.InningsNumber != inn.Number {
		return NewInvalidStateError("event %s belongs to innings %d, not %d", ev.ID, ev.InningsNumber, inn.Number)
	}

	deltas := classifyDelivery(ev.Outcome, ev.Runs, ev.ExtraRuns)

	// Runs and extras.
	inn.Runs -= deltas.total
	inn.Extras.Wides -= deltas.wides
	inn.Extras.NoBalls -= deltas.noBalls
	inn.Extras.Byes -= deltas.byes
	inn.Extras.LegByes -= deltas.legByes
	inn.Extras.Total -= deltas.wides + deltas.noBalls + deltas.byes + deltas.legByes

	// The over, borrowing one back when the event completed it.
	if ev.Flags.OverCompleted {
		inn.OversCompleted--
		inn.BallsInOver = ballsPerOver - 1
	} else if deltas.legal {
		inn.BallsInOver--
	}

	// The wicket.
	if ev.Flags.WicketFallen {
		inn.Wickets--
		if n := len(inn.FallOfWickets); n > 0 {
			inn.FallOfWickets = inn.FallOfWickets[:n-1]
		}
		if idx := findBattingRow(inn, ev.Wicket.PlayerID); idx >= 0 {
			inn.BattingStats[idx].Out = false
			inn.BattingStats[idx].Dismissal = ""
		}
	}

	// Batting stats, keyed by the event's stored striker.
	if deltas.facedBall {
		if idx := findBattingRow(inn, ev.StrikerID); idx >= 0 {
			row := &inn.BattingStats[idx]
			row.BallsFaced--
			row.Runs -= deltas.batterRuns
			switch deltas.batterRuns {
			case 4:
				row.Fours--
			case 6:
				row.Sixes--
			}
		}
	}

	// Bowling stats, keyed by the event's stored bowler.
	if ev.Outcome != sharedtypes.OutcomeDeadBall {
		if idx := findBowlingRow(inn, ev.BowlerID); idx >= 0 {
			row := &inn.BowlingStats[idx]
			row.RunsConceded -= deltas.bowlerConceded
			row.ExtrasConceded -= deltas.wides + deltas.noBalls
			row.RunsThisOver = ev.PreBowlerRunsThisOver
			if deltas.legal && deltas.total == 0 {
				row.DotBalls--
			}
			if ev.Flags.WicketFallen && deltas.legal {
				row.Wickets--
			}
			if ev.Flags.OverCompleted {
				row.OversBowled--
				if ev.Maiden {
					row.Maidens--
				}
			}
			// The bowler's own ball count, not the over's: a bowler who took
			// over mid-over had fewer balls than the over had.
			row.BallsInOver = ev.PreBowlerBallsInOver
		}
	}

	// Partnerships: pop the pair opened by the wicket, take this delivery
	// back from the pair that faced it, and drop the entry if this delivery
	// created it.
	if ev.Flags.WicketFallen {
		if n := len(inn.Partnerships); n > 0 {
			inn.Partnerships = inn.Partnerships[:n-1]
		}
	}
	if n := len(inn.Partnerships); n > 0 {
		last := &inn.Partnerships[n-1]
		last.Runs -= deltas.total
		if deltas.legal {
			last.Balls--
		}
		if ev.FilledPartnershipSlot {
			last.BatterB = ""
		}
	}
	if ev.CreatedPartnership {
		if n := len(inn.Partnerships); n > 0 {
			inn.Partnerships = inn.Partnerships[:n-1]
		}
	}

	// Rows created by the undone event are removed so the state returns to
	// exactly what it was.
	if ev.CreatedBattingRow {
		removeBattingRow(inn, ev.StrikerID)
	}
	if ev.CreatedDismissedRow && ev.Wicket != nil {
		removeBattingRow(inn, ev.Wicket.PlayerID)
	}
	if ev.CreatedBowlingRow {
		removeBowlingRow(inn, ev.BowlerID)
	}

	// Crease and bowler-of-record, from the event's pre-delivery identities.
	inn.StrikerID = ev.StrikerID
	inn.NonStrikerID = ev.NonStrikerID
	inn.CurrentBowlerID = ev.PreCurrentBowlerID
	inn.LastOverBowlerID = ev.PreLastOverBowlerID
	syncStrikeFlags(inn)

	// An undo always reopens play.
	inn.Completed = false

	ev.Reversed = true
	ev.ReversedBy = by
	ev.ReversedAt = &now

	return nil
}

func removeBattingRow(inn *Innings, id sharedtypes.PlayerID) {
	if idx := findBattingRow(inn, id); idx >= 0 {
		inn.BattingStats = append(inn.BattingStats[:idx], inn.BattingStats[idx+1:]...)
	}
}

func removeBowlingRow(inn *Innings, id sharedtypes.PlayerID) {
	if idx := findBowlingRow(inn, id); idx >= 0 {
		inn.BowlingStats = append(inn.BowlingStats[:idx], inn.BowlingStats[idx+1:]...)
	}
}
