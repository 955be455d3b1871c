package scoringdomain

import (
	"errors"
	"testing"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

func TestCheckBowlerEligibilityConsecutiveOvers(t *testing.T) {
	m := newTestMatch(sharedtypes.FormatT20)
	inn := newTestInnings()

	for i := 0; i < 6; i++ {
		mustApply(t, m, inn, Delivery{Outcome: sharedtypes.OutcomeNormal, Runs: 0, BowlerID: "b1"})
	}

	if err := CheckBowlerEligibility(m, inn, "b1"); !errors.Is(err, ErrRuleViolation) {
		t.Errorf("expected a rule violation for back-to-back overs, got %v", err)
	}
	if err := CheckBowlerEligibility(m, inn, "b2"); err != nil {
		t.Errorf("a fresh bowler must be allowed, got %v", err)
	}

	// One over in between resets the restriction.
	for i := 0; i < 6; i++ {
		mustApply(t, m, inn, Delivery{Outcome: sharedtypes.OutcomeNormal, Runs: 0, BowlerID: "b2"})
	}
	if err := CheckBowlerEligibility(m, inn, "b1"); err != nil {
		t.Errorf("b1 must be allowed after b2's over, got %v", err)
	}
}

func TestCheckBowlerEligibilityMidOverUnrestricted(t *testing.T) {
	m := newTestMatch(sharedtypes.FormatT20)
	inn := newTestInnings()
	inn.LastOverBowlerID = "b1"
	inn.OversCompleted = 1
	inn.BallsInOver = 2

	// The consecutive-over rule binds only at the first ball of an over.
	if err := CheckBowlerEligibility(m, inn, "b1"); err != nil {
		t.Errorf("mid-over the last-over bowler is not restricted, got %v", err)
	}
}

func TestCheckBowlerEligibilityFirstOver(t *testing.T) {
	m := newTestMatch(sharedtypes.FormatT20)
	inn := newTestInnings()

	if err := CheckBowlerEligibility(m, inn, "b1"); err != nil {
		t.Errorf("anyone may bowl the first over, got %v", err)
	}
}

func TestCheckBowlerEligibilityOverCaps(t *testing.T) {
	tests := []struct {
		format   sharedtypes.MatchFormat
		bowled   int
		wantDeny bool
	}{
		{sharedtypes.FormatT10, 1, false},
		{sharedtypes.FormatT10, 2, true},
		{sharedtypes.FormatT20, 3, false},
		{sharedtypes.FormatT20, 4, true},
		{sharedtypes.FormatODI, 9, false},
		{sharedtypes.FormatODI, 10, true},
		{sharedtypes.FormatTest, 40, false},
		{sharedtypes.FormatCustom, 40, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			m := newTestMatch(tt.format)
			inn := newTestInnings()
			inn.OversCompleted = tt.bowled * 2
			inn.LastOverBowlerID = "b2"
			inn.BowlingStats = []BowlingStat{{PlayerID: "b1", OversBowled: tt.bowled}}

			err := CheckBowlerEligibility(m, inn, "b1")
			if tt.wantDeny {
				if !errors.Is(err, ErrRuleViolation) {
					t.Errorf("%s after %d overs: expected a rule violation, got %v", tt.format, tt.bowled, err)
				}
			} else if err != nil {
				t.Errorf("%s after %d overs: expected no error, got %v", tt.format, tt.bowled, err)
			}
		})
	}
}

// Apply consults the policy before touching state: an ineligible bowler's
// delivery leaves the innings untouched.
func TestApplyRejectsIneligibleBowler(t *testing.T) {
	m := newTestMatch(sharedtypes.FormatT20)
	inn := newTestInnings()

	for i := 0; i < 6; i++ {
		mustApply(t, m, inn, Delivery{Outcome: sharedtypes.OutcomeNormal, Runs: 0, BowlerID: "b1"})
	}

	before := cloneInnings(t, inn)
	_, _, err := Apply(m, inn, Delivery{
		Outcome:      sharedtypes.OutcomeNormal,
		Runs:         1,
		StrikerID:    inn.StrikerID,
		NonStrikerID: inn.NonStrikerID,
		BowlerID:     "b1",
	}, testNow)
	if !errors.Is(err, ErrRuleViolation) {
		t.Fatalf("expected a rule violation, got %v", err)
	}
	if inn.Runs != before.Runs || inn.BallsInOver != before.BallsInOver {
		t.Error("a rejected delivery must not mutate the innings")
	}
}
