package matchservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// inningsPerMatch returns how many innings the match plays in total.
func inningsPerMatch(format sharedtypes.MatchFormat) int {
	if format == sharedtypes.FormatTest {
		return 4
	}
	return 2
}

// CreateMatch validates the team sheets and persists a scheduled match.
func (s *MatchService) CreateMatch(ctx context.Context, params CreateMatchParams) (*scoringdomain.Match, error) {
	matchID := sharedtypes.MatchID(uuid.New())

	return withTelemetry(s, ctx, "CreateMatch", matchID, func(ctx context.Context) (*scoringdomain.Match, error) {
		if err := validateCreateParams(params); err != nil {
			return nil, err
		}

		params.TeamA.Tag = sharedtypes.TeamA
		params.TeamB.Tag = sharedtypes.TeamB

		m := &scoringdomain.Match{
			ID:           matchID,
			RoomID:       params.RoomID,
			Format:       params.Format,
			CustomOvers:  params.CustomOvers,
			TeamA:        params.TeamA,
			TeamB:        params.TeamB,
			Status:       sharedtypes.MatchStatusScheduled,
			InningsCount: inningsPerMatch(params.Format),
		}

		if err := s.repo.CreateMatch(ctx, nil, m); err != nil {
			return nil, err
		}

		s.metrics.RecordMatchCreated(ctx, m.Format)
		return m, nil
	})
}

func validateCreateParams(params CreateMatchParams) error {
	if params.RoomID == "" {
		return scoringdomain.NewValidationError("room_id is required")
	}
	if !params.Format.IsValid() {
		return scoringdomain.NewValidationError("unknown format %q", params.Format)
	}
	if params.Format == sharedtypes.FormatCustom && params.CustomOvers < 1 {
		return scoringdomain.NewValidationError("custom format requires custom_overs >= 1")
	}
	if len(params.TeamA.Players) < 2 || len(params.TeamB.Players) < 2 {
		return scoringdomain.NewValidationError("each team needs at least 2 players")
	}
	if len(params.TeamA.Players) != len(params.TeamB.Players) {
		return scoringdomain.NewValidationError("teams must have the same number of players")
	}

	seen := make(map[sharedtypes.PlayerID]bool)
	for _, team := range []sharedtypes.Team{params.TeamA, params.TeamB} {
		for _, p := range team.Players {
			if p.ID == "" {
				return scoringdomain.NewValidationError("player id is required")
			}
			if seen[p.ID] {
				return scoringdomain.NewValidationError("duplicate player id %s", p.ID)
			}
			seen[p.ID] = true
		}
	}
	return nil
}

// StartMatch moves a scheduled match to live and opens the first innings for
// the side batting first.
func (s *MatchService) StartMatch(ctx context.Context, matchID sharedtypes.MatchID, battingFirst sharedtypes.TeamTag) (*scoringdomain.Match, error) {
	return withTelemetry(s, ctx, "StartMatch", matchID, func(ctx context.Context) (*scoringdomain.Match, error) {
		if battingFirst != sharedtypes.TeamA && battingFirst != sharedtypes.TeamB {
			return nil, scoringdomain.NewValidationError("unknown team tag %q", battingFirst)
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (*scoringdomain.Match, error) {
			m, err := s.repo.GetMatch(ctx, db, matchID)
			if err != nil {
				return nil, err
			}
			if m.Status != sharedtypes.MatchStatusScheduled {
				return nil, scoringdomain.NewInvalidStateError("match is %s, not scheduled", m.Status)
			}

			m.Status = sharedtypes.MatchStatusLive
			m.CurrentInnings = 1

			if err := s.repo.CreateInnings(ctx, db, m.ID, scoringdomain.NewInnings(1, battingFirst, 0)); err != nil {
				return nil, err
			}
			if err := s.repo.UpdateMatch(ctx, db, m); err != nil {
				return nil, err
			}
			return m, nil
		})
	})
}

// advanceOutcome carries the transaction's result out to the broadcast step.
type advanceOutcome struct {
	match     *scoringdomain.Match
	completed *matchevents.MatchCompletedPayloadV1
}

// AdvanceInnings moves a live match past a completed innings: it opens the
// next innings with the sides swapped, or closes the match after the final
// one. The chasing target is set only for the last innings.
func (s *MatchService) AdvanceInnings(ctx context.Context, matchID sharedtypes.MatchID) (*scoringdomain.Match, error) {
	outcome, err := withTelemetry(s, ctx, "AdvanceInnings", matchID, func(ctx context.Context) (advanceOutcome, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (advanceOutcome, error) {
			m, err := s.repo.GetMatch(ctx, db, matchID)
			if err != nil {
				return advanceOutcome{}, err
			}
			if m.Status != sharedtypes.MatchStatusLive {
				return advanceOutcome{}, scoringdomain.NewInvalidStateError("match is %s, not live", m.Status)
			}

			current, _, err := s.repo.GetInnings(ctx, db, m.ID, m.CurrentInnings)
			if err != nil {
				return advanceOutcome{}, err
			}
			if !current.Completed {
				return advanceOutcome{}, scoringdomain.NewInvalidStateError("innings %d is still in progress", current.Number)
			}

			allInnings, err := s.repo.ListInnings(ctx, db, m.ID)
			if err != nil {
				return advanceOutcome{}, err
			}

			if m.CurrentInnings >= m.InningsCount {
				return s.completeMatch(ctx, db, m, allInnings)
			}

			next := m.CurrentInnings + 1
			battingNext := current.BattingTeam.Opponent()
			target := 0
			if next == m.InningsCount {
				target = chaseTarget(allInnings, battingNext)
			}

			if err := s.repo.CreateInnings(ctx, db, m.ID, scoringdomain.NewInnings(next, battingNext, target)); err != nil {
				return advanceOutcome{}, err
			}

			m.CurrentInnings = next
			if err := s.repo.UpdateMatch(ctx, db, m); err != nil {
				return advanceOutcome{}, err
			}
			return advanceOutcome{match: m}, nil
		})
	})
	if err != nil {
		return nil, err
	}

	if outcome.completed != nil {
		s.metrics.RecordMatchCompleted(ctx, outcome.match.Format)
		s.publish(ctx, matchevents.MatchCompletedV1, *outcome.completed)
	} else {
		s.metrics.RecordInningsAdvanced(ctx, matchID)
	}
	return outcome.match, nil
}

// completeMatch settles the result after the final innings and closes out
// the match row.
func (s *MatchService) completeMatch(ctx context.Context, db bun.IDB, m *scoringdomain.Match, allInnings []*scoringdomain.Innings) (advanceOutcome, error) {
	winner, resultText := matchResult(m, allInnings)

	m.Status = sharedtypes.MatchStatusCompleted
	if err := s.repo.UpdateMatch(ctx, db, m); err != nil {
		return advanceOutcome{}, err
	}

	return advanceOutcome{
		match: m,
		completed: &matchevents.MatchCompletedPayloadV1{
			MatchID:     m.ID,
			RoomID:      m.RoomID,
			WinnerTeam:  winner,
			ResultText:  resultText,
			CompletedAt: s.now().UTC(),
		},
	}, nil
}

// AbandonMatch writes off a match that will not finish.
func (s *MatchService) AbandonMatch(ctx context.Context, matchID sharedtypes.MatchID) (*scoringdomain.Match, error) {
	return withTelemetry(s, ctx, "AbandonMatch", matchID, func(ctx context.Context) (*scoringdomain.Match, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (*scoringdomain.Match, error) {
			m, err := s.repo.GetMatch(ctx, db, matchID)
			if err != nil {
				return nil, err
			}
			if m.Status == sharedtypes.MatchStatusCompleted || m.Status == sharedtypes.MatchStatusAbandoned {
				return nil, scoringdomain.NewInvalidStateError("match is already %s", m.Status)
			}

			m.Status = sharedtypes.MatchStatusAbandoned
			if err := s.repo.UpdateMatch(ctx, db, m); err != nil {
				return nil, err
			}
			return m, nil
		})
	})
}

// teamRuns sums each side's runs across the innings played so far.
func teamRuns(allInnings []*scoringdomain.Innings) map[sharedtypes.TeamTag]int {
	totals := make(map[sharedtypes.TeamTag]int, 2)
	for _, inn := range allInnings {
		totals[inn.BattingTeam] += inn.Runs
	}
	return totals
}

// chaseTarget computes what the side batting last needs: one more run than
// the opposition's aggregate lead.
func chaseTarget(allInnings []*scoringdomain.Innings, chasing sharedtypes.TeamTag) int {
	totals := teamRuns(allInnings)
	target := totals[chasing.Opponent()] - totals[chasing] + 1
	if target < 1 {
		target = 1
	}
	return target
}

// matchResult names the winner and phrases the result line. The chasing side
// wins by wickets in hand, the defending side by the run margin.
func matchResult(m *scoringdomain.Match, allInnings []*scoringdomain.Innings) (sharedtypes.TeamTag, string) {
	totals := teamRuns(allInnings)

	var final *scoringdomain.Innings
	for _, inn := range allInnings {
		if final == nil || inn.Number > final.Number {
			final = inn
		}
	}
	if final == nil {
		return "", "No result"
	}

	chasing := final.BattingTeam
	defending := chasing.Opponent()

	switch {
	case totals[chasing] > totals[defending]:
		wicketsInHand := len(m.Team(chasing).Players) - 1 - final.Wickets
		return chasing, fmt.Sprintf("%s won by %d wickets", m.Team(chasing).Name, wicketsInHand)
	case totals[defending] > totals[chasing]:
		return defending, fmt.Sprintf("%s won by %d runs", m.Team(defending).Name, totals[defending]-totals[chasing])
	default:
		return "", "Match tied"
	}
}
