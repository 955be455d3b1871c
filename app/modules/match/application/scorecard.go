package matchservice

import (
	"context"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// GetScorecard returns the match with every innings played so far. The
// result line is only present once the match is over.
func (s *MatchService) GetScorecard(ctx context.Context, matchID sharedtypes.MatchID) (*Scorecard, error) {
	return withTelemetry(s, ctx, "GetScorecard", matchID, func(ctx context.Context) (*Scorecard, error) {
		m, err := s.repo.GetMatch(ctx, nil, matchID)
		if err != nil {
			return nil, err
		}
		allInnings, err := s.repo.ListInnings(ctx, nil, matchID)
		if err != nil {
			return nil, err
		}

		card := &Scorecard{Match: m, Innings: allInnings}
		if m.Status == sharedtypes.MatchStatusCompleted {
			_, card.ResultText = matchResult(m, allInnings)
		}
		return card, nil
	})
}
