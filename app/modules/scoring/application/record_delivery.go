package scoringservice

import (
	"context"
	"errors"

	"github.com/uptrace/bun"

	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	scoringdb "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories"
	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/observability/attr"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
	"github.com/crease-live/crease-backend/app/shared/utils/results"
)

// RecordDelivery validates and applies one delivery, persists the updated
// innings and the ledger event in a single transaction, and broadcasts the
// outcome. Operations on the same match are serialized by a per-match lock;
// the optimistic innings version is the backstop for writers outside this
// process.
func (s *ScoringService) RecordDelivery(ctx context.Context, req matchevents.DeliveryRequestedPayloadV1) (DeliveryOperationResult, error) {
	release := s.locks.acquire(req.MatchID)
	defer release()

	var applied struct {
		flags   scoringdomain.TransitionFlags
		event   *scoringdomain.ScoreEvent
		innings *scoringdomain.Innings
		maiden  bool
	}

	result, err := withTelemetry(s, ctx, "RecordDelivery", req.MatchID, func(ctx context.Context) (DeliveryOperationResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (DeliveryOperationResult, error) {
			m, err := s.repo.GetMatch(ctx, db, req.MatchID)
			if err != nil {
				if errors.Is(err, scoringdb.ErrNotFound) {
					return rejectDelivery(req, matchevents.CodeNotFound, "match not found"), nil
				}
				return DeliveryOperationResult{}, err
			}

			inn, version, err := s.repo.GetInnings(ctx, db, req.MatchID, m.CurrentInnings)
			if err != nil {
				if errors.Is(err, scoringdb.ErrNotFound) {
					return rejectDelivery(req, matchevents.CodeInvalidState, "no innings in progress"), nil
				}
				return DeliveryOperationResult{}, err
			}

			d := scoringdomain.Delivery{
				Outcome:      req.Outcome,
				Runs:         req.Runs,
				ExtraRuns:    req.ExtraRuns,
				StrikerID:    req.StrikerID,
				NonStrikerID: req.NonStrikerID,
				BowlerID:     req.BowlerID,
				Wicket:       wicketDetailFromInfo(req.Wicket),
			}

			ev, flags, err := scoringdomain.Apply(m, inn, d, s.now().UTC())
			if err != nil {
				return rejectDelivery(req, rejectionCode(err), err.Error()), nil
			}

			if err := s.repo.UpdateInnings(ctx, db, req.MatchID, inn, version); err != nil {
				if errors.Is(err, scoringdb.ErrVersionConflict) {
					s.metrics.RecordConcurrencyConflict(ctx, req.MatchID)
					return rejectDelivery(req, matchevents.CodeConcurrencyConflict, "match state changed concurrently, retry"), nil
				}
				return DeliveryOperationResult{}, err
			}
			if err := s.repo.InsertEvent(ctx, db, ev); err != nil {
				return DeliveryOperationResult{}, err
			}

			applied.flags = flags
			applied.event = ev
			applied.innings = inn
			applied.maiden = ev.Maiden

			payload := matchevents.BallUpdatedPayloadV1{
				MatchID:          req.MatchID,
				RoomID:           req.RoomID,
				EventID:          ev.ID,
				Over:             ev.Over,
				Ball:             ev.Ball,
				Outcome:          ev.Outcome,
				Runs:             ev.Runs,
				ExtraRuns:        ev.ExtraRuns,
				Wicket:           wicketInfoFromDetail(ev.Wicket),
				StrikeRotated:    flags.StrikeRotated,
				OverCompleted:    flags.OverCompleted,
				InningsCompleted: flags.InningsCompleted,
				Summary:          summaryFromInnings(inn, ev.BowlerID),
				RecordedAt:       ev.CreatedAt,
			}
			return results.SuccessResult[matchevents.BallUpdatedPayloadV1, matchevents.DeliveryRejectedPayloadV1](payload), nil
		})
	})
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	// Broadcasts go out after the transaction commits; they are best-effort
	// and never fail the recorded delivery.
	s.metrics.RecordDeliveryOutcome(ctx, req.Outcome)
	s.publish(ctx, matchevents.BallUpdatedV1, *result.Success)

	flags, ev, inn := applied.flags, applied.event, applied.innings
	summary := summaryFromInnings(inn, ev.BowlerID)

	if flags.WicketFallen && ev.Wicket != nil {
		s.metrics.RecordWicket(ctx, ev.Wicket.Kind)
		s.publish(ctx, matchevents.WicketFallenV1, matchevents.WicketFallenPayloadV1{
			MatchID: req.MatchID,
			RoomID:  req.RoomID,
			Wicket:  *wicketInfoFromDetail(ev.Wicket),
			Score:   inn.Runs,
			Over:    ev.Over,
			Ball:    ev.Ball + 1,
			Summary: summary,
		})
	}
	if flags.StrikeRotated {
		s.publish(ctx, matchevents.StrikeRotatedV1, matchevents.StrikeRotatedPayloadV1{
			MatchID:      req.MatchID,
			RoomID:       req.RoomID,
			StrikerID:    inn.StrikerID,
			NonStrikerID: inn.NonStrikerID,
		})
	}
	if flags.OverCompleted {
		s.publish(ctx, matchevents.OverCompletedV1, matchevents.OverCompletedPayloadV1{
			MatchID:        req.MatchID,
			RoomID:         req.RoomID,
			OversCompleted: inn.OversCompleted,
			BowlerID:       ev.BowlerID,
			Maiden:         applied.maiden,
			Summary:        summary,
		})
	}
	if flags.InningsCompleted {
		s.publish(ctx, matchevents.InningsCompletedV1, matchevents.InningsCompletedPayloadV1{
			MatchID:       req.MatchID,
			RoomID:        req.RoomID,
			InningsNumber: inn.Number,
			Summary:       summary,
		})
	}

	s.logger.InfoContext(ctx, "Delivery recorded",
		attr.ExtractCorrelationID(ctx),
		attr.MatchID("match_id", req.MatchID),
		attr.EventID("event_id", ev.ID),
		attr.String("outcome", string(req.Outcome)),
	)

	return result, nil
}

func rejectDelivery(req matchevents.DeliveryRequestedPayloadV1, code, reason string) DeliveryOperationResult {
	return results.FailureResult[matchevents.BallUpdatedPayloadV1, matchevents.DeliveryRejectedPayloadV1](matchevents.DeliveryRejectedPayloadV1{
		MatchID: req.MatchID,
		RoomID:  req.RoomID,
		Code:    code,
		Reason:  reason,
	})
}

// rejectionCode maps a domain error onto the wire-level rejection code.
func rejectionCode(err error) string {
	switch {
	case errors.Is(err, scoringdomain.ErrValidation):
		return matchevents.CodeValidation
	case errors.Is(err, scoringdomain.ErrRuleViolation):
		return matchevents.CodeRuleViolation
	case errors.Is(err, scoringdomain.ErrNothingToUndo):
		return matchevents.CodeNothingToUndo
	case errors.Is(err, scoringdomain.ErrInvalidState):
		return matchevents.CodeInvalidState
	default:
		return matchevents.CodeInvalidState
	}
}

func wicketDetailFromInfo(w *matchevents.WicketInfo) *scoringdomain.WicketDetail {
	if w == nil {
		return nil
	}
	return &scoringdomain.WicketDetail{PlayerID: w.PlayerID, Kind: w.Kind, FielderID: w.FielderID}
}

func wicketInfoFromDetail(w *scoringdomain.WicketDetail) *matchevents.WicketInfo {
	if w == nil {
		return nil
	}
	return &matchevents.WicketInfo{PlayerID: w.PlayerID, Kind: w.Kind, FielderID: w.FielderID}
}

func summaryFromInnings(inn *scoringdomain.Innings, bowlerID sharedtypes.PlayerID) matchevents.InningsSummaryV1 {
	return matchevents.InningsSummaryV1{
		InningsNumber:  inn.Number,
		BattingTeam:    inn.BattingTeam,
		Runs:           inn.Runs,
		Wickets:        inn.Wickets,
		OversCompleted: inn.OversCompleted,
		BallsInOver:    inn.BallsInOver,
		ExtrasTotal:    inn.Extras.Total,
		Target:         inn.Target,
		StrikerID:      inn.StrikerID,
		NonStrikerID:   inn.NonStrikerID,
		BowlerID:       bowlerID,
		Completed:      inn.Completed,
	}
}
