package scoringservice

import (
	"context"
	"errors"

	"github.com/uptrace/bun"

	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	scoringdb "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories"
	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/observability/attr"
	"github.com/crease-live/crease-backend/app/shared/utils/results"
)

// UndoLastDelivery reverses the most recent non-reversed delivery of the
// current innings. The event is tombstoned, never deleted, so the ledger
// keeps the full history. An undo that reverses an innings-completing
// delivery reopens the innings.
func (s *ScoringService) UndoLastDelivery(ctx context.Context, req matchevents.UndoRequestedPayloadV1) (UndoOperationResult, error) {
	release := s.locks.acquire(req.MatchID)
	defer release()

	var undone struct {
		event   *scoringdomain.ScoreEvent
		innings *scoringdomain.Innings
	}

	result, err := withTelemetry(s, ctx, "UndoLastDelivery", req.MatchID, func(ctx context.Context) (UndoOperationResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (UndoOperationResult, error) {
			m, err := s.repo.GetMatch(ctx, db, req.MatchID)
			if err != nil {
				if errors.Is(err, scoringdb.ErrNotFound) {
					return rejectUndo(req, matchevents.CodeNotFound, "match not found"), nil
				}
				return UndoOperationResult{}, err
			}

			inn, version, err := s.repo.GetInnings(ctx, db, req.MatchID, m.CurrentInnings)
			if err != nil {
				if errors.Is(err, scoringdb.ErrNotFound) {
					return rejectUndo(req, matchevents.CodeInvalidState, "no innings in progress"), nil
				}
				return UndoOperationResult{}, err
			}

			ev, err := s.repo.LatestActiveEvent(ctx, db, req.MatchID, inn.Number)
			if err != nil {
				if errors.Is(err, scoringdb.ErrNotFound) {
					return rejectUndo(req, matchevents.CodeNothingToUndo, "no deliveries to undo"), nil
				}
				return UndoOperationResult{}, err
			}

			if err := scoringdomain.Undo(inn, ev, req.RequestedBy, s.now().UTC()); err != nil {
				return rejectUndo(req, rejectionCode(err), err.Error()), nil
			}

			if err := s.repo.UpdateInnings(ctx, db, req.MatchID, inn, version); err != nil {
				if errors.Is(err, scoringdb.ErrVersionConflict) {
					s.metrics.RecordConcurrencyConflict(ctx, req.MatchID)
					return rejectUndo(req, matchevents.CodeConcurrencyConflict, "match state changed concurrently, retry"), nil
				}
				return UndoOperationResult{}, err
			}
			if err := s.repo.MarkEventReversed(ctx, db, ev); err != nil {
				return UndoOperationResult{}, err
			}

			undone.event = ev
			undone.innings = inn

			payload := matchevents.BallUndonePayloadV1{
				MatchID:         req.MatchID,
				RoomID:          req.RoomID,
				ReversedEventID: ev.ID,
				ReversedBy:      req.RequestedBy,
				StrikerID:       inn.StrikerID,
				NonStrikerID:    inn.NonStrikerID,
				Summary:         summaryFromInnings(inn, inn.CurrentBowlerID),
			}
			return results.SuccessResult[matchevents.BallUndonePayloadV1, matchevents.UndoRejectedPayloadV1](payload), nil
		})
	})
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	s.metrics.RecordUndo(ctx, req.MatchID)
	s.publish(ctx, matchevents.BallUndoneV1, *result.Success)

	s.logger.InfoContext(ctx, "Delivery undone",
		attr.ExtractCorrelationID(ctx),
		attr.MatchID("match_id", req.MatchID),
		attr.EventID("reversed_event_id", undone.event.ID),
	)

	return result, nil
}

func rejectUndo(req matchevents.UndoRequestedPayloadV1, code, reason string) UndoOperationResult {
	return results.FailureResult[matchevents.BallUndonePayloadV1, matchevents.UndoRejectedPayloadV1](matchevents.UndoRejectedPayloadV1{
		MatchID: req.MatchID,
		RoomID:  req.RoomID,
		Code:    code,
		Reason:  reason,
	})
}
