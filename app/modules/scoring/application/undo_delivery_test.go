package scoringservice

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"

	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

func undoRequest(matchID sharedtypes.MatchID) matchevents.UndoRequestedPayloadV1 {
	return matchevents.UndoRequestedPayloadV1{
		MatchID:     matchID,
		RoomID:      "room-1",
		RequestedBy: "scorer-1",
	}
}

func TestUndoLastDeliveryRoundTrip(t *testing.T) {
	repo := NewFakeScoringRepository()
	bus := NewFakeEventBus()
	svc := newTestService(repo, bus)
	m := seedLiveMatch(repo)

	if _, err := svc.RecordDelivery(context.Background(), deliveryRequest(m)); err != nil {
		t.Fatalf("RecordDelivery failed: %v", err)
	}
	before, _, err := repo.GetInnings(context.Background(), nil, m.ID, 1)
	if err != nil {
		t.Fatalf("GetInnings failed: %v", err)
	}
	if before.Runs != 4 {
		t.Fatalf("expected 4 runs before undo, got %d", before.Runs)
	}

	result, err := svc.UndoLastDelivery(context.Background(), undoRequest(m.ID))
	if err != nil {
		t.Fatalf("UndoLastDelivery failed: %v", err)
	}
	if !result.IsSuccess() {
		t.Fatalf("expected success, got failure %+v", result.Failure)
	}

	after, _, err := repo.GetInnings(context.Background(), nil, m.ID, 1)
	if err != nil {
		t.Fatalf("GetInnings failed: %v", err)
	}
	empty := scoringdomain.NewInnings(1, sharedtypes.TeamA, 0)
	if diff := cmp.Diff(empty, after, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("undo did not restore the innings (-want +got):\n%s", diff)
	}

	events := repo.Events(m.ID)
	if len(events) != 1 {
		t.Fatalf("undo must tombstone, not delete: got %d events", len(events))
	}
	if !events[0].Reversed || events[0].ReversedBy != "scorer-1" {
		t.Errorf("expected a tombstoned event, got %+v", events[0])
	}

	payload := decodePayload[matchevents.BallUndonePayloadV1](t, bus, matchevents.BallUndoneV1)
	if payload.ReversedEventID != events[0].ID {
		t.Error("broadcast must name the reversed event")
	}
	if payload.ReversedBy != "scorer-1" {
		t.Errorf("expected reversed_by scorer-1, got %s", payload.ReversedBy)
	}
}

func TestUndoLastDeliveryNothingToUndo(t *testing.T) {
	repo := NewFakeScoringRepository()
	bus := NewFakeEventBus()
	svc := newTestService(repo, bus)
	m := seedLiveMatch(repo)

	result, err := svc.UndoLastDelivery(context.Background(), undoRequest(m.ID))
	if err != nil {
		t.Fatalf("UndoLastDelivery returned infrastructure error: %v", err)
	}
	if !result.IsFailure() || result.Failure.Code != matchevents.CodeNothingToUndo {
		t.Errorf("expected NOTHING_TO_UNDO, got %+v", result)
	}
	if got := bus.Published(matchevents.BallUndoneV1); len(got) != 0 {
		t.Error("a rejected undo must not broadcast")
	}
}

func TestUndoLastDeliveryUnknownMatch(t *testing.T) {
	repo := NewFakeScoringRepository()
	bus := NewFakeEventBus()
	svc := newTestService(repo, bus)

	result, err := svc.UndoLastDelivery(context.Background(), undoRequest(sharedtypes.MatchID(uuid.New())))
	if err != nil {
		t.Fatalf("UndoLastDelivery returned infrastructure error: %v", err)
	}
	if !result.IsFailure() || result.Failure.Code != matchevents.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %+v", result)
	}
}

// Two deliveries then two undos walk the ledger back in reverse order, each
// one picking the latest active event.
func TestUndoLastDeliverySequence(t *testing.T) {
	repo := NewFakeScoringRepository()
	bus := NewFakeEventBus()
	svc := newTestService(repo, bus)
	m := seedLiveMatch(repo)

	first := deliveryRequest(m)
	if _, err := svc.RecordDelivery(context.Background(), first); err != nil {
		t.Fatalf("RecordDelivery failed: %v", err)
	}
	second := deliveryRequest(m)
	second.Runs = 1
	if _, err := svc.RecordDelivery(context.Background(), second); err != nil {
		t.Fatalf("RecordDelivery failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		result, err := svc.UndoLastDelivery(context.Background(), undoRequest(m.ID))
		if err != nil {
			t.Fatalf("undo %d failed: %v", i, err)
		}
		if !result.IsSuccess() {
			t.Fatalf("undo %d rejected: %+v", i, result.Failure)
		}
	}

	events := repo.Events(m.ID)
	if len(events) != 2 {
		t.Fatalf("expected both events retained, got %d", len(events))
	}
	for i, ev := range events {
		if !ev.Reversed {
			t.Errorf("event %d should be reversed", i)
		}
	}

	result, err := svc.UndoLastDelivery(context.Background(), undoRequest(m.ID))
	if err != nil {
		t.Fatalf("final undo errored: %v", err)
	}
	if !result.IsFailure() || result.Failure.Code != matchevents.CodeNothingToUndo {
		t.Error("an exhausted ledger must reject further undos")
	}
}
