package scoringservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	scoringdb "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories"
	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/observability/metrics/scoringmetrics"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
	"github.com/crease-live/crease-backend/app/shared/utils"
)

var fixedNow = time.Date(2026, 6, 2, 14, 0, 0, 0, time.UTC)

func newTestService(repo *FakeScoringRepository, bus *FakeEventBus) *ScoringService {
	svc := NewScoringService(
		repo,
		bus,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		scoringmetrics.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
		utils.NewHelpers(),
		nil,
	)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func testTeam(tag sharedtypes.TeamTag, prefix string, size int) sharedtypes.Team {
	team := sharedtypes.Team{Tag: tag, Name: prefix}
	for i := 1; i <= size; i++ {
		id := sharedtypes.PlayerID(fmt.Sprintf("%s%d", prefix, i))
		team.Players = append(team.Players, sharedtypes.Player{ID: id, Name: string(id)})
	}
	return team
}

func seedLiveMatch(repo *FakeScoringRepository) *scoringdomain.Match {
	m := &scoringdomain.Match{
		ID:             sharedtypes.MatchID(uuid.New()),
		RoomID:         "room-1",
		Format:         sharedtypes.FormatT20,
		TeamA:          testTeam(sharedtypes.TeamA, "a", 11),
		TeamB:          testTeam(sharedtypes.TeamB, "b", 11),
		Status:         sharedtypes.MatchStatusLive,
		InningsCount:   2,
		CurrentInnings: 1,
	}
	repo.Seed(m, scoringdomain.NewInnings(1, sharedtypes.TeamA, 0))
	return m
}

func deliveryRequest(m *scoringdomain.Match) matchevents.DeliveryRequestedPayloadV1 {
	return matchevents.DeliveryRequestedPayloadV1{
		MatchID:      m.ID,
		RoomID:       m.RoomID,
		RequestedBy:  "scorer-1",
		Outcome:      sharedtypes.OutcomeNormal,
		Runs:         4,
		StrikerID:    "a1",
		NonStrikerID: "a2",
		BowlerID:     "b1",
	}
}

func decodePayload[T any](t *testing.T, bus *FakeEventBus, topic string) T {
	t.Helper()
	msgs := bus.Published(topic)
	if len(msgs) == 0 {
		t.Fatalf("expected a message on %s", topic)
	}
	var payload T
	if err := json.Unmarshal(msgs[len(msgs)-1].Payload, &payload); err != nil {
		t.Fatalf("failed to decode %s payload: %v", topic, err)
	}
	return payload
}

func TestRecordDeliverySuccess(t *testing.T) {
	repo := NewFakeScoringRepository()
	bus := NewFakeEventBus()
	svc := newTestService(repo, bus)
	m := seedLiveMatch(repo)

	result, err := svc.RecordDelivery(context.Background(), deliveryRequest(m))
	if err != nil {
		t.Fatalf("RecordDelivery failed: %v", err)
	}
	if !result.IsSuccess() {
		t.Fatalf("expected success, got failure %+v", result.Failure)
	}

	if result.Success.Summary.Runs != 4 {
		t.Errorf("expected 4 runs in summary, got %d", result.Success.Summary.Runs)
	}
	if result.Success.Over != 0 || result.Success.Ball != 0 {
		t.Errorf("expected coordinates 0.0, got %d.%d", result.Success.Over, result.Success.Ball)
	}

	events := repo.Events(m.ID)
	if len(events) != 1 {
		t.Fatalf("expected one ledger event, got %d", len(events))
	}
	if events[0].Reversed {
		t.Error("fresh event must not be reversed")
	}

	payload := decodePayload[matchevents.BallUpdatedPayloadV1](t, bus, matchevents.BallUpdatedV1)
	if payload.EventID != events[0].ID {
		t.Error("broadcast payload must carry the ledger event ID")
	}
	if payload.RecordedAt != fixedNow {
		t.Errorf("expected recorded_at %v, got %v", fixedNow, payload.RecordedAt)
	}
}

func TestRecordDeliveryWicketBroadcasts(t *testing.T) {
	repo := NewFakeScoringRepository()
	bus := NewFakeEventBus()
	svc := newTestService(repo, bus)
	m := seedLiveMatch(repo)

	req := deliveryRequest(m)
	req.Outcome = sharedtypes.OutcomeWicket
	req.Runs = 0
	req.Wicket = &matchevents.WicketInfo{PlayerID: "a1", Kind: sharedtypes.DismissalBowled}

	result, err := svc.RecordDelivery(context.Background(), req)
	if err != nil {
		t.Fatalf("RecordDelivery failed: %v", err)
	}
	if !result.IsSuccess() {
		t.Fatalf("expected success, got failure %+v", result.Failure)
	}

	wicket := decodePayload[matchevents.WicketFallenPayloadV1](t, bus, matchevents.WicketFallenV1)
	if wicket.Wicket.PlayerID != "a1" || wicket.Ball != 1 {
		t.Errorf("unexpected wicket payload: %+v", wicket)
	}
	if got := bus.Published(matchevents.StrikeRotatedV1); len(got) != 0 {
		t.Error("a wicket must not announce a strike rotation")
	}
}

func TestRecordDeliveryRotationBroadcast(t *testing.T) {
	repo := NewFakeScoringRepository()
	bus := NewFakeEventBus()
	svc := newTestService(repo, bus)
	m := seedLiveMatch(repo)

	req := deliveryRequest(m)
	req.Runs = 1

	if _, err := svc.RecordDelivery(context.Background(), req); err != nil {
		t.Fatalf("RecordDelivery failed: %v", err)
	}

	rotated := decodePayload[matchevents.StrikeRotatedPayloadV1](t, bus, matchevents.StrikeRotatedV1)
	if rotated.StrikerID != "a2" || rotated.NonStrikerID != "a1" {
		t.Errorf("unexpected rotation payload: %+v", rotated)
	}
}

func TestRecordDeliveryRejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*matchevents.DeliveryRequestedPayloadV1, *scoringdomain.Match, *FakeScoringRepository)
		wantCode string
	}{
		{
			name: "unknown match",
			mutate: func(req *matchevents.DeliveryRequestedPayloadV1, _ *scoringdomain.Match, _ *FakeScoringRepository) {
				req.MatchID = sharedtypes.MatchID(uuid.New())
			},
			wantCode: matchevents.CodeNotFound,
		},
		{
			name: "unknown striker",
			mutate: func(req *matchevents.DeliveryRequestedPayloadV1, _ *scoringdomain.Match, _ *FakeScoringRepository) {
				req.StrikerID = "nobody"
			},
			wantCode: matchevents.CodeValidation,
		},
		{
			name: "match not live",
			mutate: func(_ *matchevents.DeliveryRequestedPayloadV1, m *scoringdomain.Match, _ *FakeScoringRepository) {
				m.Status = sharedtypes.MatchStatusScheduled
			},
			wantCode: matchevents.CodeInvalidState,
		},
		{
			name: "version conflict",
			mutate: func(_ *matchevents.DeliveryRequestedPayloadV1, _ *scoringdomain.Match, repo *FakeScoringRepository) {
				repo.UpdateInningsFunc = func(context.Context, bun.IDB, sharedtypes.MatchID, *scoringdomain.Innings, int64) error {
					return scoringdb.ErrVersionConflict
				}
			},
			wantCode: matchevents.CodeConcurrencyConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeScoringRepository()
			bus := NewFakeEventBus()
			svc := newTestService(repo, bus)
			m := seedLiveMatch(repo)

			req := deliveryRequest(m)
			tt.mutate(&req, m, repo)

			result, err := svc.RecordDelivery(context.Background(), req)
			if err != nil {
				t.Fatalf("RecordDelivery returned infrastructure error: %v", err)
			}
			if !result.IsFailure() {
				t.Fatal("expected a rejection")
			}
			if result.Failure.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s (%s)", tt.wantCode, result.Failure.Code, result.Failure.Reason)
			}
			if got := bus.Published(matchevents.BallUpdatedV1); len(got) != 0 {
				t.Error("a rejected delivery must not broadcast a ball update")
			}
			if got := repo.Events(m.ID); len(got) != 0 {
				t.Error("a rejected delivery must not append to the ledger")
			}
		})
	}
}

func TestRecordDeliveryBroadcastFailureIsBestEffort(t *testing.T) {
	repo := NewFakeScoringRepository()
	bus := NewFakeEventBus()
	bus.PublishFunc = func(string, ...*message.Message) error { return errors.New("broker unavailable") }

	svc := newTestService(repo, bus)
	m := seedLiveMatch(repo)

	result, err := svc.RecordDelivery(context.Background(), deliveryRequest(m))
	if err != nil {
		t.Fatalf("RecordDelivery failed: %v", err)
	}
	if !result.IsSuccess() {
		t.Fatal("a broadcast failure must not fail the recorded delivery")
	}
	if got := repo.Events(m.ID); len(got) != 1 {
		t.Error("the ledger event must be persisted regardless of broadcast outcome")
	}
}

func TestRecordDeliveryInfrastructureError(t *testing.T) {
	repo := NewFakeScoringRepository()
	bus := NewFakeEventBus()
	svc := newTestService(repo, bus)
	m := seedLiveMatch(repo)

	boom := errors.New("connection reset")
	repo.InsertEventFunc = func(context.Context, bun.IDB, *scoringdomain.ScoreEvent) error {
		return boom
	}

	_, err := svc.RecordDelivery(context.Background(), deliveryRequest(m))
	if !errors.Is(err, boom) {
		t.Errorf("expected the infrastructure error to surface, got %v", err)
	}
	if got := bus.Published(matchevents.BallUpdatedV1); len(got) != 0 {
		t.Error("a failed transaction must not broadcast")
	}
}
