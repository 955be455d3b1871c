package scoringhandlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel/trace/noop"

	scoringservice "github.com/crease-live/crease-backend/app/modules/scoring/application"
	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/observability/metrics/scoringmetrics"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
	"github.com/crease-live/crease-backend/app/shared/utils"
	"github.com/crease-live/crease-backend/app/shared/utils/results"
)

func newHandlers(svc scoringservice.Service) Handlers {
	return NewScoringHandlers(
		svc,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		noop.NewTracerProvider().Tracer("test"),
		utils.NewHelpers(),
		scoringmetrics.NoOpMetrics{},
	)
}

func TestHandleDeliveryRequested(t *testing.T) {
	infraErr := errors.New("db down")

	tests := []struct {
		name        string
		result      scoringservice.DeliveryOperationResult
		err         error
		wantErr     bool
		wantResults int
		wantTopic   string
	}{
		{
			name:        "success produces no handler output",
			result:      results.SuccessResult[matchevents.BallUpdatedPayloadV1, matchevents.DeliveryRejectedPayloadV1](matchevents.BallUpdatedPayloadV1{}),
			wantResults: 0,
		},
		{
			name: "rejection routes to the rejected topic",
			result: results.FailureResult[matchevents.BallUpdatedPayloadV1, matchevents.DeliveryRejectedPayloadV1](matchevents.DeliveryRejectedPayloadV1{
				Code:   matchevents.CodeValidation,
				Reason: "striker missing",
			}),
			wantResults: 1,
			wantTopic:   matchevents.DeliveryRejectedV1,
		},
		{
			name:    "infrastructure error propagates for retry",
			err:     infraErr,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeScoringService{
				RecordDeliveryFunc: func(context.Context, matchevents.DeliveryRequestedPayloadV1) (scoringservice.DeliveryOperationResult, error) {
					return tt.result, tt.err
				},
			}

			out, err := newHandlers(svc).HandleDeliveryRequested(context.Background(), &matchevents.DeliveryRequestedPayloadV1{
				Outcome: sharedtypes.OutcomeNormal,
			})

			if tt.wantErr {
				if !errors.Is(err, infraErr) {
					t.Fatalf("expected infrastructure error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("handler failed: %v", err)
			}
			if len(out) != tt.wantResults {
				t.Fatalf("expected %d results, got %d", tt.wantResults, len(out))
			}
			if tt.wantResults > 0 && out[0].Topic != tt.wantTopic {
				t.Errorf("expected topic %s, got %s", tt.wantTopic, out[0].Topic)
			}
		})
	}
}

func TestHandleDeliveryRequestedNilPayload(t *testing.T) {
	if _, err := newHandlers(&FakeScoringService{}).HandleDeliveryRequested(context.Background(), nil); err == nil {
		t.Error("expected an error for a nil payload")
	}
}

func TestHandleUndoRequested(t *testing.T) {
	tests := []struct {
		name        string
		result      scoringservice.UndoOperationResult
		wantResults int
	}{
		{
			name:        "success produces no handler output",
			result:      results.SuccessResult[matchevents.BallUndonePayloadV1, matchevents.UndoRejectedPayloadV1](matchevents.BallUndonePayloadV1{}),
			wantResults: 0,
		},
		{
			name: "rejection routes to the rejected topic",
			result: results.FailureResult[matchevents.BallUndonePayloadV1, matchevents.UndoRejectedPayloadV1](matchevents.UndoRejectedPayloadV1{
				Code: matchevents.CodeNothingToUndo,
			}),
			wantResults: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeScoringService{
				UndoLastDeliveryFunc: func(context.Context, matchevents.UndoRequestedPayloadV1) (scoringservice.UndoOperationResult, error) {
					return tt.result, nil
				},
			}

			out, err := newHandlers(svc).HandleUndoRequested(context.Background(), &matchevents.UndoRequestedPayloadV1{})
			if err != nil {
				t.Fatalf("handler failed: %v", err)
			}
			if len(out) != tt.wantResults {
				t.Fatalf("expected %d results, got %d", tt.wantResults, len(out))
			}
			if tt.wantResults > 0 && out[0].Topic != matchevents.UndoRejectedV1 {
				t.Errorf("expected topic %s, got %s", matchevents.UndoRejectedV1, out[0].Topic)
			}
		})
	}
}
