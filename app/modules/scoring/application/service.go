package scoringservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/crease-live/crease-backend/app/eventbus"
	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	scoringdb "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories"
	"github.com/crease-live/crease-backend/app/shared/observability/attr"
	"github.com/crease-live/crease-backend/app/shared/observability/metrics/scoringmetrics"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
	"github.com/crease-live/crease-backend/app/shared/utils"
	"github.com/crease-live/crease-backend/app/shared/utils/results"
)

// ScoringService implements the Service interface.
type ScoringService struct {
	repo     scoringdb.Repository
	EventBus eventbus.EventBus
	logger   *slog.Logger
	metrics  scoringmetrics.ScoringMetrics
	tracer   trace.Tracer
	helpers  utils.Helpers
	db       *bun.DB
	locks    *matchLocks
	now      func() time.Time
}

// NewScoringService creates a new ScoringService.
func NewScoringService(
	repo scoringdb.Repository,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	metrics scoringmetrics.ScoringMetrics,
	tracer trace.Tracer,
	helpers utils.Helpers,
	db *bun.DB,
) *ScoringService {
	return &ScoringService{
		repo:     repo,
		EventBus: eventBus,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		helpers:  helpers,
		db:       db,
		locks:    newMatchLocks(),
		now:      time.Now,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *ScoringService,
	ctx context.Context,
	operationName string,
	matchID sharedtypes.MatchID,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("match_id", matchID.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, matchID)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.MatchID("match_id", matchID),
		attr.ExtractCorrelationID(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.MatchID("match_id", matchID),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, matchID)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.MatchID("match_id", matchID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, matchID)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.MatchID("match_id", matchID),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			attr.String("operation", operationName),
			attr.MatchID("match_id", matchID),
			attr.ExtractCorrelationID(ctx),
		)
		s.metrics.RecordOperationSuccess(ctx, operationName, matchID)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *ScoringService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}

// publish sends one broadcast message on its way. Broadcast delivery is
// best-effort: a failed publish is logged and counted, never returned.
func (s *ScoringService) publish(ctx context.Context, topic string, payload any) {
	msg, err := s.helpers.CreateResultMessage(nil, payload, topic)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to build broadcast message",
			attr.String("topic", topic),
			attr.Error(err),
		)
		s.metrics.RecordBroadcastFailure(ctx, topic)
		return
	}
	msg.SetContext(ctx)

	if err := s.EventBus.Publish(topic, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish broadcast",
			attr.String("topic", topic),
			attr.Error(err),
		)
		s.metrics.RecordBroadcastFailure(ctx, topic)
	}
}

// --- Service Methods ---

// GetMatchState returns the match and all its innings.
func (s *ScoringService) GetMatchState(ctx context.Context, matchID sharedtypes.MatchID) (*scoringdomain.Match, []*scoringdomain.Innings, error) {
	m, err := s.repo.GetMatch(ctx, nil, matchID)
	if err != nil {
		return nil, nil, err
	}
	innings, err := s.repo.ListInnings(ctx, nil, matchID)
	if err != nil {
		return nil, nil, err
	}
	return m, innings, nil
}

// ListEvents returns the full delivery ledger of one innings, reversed
// events included.
func (s *ScoringService) ListEvents(ctx context.Context, matchID sharedtypes.MatchID, inningsNumber int) ([]scoringdomain.ScoreEvent, error) {
	return s.repo.ListEvents(ctx, nil, matchID, inningsNumber)
}
