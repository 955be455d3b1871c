package matchservice

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
	scoringdb "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories"
	"github.com/crease-live/crease-backend/app/shared/observability/attr"
	"github.com/crease-live/crease-backend/app/shared/observability/metrics/matchmetrics"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
	"github.com/crease-live/crease-backend/app/shared/utils"
)

// MatchService implements the Service interface. It shares the scoring
// repository: matches and innings are one set of tables, the two modules
// just own different transitions over them.
type MatchService struct {
	repo     scoringdb.Repository
	EventBus eventbus.EventBus
	logger   *slog.Logger
	metrics  matchmetrics.MatchMetrics
	tracer   trace.Tracer
	helpers  utils.Helpers
	db       *bun.DB
	now      func() time.Time
}

// NewMatchService creates a new MatchService.
func NewMatchService(
	repo scoringdb.Repository,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	metrics matchmetrics.MatchMetrics,
	tracer trace.Tracer,
	helpers utils.Helpers,
	db *bun.DB,
) *MatchService {
	return &MatchService{
		repo:     repo,
		EventBus: eventBus,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		helpers:  helpers,
		db:       db,
		now:      time.Now,
	}
}

// withTelemetry wraps a lifecycle operation with tracing, metrics, and panic
// recovery. Lifecycle operations report failure as a plain error; the HTTP
// gateway maps the domain sentinels onto statuses.
func withTelemetry[T any](
	s *MatchService,
	ctx context.Context,
	operationName string,
	matchID sharedtypes.MatchID,
	op func(ctx context.Context) (T, error),
) (result T, err error) {

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
			var zero T
			result = zero
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.WarnContext(ctx, "Operation failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.MatchID("match_id", matchID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, matchID)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	s.logger.InfoContext(ctx, operationName+" completed successfully",
		attr.String("operation", operationName),
		attr.MatchID("match_id", matchID),
		attr.ExtractCorrelationID(ctx),
	)
	s.metrics.RecordOperationSuccess(ctx, operationName, matchID)
	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[T any](
	s *MatchService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (T, error),
) (T, error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result T
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}

// publish sends one broadcast message on its way. Broadcast delivery is
// best-effort: a failed publish is logged, never returned.
func (s *MatchService) publish(ctx context.Context, topic string, payload any) {
	msg, err := s.helpers.CreateResultMessage(nil, payload, topic)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to build broadcast message",
			attr.String("topic", topic),
			attr.Error(err),
		)
		return
	}
	msg.SetContext(ctx)

	if err := s.EventBus.Publish(topic, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish broadcast",
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}
