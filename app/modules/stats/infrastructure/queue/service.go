package statsqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"

	statsservice "github.com/crease-live/crease-backend/app/modules/stats/application"
	"github.com/crease-live/crease-backend/app/shared/observability/attr"
	"github.com/crease-live/crease-backend/app/shared/observability/metrics/statsmetrics"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// QueueService is the contract for scorecard job scheduling.
type QueueService interface {
	// EnqueueScorecard queues a scorecard build for a finished match.
	EnqueueScorecard(ctx context.Context, req statsservice.BuildScorecardRequest) error
	// GetQueuedJobs returns information about scorecard jobs for a match (for debugging).
	GetQueuedJobs(ctx context.Context, matchID sharedtypes.MatchID) ([]JobInfo, error)
	// HealthCheck verifies the queue service is healthy.
	HealthCheck(ctx context.Context) error
	// Start starts the queue service.
	Start(ctx context.Context) error
	// Stop stops the queue service.
	Stop(ctx context.Context) error
}

// Ensure Service implements QueueService
var _ QueueService = (*Service)(nil)

// Service handles scorecard job scheduling for the stats module using River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      *bun.DB
	metrics statsmetrics.StatsMetrics
}

// NewService creates a new River-based queue service for scorecard builds.
func NewService(ctx context.Context, bunDB *bun.DB, logger *slog.Logger, dsn string, metrics statsmetrics.StatsMetrics, statsService statsservice.Service) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_stats_queue_service"),
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", "river")

	ctxLogger.Info("Initializing stats queue service")

	// River requires pgx, not database/sql
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		ctxLogger.Error("Failed to parse DSN for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		ctxLogger.Error("Failed to create pgx pool for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to ping database for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewScorecardWorker(ctxLogger, statsService))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 50},
			"stats":            {MaxWorkers: 10},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		ctxLogger.Error("Failed to create River client", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	service := &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		db:      bunDB,
		metrics: metrics,
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", "river")
	metrics.RecordOperationDuration(ctx, "initialize_service", "river", time.Since(start))

	ctxLogger.Info("Stats queue service initialized successfully")
	return service, nil
}

// Start starts the River queue service.
func (s *Service) Start(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "start_service", "river")

	s.logger.Info("Starting stats queue service")

	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "start_service", "river")
		return fmt.Errorf("failed to start River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "start_service", "river")
	s.metrics.RecordOperationDuration(ctx, "start_service", "river", time.Since(start))

	s.logger.Info("Stats queue service started successfully")
	return nil
}

// Stop stops the River queue service and releases the pool.
func (s *Service) Stop(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "stop_service", "river")

	s.logger.Info("Stopping stats queue service")

	if err := s.client.Stop(ctx); err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "stop_service", "river")
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()

	s.metrics.RecordOperationSuccess(ctx, "stop_service", "river")
	s.metrics.RecordOperationDuration(ctx, "stop_service", "river", time.Since(start))

	s.logger.Info("Stats queue service stopped successfully")
	return nil
}

// EnqueueScorecard queues a scorecard build for a finished match. Duplicate
// completion events collapse onto the same job.
func (s *Service) EnqueueScorecard(ctx context.Context, req statsservice.BuildScorecardRequest) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "enqueue_scorecard", "river")

	ctxLogger := s.logger.With(
		attr.MatchID("match_id", req.MatchID),
		attr.String("operation", "enqueue_scorecard"),
	)

	ctxLogger.Info("Queueing scorecard job")

	job := ScorecardJob{
		MatchID: req.MatchID.String(),
		Request: req,
	}

	jobResult, err := s.client.Insert(ctx, job, &river.InsertOpts{
		Queue: "stats",
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		ctxLogger.Error("Failed to queue scorecard job", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "enqueue_scorecard", "river")
		return fmt.Errorf("failed to queue scorecard job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "enqueue_scorecard", "river")
	s.metrics.RecordOperationDuration(ctx, "enqueue_scorecard", "river", time.Since(start))
	s.metrics.RecordJobEnqueued(ctx, job.Kind())

	ctxLogger.Info("Scorecard job queued successfully",
		attr.Int64("job_id", jobResult.Job.ID))
	return nil
}

// GetQueuedJobs returns information about scorecard jobs for a match (for debugging).
func (s *Service) GetQueuedJobs(ctx context.Context, matchID sharedtypes.MatchID) ([]JobInfo, error) {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "get_queued_jobs", "river")

	ctxLogger := s.logger.With(
		attr.MatchID("match_id", matchID),
		attr.String("operation", "get_queued_jobs"),
	)

	type RiverJobRow struct {
		ID          int64                  `bun:"id"`
		Kind        string                 `bun:"kind"`
		State       string                 `bun:"state"`
		Args        map[string]interface{} `bun:"args"`
		ScheduledAt *time.Time             `bun:"scheduled_at"`
		CreatedAt   time.Time              `bun:"created_at"`
		Attempt     int16                  `bun:"attempt"`
		MaxAttempts int16                  `bun:"max_attempts"`
	}

	var jobs []RiverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "args", "scheduled_at", "created_at", "attempt", "max_attempts").
		Where("kind = ?", "match_scorecard").
		Where("args->>'match_id' = ?", matchID.String()).
		Order("created_at ASC").
		Scan(ctx, &jobs)
	if err != nil {
		ctxLogger.Error("Failed to query queued jobs", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "get_queued_jobs", "river")
		return nil, fmt.Errorf("failed to query queued jobs: %w", err)
	}

	result := make([]JobInfo, len(jobs))
	for i, job := range jobs {
		scheduledAt := ""
		if job.ScheduledAt != nil {
			scheduledAt = job.ScheduledAt.Format(time.RFC3339)
		}

		result[i] = JobInfo{
			ID:          job.ID,
			Kind:        job.Kind,
			MatchID:     matchID.String(),
			State:       job.State,
			ScheduledAt: scheduledAt,
			CreatedAt:   job.CreatedAt.Format(time.RFC3339),
			Attempt:     int(job.Attempt),
			MaxAttempts: int(job.MaxAttempts),
		}
	}

	s.metrics.RecordOperationSuccess(ctx, "get_queued_jobs", "river")
	s.metrics.RecordOperationDuration(ctx, "get_queued_jobs", "river", time.Since(start))

	ctxLogger.Info("Retrieved queued jobs", attr.Int("job_count", len(result)))
	return result, nil
}

// HealthCheck verifies the queue service is healthy.
func (s *Service) HealthCheck(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "health_check", "river")

	if s.client == nil {
		s.metrics.RecordOperationFailure(ctx, "health_check", "river")
		return fmt.Errorf("river client is nil")
	}

	var count int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Scan(ctx, &count)
	if err != nil {
		s.logger.Error("Queue service health check failed", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "health_check", "river")
		return fmt.Errorf("queue service health check failed: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "health_check", "river")
	s.metrics.RecordOperationDuration(ctx, "health_check", "river", time.Since(start))

	s.logger.Debug("Queue service health check passed", attr.Int("total_jobs", count))
	return nil
}

// GetClient returns the underlying River client for advanced operations.
func (s *Service) GetClient() *river.Client[pgx.Tx] {
	return s.client
}
