package statsservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	scoringdb "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories"
	statsdb "github.com/crease-live/crease-backend/app/modules/stats/infrastructure/repositories"
	"github.com/crease-live/crease-backend/app/shared/observability/attr"
	"github.com/crease-live/crease-backend/app/shared/observability/metrics/statsmetrics"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// StatsService implements the Service interface. It reads match state
// through the scoring repository and stores finished artifacts through its
// own.
type StatsService struct {
	scoring   scoringdb.Repository
	artifacts statsdb.Repository
	logger    *slog.Logger
	metrics   statsmetrics.StatsMetrics
	tracer    trace.Tracer
	now       func() time.Time
}

// NewStatsService creates a new StatsService.
func NewStatsService(
	scoring scoringdb.Repository,
	artifacts statsdb.Repository,
	logger *slog.Logger,
	metrics statsmetrics.StatsMetrics,
	tracer trace.Tracer,
) *StatsService {
	return &StatsService{
		scoring:   scoring,
		artifacts: artifacts,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		now:       time.Now,
	}
}

// BuildScorecard renders the workbook and run-rate chart for a finished
// match and stores them as the match's artifact. Rebuilding replaces the
// stored artifact, so a retried job is harmless.
func (s *StatsService) BuildScorecard(ctx context.Context, req BuildScorecardRequest) (*statsdb.ScorecardArtifact, error) {
	ctx, span := s.tracer.Start(ctx, "BuildScorecard", trace.WithAttributes(
		attribute.String("match_id", req.MatchID.String()),
	))
	defer span.End()

	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "build_scorecard", "stats")
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "build_scorecard", "stats", time.Since(start))
	}()

	s.logger.InfoContext(ctx, "Building scorecard artifact",
		attr.MatchID("match_id", req.MatchID),
		attr.ExtractCorrelationID(ctx),
	)

	m, err := s.scoring.GetMatch(ctx, nil, req.MatchID)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "build_scorecard", "stats")
		return nil, fmt.Errorf("failed to load match: %w", err)
	}
	allInnings, err := s.scoring.ListInnings(ctx, nil, req.MatchID)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "build_scorecard", "stats")
		return nil, fmt.Errorf("failed to load innings: %w", err)
	}

	workbook, err := buildWorkbook(m, allInnings, req.ResultText)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "build_scorecard", "stats")
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	progress := make([]InningsProgress, 0, len(allInnings))
	for _, inn := range allInnings {
		events, err := s.scoring.ListEvents(ctx, nil, req.MatchID, inn.Number)
		if err != nil {
			s.metrics.RecordOperationFailure(ctx, "build_scorecard", "stats")
			return nil, fmt.Errorf("failed to load innings %d ledger: %w", inn.Number, err)
		}
		progress = append(progress, inningsProgress(m, inn, events))
	}

	chartPNG, err := GenerateRunRateChart(progress)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "build_scorecard", "stats")
		return nil, fmt.Errorf("failed to render run-rate chart: %w", err)
	}

	artifact := &statsdb.ScorecardArtifact{
		MatchID:      req.MatchID,
		RoomID:       req.RoomID,
		ResultText:   req.ResultText,
		Workbook:     workbook,
		RunRateChart: chartPNG,
		GeneratedAt:  s.now().UTC(),
	}
	if err := s.artifacts.UpsertArtifact(ctx, nil, artifact); err != nil {
		s.metrics.RecordOperationFailure(ctx, "build_scorecard", "stats")
		return nil, fmt.Errorf("failed to store artifact: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "build_scorecard", "stats")
	s.metrics.RecordArtifactBuilt(ctx)
	s.logger.InfoContext(ctx, "Scorecard artifact built",
		attr.MatchID("match_id", req.MatchID),
		attr.Int("workbook_bytes", len(workbook)),
		attr.Int("chart_bytes", len(chartPNG)),
	)
	return artifact, nil
}

// GetArtifact returns the stored artifact for a match.
func (s *StatsService) GetArtifact(ctx context.Context, matchID sharedtypes.MatchID) (*statsdb.ScorecardArtifact, error) {
	return s.artifacts.GetArtifact(ctx, nil, matchID)
}
