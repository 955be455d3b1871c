package scoringhandlers

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	scoringservice "github.com/crease-live/crease-backend/app/modules/scoring/application"
	"github.com/crease-live/crease-backend/app/shared/observability/metrics/scoringmetrics"
	"github.com/crease-live/crease-backend/app/shared/utils"
)

// ScoringHandlers handles scoring-related events.
type ScoringHandlers struct {
	service scoringservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics scoringmetrics.ScoringMetrics
	helpers utils.Helpers
}

// NewScoringHandlers creates a new ScoringHandlers.
func NewScoringHandlers(
	service scoringservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	helpers utils.Helpers,
	metrics scoringmetrics.ScoringMetrics,
) Handlers {
	return &ScoringHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
		helpers: helpers,
	}
}
