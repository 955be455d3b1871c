package matchhandlers

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	matchservice "github.com/crease-live/crease-backend/app/modules/match/application"
	"github.com/crease-live/crease-backend/app/shared/observability/metrics/matchmetrics"
	"github.com/crease-live/crease-backend/app/shared/utils"
)

// MatchHandlers handles match lifecycle events.
type MatchHandlers struct {
	service matchservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics matchmetrics.MatchMetrics
	helpers utils.Helpers
}

// NewMatchHandlers creates a new MatchHandlers.
func NewMatchHandlers(
	service matchservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	helpers utils.Helpers,
	metrics matchmetrics.MatchMetrics,
) Handlers {
	return &MatchHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
		helpers: helpers,
	}
}
