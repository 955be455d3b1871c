package statshandlers

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	statsqueue "github.com/crease-live/crease-backend/app/modules/stats/infrastructure/queue"
	"github.com/crease-live/crease-backend/app/shared/observability/metrics/statsmetrics"
	"github.com/crease-live/crease-backend/app/shared/utils"
)

// StatsHandlers handles stats-related events.
type StatsHandlers struct {
	queue   statsqueue.QueueService
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics statsmetrics.StatsMetrics
	helpers utils.Helpers
}

// NewStatsHandlers creates a new StatsHandlers.
func NewStatsHandlers(
	queue statsqueue.QueueService,
	logger *slog.Logger,
	tracer trace.Tracer,
	helpers utils.Helpers,
	metrics statsmetrics.StatsMetrics,
) Handlers {
	return &StatsHandlers{
		queue:   queue,
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
		helpers: helpers,
	}
}
