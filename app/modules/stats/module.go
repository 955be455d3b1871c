package stats

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	"github.com/crease-live/crease-backend/app/eventbus"
	scoringdb "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories"
	statsservice "github.com/crease-live/crease-backend/app/modules/stats/application"
	statsdb "github.com/crease-live/crease-backend/app/modules/stats/infrastructure/repositories"
	statsqueue "github.com/crease-live/crease-backend/app/modules/stats/infrastructure/queue"
	statsrouter "github.com/crease-live/crease-backend/app/modules/stats/infrastructure/router"
	"github.com/crease-live/crease-backend/app/shared/observability"
	"github.com/crease-live/crease-backend/app/shared/observability/metrics/statsmetrics"
	"github.com/crease-live/crease-backend/app/shared/utils"
	"github.com/crease-live/crease-backend/config"
)

// Module is the stats module: the artifact builder, its River queue, and its
// router.
type Module struct {
	EventBus      eventbus.EventBus
	StatsService  statsservice.Service
	QueueService  statsqueue.QueueService
	StatsRouter   *statsrouter.StatsRouter
	config        *config.Config
	observability observability.Observability
	cancelFunc    context.CancelFunc
	helper        utils.Helpers
}

// NewStatsModule wires the artifact builder, queue, and router.
func NewStatsModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	scoringRepo scoringdb.Repository,
	artifactRepo statsdb.Repository,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "stats.NewStatsModule called")

	metrics, err := statsmetrics.NewOTelMetrics(obs.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats metrics: %w", err)
	}

	service := statsservice.NewStatsService(scoringRepo, artifactRepo, logger, metrics, obs.Tracer)

	queueService, err := statsqueue.NewService(ctx, db, logger, cfg.Postgres.DSN, metrics, service)
	if err != nil {
		return nil, fmt.Errorf("failed to create stats queue service: %w", err)
	}

	statsRouter := statsrouter.NewStatsRouter(logger, router, eventBus, eventBus, cfg, helpers, obs.Tracer, obs.Registry)
	if err := statsRouter.Configure(ctx, queueService, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure stats router: %w", err)
	}

	return &Module{
		EventBus:      eventBus,
		StatsService:  service,
		QueueService:  queueService,
		StatsRouter:   statsRouter,
		config:        cfg,
		observability: obs,
		helper:        helpers,
	}, nil
}

// Run starts the queue workers and keeps the module alive until the context
// is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting stats module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.QueueService.Start(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to start stats queue service")
		return
	}

	<-ctx.Done()

	if err := m.QueueService.Stop(context.Background()); err != nil {
		logger.Error("Failed to stop stats queue service")
	}
	logger.InfoContext(ctx, "Stats module goroutine stopped")
}

func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
