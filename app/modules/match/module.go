package match

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	"github.com/crease-live/crease-backend/app/eventbus"
	matchservice "github.com/crease-live/crease-backend/app/modules/match/application"
	matchrouter "github.com/crease-live/crease-backend/app/modules/match/infrastructure/router"
	scoringdb "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories"
	"github.com/crease-live/crease-backend/app/shared/observability"
	"github.com/crease-live/crease-backend/app/shared/observability/metrics/matchmetrics"
	"github.com/crease-live/crease-backend/app/shared/utils"
	"github.com/crease-live/crease-backend/config"
)

// Module is the match module: lifecycle service, innings handover, and its
// router.
type Module struct {
	EventBus      eventbus.EventBus
	MatchService  matchservice.Service
	MatchRouter   *matchrouter.MatchRouter
	config        *config.Config
	observability observability.Observability
	cancelFunc    context.CancelFunc
	helper        utils.Helpers
}

// NewMatchModule wires the match service and router.
func NewMatchModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	repo scoringdb.Repository,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "match.NewMatchModule called")

	metrics, err := matchmetrics.NewOTelMetrics(obs.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to build match metrics: %w", err)
	}

	service := matchservice.NewMatchService(repo, eventBus, logger, metrics, obs.Tracer, helpers, db)

	matchRouter := matchrouter.NewMatchRouter(logger, router, eventBus, eventBus, cfg, helpers, obs.Tracer, obs.Registry)
	if err := matchRouter.Configure(ctx, service, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure match router: %w", err)
	}

	return &Module{
		EventBus:      eventBus,
		MatchService:  service,
		MatchRouter:   matchRouter,
		config:        cfg,
		observability: obs,
		helper:        helpers,
	}, nil
}

// Run keeps the module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting match module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Match module goroutine stopped")
}

func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
