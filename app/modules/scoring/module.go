package scoring

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	"github.com/crease-live/crease-backend/app/eventbus"
	scoringservice "github.com/crease-live/crease-backend/app/modules/scoring/application"
	scoringdb "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories"
	scoringrouter "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/router"
	"github.com/crease-live/crease-backend/app/shared/observability"
	"github.com/crease-live/crease-backend/app/shared/observability/metrics/scoringmetrics"
	"github.com/crease-live/crease-backend/app/shared/utils"
	"github.com/crease-live/crease-backend/config"
)

// Module is the scoring module: the ball-by-ball engine, its repository, and
// its router.
type Module struct {
	EventBus       eventbus.EventBus
	ScoringService scoringservice.Service
	ScoringRouter  *scoringrouter.ScoringRouter
	config         *config.Config
	observability  observability.Observability
	cancelFunc     context.CancelFunc
	helper         utils.Helpers
}

// NewScoringModule wires the scoring service and router.
func NewScoringModule(
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
	logger.InfoContext(ctx, "scoring.NewScoringModule called")

	metrics, err := scoringmetrics.NewOTelMetrics(obs.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to build scoring metrics: %w", err)
	}

	service := scoringservice.NewScoringService(repo, eventBus, logger, metrics, obs.Tracer, helpers, db)

	scoringRouter := scoringrouter.NewScoringRouter(logger, router, eventBus, eventBus, cfg, helpers, obs.Tracer, obs.Registry)
	if err := scoringRouter.Configure(ctx, service, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure scoring router: %w", err)
	}

	return &Module{
		EventBus:       eventBus,
		ScoringService: service,
		ScoringRouter:  scoringRouter,
		config:         cfg,
		observability:  obs,
		helper:         helpers,
	}, nil
}

// Run keeps the module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting scoring module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Scoring module goroutine stopped")
}

func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
