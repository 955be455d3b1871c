package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/crease-live/crease-backend/api"
	apijwt "github.com/crease-live/crease-backend/api/jwt"
	"github.com/crease-live/crease-backend/api/ws"
	"github.com/crease-live/crease-backend/app/eventbus"
	"github.com/crease-live/crease-backend/app/modules/match"
	"github.com/crease-live/crease-backend/app/modules/scoring"
	scoringdb "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories"
	"github.com/crease-live/crease-backend/app/modules/stats"
	statsdb "github.com/crease-live/crease-backend/app/modules/stats/infrastructure/repositories"
	"github.com/crease-live/crease-backend/app/shared/observability"
	"github.com/crease-live/crease-backend/app/shared/observability/attr"
	"github.com/crease-live/crease-backend/app/shared/utils"
	"github.com/crease-live/crease-backend/config"
)

// App wires configuration, infrastructure, and the modules together.
type App struct {
	Config          *config.Config
	Observability   *observability.Observability
	DB              *bun.DB
	EventBus        eventbus.EventBus
	WatermillRouter *message.Router
	ScoringModule   *scoring.Module
	MatchModule     *match.Module
	StatsModule     *stats.Module
	APIServer       *api.Server
	LiveFeed        *ws.Feed

	httpServer    *http.Server
	metricsServer *http.Server
	helpers       utils.Helpers
}

// Initialize builds every shared dependency and module. Nothing starts
// running until Run.
func (app *App) Initialize(ctx context.Context, cfg *config.Config, obs *observability.Observability) error {
	app.Config = cfg
	app.Observability = obs
	app.helpers = utils.NewHelpers()
	logger := obs.Logger

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	app.DB = bun.NewDB(sqldb, pgdialect.New())
	if err := app.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	app.EventBus = bus

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create watermill router: %w", err)
	}
	app.WatermillRouter = router

	scoringRepo := &scoringdb.ScoringDBImpl{DB: app.DB}
	artifactRepo := &statsdb.StatsDBImpl{DB: app.DB}

	app.ScoringModule, err = scoring.NewScoringModule(ctx, cfg, *obs, scoringRepo, app.DB, bus, router, app.helpers)
	if err != nil {
		return fmt.Errorf("failed to initialize scoring module: %w", err)
	}
	app.MatchModule, err = match.NewMatchModule(ctx, cfg, *obs, scoringRepo, app.DB, bus, router, app.helpers)
	if err != nil {
		return fmt.Errorf("failed to initialize match module: %w", err)
	}
	app.StatsModule, err = stats.NewStatsModule(ctx, cfg, *obs, scoringRepo, artifactRepo, app.DB, bus, router, app.helpers)
	if err != nil {
		return fmt.Errorf("failed to initialize stats module: %w", err)
	}

	jwtProvider := apijwt.NewProvider(cfg.JWT.Secret)
	app.LiveFeed = ws.NewFeed(bus, jwtProvider, logger)
	app.APIServer = api.NewServer(
		app.ScoringModule.ScoringService,
		app.MatchModule.MatchService,
		app.StatsModule.StatsService,
		jwtProvider,
		logger,
		obs.Tracer,
		cfg,
	)

	root := chi.NewRouter()
	root.Get("/ws", app.LiveFeed.ServeWS)
	root.Mount("/", app.APIServer.Handler())

	app.httpServer = &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: root,
	}

	if cfg.Observability.MetricsAddress != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
		app.metricsServer = &http.Server{
			Addr:    cfg.Observability.MetricsAddress,
			Handler: metricsMux,
		}
	}

	return nil
}

// Run starts the bus router, modules, live feed, and HTTP servers, then
// blocks until the context is canceled.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.WatermillRouter.Run(ctx); err != nil {
			logger.Error("Watermill router stopped", attr.Error(err))
			cancel()
		}
	}()
	<-app.WatermillRouter.Running()

	wg.Add(3)
	go app.ScoringModule.Run(ctx, &wg)
	go app.MatchModule.Run(ctx, &wg)
	go app.StatsModule.Run(ctx, &wg)

	if err := app.LiveFeed.Start(ctx); err != nil {
		return fmt.Errorf("failed to start live feed: %w", err)
	}

	logger.InfoContext(ctx, "HTTP gateway listening", attr.String("address", app.Config.HTTP.Address))
	go func() {
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", attr.Error(err))
			cancel()
		}
	}()

	if app.metricsServer != nil {
		go func() {
			if err := app.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server stopped", attr.Error(err))
			}
		}()
	}

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), app.Config.HTTP.RequestTimeout)
	defer shutdownCancel()
	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", attr.Error(err))
	}
	if app.metricsServer != nil {
		if err := app.metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server shutdown failed", attr.Error(err))
		}
	}

	wg.Wait()
	return nil
}

// Close releases infrastructure resources.
func (app *App) Close() {
	logger := app.Observability.Logger

	if app.ScoringModule != nil {
		_ = app.ScoringModule.Close()
	}
	if app.MatchModule != nil {
		_ = app.MatchModule.Close()
	}
	if app.StatsModule != nil {
		_ = app.StatsModule.Close()
	}
	if app.WatermillRouter != nil {
		if err := app.WatermillRouter.Close(); err != nil {
			logger.Error("Failed to close watermill router", attr.Error(err))
		}
	}
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			logger.Error("Failed to close event bus", attr.Error(err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			logger.Error("Failed to close database", attr.Error(err))
		}
	}
}
