package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	apijwt "github.com/crease-live/crease-backend/api/jwt"
	matchservice "github.com/crease-live/crease-backend/app/modules/match/application"
	scoringservice "github.com/crease-live/crease-backend/app/modules/scoring/application"
	statsservice "github.com/crease-live/crease-backend/app/modules/stats/application"
	"github.com/crease-live/crease-backend/config"
)

// Server is the HTTP gateway over the scoring, match, and stats services.
// Bus-first clients bypass it entirely; it exists for plain HTTP scorers.
type Server struct {
	scoring scoringservice.Service
	matches matchservice.Service
	stats   statsservice.Service
	jwt     apijwt.Provider
	limiter *IPRateLimiter
	logger  *slog.Logger
	tracer  trace.Tracer
	cfg     *config.Config
}

// NewServer creates the gateway.
func NewServer(
	scoring scoringservice.Service,
	matches matchservice.Service,
	stats statsservice.Service,
	jwtProvider apijwt.Provider,
	logger *slog.Logger,
	tracer trace.Tracer,
	cfg *config.Config,
) *Server {
	return &Server{
		scoring: scoring,
		matches: matches,
		stats:   stats,
		jwt:     jwtProvider,
		limiter: NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimitRPS), cfg.HTTP.RateLimitBurst),
		logger:  logger,
		tracer:  tracer,
		cfg:     cfg,
	}
}

// Handler builds the full gateway router: health endpoint open, everything
// under /api behind rate limiting and bearer auth.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(s.cfg.HTTP.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.RegisterRoutes(r)
	return r
}

// RegisterRoutes mounts the /api routes on an existing router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(RateLimitMiddleware(s.limiter))
		r.Use(AuthMiddleware(s.jwt))

		r.Route("/matches", func(r chi.Router) {
			r.Post("/", s.handleCreateMatch)

			r.Route("/{matchID}", func(r chi.Router) {
				r.Get("/", s.handleGetMatchState)
				r.Post("/start", s.handleStartMatch)
				r.Post("/advance", s.handleAdvanceInnings)
				r.Post("/abandon", s.handleAbandonMatch)

				r.Post("/deliveries", s.handleRecordDelivery)
				r.Post("/deliveries/undo", s.handleUndoDelivery)
				r.Get("/events", s.handleListEvents)

				r.Get("/scorecard", s.handleGetScorecard)
				r.Get("/scorecard.xlsx", s.handleDownloadWorkbook)
				r.Get("/run-rate.png", s.handleDownloadChart)
			})
		})
	})
}
