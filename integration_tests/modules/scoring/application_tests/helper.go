package scoringintegrationtests

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/crease-live/crease-backend/app/eventbus"
	matchservice "github.com/crease-live/crease-backend/app/modules/match/application"
	scoringservice "github.com/crease-live/crease-backend/app/modules/scoring/application"
	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	scoringdb "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories"
	"github.com/crease-live/crease-backend/app/shared/observability/metrics/matchmetrics"
	"github.com/crease-live/crease-backend/app/shared/observability/metrics/scoringmetrics"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
	"github.com/crease-live/crease-backend/app/shared/utils"
	"github.com/crease-live/crease-backend/integration_tests/testutils"
)

type TestDeps struct {
	Ctx      context.Context
	Repo     scoringdb.Repository
	BunDB    *bun.DB
	EventBus eventbus.EventBus
	Scoring  scoringservice.Service
	Matches  matchservice.Service
}

// SetupTestScoringService builds the scoring and match services against the
// shared containers, with clean tables.
func SetupTestScoringService(t *testing.T) TestDeps {
	t.Helper()

	env := testutils.GetOrCreateTestEnv(t)

	if err := testutils.TruncateTables(env.Ctx, env.DB, "matches", "innings", "score_events"); err != nil {
		t.Fatalf("Failed to truncate scoring tables: %v", err)
	}

	repo := &scoringdb.ScoringDBImpl{DB: env.DB}

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	noOpTracer := noop.NewTracerProvider().Tracer("test_scoring_service")
	helpers := utils.NewHelpers()

	scoring := scoringservice.NewScoringService(
		repo,
		env.EventBus,
		testLogger,
		scoringmetrics.NoOpMetrics{},
		noOpTracer,
		helpers,
		env.DB,
	)
	matches := matchservice.NewMatchService(
		repo,
		env.EventBus,
		testLogger,
		matchmetrics.NoOpMetrics{},
		noOpTracer,
		helpers,
		env.DB,
	)

	return TestDeps{
		Ctx:      env.Ctx,
		Repo:     repo,
		BunDB:    env.DB,
		EventBus: env.EventBus,
		Scoring:  scoring,
		Matches:  matches,
	}
}

// seedLiveMatch creates and starts a match with teams of the given size,
// team A batting first.
func seedLiveMatch(t *testing.T, deps TestDeps, format sharedtypes.MatchFormat, teamSize int) *scoringdomain.Match {
	t.Helper()

	generator := testutils.NewTestDataGenerator(42)
	teamA, teamB := generator.GenerateTeams(teamSize)

	created, err := deps.Matches.CreateMatch(deps.Ctx, matchservice.CreateMatchParams{
		RoomID: "room-1",
		Format: format,
		TeamA:  teamA,
		TeamB:  teamB,
	})
	if err != nil {
		t.Fatalf("Failed to create match: %v", err)
	}

	started, err := deps.Matches.StartMatch(deps.Ctx, created.ID, sharedtypes.TeamA)
	if err != nil {
		t.Fatalf("Failed to start match: %v", err)
	}
	return started
}
