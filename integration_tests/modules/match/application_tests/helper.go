package matchintegrationtests

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	matchservice "github.com/crease-live/crease-backend/app/modules/match/application"
	scoringdb "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories"
	"github.com/crease-live/crease-backend/app/shared/observability/metrics/matchmetrics"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
	"github.com/crease-live/crease-backend/app/shared/utils"
	"github.com/crease-live/crease-backend/integration_tests/testutils"
)

type TestDeps struct {
	Ctx     context.Context
	Repo    scoringdb.Repository
	BunDB   *bun.DB
	Service matchservice.Service
}

// SetupTestMatchService builds the match lifecycle service against the
// shared containers, with clean tables.
func SetupTestMatchService(t *testing.T) TestDeps {
	t.Helper()

	env := testutils.GetOrCreateTestEnv(t)

	if err := testutils.TruncateTables(env.Ctx, env.DB, "matches", "innings", "score_events"); err != nil {
		t.Fatalf("Failed to truncate scoring tables: %v", err)
	}

	repo := &scoringdb.ScoringDBImpl{DB: env.DB}

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	noOpTracer := noop.NewTracerProvider().Tracer("test_match_service")

	service := matchservice.NewMatchService(
		repo,
		env.EventBus,
		testLogger,
		matchmetrics.NoOpMetrics{},
		noOpTracer,
		utils.NewHelpers(),
		env.DB,
	)

	return TestDeps{
		Ctx:     env.Ctx,
		Repo:    repo,
		BunDB:   env.DB,
		Service: service,
	}
}

// createParams builds a valid T20 match request with teams of the given size.
func createParams(teamSize int) matchservice.CreateMatchParams {
	generator := testutils.NewTestDataGenerator(7)
	teamA, teamB := generator.GenerateTeams(teamSize)
	return matchservice.CreateMatchParams{
		RoomID: "room-1",
		Format: sharedtypes.FormatT20,
		TeamA:  teamA,
		TeamB:  teamB,
	}
}

// closeInnings marks the current innings completed with the given score, the
// way a finished passage of play would leave it.
func closeInnings(t *testing.T, deps TestDeps, matchID sharedtypes.MatchID, number, runs, wickets int) {
	t.Helper()

	inn, version, err := deps.Repo.GetInnings(deps.Ctx, nil, matchID, number)
	if err != nil {
		t.Fatalf("Failed to load innings %d: %v", number, err)
	}
	inn.Runs = runs
	inn.Wickets = wickets
	inn.Completed = true
	if err := deps.Repo.UpdateInnings(deps.Ctx, nil, matchID, inn, version); err != nil {
		t.Fatalf("Failed to close innings %d: %v", number, err)
	}
}
