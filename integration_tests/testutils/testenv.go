package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	tcnats "github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/migrate"

	"github.com/crease-live/crease-backend/app/eventbus"
	scoringmigrations "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories/migrations"
	statsmigrations "github.com/crease-live/crease-backend/app/modules/stats/infrastructure/repositories/migrations"
	"github.com/crease-live/crease-backend/config"
	"github.com/crease-live/crease-backend/integration_tests/containers"
)

// TestEnvironment holds the containers and shared connections one test
// package runs against.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	NatsContainer *tcnats.NATSContainer
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Config        *config.Config
}

var (
	envMu     sync.Mutex
	globalEnv *TestEnvironment
)

// GetOrCreateTestEnv returns the package-wide environment, starting the
// containers on first use. Tests share containers; each test truncates the
// tables it touches.
func GetOrCreateTestEnv(t *testing.T) *TestEnvironment {
	t.Helper()

	envMu.Lock()
	defer envMu.Unlock()

	if globalEnv == nil {
		env, err := NewTestEnvironment()
		if err != nil {
			t.Fatalf("Failed to create test environment: %v", err)
		}
		globalEnv = env
	}
	return globalEnv
}

// ShutdownTestEnv tears down the shared environment. Call it from TestMain
// after m.Run.
func ShutdownTestEnv() {
	envMu.Lock()
	defer envMu.Unlock()

	if globalEnv != nil {
		globalEnv.Cleanup()
		globalEnv = nil
	}
}

// NewTestEnvironment starts Postgres and NATS containers, applies every
// module's migrations, and connects the event bus.
func NewTestEnvironment() (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())

	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		pgContainer.Terminate(ctx)
		cancel()
		return nil, fmt.Errorf("failed to setup nats container: %w", err)
	}

	sqldb, err := sql.Open("pgx", pgConnStr)
	if err != nil {
		cleanupContainers(ctx, pgContainer, natsContainer)
		cancel()
		return nil, fmt.Errorf("failed to open sql DB connection: %w", err)
	}
	db := bun.NewDB(sqldb, pgdialect.New())

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		cleanupContainers(ctx, pgContainer, natsContainer)
		cancel()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus, err := eventbus.NewEventBus(ctx, natsURL, discardLogger)
	if err != nil {
		db.Close()
		cleanupContainers(ctx, pgContainer, natsContainer)
		cancel()
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	return &TestEnvironment{
		Ctx:           ctx,
		CancelContext: cancel,
		PgContainer:   pgContainer,
		NatsContainer: natsContainer,
		DB:            db,
		EventBus:      bus,
		Config: &config.Config{
			Postgres: config.PostgresConfig{DSN: pgConnStr},
			NATS:     config.NATSConfig{URL: natsURL},
		},
	}, nil
}

// runMigrations applies every module's bun migrations to the fresh database.
func runMigrations(ctx context.Context, db *bun.DB) error {
	for name, migrations := range map[string]*migrate.Migrations{
		"scoring": scoringmigrations.Migrations,
		"stats":   statsmigrations.Migrations,
	} {
		migrator := migrate.NewMigrator(db, migrations)
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to init %s migrations: %w", name, err)
		}
		if _, err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", name, err)
		}
	}
	return nil
}

// TruncateTables clears the named tables between tests.
func TruncateTables(ctx context.Context, db *bun.DB, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	query := fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(tables, ", "))
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

// Cleanup tears down all resources created for testing.
func (env *TestEnvironment) Cleanup() {
	if env.CancelContext != nil {
		env.CancelContext()
	}
	if env.EventBus != nil {
		if err := env.EventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}
	if env.DB != nil {
		env.DB.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if env.NatsContainer != nil {
		if err := env.NatsContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating NATS container: %v", err)
		}
	}
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating Postgres container: %v", err)
		}
	}
}

func cleanupContainers(ctx context.Context, pg *postgres.PostgresContainer, nats *tcnats.NATSContainer) {
	if pg != nil {
		pg.Terminate(ctx)
	}
	if nats != nil {
		nats.Terminate(ctx)
	}
}
