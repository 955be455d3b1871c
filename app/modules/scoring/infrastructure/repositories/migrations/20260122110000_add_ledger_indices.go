package scoringmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Adding indices for the scoring module...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_matches_room_id ON matches(room_id);
			`); err != nil {
				return fmt.Errorf("failed to add index to matches: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_score_events_ledger ON score_events(match_id, innings_number, seq DESC) WHERE reversed = false;
			`); err != nil {
				return fmt.Errorf("failed to add ledger index to score_events: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Rolling back indices for the scoring module...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				DROP INDEX IF EXISTS idx_score_events_ledger;
			`); err != nil {
				return fmt.Errorf("failed to drop ledger index: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				DROP INDEX IF EXISTS idx_matches_room_id;
			`); err != nil {
				return fmt.Errorf("failed to drop matches index: %w", err)
			}
			return nil
		})
	})
}
