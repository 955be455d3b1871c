package scoringmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	scoringdb "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating scoring tables...")

		if _, err := db.NewCreateTable().Model((*scoringdb.Match)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*scoringdb.Innings)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*scoringdb.ScoreEvent)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Scoring tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping scoring tables...")

		if _, err := db.NewDropTable().Model((*scoringdb.ScoreEvent)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*scoringdb.Innings)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*scoringdb.Match)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Scoring tables dropped successfully!")
		return nil
	})
}
