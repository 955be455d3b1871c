package statsmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	statsdb "github.com/crease-live/crease-backend/app/modules/stats/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating scorecard_artifacts table...")

		if _, err := db.NewCreateTable().Model((*statsdb.ScorecardArtifact)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Scorecard artifacts table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping scorecard_artifacts table...")

		if _, err := db.NewDropTable().Model((*statsdb.ScorecardArtifact)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Scorecard artifacts table dropped successfully!")
		return nil
	})
}
