package statsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// StatsDBImpl implements Repository on bun.
type StatsDBImpl struct {
	DB *bun.DB
}

func (r *StatsDBImpl) idb(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *StatsDBImpl) UpsertArtifact(ctx context.Context, db bun.IDB, artifact *ScorecardArtifact) error {
	_, err := r.idb(db).NewInsert().
		Model(artifact).
		On("CONFLICT (match_id) DO UPDATE").
		Set("room_id = EXCLUDED.room_id").
		Set("result_text = EXCLUDED.result_text").
		Set("workbook = EXCLUDED.workbook").
		Set("run_rate_chart = EXCLUDED.run_rate_chart").
		Set("generated_at = EXCLUDED.generated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert artifact for match %s: %w", artifact.MatchID, err)
	}
	return nil
}

func (r *StatsDBImpl) GetArtifact(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*ScorecardArtifact, error) {
	var row ScorecardArtifact
	err := r.idb(db).NewSelect().
		Model(&row).
		Where("match_id = ?", matchID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch artifact for match %s: %w", matchID, err)
	}
	return &row, nil
}

var _ Repository = (*StatsDBImpl)(nil)
