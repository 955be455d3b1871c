package scoringdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// ScoringDBImpl implements Repository on bun.
type ScoringDBImpl struct {
	DB *bun.DB
}

func (r *ScoringDBImpl) idb(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *ScoringDBImpl) CreateMatch(ctx context.Context, db bun.IDB, m *scoringdomain.Match) error {
	if _, err := r.idb(db).NewInsert().Model(matchToRow(m)).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert match %s: %w", m.ID, err)
	}
	return nil
}

func (r *ScoringDBImpl) GetMatch(ctx context.Context, db bun.IDB, id sharedtypes.MatchID) (*scoringdomain.Match, error) {
	var row Match
	err := r.idb(db).NewSelect().
		Model(&row).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch match %s: %w", id, err)
	}
	return matchToDomain(&row), nil
}

func (r *ScoringDBImpl) GetMatchByRoom(ctx context.Context, db bun.IDB, roomID sharedtypes.RoomID) (*scoringdomain.Match, error) {
	var row Match
	err := r.idb(db).NewSelect().
		Model(&row).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch match for room %s: %w", roomID, err)
	}
	return matchToDomain(&row), nil
}

func (r *ScoringDBImpl) UpdateMatch(ctx context.Context, db bun.IDB, m *scoringdomain.Match) error {
	row := matchToRow(m)
	res, err := r.idb(db).NewUpdate().
		Model(row).
		Column("room_id", "format", "custom_overs", "team_a", "team_b", "status", "innings_count", "current_innings").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update match %s: %w", m.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ScoringDBImpl) CreateInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inn *scoringdomain.Innings) error {
	row := inningsToRow(matchID, inn, 1)
	if _, err := r.idb(db).NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert innings %d of match %s: %w", inn.Number, matchID, err)
	}
	return nil
}

func (r *ScoringDBImpl) GetInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, number int) (*scoringdomain.Innings, int64, error) {
	var row Innings
	err := r.idb(db).NewSelect().
		Model(&row).
		Where("match_id = ?", matchID).
		Where("number = ?", number).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("failed to fetch innings %d of match %s: %w", number, matchID, err)
	}
	return inningsToDomain(&row), row.Version, nil
}

func (r *ScoringDBImpl) ListInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]*scoringdomain.Innings, error) {
	var rows []Innings
	err := r.idb(db).NewSelect().
		Model(&rows).
		Where("match_id = ?", matchID).
		Order("number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list innings of match %s: %w", matchID, err)
	}
	out := make([]*scoringdomain.Innings, 0, len(rows))
	for i := range rows {
		out = append(out, inningsToDomain(&rows[i]))
	}
	return out, nil
}

func (r *ScoringDBImpl) UpdateInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inn *scoringdomain.Innings, expectedVersion int64) error {
	row := inningsToRow(matchID, inn, expectedVersion+1)
	res, err := r.idb(db).NewUpdate().
		Model(row).
		Column("batting_team", "bowling_team", "runs", "wickets", "overs_completed",
			"balls_in_over", "extras", "target", "striker_id", "non_striker_id",
			"current_bowler_id", "last_over_bowler_id", "completed", "batting_stats",
			"bowling_stats", "partnerships", "fall_of_wickets", "version").
		WherePK().
		Where("version = ?", expectedVersion).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update innings %d of match %s: %w", inn.Number, matchID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *ScoringDBImpl) InsertEvent(ctx context.Context, db bun.IDB, ev *scoringdomain.ScoreEvent) error {
	row := &ScoreEvent{
		ID:            ev.ID,
		MatchID:       ev.MatchID,
		InningsNumber: ev.InningsNumber,
		Reversed:      ev.Reversed,
		Payload:       *ev,
		CreatedAt:     ev.CreatedAt,
	}
	if _, err := r.idb(db).NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("failed to append event %s: %w", ev.ID, err)
	}
	return nil
}

func (r *ScoringDBImpl) LatestActiveEvent(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inningsNumber int) (*scoringdomain.ScoreEvent, error) {
	var row ScoreEvent
	err := r.idb(db).NewSelect().
		Model(&row).
		Where("match_id = ?", matchID).
		Where("innings_number = ?", inningsNumber).
		Where("reversed = false").
		Order("seq DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch latest event of match %s innings %d: %w", matchID, inningsNumber, err)
	}
	ev := row.Payload
	return &ev, nil
}

func (r *ScoringDBImpl) MarkEventReversed(ctx context.Context, db bun.IDB, ev *scoringdomain.ScoreEvent) error {
	row := &ScoreEvent{ID: ev.ID, Reversed: true, Payload: *ev}
	res, err := r.idb(db).NewUpdate().
		Model(row).
		Column("reversed", "payload").
		WherePK().
		Where("reversed = false").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to tombstone event %s: %w", ev.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *ScoringDBImpl) ListEvents(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inningsNumber int) ([]scoringdomain.ScoreEvent, error) {
	var rows []ScoreEvent
	err := r.idb(db).NewSelect().
		Model(&rows).
		Where("match_id = ?", matchID).
		Where("innings_number = ?", inningsNumber).
		Order("seq ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events of match %s innings %d: %w", matchID, inningsNumber, err)
	}
	out := make([]scoringdomain.ScoreEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Payload)
	}
	return out, nil
}
