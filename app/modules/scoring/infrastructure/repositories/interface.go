package scoringdb

import (
	"context"

	"github.com/uptrace/bun"

	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// Repository is the persistence surface of the scoring module. Every method
// accepts a bun.IDB so the service can pass its transaction; nil falls back
// to the root connection.
type Repository interface {
	CreateMatch(ctx context.Context, db bun.IDB, m *scoringdomain.Match) error
	GetMatch(ctx context.Context, db bun.IDB, id sharedtypes.MatchID) (*scoringdomain.Match, error)
	GetMatchByRoom(ctx context.Context, db bun.IDB, roomID sharedtypes.RoomID) (*scoringdomain.Match, error)
	UpdateMatch(ctx context.Context, db bun.IDB, m *scoringdomain.Match) error

	CreateInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inn *scoringdomain.Innings) error
	// GetInnings returns the innings aggregate and the version the caller
	// must present on the next UpdateInnings.
	GetInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, number int) (*scoringdomain.Innings, int64, error)
	ListInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]*scoringdomain.Innings, error)
	// UpdateInnings writes the aggregate back, guarded by the version read
	// earlier; ErrVersionConflict means another write won the race.
	UpdateInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inn *scoringdomain.Innings, expectedVersion int64) error

	InsertEvent(ctx context.Context, db bun.IDB, ev *scoringdomain.ScoreEvent) error
	// LatestActiveEvent returns the most recent non-reversed event of the
	// innings, or ErrNotFound when the ledger has nothing left to undo.
	LatestActiveEvent(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inningsNumber int) (*scoringdomain.ScoreEvent, error)
	// MarkEventReversed persists the tombstone fields of an undone event.
	MarkEventReversed(ctx context.Context, db bun.IDB, ev *scoringdomain.ScoreEvent) error
	ListEvents(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inningsNumber int) ([]scoringdomain.ScoreEvent, error)
}
