package statsservice

import (
	"context"

	"github.com/uptrace/bun"

	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	scoringdb "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories"
	statsdb "github.com/crease-live/crease-backend/app/modules/stats/infrastructure/repositories"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// FakeScoringReads is a read-only stub of the scoring repository: the
// builder only ever reads. Write methods fail loudly if touched.
type FakeScoringReads struct {
	Match   *scoringdomain.Match
	Innings []*scoringdomain.Innings
	Events  map[int][]scoringdomain.ScoreEvent

	GetMatchFunc func(ctx context.Context, db bun.IDB, id sharedtypes.MatchID) (*scoringdomain.Match, error)
}

func (f *FakeScoringReads) GetMatch(ctx context.Context, db bun.IDB, id sharedtypes.MatchID) (*scoringdomain.Match, error) {
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, db, id)
	}
	if f.Match == nil || f.Match.ID != id {
		return nil, scoringdb.ErrNotFound
	}
	return f.Match, nil
}

func (f *FakeScoringReads) GetMatchByRoom(ctx context.Context, db bun.IDB, roomID sharedtypes.RoomID) (*scoringdomain.Match, error) {
	if f.Match == nil || f.Match.RoomID != roomID {
		return nil, scoringdb.ErrNotFound
	}
	return f.Match, nil
}

func (f *FakeScoringReads) ListInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]*scoringdomain.Innings, error) {
	return f.Innings, nil
}

func (f *FakeScoringReads) GetInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, number int) (*scoringdomain.Innings, int64, error) {
	for _, inn := range f.Innings {
		if inn.Number == number {
			return inn, 1, nil
		}
	}
	return nil, 0, scoringdb.ErrNotFound
}

func (f *FakeScoringReads) ListEvents(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inningsNumber int) ([]scoringdomain.ScoreEvent, error) {
	return f.Events[inningsNumber], nil
}

func (f *FakeScoringReads) CreateMatch(ctx context.Context, db bun.IDB, m *scoringdomain.Match) error {
	panic("unexpected write")
}

func (f *FakeScoringReads) UpdateMatch(ctx context.Context, db bun.IDB, m *scoringdomain.Match) error {
	panic("unexpected write")
}

func (f *FakeScoringReads) CreateInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inn *scoringdomain.Innings) error {
	panic("unexpected write")
}

func (f *FakeScoringReads) UpdateInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inn *scoringdomain.Innings, expectedVersion int64) error {
	panic("unexpected write")
}

func (f *FakeScoringReads) InsertEvent(ctx context.Context, db bun.IDB, ev *scoringdomain.ScoreEvent) error {
	panic("unexpected write")
}

func (f *FakeScoringReads) LatestActiveEvent(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inningsNumber int) (*scoringdomain.ScoreEvent, error) {
	return nil, scoringdb.ErrNotFound
}

func (f *FakeScoringReads) MarkEventReversed(ctx context.Context, db bun.IDB, ev *scoringdomain.ScoreEvent) error {
	panic("unexpected write")
}

var _ scoringdb.Repository = (*FakeScoringReads)(nil)

// FakeArtifacts is an in-memory artifact store.
type FakeArtifacts struct {
	stored map[sharedtypes.MatchID]*statsdb.ScorecardArtifact

	UpsertArtifactFunc func(ctx context.Context, db bun.IDB, artifact *statsdb.ScorecardArtifact) error
}

func NewFakeArtifacts() *FakeArtifacts {
	return &FakeArtifacts{stored: make(map[sharedtypes.MatchID]*statsdb.ScorecardArtifact)}
}

func (f *FakeArtifacts) UpsertArtifact(ctx context.Context, db bun.IDB, artifact *statsdb.ScorecardArtifact) error {
	if f.UpsertArtifactFunc != nil {
		return f.UpsertArtifactFunc(ctx, db, artifact)
	}
	f.stored[artifact.MatchID] = artifact
	return nil
}

func (f *FakeArtifacts) GetArtifact(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*statsdb.ScorecardArtifact, error) {
	a, ok := f.stored[matchID]
	if !ok {
		return nil, statsdb.ErrNotFound
	}
	return a, nil
}

var _ statsdb.Repository = (*FakeArtifacts)(nil)
