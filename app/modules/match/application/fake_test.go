package matchservice

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	scoringdb "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// FakeMatchRepository is an in-memory, programmable stub for the
// scoringdb.Repository interface, trimmed to the lifecycle's needs: the
// event-ledger methods exist only to satisfy the interface.
type FakeMatchRepository struct {
	mu    sync.Mutex
	trace []string

	matches map[sharedtypes.MatchID]*scoringdomain.Match
	innings map[sharedtypes.MatchID]map[int]*scoringdomain.Innings

	CreateMatchFunc   func(ctx context.Context, db bun.IDB, m *scoringdomain.Match) error
	GetMatchFunc      func(ctx context.Context, db bun.IDB, id sharedtypes.MatchID) (*scoringdomain.Match, error)
	UpdateMatchFunc   func(ctx context.Context, db bun.IDB, m *scoringdomain.Match) error
	CreateInningsFunc func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inn *scoringdomain.Innings) error
}

// NewFakeMatchRepository initializes an empty fake.
func NewFakeMatchRepository() *FakeMatchRepository {
	return &FakeMatchRepository{
		matches: make(map[sharedtypes.MatchID]*scoringdomain.Match),
		innings: make(map[sharedtypes.MatchID]map[int]*scoringdomain.Innings),
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeMatchRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeMatchRepository) record(step string) {
	f.mu.Lock()
	f.trace = append(f.trace, step)
	f.mu.Unlock()
}

// Seed installs a match and its innings.
func (f *FakeMatchRepository) Seed(m *scoringdomain.Match, innings ...*scoringdomain.Innings) {
	f.matches[m.ID] = m
	f.innings[m.ID] = make(map[int]*scoringdomain.Innings)
	for _, inn := range innings {
		f.innings[m.ID][inn.Number] = inn
	}
}

// Innings returns the stored innings, or nil.
func (f *FakeMatchRepository) Innings(matchID sharedtypes.MatchID, number int) *scoringdomain.Innings {
	return f.innings[matchID][number]
}

func (f *FakeMatchRepository) CreateMatch(ctx context.Context, db bun.IDB, m *scoringdomain.Match) error {
	f.record("CreateMatch")
	if f.CreateMatchFunc != nil {
		return f.CreateMatchFunc(ctx, db, m)
	}
	f.matches[m.ID] = m
	f.innings[m.ID] = make(map[int]*scoringdomain.Innings)
	return nil
}

func (f *FakeMatchRepository) GetMatch(ctx context.Context, db bun.IDB, id sharedtypes.MatchID) (*scoringdomain.Match, error) {
	f.record("GetMatch")
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, db, id)
	}
	m, ok := f.matches[id]
	if !ok {
		return nil, scoringdb.ErrNotFound
	}
	return m, nil
}

func (f *FakeMatchRepository) GetMatchByRoom(ctx context.Context, db bun.IDB, roomID sharedtypes.RoomID) (*scoringdomain.Match, error) {
	f.record("GetMatchByRoom")
	for _, m := range f.matches {
		if m.RoomID == roomID {
			return m, nil
		}
	}
	return nil, scoringdb.ErrNotFound
}

func (f *FakeMatchRepository) UpdateMatch(ctx context.Context, db bun.IDB, m *scoringdomain.Match) error {
	f.record("UpdateMatch")
	if f.UpdateMatchFunc != nil {
		return f.UpdateMatchFunc(ctx, db, m)
	}
	if _, ok := f.matches[m.ID]; !ok {
		return scoringdb.ErrNotFound
	}
	f.matches[m.ID] = m
	return nil
}

func (f *FakeMatchRepository) CreateInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inn *scoringdomain.Innings) error {
	f.record("CreateInnings")
	if f.CreateInningsFunc != nil {
		return f.CreateInningsFunc(ctx, db, matchID, inn)
	}
	if f.innings[matchID] == nil {
		f.innings[matchID] = make(map[int]*scoringdomain.Innings)
	}
	f.innings[matchID][inn.Number] = inn
	return nil
}

func (f *FakeMatchRepository) GetInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, number int) (*scoringdomain.Innings, int64, error) {
	f.record("GetInnings")
	inn, ok := f.innings[matchID][number]
	if !ok {
		return nil, 0, scoringdb.ErrNotFound
	}
	return inn, 1, nil
}

func (f *FakeMatchRepository) ListInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]*scoringdomain.Innings, error) {
	f.record("ListInnings")
	var out []*scoringdomain.Innings
	for n := 1; ; n++ {
		inn, ok := f.innings[matchID][n]
		if !ok {
			break
		}
		out = append(out, inn)
	}
	return out, nil
}

func (f *FakeMatchRepository) UpdateInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inn *scoringdomain.Innings, expectedVersion int64) error {
	f.record("UpdateInnings")
	f.innings[matchID][inn.Number] = inn
	return nil
}

func (f *FakeMatchRepository) InsertEvent(ctx context.Context, db bun.IDB, ev *scoringdomain.ScoreEvent) error {
	f.record("InsertEvent")
	return nil
}

func (f *FakeMatchRepository) LatestActiveEvent(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inningsNumber int) (*scoringdomain.ScoreEvent, error) {
	f.record("LatestActiveEvent")
	return nil, scoringdb.ErrNotFound
}

func (f *FakeMatchRepository) MarkEventReversed(ctx context.Context, db bun.IDB, ev *scoringdomain.ScoreEvent) error {
	f.record("MarkEventReversed")
	return nil
}

func (f *FakeMatchRepository) ListEvents(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inningsNumber int) ([]scoringdomain.ScoreEvent, error) {
	f.record("ListEvents")
	return nil, nil
}

// Ensure the fake actually satisfies the interface
var _ scoringdb.Repository = (*FakeMatchRepository)(nil)

// FakeEventBus captures everything published, keyed by topic.
type FakeEventBus struct {
	mu        sync.Mutex
	published map[string][]*message.Message

	PublishFunc func(topic string, messages ...*message.Message) error
}

func NewFakeEventBus() *FakeEventBus {
	return &FakeEventBus{published: make(map[string][]*message.Message)}
}

func (f *FakeEventBus) Publish(topic string, messages ...*message.Message) error {
	if f.PublishFunc != nil {
		return f.PublishFunc(topic, messages...)
	}
	f.mu.Lock()
	f.published[topic] = append(f.published[topic], messages...)
	f.mu.Unlock()
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ch := make(chan *message.Message)
	close(ch)
	return ch, nil
}

func (f *FakeEventBus) CreateStream(ctx context.Context, streamName string) error { return nil }

func (f *FakeEventBus) Close() error { return nil }

// Published returns the messages captured for a topic.
func (f *FakeEventBus) Published(topic string) []*message.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*message.Message, len(f.published[topic]))
	copy(out, f.published[topic])
	return out
}
