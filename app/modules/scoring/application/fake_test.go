package scoringservice

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	scoringdomain "github.com/crease-live/crease-backend/app/modules/scoring/domain"
	scoringdb "github.com/crease-live/crease-backend/app/modules/scoring/infrastructure/repositories"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// ------------------------
// Fake Scoring Repo
// ------------------------

// FakeScoringRepository is an in-memory, programmable stub for the
// scoringdb.Repository interface. Overriding one of the *Func fields hijacks
// that method; otherwise the in-memory maps behave like the real store,
// version bookkeeping included.
type FakeScoringRepository struct {
	mu    sync.Mutex
	trace []string

	matches  map[sharedtypes.MatchID]*scoringdomain.Match
	innings  map[sharedtypes.MatchID]map[int]*scoringdomain.Innings
	versions map[sharedtypes.MatchID]map[int]int64
	events   map[sharedtypes.MatchID][]scoringdomain.ScoreEvent

	GetMatchFunc          func(ctx context.Context, db bun.IDB, id sharedtypes.MatchID) (*scoringdomain.Match, error)
	GetInningsFunc        func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, number int) (*scoringdomain.Innings, int64, error)
	UpdateInningsFunc     func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inn *scoringdomain.Innings, expectedVersion int64) error
	InsertEventFunc       func(ctx context.Context, db bun.IDB, ev *scoringdomain.ScoreEvent) error
	LatestActiveEventFunc func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inningsNumber int) (*scoringdomain.ScoreEvent, error)
	MarkEventReversedFunc func(ctx context.Context, db bun.IDB, ev *scoringdomain.ScoreEvent) error
}

// NewFakeScoringRepository initializes an empty fake.
func NewFakeScoringRepository() *FakeScoringRepository {
	return &FakeScoringRepository{
		matches:  make(map[sharedtypes.MatchID]*scoringdomain.Match),
		innings:  make(map[sharedtypes.MatchID]map[int]*scoringdomain.Innings),
		versions: make(map[sharedtypes.MatchID]map[int]int64),
		events:   make(map[sharedtypes.MatchID][]scoringdomain.ScoreEvent),
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeScoringRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoringRepository) record(step string) {
	f.mu.Lock()
	f.trace = append(f.trace, step)
	f.mu.Unlock()
}

// Seed installs a match and its innings at version 1.
func (f *FakeScoringRepository) Seed(m *scoringdomain.Match, innings ...*scoringdomain.Innings) {
	f.matches[m.ID] = m
	f.innings[m.ID] = make(map[int]*scoringdomain.Innings)
	f.versions[m.ID] = make(map[int]int64)
	for _, inn := range innings {
		f.innings[m.ID][inn.Number] = inn
		f.versions[m.ID][inn.Number] = 1
	}
}

// Events returns the appended ledger for a match.
func (f *FakeScoringRepository) Events(id sharedtypes.MatchID) []scoringdomain.ScoreEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]scoringdomain.ScoreEvent, len(f.events[id]))
	copy(out, f.events[id])
	return out
}

func (f *FakeScoringRepository) CreateMatch(ctx context.Context, db bun.IDB, m *scoringdomain.Match) error {
	f.record("CreateMatch")
	f.matches[m.ID] = m
	f.innings[m.ID] = make(map[int]*scoringdomain.Innings)
	f.versions[m.ID] = make(map[int]int64)
	return nil
}

func (f *FakeScoringRepository) GetMatch(ctx context.Context, db bun.IDB, id sharedtypes.MatchID) (*scoringdomain.Match, error) {
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

func (f *FakeScoringRepository) GetMatchByRoom(ctx context.Context, db bun.IDB, roomID sharedtypes.RoomID) (*scoringdomain.Match, error) {
	f.record("GetMatchByRoom")
	for _, m := range f.matches {
		if m.RoomID == roomID {
			return m, nil
		}
	}
	return nil, scoringdb.ErrNotFound
}

func (f *FakeScoringRepository) UpdateMatch(ctx context.Context, db bun.IDB, m *scoringdomain.Match) error {
	f.record("UpdateMatch")
	if _, ok := f.matches[m.ID]; !ok {
		return scoringdb.ErrNotFound
	}
	f.matches[m.ID] = m
	return nil
}

func (f *FakeScoringRepository) CreateInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inn *scoringdomain.Innings) error {
	f.record("CreateInnings")
	if f.innings[matchID] == nil {
		f.innings[matchID] = make(map[int]*scoringdomain.Innings)
		f.versions[matchID] = make(map[int]int64)
	}
	f.innings[matchID][inn.Number] = inn
	f.versions[matchID][inn.Number] = 1
	return nil
}

func (f *FakeScoringRepository) GetInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, number int) (*scoringdomain.Innings, int64, error) {
	f.record("GetInnings")
	if f.GetInningsFunc != nil {
		return f.GetInningsFunc(ctx, db, matchID, number)
	}
	inn, ok := f.innings[matchID][number]
	if !ok {
		return nil, 0, scoringdb.ErrNotFound
	}
	return inn, f.versions[matchID][number], nil
}

func (f *FakeScoringRepository) ListInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]*scoringdomain.Innings, error) {
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

func (f *FakeScoringRepository) UpdateInnings(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inn *scoringdomain.Innings, expectedVersion int64) error {
	f.record("UpdateInnings")
	if f.UpdateInningsFunc != nil {
		return f.UpdateInningsFunc(ctx, db, matchID, inn, expectedVersion)
	}
	if f.versions[matchID][inn.Number] != expectedVersion {
		return scoringdb.ErrVersionConflict
	}
	f.innings[matchID][inn.Number] = inn
	f.versions[matchID][inn.Number] = expectedVersion + 1
	return nil
}

func (f *FakeScoringRepository) InsertEvent(ctx context.Context, db bun.IDB, ev *scoringdomain.ScoreEvent) error {
	f.record("InsertEvent")
	if f.InsertEventFunc != nil {
		return f.InsertEventFunc(ctx, db, ev)
	}
	f.mu.Lock()
	f.events[ev.MatchID] = append(f.events[ev.MatchID], *ev)
	f.mu.Unlock()
	return nil
}

func (f *FakeScoringRepository) LatestActiveEvent(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inningsNumber int) (*scoringdomain.ScoreEvent, error) {
	f.record("LatestActiveEvent")
	if f.LatestActiveEventFunc != nil {
		return f.LatestActiveEventFunc(ctx, db, matchID, inningsNumber)
	}
	events := f.events[matchID]
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].InningsNumber == inningsNumber && !events[i].Reversed {
			ev := events[i]
			return &ev, nil
		}
	}
	return nil, scoringdb.ErrNotFound
}

func (f *FakeScoringRepository) MarkEventReversed(ctx context.Context, db bun.IDB, ev *scoringdomain.ScoreEvent) error {
	f.record("MarkEventReversed")
	if f.MarkEventReversedFunc != nil {
		return f.MarkEventReversedFunc(ctx, db, ev)
	}
	events := f.events[ev.MatchID]
	for i := range events {
		if events[i].ID == ev.ID {
			events[i] = *ev
			return nil
		}
	}
	return scoringdb.ErrNoRowsAffected
}

func (f *FakeScoringRepository) ListEvents(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, inningsNumber int) ([]scoringdomain.ScoreEvent, error) {
	f.record("ListEvents")
	var out []scoringdomain.ScoreEvent
	for _, ev := range f.events[matchID] {
		if ev.InningsNumber == inningsNumber {
			out = append(out, ev)
		}
	}
	return out, nil
}

// Ensure the fake actually satisfies the interface
var _ scoringdb.Repository = (*FakeScoringRepository)(nil)

// ------------------------
// Fake Event Bus
// ------------------------

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
