package scoringservice

import (
	"sync"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// matchLocks serializes scoring operations per match. Entries are reference
// counted and removed once the last holder releases, so long-running
// processes do not accumulate locks for finished matches.
type matchLocks struct {
	mu    sync.Mutex
	locks map[sharedtypes.MatchID]*matchLock
}

type matchLock struct {
	mu   sync.Mutex
	refs int
}

func newMatchLocks() *matchLocks {
	return &matchLocks{locks: make(map[sharedtypes.MatchID]*matchLock)}
}

// acquire blocks until the match lock is held and returns the release
// function.
func (l *matchLocks) acquire(id sharedtypes.MatchID) func() {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &matchLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
