// Package userlock provides a mutex keyed by user identity. All events
// of one user are serialized through his lock so two rapid messages
// cannot interleave form steps; unrelated users proceed concurrently.
package userlock

import "sync"

type Map struct {
	mu    sync.Mutex
	locks map[int64]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func New() *Map {
	return &Map{locks: make(map[int64]*entry)}
}

// Lock acquires the lock for the given user, creating it on first use.
func (m *Map) Lock(userID int64) {
	m.mu.Lock()
	e, ok := m.locks[userID]
	if !ok {
		e = &entry{}
		m.locks[userID] = e
	}
	e.refs++
	m.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the user's lock and drops it once nobody is waiting.
func (m *Map) Unlock(userID int64) {
	m.mu.Lock()
	e, ok := m.locks[userID]
	if ok {
		e.refs--
		if e.refs == 0 {
			delete(m.locks, userID)
		}
	}
	m.mu.Unlock()

	if ok {
		e.mu.Unlock()
	}
}
