package keyed

import "sync"

// Mutex provides mutual exclusion per string key. Holders of different keys
// proceed in parallel; holders of the same key serialize. Entries are
// reference counted and removed once the last holder releases, so the map
// does not grow with the number of keys ever seen.
type Mutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func NewMutex() *Mutex {
	return &Mutex{locks: make(map[string]*lockEntry)}
}

// Lock acquires the mutex for key and returns the matching unlock function.
func (m *Mutex) Lock(key string) func() {
	m.mu.Lock()
	e, ok := m.locks[key]
	if !ok {
		e = &lockEntry{}
		m.locks[key] = e
	}
	e.refs++
	m.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		m.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(m.locks, key)
		}
		m.mu.Unlock()
	}
}
