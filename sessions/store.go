// Package sessions gives every browser its own form, keyed by a cookie.
package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"tripform/form"
)

type entry struct {
	form     *form.Form
	lastSeen time.Time
}

// Store keeps forms in memory and forgets those idle for longer than ttl.
// Idle entries are swept at most once per sweepEvery; an expired id is never
// handed back, swept or not.
type Store struct {
	mu         sync.Mutex
	entries    map[string]*entry
	ttl        time.Duration
	sweepEvery time.Duration
	lastSweep  time.Time
	newForm    func() *form.Form
	now        func() time.Time
}

func NewStore(ttl time.Duration, newForm func() *form.Form) *Store {
	return &Store{
		entries: make(map[string]*entry),
		ttl:        ttl,
		sweepEvery: ttl / 4,
		newForm:    newForm,
		now:        time.Now,
	}
}

// Get returns the form for id, creating a session when id is empty, unknown
// or expired. The returned id is the one the caller should keep.
func (s *Store) Get(id string) (string, *form.Form) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.sweepEvery {
		s.evictLocked(now)
		s.lastSweep = now
	}

	if e, ok := s.entries[id]; ok {
		if !s.expired(e, now) {
			e.lastSeen = now
			return id, e.form
		}
		delete(s.entries, id)
	}

	id = uuid.New().String()
	e := &entry{form: s.newForm(), lastSeen: now}
	s.entries[id] = e
	return id, e.form
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return now.Sub(e.lastSeen) > s.ttl
}

func (s *Store) evictLocked(now time.Time) {
	for id, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, id)
		}
	}
}
