// Package store holds the canonical event collection in memory.
package store

import (
	"slices"
	"sync"

	"github.com/agendape/agenda-api/internal/model"
	"github.com/agendape/agenda-api/pkg/metrics"
)

// Store owns the canonical event collection. Collection order is creation
// history: newest first. All accessors hand out copies; the slice is never
// shared. The mutex makes the read-modify-write sequences safe under the
// HTTP server's concurrent handlers.
type Store struct {
	mu     sync.RWMutex
	events []model.AgendaEvent
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Insert prepends an event, making it the newest entry.
func (s *Store) Insert(ev model.AgendaEvent) {
	s.mu.Lock()
	s.events = append([]model.AgendaEvent{ev}, s.events...)
	metrics.StoreEvents.Set(float64(len(s.events)))
	s.mu.Unlock()
}

// FindByID returns a copy of the event, or false when absent.
func (s *Store) FindByID(id string) (model.AgendaEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.events {
		if s.events[i].ID == id {
			return s.events[i], true
		}
	}
	return model.AgendaEvent{}, false
}

// UpdateByID applies a mutation to the stored event under the write lock and
// returns the updated copy. Absent ids return false; that is the only
// not-found signal.
func (s *Store) UpdateByID(id string, apply func(*model.AgendaEvent)) (model.AgendaEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == id {
			apply(&s.events[i])
			return s.events[i], true
		}
	}
	return model.AgendaEvent{}, false
}

// DeleteByID removes an event, reporting whether it existed.
func (s *Store) DeleteByID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == id {
			s.events = slices.Delete(s.events, i, i+1)
			metrics.StoreEvents.Set(float64(len(s.events)))
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the collection in store order.
func (s *Store) Snapshot() []model.AgendaEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events)
}

// Len reports the number of stored events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
