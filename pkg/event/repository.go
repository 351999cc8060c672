package event

import (
	"slices"
	"sync"
	"time"
)

// Reader is the read side of the repository consumed by filters, views and stats.
type Reader interface {
	All() []Event
	Get(id int) (Event, bool)
}

type Repository interface {
	Reader
	Insert(draft Draft, referenceDate time.Time) Event
	Replace(id int, event Event) bool
	Delete(id int) bool
}

// MemoryRepository holds the authoritative, ordered set of events.
type MemoryRepository struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{events: []Event{}}
}

// Insert appends a new event built from draft. Its id is one more than the
// largest id currently stored, or 1 when the repository is empty.
func (r *MemoryRepository) Insert(draft Draft, referenceDate time.Time) Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxId := 0
	for _, e := range r.events {
		maxId = max(maxId, e.ID)
	}
	e := draft.build(maxId+1, referenceDate)
	r.events = append(r.events, e)
	return e.Clone()
}

// Replace overwrites the event with the given id in place. The stored event
// always keeps id, whatever event.ID says. Unknown ids and invalid records
// leave the repository untouched and return false.
func (r *MemoryRepository) Replace(id int, event Event) bool {
	if !event.Valid() {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return false
	}
	replacement := event.Clone()
	replacement.ID = id
	r.events[idx] = replacement
	return true
}

// Delete removes the event with the given id. Unknown ids return false.
func (r *MemoryRepository) Delete(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return false
	}
	r.events = slices.Delete(r.events, idx, idx+1)
	return true
}

// All returns a copy of the events in insertion order.
func (r *MemoryRepository) All() []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Event, 0, len(r.events))
	for _, e := range r.events {
		result = append(result, e.Clone())
	}
	return result
}

func (r *MemoryRepository) Get(id int) (Event, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return Event{}, false
	}
	return r.events[idx].Clone(), true
}

func (r *MemoryRepository) indexOf(id int) int {
	return slices.IndexFunc(r.events, func(e Event) bool {
		return e.ID == id
	})
}
