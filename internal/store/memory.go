package store

import (
	"sort"
	"sync"

	"github.com/bastanley1211/fertilitytracker/internal/cycle"
)

// MemoryStore is a concurrency-safe in-memory record store holding at
// most one reading per calendar date, kept sorted ascending by date.
type MemoryStore struct {
	mu       sync.RWMutex
	readings []cycle.Reading
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Upsert validates the reading and inserts it at its sorted position,
// replacing any existing reading for the same date. An invalid reading
// never touches the store.
func (s *MemoryStore) Upsert(r cycle.Reading) error {
	if err := cycle.ValidateReading(r); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := sort.Search(len(s.readings), func(i int) bool {
		return s.readings[i].Date >= r.Date
	})

	if i < len(s.readings) && s.readings[i].Date == r.Date {
		s.readings[i] = r
		return nil
	}

	s.readings = append(s.readings, cycle.Reading{})
	copy(s.readings[i+1:], s.readings[i:])
	s.readings[i] = r
	return nil
}

// All returns a copy of the readings in ascending date order.
func (s *MemoryStore) All() []cycle.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]cycle.Reading, len(s.readings))
	copy(out, s.readings)
	return out
}

// Count returns the number of stored readings.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.readings)
}

// DistinctMonths returns the number of unique YYYY-MM prefixes among the
// stored readings.
func (s *MemoryStore) DistinctMonths() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	months := 0
	prev := ""
	for _, r := range s.readings {
		if len(r.Date) < 7 {
			continue
		}
		if m := r.Date[:7]; m != prev {
			months++
			prev = m
		}
	}
	return months
}
