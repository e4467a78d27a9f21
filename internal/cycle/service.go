package cycle

import (
	"fmt"
	"log"
	"sync"
)

// Service owns the record store and everything derived from it. Windows
// and the prediction are pure functions of the store, recomputed after
// every successful mutation under one lock, so readers never observe a
// store/derived-state mismatch.
type Service struct {
	mu    sync.RWMutex
	store Store
	repo  Repository

	windows    []FertileWindow
	prediction *Prediction
}

// NewService creates a Service around the given store. repo may be nil
// when no persistence is configured.
func NewService(store Store, repo Repository) *Service {
	return &Service{store: store, repo: repo}
}

// LoadFromRepository replaces the store contents with the persisted
// reading list and recomputes derived state. Missing persisted data is
// not an error; the service simply starts empty.
func (s *Service) LoadFromRepository() error {
	if s.repo == nil {
		return nil
	}

	readings, err := s.repo.Load()
	if err != nil {
		return fmt.Errorf("load readings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range readings {
		if err := s.store.Upsert(r); err != nil {
			log.Printf("skipping persisted reading for %s: %v", r.Date, err)
		}
	}
	s.recompute()
	return nil
}

// Upsert validates and stores a single direct-entry reading, replacing
// any existing reading for the same date, then recomputes windows and
// the prediction. On validation failure the store is untouched.
func (s *Service) Upsert(r Reading) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Upsert(r); err != nil {
		return err
	}
	s.recompute()
	return nil
}

// ImportCSV parses raw CSV text and inserts every valid row whose date is
// not already in the store; existing entries are never overwritten by
// import. It returns the number of newly inserted readings. A header
// without date/temperature columns fails with ErrMissingColumns; an
// import that lands zero rows fails with ErrEmptyImport and leaves the
// store unchanged.
func (s *Service) ImportCSV(raw string) (int, error) {
	parsed, err := ParseCSV(raw)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]bool, s.store.Count())
	for _, r := range s.store.All() {
		existing[r.Date] = true
	}

	inserted := 0
	for _, r := range parsed {
		if existing[r.Date] {
			continue
		}
		if err := s.store.Upsert(r); err != nil {
			continue
		}
		existing[r.Date] = true
		inserted++
	}

	if inserted == 0 {
		return 0, ErrEmptyImport
	}

	s.recompute()
	return inserted, nil
}

// ExportCSV renders the current store with fertile-window annotations.
func (s *Service) ExportCSV() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ExportCSV(s.store.All(), s.windows)
}

// IsInFertileWindow reports whether the given civil date lies inside any
// currently computed fertile window.
func (s *Service) IsInFertileWindow(date string) (bool, error) {
	if !validDate(date) {
		return false, &ValidationError{Field: "date", Value: date, Reason: "not a valid calendar date (want YYYY-MM-DD)"}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return InAnyWindow(s.windows, date), nil
}

// Readings returns the ordered reading history.
func (s *Service) Readings() []Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.All()
}

// Snapshot returns the full queryable state for presentation consumers.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	windows := make([]FertileWindow, len(s.windows))
	copy(windows, s.windows)

	var pred *Prediction
	if s.prediction != nil {
		p := *s.prediction
		pred = &p
	}

	return Snapshot{
		Readings:       s.store.All(),
		FertileWindows: windows,
		Prediction:     pred,
		TotalReadings:  s.store.Count(),
		DistinctMonths: s.store.DistinctMonths(),
	}
}

// Flush persists the current reading list through the repository port.
// Only the flat list is saved; derived state is recomputed on load.
func (s *Service) Flush() error {
	if s.repo == nil {
		return nil
	}

	s.mu.RLock()
	readings := s.store.All()
	s.mu.RUnlock()

	if err := s.repo.Save(readings); err != nil {
		return fmt.Errorf("save readings: %w", err)
	}
	return nil
}

// recompute rebuilds windows and the prediction from the store. Callers
// must hold the write lock. Stale derived state is never retained: fewer
// than two windows clears the prediction.
func (s *Service) recompute() {
	s.windows = Detect(s.store.All())
	s.prediction = Predict(s.windows)
}
