package fakeapi

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-data-client/weather"
)

var (
	// ErrNotFound is returned when no entry matches a lookup.
	ErrNotFound = errors.New("no weather data found")
)

// Entry is a record as the server stores it.
type Entry struct {
	ID         string
	Date       time.Time
	Point      weather.Point
	Historical bool
	Source     string
	Results    json.RawMessage
}

// MemoryStore is a concurrency-safe in-memory store of entries.
type MemoryStore struct {
	mu sync.RWMutex

	byID map[string]Entry
	// key: point string, value: entry ids in insertion order
	byPoint map[string][]string

	// max entries kept per point (0 = unlimited)
	maxPerPoint int
}

// NewMemoryStore creates a store. If maxPerPoint is <= 0, it is treated as unlimited.
func NewMemoryStore(maxPerPoint int) *MemoryStore {
	return &MemoryStore{
		byID:        make(map[string]Entry),
		byPoint:     make(map[string][]string),
		maxPerPoint: maxPerPoint,
	}
}

// NewID returns an identifier in the service's "weather_<hex>" form.
func NewID() string {
	return "weather_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Save stores e, assigning an ID when empty, and enforces per-point retention.
func (s *MemoryStore) Save(e Entry) Entry {
	if e.ID == "" {
		e.ID = NewID()
	}
	if len(e.Results) == 0 {
		e.Results = json.RawMessage(`{}`)
	}
	key := e.Point.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[e.ID]; !exists {
		s.byPoint[key] = append(s.byPoint[key], e.ID)
	}
	s.byID[e.ID] = e

	ids := s.byPoint[key]
	if s.maxPerPoint > 0 && len(ids) > s.maxPerPoint {
		over := len(ids) - s.maxPerPoint
		for _, id := range ids[:over] {
			delete(s.byID, id)
		}
		s.byPoint[key] = ids[over:]
	}
	return e
}

// Get returns the entry with the given id.
func (s *MemoryStore) Get(id string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// FindByDatePoint returns the entry at point matching date. With exact unset
// the entry closest in time is returned; ties go to the earliest saved.
// historicalOnly skips entries that are not historical.
func (s *MemoryStore) FindByDatePoint(point weather.Point, date time.Time, exact, historicalOnly bool) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		best     Entry
		bestDiff = time.Duration(math.MaxInt64)
		found    bool
	)
	for _, id := range s.byPoint[point.String()] {
		e := s.byID[id]
		if historicalOnly && !e.Historical {
			continue
		}

		diff := e.Date.Sub(date)
		if diff < 0 {
			diff = -diff
		}
		if exact && diff != 0 {
			continue
		}
		if diff < bestDiff {
			best, bestDiff, found = e, diff, true
		}
	}

	if !found {
		return Entry{}, ErrNotFound
	}
	return best, nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
