package fakeapi

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/i474232898/weather-data-client/weather"
)

var idPattern = regexp.MustCompile(`^weather_[0-9a-f]{32}$`)

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if !idPattern.MatchString(a) {
		t.Errorf("unexpected id format %q", a)
	}
	if a == b {
		t.Errorf("expected distinct ids, got %q twice", a)
	}
}

func TestMemoryStoreFindByDatePoint(t *testing.T) {
	s := NewMemoryStore(0)
	p := weather.Point{Latitude: 1, Longitude: 2}
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	early := s.Save(Entry{Date: base, Point: p, Historical: true})
	late := s.Save(Entry{Date: base.Add(2 * time.Hour), Point: p, Historical: false})

	got, err := s.FindByDatePoint(p, base.Add(90*time.Minute), false, false)
	if err != nil || got.ID != late.ID {
		t.Errorf("closest: expected %s, got %s (%v)", late.ID, got.ID, err)
	}

	got, err = s.FindByDatePoint(p, base.Add(90*time.Minute), false, true)
	if err != nil || got.ID != early.ID {
		t.Errorf("historical only: expected %s, got %s (%v)", early.ID, got.ID, err)
	}

	if _, err := s.FindByDatePoint(p, base.Add(time.Minute), true, false); !errors.Is(err, ErrNotFound) {
		t.Errorf("exact miss: expected ErrNotFound, got %v", err)
	}

	got, err = s.FindByDatePoint(p, base, true, false)
	if err != nil || got.ID != early.ID {
		t.Errorf("exact hit: expected %s, got %s (%v)", early.ID, got.ID, err)
	}

	if _, err := s.FindByDatePoint(weather.Point{Latitude: 9, Longitude: 9}, base, false, false); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown point: expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreRetention(t *testing.T) {
	s := NewMemoryStore(2)
	p := weather.Point{Latitude: 1, Longitude: 2}
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	first := s.Save(Entry{Date: base, Point: p})
	s.Save(Entry{Date: base.Add(time.Hour), Point: p})
	s.Save(Entry{Date: base.Add(2 * time.Hour), Point: p})

	if s.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", s.Len())
	}
	if _, err := s.Get(first.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected oldest entry evicted, got %v", err)
	}
}
