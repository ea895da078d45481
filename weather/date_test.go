package weather

import (
	"errors"
	"testing"
	"time"
)

func TestDateRoundTrip(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 11, 8, 0, 123456000, time.UTC),
		time.Date(1999, 12, 31, 23, 59, 59, 999999000, time.UTC),
	}
	for _, d := range dates {
		s := FormatDate(d)
		got, err := ParseDate(s)
		if err != nil {
			t.Fatalf("%s: parse failed: %v", s, err)
		}
		if !got.Equal(d) {
			t.Errorf("round trip mismatch: %v -> %q -> %v", d, s, got)
		}
	}
}

func TestDateRoundTripOtherZones(t *testing.T) {
	zones := []*time.Location{
		time.FixedZone("Europe/Paris", 1*60*60),
		time.FixedZone("America/Santiago", -3*60*60),
		time.FixedZone("Asia/Kolkata", 5*60*60+30*60),
	}
	for _, loc := range zones {
		d := time.Date(2024, 1, 1, 12, 30, 0, 654321000, loc)
		got, err := ParseDate(FormatDate(d))
		if err != nil {
			t.Fatalf("%s: parse failed: %v", loc, err)
		}
		if !got.Equal(d) {
			t.Errorf("%s: round trip shifted %v -> %v (%v)", loc, d, got, got.Sub(d))
		}
	}
}

func TestFormatDateUsesUTC(t *testing.T) {
	paris := time.FixedZone("Europe/Paris", 1*60*60)
	d := time.Date(2024, 1, 1, 12, 30, 0, 0, paris)
	if got := FormatDate(d); got != "2024-01-01 11:30:00.000000" {
		t.Errorf("expected UTC wire date, got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 1, 1, 12, 30, 0, 1500, time.UTC)
	if got := FormatDate(d); got != "2024-01-01 12:30:00.000001" {
		t.Errorf("unexpected format %q", got)
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, s := range []string{"", "2024-01-01", "2024-01-01 12:30:00", "2024-13-01 12:30:00.000000", "2024-01-01 12:30:00.0000001"} {
		if _, err := ParseDate(s); !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("%q: expected ErrMalformedResponse, got %v", s, err)
		}
	}
}
