package weather

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Point is an immutable latitude/longitude pair.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String renders the point as "lat,lon", the form used in query strings.
func (p Point) String() string {
	return formatCoord(p.Latitude) + "," + formatCoord(p.Longitude)
}

// formatCoord prints the shortest decimal that round-trips, never in exponent form.
func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Source names the provider a payload came from.
type Source struct {
	Name string `json:"name"`
}

// Payload wraps the provider result. Data is provider-defined and kept as raw JSON.
type Payload struct {
	Data         json.RawMessage `json:"data"`
	Source       Source          `json:"source"`
	IsPrediction bool            `json:"isPrediction"`
}

// Decode unmarshals the opaque provider data into v.
func (p Payload) Decode(v any) error {
	if len(p.Data) == 0 {
		return fmt.Errorf("%w: payload has no data", ErrMalformedResponse)
	}
	if err := json.Unmarshal(p.Data, v); err != nil {
		return fmt.Errorf("%w: decode payload: %v", ErrMalformedResponse, err)
	}
	return nil
}

// Record is a stored or fetched weather reading tied to one point and timestamp.
type Record struct {
	WeatherInfoID string    `json:"weatherInfoId"`
	Date          time.Time `json:"date"` // microsecond precision
	Data          Payload   `json:"data"`
	Point         Point     `json:"point"`
}

// HistoricalFilter selects whether the by-date-point lookup restricts itself to
// historical records. FilterUnset leaves the decision to the server.
type HistoricalFilter int

const (
	FilterUnset HistoricalFilter = iota
	FilterHistoricalOnly
	FilterNotHistoricalOnly
)

// PreciseFilter converts the boolean "precise" form of the filter.
// A precise lookup is not restricted to historical data.
func PreciseFilter(precise bool) HistoricalFilter {
	if precise {
		return FilterNotHistoricalOnly
	}
	return FilterHistoricalOnly
}

// queryValue returns the historicalOnly parameter and whether it should be sent.
func (f HistoricalFilter) queryValue() (string, bool) {
	switch f {
	case FilterHistoricalOnly:
		return "true", true
	case FilterNotHistoricalOnly:
		return "false", true
	default:
		return "", false
	}
}

func (f HistoricalFilter) String() string {
	switch f {
	case FilterHistoricalOnly:
		return "historical-only"
	case FilterNotHistoricalOnly:
		return "not-historical-only"
	default:
		return "unset"
	}
}
