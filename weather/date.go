package weather

import (
	"fmt"
	"time"
)

// DateLayout is the fixed wire format for dates, microsecond precision.
const DateLayout = "2006-01-02 15:04:05.000000"

// FormatDate formats t in UTC, the zone ParseDate reads back. Sub-microsecond
// digits are dropped.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a wire date as UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q: %v", ErrMalformedResponse, s, err)
	}
	return t, nil
}
