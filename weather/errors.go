package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when the client is built with an invalid domain
	// or environment configuration.
	ErrConfiguration = errors.New("weather: invalid configuration")
	// ErrInvalidArgument is returned before any I/O when call arguments are unusable.
	ErrInvalidArgument = errors.New("weather: invalid argument")
	// ErrTransport wraps network failures and non-2xx responses.
	ErrTransport = errors.New("weather: transport failure")
	// ErrMalformedResponse is returned when a body is not the expected JSON shape.
	ErrMalformedResponse = errors.New("weather: malformed response")
	// ErrCircuitOpen is returned by BreakerTransport while the breaker rejects calls.
	ErrCircuitOpen = errors.New("weather: circuit breaker open")
)

// StatusError reports a non-2xx HTTP status from the upstream API.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.StatusCode, e.URL)
}
