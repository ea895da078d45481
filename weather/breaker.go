package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerTransport guards another Transport with a circuit breaker. It never
// retries: a failure is returned as-is, and while the breaker is open calls
// fail fast without reaching the wrapped transport.
type BreakerTransport struct {
	next    Transport
	circuit *gobreaker.CircuitBreaker
}

// NewBreakerTransport wraps next with a breaker named name.
func NewBreakerTransport(next Transport, name string) *BreakerTransport {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &BreakerTransport{next: next, circuit: cb}
}

// State reports the current breaker state.
func (t *BreakerTransport) State() gobreaker.State {
	return t.circuit.State()
}

func (t *BreakerTransport) Request(ctx context.Context, method, url string) ([]byte, error) {
	result, err := t.circuit.Execute(func() (interface{}, error) {
		return t.next.Request(ctx, method, url)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w: %v", ErrTransport, ErrCircuitOpen, err)
		}
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result type from circuit breaker", ErrTransport)
	}
	return body, nil
}
