package fakeapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-data-client/weather"
)

// AppTransport serves weather.Transport requests from a fiber app in-process.
// It is safe for concurrent use.
type AppTransport struct {
	app *fiber.App

	mu       sync.Mutex
	requests []string
}

// NewAppTransport adapts app to weather.Transport.
func NewAppTransport(app *fiber.App) *AppTransport {
	return &AppTransport{app: app}
}

func (t *AppTransport) Request(ctx context.Context, method, url string) ([]byte, error) {
	t.mu.Lock()
	t.requests = append(t.requests, url)
	t.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", weather.ErrTransport, err)
	}

	resp, err := t.app.Test(req, -1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", weather.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %w", weather.ErrTransport, &weather.StatusError{URL: url, StatusCode: resp.StatusCode})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", weather.ErrTransport, err)
	}
	return body, nil
}

// Requests returns a copy of every URL requested so far, in order.
func (t *AppTransport) Requests() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.requests...)
}
