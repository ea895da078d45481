package config

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/weather-data-client/weather"
)

const breakerName = "weather-api"

var validate = validator.New()

type ClientConfig struct {
	// Domain is the base URL of the weather service.
	Domain string `validate:"required"`

	// HTTPTimeout bounds every outbound request.
	HTTPTimeout time.Duration `validate:"gt=0"`

	// CircuitBreaker guards the transport with a breaker when true.
	CircuitBreaker bool

	// Debug turns on DEBUG request logging to stderr.
	Debug bool
}

// Load reads configuration from environment with sensible defaults.
func Load() (*ClientConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &ClientConfig{}

	cfg.Domain = getenvDefault("WEATHER_API_DOMAIN", weather.DefaultDomain)

	timeout, err := time.ParseDuration(getenvDefault("WEATHER_HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid WEATHER_HTTP_TIMEOUT: %v", weather.ErrConfiguration, err)
	}
	cfg.HTTPTimeout = timeout

	if cfg.CircuitBreaker, err = getenvBool("WEATHER_CIRCUIT_BREAKER", false); err != nil {
		return nil, err
	}
	if cfg.Debug, err = getenvBool("WEATHER_DEBUG", false); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrConfiguration, err)
	}
	if err := weather.ValidateDomain(cfg.Domain); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Options translates the configuration into client options.
func (c *ClientConfig) Options() []weather.Option {
	opts := []weather.Option{
		weather.WithDomain(c.Domain),
		weather.WithHTTPClient(&http.Client{Timeout: c.HTTPTimeout}),
	}
	if c.CircuitBreaker {
		opts = append(opts, weather.WithCircuitBreaker(breakerName))
	}
	if c.Debug {
		opts = append(opts, weather.WithLogger(log.New(os.Stderr, "weather: ", log.LstdFlags)))
	}
	return opts
}

// NewClient loads the environment and builds a client from it.
func NewClient(extra ...weather.Option) (*weather.Client, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	return weather.NewClient(append(cfg.Options(), extra...)...)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: invalid %s: %v", weather.ErrConfiguration, key, err)
	}
	return b, nil
}
