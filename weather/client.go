package weather

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	baseAPIPath = "api/v1/"

	// Paths relative to the client domain.
	ByIDPath        = baseAPIPath + "data/by-id"
	ByDatePointPath = baseAPIPath + "data/by-date-point"
	FetchPath       = baseAPIPath + "fetch"

	// DefaultDomain is the production weather service.
	DefaultDomain = "https://weather.logipro.fr/"
)

// domainPattern accepts http(s) URLs with a host, an optional port and an
// optional path. Host labels start with a word character and hosts may not
// end with a dot.
var domainPattern = regexp.MustCompile(`^https?://\w[\w-]*(\.\w[\w-]*)*(:\d+)?(/[\w+&@#/%?=~_|!:,.;]*)?$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("weatherdomain", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		// No path segment may end with a dot.
		return domainPattern.MatchString(s) && !strings.Contains(s, "./")
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidateDomain reports whether domain is acceptable as a client base URL.
func ValidateDomain(domain string) error {
	if err := validate.Var(domain, "required,weatherdomain"); err != nil {
		return fmt.Errorf("%w: invalid domain %q", ErrConfiguration, domain)
	}
	return nil
}

// Client retrieves weather records from the weather data service. It holds no
// mutable state after construction.
type Client struct {
	transport Transport
	domain    string
	logger    *log.Logger
}

type clientOptions struct {
	transport  Transport
	httpClient *http.Client
	domain     string
	breaker    string
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

// WithTransport sets the transport used for every request.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) { o.transport = t }
}

// WithHTTPClient builds the default transport around client. Ignored when
// WithTransport is also given.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = client }
}

// WithDomain sets the base URL of the service.
func WithDomain(domain string) Option {
	return func(o *clientOptions) { o.domain = domain }
}

// WithCircuitBreaker guards the transport with a circuit breaker named name.
func WithCircuitBreaker(name string) Option {
	return func(o *clientOptions) { o.breaker = name }
}

// WithLogger enables DEBUG request logging.
func WithLogger(l *log.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// NewClient validates the domain and builds a client. It performs no I/O.
func NewClient(opts ...Option) (*Client, error) {
	o := clientOptions{domain: DefaultDomain}
	for _, opt := range opts {
		opt(&o)
	}

	if err := ValidateDomain(o.domain); err != nil {
		return nil, err
	}
	domain := o.domain
	if !strings.HasSuffix(domain, "/") {
		domain += "/"
	}

	transport := o.transport
	if transport == nil {
		transport = NewHTTPTransport(o.httpClient)
	}
	if o.breaker != "" {
		transport = NewBreakerTransport(transport, o.breaker)
	}

	logger := o.logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Client{
		transport: transport,
		domain:    domain,
		logger:    logger,
	}, nil
}

// Domain returns the normalized base URL, always ending in "/".
func (c *Client) Domain() string {
	return c.domain
}

// GetSavedFromID returns the stored record with the given identifier.
func (c *Client) GetSavedFromID(ctx context.Context, weatherInfoID string) (Record, error) {
	body, err := c.get(ctx, c.idURL(weatherInfoID))
	if err != nil {
		return Record{}, err
	}
	return decodeOne(body)
}

// GetSavedFromDateAndPoint returns the stored record for point at date. When
// exact is false the server may return the closest match.
func (c *Client) GetSavedFromDateAndPoint(
	ctx context.Context,
	point Point,
	date time.Time,
	exact bool,
	filter HistoricalFilter,
) (Record, error) {
	body, err := c.get(ctx, c.datePointURL(point, date, filter, exact))
	if err != nil {
		return Record{}, err
	}
	return decodeOne(body)
}

// GetFromAPI asks the service to fetch live data for every point at date.
// Records come back in the order the service returns them.
func (c *Client) GetFromAPI(ctx context.Context, points []Point, date time.Time) ([]Record, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: at least one point is required", ErrInvalidArgument)
	}

	body, err := c.get(ctx, c.fetchURL(points, date))
	if err != nil {
		return nil, err
	}

	records, err := decodeMany(body)
	if err != nil {
		return nil, err
	}
	c.logger.Printf("DEBUG: decoded %d record(s) for %d point(s)", len(records), len(points))
	return records, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	c.logger.Printf("DEBUG: GET %s", url)
	return c.transport.Request(ctx, http.MethodGet, url)
}

func (c *Client) idURL(id string) string {
	var q query
	q.add("id", id)
	return c.domain + ByIDPath + "?" + q.String()
}

func (c *Client) datePointURL(point Point, date time.Time, filter HistoricalFilter, exact bool) string {
	var q query
	q.add("date", FormatDate(date))
	q.add("point", point.String())
	if v, ok := filter.queryValue(); ok {
		q.add("historicalOnly", v)
	}
	q.add("exact", formatBool(exact))
	return c.domain + ByDatePointPath + "?" + q.String()
}

func (c *Client) fetchURL(points []Point, date time.Time) string {
	parts := make([]string, 0, len(points))
	for _, p := range points {
		parts = append(parts, p.String())
	}

	var q query
	q.add("date", FormatDate(date))
	q.add("points", strings.Join(parts, ";"))
	return c.domain + FetchPath + "?" + q.String()
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
