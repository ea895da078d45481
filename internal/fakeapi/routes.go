// Package fakeapi is an in-process stand-in for the weather data service,
// serving the same endpoints and envelope so clients can be tested end to end.
package fakeapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-data-client/weather"
)

// Error codes placed in the envelope's errorCode field.
const (
	CodeInvalidQuery = "INVALID_QUERY"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"

	fakeSourceName = "FAKE"
)

var validate = validator.New()

// New builds a fiber app serving the weather API from store.
func New(store *MemoryStore) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weather-fakeapi",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			errorCode := CodeInternal
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				errorCode = e.Message
			}
			return c.Status(code).JSON(fiber.Map{
				"success":   false,
				"data":      nil,
				"errorCode": errorCode,
			})
		},
	})
	RegisterRoutes(app, store)
	return app
}

// RegisterRoutes wires the API handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, store *MemoryStore) {
	v1 := app.Group("/api/v1")

	v1.Get("/data/by-id", func(c *fiber.Ctx) error {
		q := idQuery{ID: c.Query("id")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, CodeInvalidQuery)
		}

		e, err := store.Get(q.ID)
		if err != nil {
			return lookupError(err)
		}
		return ok(c, toWire(e))
	})

	v1.Get("/data/by-date-point", func(c *fiber.Ctx) error {
		var q datePointQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, CodeInvalidQuery)
		}

		e, err := store.FindByDatePoint(q.Point, q.Date, q.Exact, q.HistoricalOnly)
		if err != nil {
			return lookupError(err)
		}
		return ok(c, toWire(e))
	})

	v1.Get("/fetch", func(c *fiber.Ctx) error {
		var q fetchQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, CodeInvalidQuery)
		}

		out := make([]wireRecord, 0, len(q.Points))
		for _, p := range q.Points {
			results, err := json.Marshal(fiber.Map{
				"requestedDate": weather.FormatDate(q.Date),
				"point":         p.String(),
			})
			if err != nil {
				return err
			}
			e := store.Save(Entry{
				Date:       q.Date,
				Point:      p,
				Historical: false,
				Source:     fakeSourceName,
				Results:    results,
			})
			out = append(out, toWire(e))
		}
		return ok(c, out)
	})
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"data":      data,
		"errorCode": "",
	})
}

func lookupError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, CodeNotFound)
	}
	return err
}

type wireSource struct {
	Name string `json:"name"`
}

// wireRecord is the JSON shape of a record inside the envelope.
type wireRecord struct {
	ID         string          `json:"id"`
	Latitude   float64         `json:"latitude"`
	Longitude  float64         `json:"longitude"`
	Date       string          `json:"date"`
	Historical bool            `json:"historical"`
	Source     wireSource      `json:"source"`
	Results    json.RawMessage `json:"results"`
}

func toWire(e Entry) wireRecord {
	return wireRecord{
		ID:         e.ID,
		Latitude:   e.Point.Latitude,
		Longitude:  e.Point.Longitude,
		Date:       weather.FormatDate(e.Date),
		Historical: e.Historical,
		Source:     wireSource{Name: e.Source},
		Results:    e.Results,
	}
}

// idQuery holds query parameters for the by-id endpoint.
type idQuery struct {
	ID string `validate:"required"`
}

// datePointQuery holds query parameters for the by-date-point endpoint.
type datePointQuery struct {
	RawDate           string `validate:"required"`
	RawPoint          string `validate:"required"`
	RawHistoricalOnly string `validate:"omitempty,oneof=true false"`
	RawExact          string `validate:"required,oneof=true false"`

	Date           time.Time
	Point          weather.Point
	HistoricalOnly bool
	Exact          bool
}

func (q *datePointQuery) bind(c *fiber.Ctx) error {
	q.RawDate = c.Query("date")
	q.RawPoint = c.Query("point")
	q.RawHistoricalOnly = c.Query("historicalOnly")
	q.RawExact = c.Query("exact")
	if err := validate.Struct(q); err != nil {
		return err
	}

	date, err := weather.ParseDate(q.RawDate)
	if err != nil {
		return err
	}
	point, err := parsePoint(q.RawPoint)
	if err != nil {
		return err
	}

	q.Date = date
	q.Point = point
	q.HistoricalOnly = q.RawHistoricalOnly == "true"
	q.Exact = q.RawExact == "true"
	return nil
}

// fetchQuery holds query parameters for the fetch endpoint.
type fetchQuery struct {
	RawDate   string `validate:"required"`
	RawPoints string `validate:"required"`

	Date   time.Time
	Points []weather.Point
}

func (q *fetchQuery) bind(c *fiber.Ctx) error {
	q.RawDate = c.Query("date")
	q.RawPoints = c.Query("points")
	if err := validate.Struct(q); err != nil {
		return err
	}

	date, err := weather.ParseDate(q.RawDate)
	if err != nil {
		return err
	}
	q.Date = date

	for _, raw := range strings.Split(q.RawPoints, ";") {
		p, err := parsePoint(raw)
		if err != nil {
			return err
		}
		q.Points = append(q.Points, p)
	}
	return nil
}

// parsePoint parses "lat,lon".
func parsePoint(s string) (weather.Point, error) {
	lat, lon, found := strings.Cut(s, ",")
	if !found {
		return weather.Point{}, fmt.Errorf("invalid point %q", s)
	}
	latitude, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return weather.Point{}, fmt.Errorf("invalid latitude %q: %w", lat, err)
	}
	longitude, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return weather.Point{}, fmt.Errorf("invalid longitude %q: %w", lon, err)
	}
	return weather.Point{Latitude: latitude, Longitude: longitude}, nil
}
