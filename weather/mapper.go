package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope is the outer wrapper of every API response. Success and ErrorCode
// are decoded but not acted upon.
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	ErrorCode string          `json:"errorCode"`
}

// apiRecord is the wire form of a stored record. Pointers distinguish absent
// fields from zero values.
type apiRecord struct {
	ID         *string         `json:"id"`
	Date       *string         `json:"date"`
	Results    json.RawMessage `json:"results"`
	Historical *bool           `json:"historical"`
	Source     *struct {
		Name *string `json:"name"`
	} `json:"source"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

var jsonNull = []byte("null")

func decodeEnvelope(body []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return envelope{}, fmt.Errorf("%w: decode envelope: %v", ErrMalformedResponse, err)
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, jsonNull) {
		return envelope{}, fmt.Errorf("%w: envelope has no data", ErrMalformedResponse)
	}
	return env, nil
}

// decodeOne decodes an envelope whose data is a single record.
func decodeOne(body []byte) (Record, error) {
	env, err := decodeEnvelope(body)
	if err != nil {
		return Record{}, err
	}
	return mapRecord(env.Data)
}

// decodeMany decodes an envelope whose data is an array of records, keeping order.
func decodeMany(body []byte) ([]Record, error) {
	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, fmt.Errorf("%w: data is not an array: %v", ErrMalformedResponse, err)
	}

	records := make([]Record, 0, len(items))
	for i, item := range items {
		r, err := mapRecord(item)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func mapRecord(raw json.RawMessage) (Record, error) {
	var in apiRecord
	if err := json.Unmarshal(raw, &in); err != nil {
		return Record{}, fmt.Errorf("%w: decode record: %v", ErrMalformedResponse, err)
	}

	switch {
	case in.ID == nil:
		return Record{}, missingField("id")
	case in.Date == nil:
		return Record{}, missingField("date")
	case len(in.Results) == 0 || bytes.Equal(in.Results, jsonNull):
		return Record{}, missingField("results")
	case bytes.TrimSpace(in.Results)[0] != '{':
		return Record{}, fmt.Errorf("%w: results is not an object", ErrMalformedResponse)
	case in.Historical == nil:
		return Record{}, missingField("historical")
	case in.Source == nil || in.Source.Name == nil:
		return Record{}, missingField("source.name")
	case in.Latitude == nil:
		return Record{}, missingField("latitude")
	case in.Longitude == nil:
		return Record{}, missingField("longitude")
	}

	date, err := ParseDate(*in.Date)
	if err != nil {
		return Record{}, err
	}

	return Record{
		WeatherInfoID: *in.ID,
		Date:          date,
		Data: Payload{
			Data:         append(json.RawMessage(nil), in.Results...),
			Source:       Source{Name: *in.Source.Name},
			IsPrediction: *in.Historical,
		},
		Point: Point{Latitude: *in.Latitude, Longitude: *in.Longitude},
	}, nil
}

func missingField(name string) error {
	return fmt.Errorf("%w: missing field %q", ErrMalformedResponse, name)
}
