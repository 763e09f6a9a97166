// Package validate checks decoded JSON payloads against declarative entity
// schemas. One generic validator consumes an ordered field list per entity, so
// the three resources share a single presence/count/type contract.
package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
)

type Kind int

const (
	// String fields only need to be present.
	String Kind = iota
	// Real fields must parse as real numbers (JSON number or numeric string).
	Real
	// Int fields must parse as integers.
	Int
)

// Field is one entry of an entity schema, in wire declaration order.
type Field struct {
	Name string
	Kind Kind
}

// Schema is the declarative shape of one entity's create payload. Put payloads
// are the same shape plus an integer "id".
type Schema struct {
	Entity string
	Fields []Field
}

// FieldError reports the first check that failed. Value is the offending
// payload value, or the whole payload for count/presence failures.
type FieldError struct {
	Entity string
	Field  string
	Value  any
	Reason string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s payload %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("%s payload: %s %s", e.Entity, e.Field, e.Reason)
}

// DecodeObject decodes a JSON object keeping numbers as json.Number, so the
// schema checks can tell numerics from everything else.
func DecodeObject(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return payload, nil
}

// Create validates a POST payload: exact field count, every schema key
// present, then per-field type checks in declaration order. The first failure
// wins and is logged at warning level with the offending value.
func (s Schema) Create(payload map[string]any) error {
	if len(payload) != len(s.Fields) {
		return s.fail("", payload, "does not contain correct number of parameters")
	}
	return s.checkFields(payload)
}

// Put validates a PUT payload: the create field set plus an integer "id".
func (s Schema) Put(payload map[string]any) error {
	if len(payload) != len(s.Fields)+1 {
		return s.fail("", payload, "does not contain correct number of parameters")
	}
	id, ok := payload["id"]
	if !ok {
		return s.fail("", payload, "does not contain an id")
	}
	if _, err := Integer(id); err != nil {
		return s.fail("id", id, "is not an integer")
	}
	return s.checkFields(payload)
}

func (s Schema) checkFields(payload map[string]any) error {
	for _, f := range s.Fields {
		if _, ok := payload[f.Name]; !ok {
			return s.fail("", payload, "does not contain a "+s.Entity)
		}
	}
	for _, f := range s.Fields {
		v := payload[f.Name]
		switch f.Kind {
		case Real:
			if _, err := Number(v); err != nil {
				return s.fail(f.Name, v, "is not a real number")
			}
		case Int:
			if _, err := Integer(v); err != nil {
				return s.fail(f.Name, v, "is not an integer")
			}
		}
	}
	return nil
}

func (s Schema) fail(field string, value any, reason string) error {
	err := &FieldError{Entity: s.Entity, Field: field, Value: value, Reason: reason}
	slog.Warn("payload validation failed",
		"entity", s.Entity,
		"field", field,
		"value", value,
		"reason", reason,
	)
	return err
}

// Number extracts a real number from a decoded JSON value. Numeric strings are
// accepted, matching the permissive parse the API has always had.
func Number(v any) (float64, error) {
	switch t := v.(type) {
	case json.Number:
		return t.Float64()
	case string:
		return strconv.ParseFloat(t, 64)
	default:
		return 0, fmt.Errorf("%v is not a number", v)
	}
}

// Integer extracts an integer from a decoded JSON value.
func Integer(v any) (int64, error) {
	switch t := v.(type) {
	case json.Number:
		return strconv.ParseInt(t.String(), 10, 64)
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, fmt.Errorf("%v is not an integer", v)
	}
}

// Text renders a payload value as a string. String fields are presence-only
// checked, so non-string values are stored in their JSON rendering.
func Text(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
