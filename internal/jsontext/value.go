// Package jsontext stores JSON documents in text columns.
//
// Writes serialize the document to canonical compact text (object keys
// sorted, numbers kept verbatim). Reads are lenient: text that does not
// parse as JSON is treated as absent and reported through the default
// logger and the temple_jsontext_malformed_total counter, never as an error.
package jsontext

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/temple-api/internal/observability"
)

// Value is a JSON document persisted as text. The zero value is absent and
// is stored as NULL.
type Value []byte

// Encode serializes v to canonical text. A nil v yields an absent Value.
func Encode(v any) (Value, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("jsontext: encode: %w", err)
	}
	return canonical(raw)
}

// Decode parses stored column text. NULL and malformed text both yield an
// absent Value.
func Decode(text *string) Value {
	if text == nil {
		return nil
	}
	return decode([]byte(*text))
}

// Present reports whether the value holds a document (including JSON null
// literals stored explicitly).
func (v Value) Present() bool { return len(v) > 0 }

// String returns the stored text, or "" when absent.
func (v Value) String() string { return string(v) }

// Unmarshal decodes the document into dst.
func (v Value) Unmarshal(dst any) error {
	if !v.Present() {
		return fmt.Errorf("jsontext: unmarshal absent value")
	}
	return json.Unmarshal(v, dst)
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Present() {
		return []byte("null"), nil
	}
	return v, nil
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves the value
// absent.
func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = nil
		return nil
	}
	c, err := canonical(data)
	if err != nil {
		return err
	}
	*v = c
	return nil
}

// Value implements driver.Valuer.
func (v Value) Value() (driver.Value, error) {
	if !v.Present() {
		return nil, nil
	}
	return string(v), nil
}

// Scan implements sql.Scanner.
func (v *Value) Scan(src any) error {
	switch s := src.(type) {
	case nil:
		*v = nil
	case string:
		*v = decode([]byte(s))
	case []byte:
		*v = decode(bytes.Clone(s))
	default:
		return fmt.Errorf("jsontext: cannot scan %T", src)
	}
	return nil
}

func decode(raw []byte) Value {
	if json.Valid(raw) {
		return Value(raw)
	}
	observability.JSONTextMalformed.Inc()
	slog.Default().Warn("jsontext: malformed stored json", slog.Int("bytes", len(raw)))
	return nil
}

func canonical(raw []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("jsontext: invalid json: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("jsontext: invalid json: trailing data")
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("jsontext: encode: %w", err)
	}
	return Value(out), nil
}
