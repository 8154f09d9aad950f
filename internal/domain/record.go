package domain

import (
	"strings"
	"time"

	"github.com/heartmarshall/temple-api/internal/jsontext"
)

// TimestampLayout is the layout of createdAt/updatedAt values: RFC 3339
// with fixed-width nanoseconds, so stored values sort as text.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Timestamp formats t the way createdAt/updatedAt are stored.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Audit holds the columns maintained by the external auth system. They are
// read-only here except for explicit userCreated/userUpdated passthrough.
type Audit struct {
	UserCreated *string `json:"userCreated,omitempty" db:"user_created"`
	DateCreated *string `json:"dateCreated,omitempty" db:"date_created"`
	UserUpdated *string `json:"userUpdated,omitempty" db:"user_updated"`
	DateUpdated *string `json:"dateUpdated,omitempty" db:"date_updated"`
}

// Stamps holds the business timestamps written on create and update.
type Stamps struct {
	CreatedAt *string `json:"createdAt,omitempty" db:"createdAt"`
	UpdatedAt *string `json:"updatedAt,omitempty" db:"updatedAt"`
}

// Field is a single column assignment.
type Field struct {
	Column string
	Value  any
}

// Input is a create request or a patch. Fields returns only the columns the
// caller set, with defaults applied for create requests.
type Input interface {
	Validate() error
	Fields() []Field
}

// Fields accumulates assignments, skipping absent values.
type Fields []Field

func (f Fields) Str(column string, v *string) Fields {
	if v == nil {
		return f
	}
	return append(f, Field{Column: column, Value: *v})
}

func (f Fields) Int(column string, v *int64) Fields {
	if v == nil {
		return f
	}
	return append(f, Field{Column: column, Value: *v})
}

func (f Fields) JSON(column string, v jsontext.Value) Fields {
	if !v.Present() {
		return f
	}
	return append(f, Field{Column: column, Value: v})
}

// fieldErrors collects validation failures for a single input.
type fieldErrors []FieldError

func (e *fieldErrors) required(field string, v string) {
	if strings.TrimSpace(v) == "" {
		*e = append(*e, FieldError{Field: field, Message: "required"})
	}
}

func (e *fieldErrors) notBlank(field string, v *string) {
	if v != nil && strings.TrimSpace(*v) == "" {
		*e = append(*e, FieldError{Field: field, Message: "must not be blank"})
	}
}

func (e *fieldErrors) nonNegative(field string, v *int64) {
	if v != nil && *v < 0 {
		*e = append(*e, FieldError{Field: field, Message: "must be >= 0"})
	}
}

func (e fieldErrors) err() error {
	if len(e) > 0 {
		return NewValidationErrors(e)
	}
	return nil
}

func valueOr(v *string, def string) *string {
	if v == nil || *v == "" {
		return &def
	}
	return v
}
