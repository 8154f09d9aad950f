package domain

import "github.com/heartmarshall/temple-api/internal/jsontext"

// Registration is a submitted sign-up form. Salvation, Contact and Blessing
// are free-form JSON documents.
type Registration struct {
	ID int64 `json:"id" db:"id"`
	Audit
	State      *string        `json:"state,omitempty"      db:"state"`
	FormID     *string        `json:"formId,omitempty"     db:"formId"`
	FormName   *string        `json:"formName,omitempty"   db:"formName"`
	FormSource *string        `json:"formSource,omitempty" db:"formSource"`
	Salvation  jsontext.Value `json:"salvation,omitempty"  db:"salvation"`
	Contact    jsontext.Value `json:"contact,omitempty"    db:"contact"`
	Blessing   jsontext.Value `json:"blessing,omitempty"   db:"blessing"`
	Stamps
}

// CreateRegistrationInput holds the fields of a new registration.
type CreateRegistrationInput struct {
	State      *string        `json:"state"`
	FormID     string         `json:"formId"`
	FormName   *string        `json:"formName"`
	FormSource *string        `json:"formSource"`
	Salvation  jsontext.Value `json:"salvation"`
	Contact    jsontext.Value `json:"contact"`
	Blessing   jsontext.Value `json:"blessing"`
}

// Validate checks all fields and collects all errors.
func (i CreateRegistrationInput) Validate() error {
	var errs fieldErrors
	errs.required("formId", i.FormID)
	return errs.err()
}

func (i CreateRegistrationInput) Fields() []Field {
	return Fields{{Column: "formId", Value: i.FormID}}.
		Str("state", i.State).
		Str("formName", i.FormName).
		Str("formSource", i.FormSource).
		JSON("salvation", i.Salvation).
		JSON("contact", i.Contact).
		JSON("blessing", i.Blessing)
}

// UpdateRegistrationInput is a partial update; absent fields are left unchanged.
type UpdateRegistrationInput struct {
	State      *string        `json:"state"`
	FormID     *string        `json:"formId"`
	FormName   *string        `json:"formName"`
	FormSource *string        `json:"formSource"`
	Salvation  jsontext.Value `json:"salvation"`
	Contact    jsontext.Value `json:"contact"`
	Blessing   jsontext.Value `json:"blessing"`
}

// Validate checks all fields and collects all errors.
func (i UpdateRegistrationInput) Validate() error {
	var errs fieldErrors
	errs.notBlank("formId", i.FormID)
	return errs.err()
}

func (i UpdateRegistrationInput) Fields() []Field {
	return Fields{}.
		Str("state", i.State).
		Str("formId", i.FormID).
		Str("formName", i.FormName).
		Str("formSource", i.FormSource).
		JSON("salvation", i.Salvation).
		JSON("contact", i.Contact).
		JSON("blessing", i.Blessing)
}
