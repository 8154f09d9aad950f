package domain

import "github.com/heartmarshall/temple-api/internal/jsontext"

// FormSubmission is a generic stored form ("my data"). Unlike the other
// entities its ID is an opaque string generated on create.
type FormSubmission struct {
	ID string `json:"id" db:"id"`
	Audit
	State    *string        `json:"state,omitempty"    db:"state"`
	FormName *string        `json:"formName,omitempty" db:"formName"`
	Contact  jsontext.Value `json:"contact,omitempty"  db:"contact"`
	Stamps
}

// CreateFormSubmissionInput holds the fields of a new submission.
type CreateFormSubmissionInput struct {
	State    *string        `json:"state"`
	FormName *string        `json:"formName"`
	Contact  jsontext.Value `json:"contact"`
}

func (i CreateFormSubmissionInput) Validate() error { return nil }

func (i CreateFormSubmissionInput) Fields() []Field {
	return Fields{}.
		Str("state", i.State).
		Str("formName", i.FormName).
		JSON("contact", i.Contact)
}

// UpdateFormSubmissionInput is a partial update; absent fields are left unchanged.
type UpdateFormSubmissionInput struct {
	State       *string        `json:"state"`
	FormName    *string        `json:"formName"`
	Contact     jsontext.Value `json:"contact"`
	UserUpdated *string        `json:"userUpdated"`
}

func (i UpdateFormSubmissionInput) Validate() error { return nil }

func (i UpdateFormSubmissionInput) Fields() []Field {
	return Fields{}.
		Str("state", i.State).
		Str("formName", i.FormName).
		JSON("contact", i.Contact).
		Str("user_updated", i.UserUpdated)
}
