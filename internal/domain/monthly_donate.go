package domain

import "github.com/heartmarshall/temple-api/internal/jsontext"

// MonthlyDonate is a recurring donation pledge, optionally linked to the
// registration it came from. The link is not enforced.
type MonthlyDonate struct {
	ID int64 `json:"id" db:"id"`
	Audit
	Name           *string        `json:"name,omitempty"           db:"name"`
	RegistrationID *int64         `json:"registrationId,omitempty" db:"registrationId"`
	DonateID       *string        `json:"donateId,omitempty"       db:"donateId"`
	DonateType     *string        `json:"donateType,omitempty"     db:"donateType"`
	DonateItems    jsontext.Value `json:"donateItems,omitempty"    db:"donateItems"`
	Memo           *string        `json:"memo,omitempty"           db:"memo"`
	Stamps
}

// CreateMonthlyDonateInput holds the fields of a new pledge.
type CreateMonthlyDonateInput struct {
	Name           *string        `json:"name"`
	RegistrationID *int64         `json:"registrationId"`
	DonateID       *string        `json:"donateId"`
	DonateType     *string        `json:"donateType"`
	DonateItems    jsontext.Value `json:"donateItems"`
	Memo           *string        `json:"memo"`
	UserCreated    *string        `json:"userCreated"`
}

func (i CreateMonthlyDonateInput) Validate() error {
	var errs fieldErrors
	errs.nonNegative("registrationId", i.RegistrationID)
	return errs.err()
}

func (i CreateMonthlyDonateInput) Fields() []Field {
	return Fields{}.
		Str("name", i.Name).
		Int("registrationId", i.RegistrationID).
		Str("donateId", i.DonateID).
		Str("donateType", i.DonateType).
		JSON("donateItems", i.DonateItems).
		Str("memo", i.Memo).
		Str("user_created", i.UserCreated)
}

// UpdateMonthlyDonateInput is a partial update; absent fields are left unchanged.
type UpdateMonthlyDonateInput struct {
	Name           *string        `json:"name"`
	RegistrationID *int64         `json:"registrationId"`
	DonateID       *string        `json:"donateId"`
	DonateType     *string        `json:"donateType"`
	DonateItems    jsontext.Value `json:"donateItems"`
	Memo           *string        `json:"memo"`
	UserUpdated    *string        `json:"userUpdated"`
}

func (i UpdateMonthlyDonateInput) Validate() error {
	var errs fieldErrors
	errs.nonNegative("registrationId", i.RegistrationID)
	return errs.err()
}

func (i UpdateMonthlyDonateInput) Fields() []Field {
	return Fields{}.
		Str("name", i.Name).
		Int("registrationId", i.RegistrationID).
		Str("donateId", i.DonateID).
		Str("donateType", i.DonateType).
		JSON("donateItems", i.DonateItems).
		Str("memo", i.Memo).
		Str("user_updated", i.UserUpdated)
}
