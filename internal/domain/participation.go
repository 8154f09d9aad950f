package domain

import "github.com/heartmarshall/temple-api/internal/jsontext"

// ParticipationRecord ties a registration to an activity and tracks its
// payment, receipt and accounting lifecycle. Amounts are integer minor units.
type ParticipationRecord struct {
	ID int64 `json:"id" db:"id"`
	Audit
	RegistrationID  *int64         `json:"registrationId,omitempty"  db:"registrationId"`
	ActivityID      *int64         `json:"activityId,omitempty"      db:"activityId"`
	State           *string        `json:"state,omitempty"           db:"state"`
	Items           jsontext.Value `json:"items,omitempty"           db:"items"`
	Contact         jsontext.Value `json:"contact,omitempty"         db:"contact"`
	TotalAmount     *int64         `json:"totalAmount,omitempty"     db:"totalAmount"`
	DiscountAmount  *int64         `json:"discountAmount,omitempty"  db:"discountAmount"`
	FinalAmount     *int64         `json:"finalAmount,omitempty"     db:"finalAmount"`
	PaidAmount      *int64         `json:"paidAmount,omitempty"      db:"paidAmount"`
	NeedReceipt     *string        `json:"needReceipt,omitempty"     db:"needReceipt"`
	ReceiptNumber   *string        `json:"receiptNumber,omitempty"   db:"receiptNumber"`
	ReceiptIssued   *string        `json:"receiptIssued,omitempty"   db:"receiptIssued"`
	ReceiptIssuedAt *string        `json:"receiptIssuedAt,omitempty" db:"receiptIssuedAt"`
	ReceiptIssuedBy *string        `json:"receiptIssuedBy,omitempty" db:"receiptIssuedBy"`
	AccountingState *string        `json:"accountingState,omitempty" db:"accountingState"`
	AccountingDate  *string        `json:"accountingDate,omitempty"  db:"accountingDate"`
	AccountingBy    *string        `json:"accountingBy,omitempty"    db:"accountingBy"`
	AccountingNotes *string        `json:"accountingNotes,omitempty" db:"accountingNotes"`
	PaymentState    *string        `json:"paymentState,omitempty"    db:"paymentState"`
	PaymentMethod   *string        `json:"paymentMethod,omitempty"   db:"paymentMethod"`
	PaymentDate     *string        `json:"paymentDate,omitempty"     db:"paymentDate"`
	PaymentNotes    *string        `json:"paymentNotes,omitempty"    db:"paymentNotes"`
	Notes           *string        `json:"notes,omitempty"           db:"notes"`
	Stamps
}

// ParticipationFields are the writable columns shared by create and update.
type ParticipationFields struct {
	RegistrationID  *int64         `json:"registrationId"`
	ActivityID      *int64         `json:"activityId"`
	State           *string        `json:"state"`
	Items           jsontext.Value `json:"items"`
	Contact         jsontext.Value `json:"contact"`
	TotalAmount     *int64         `json:"totalAmount"`
	DiscountAmount  *int64         `json:"discountAmount"`
	FinalAmount     *int64         `json:"finalAmount"`
	PaidAmount      *int64         `json:"paidAmount"`
	NeedReceipt     *string        `json:"needReceipt"`
	ReceiptNumber   *string        `json:"receiptNumber"`
	ReceiptIssued   *string        `json:"receiptIssued"`
	ReceiptIssuedAt *string        `json:"receiptIssuedAt"`
	ReceiptIssuedBy *string        `json:"receiptIssuedBy"`
	AccountingState *string        `json:"accountingState"`
	AccountingDate  *string        `json:"accountingDate"`
	AccountingBy    *string        `json:"accountingBy"`
	AccountingNotes *string        `json:"accountingNotes"`
	PaymentState    *string        `json:"paymentState"`
	PaymentMethod   *string        `json:"paymentMethod"`
	PaymentDate     *string        `json:"paymentDate"`
	PaymentNotes    *string        `json:"paymentNotes"`
	Notes           *string        `json:"notes"`
}

// Validate checks all fields and collects all errors.
func (p ParticipationFields) Validate() error {
	var errs fieldErrors
	errs.nonNegative("registrationId", p.RegistrationID)
	errs.nonNegative("activityId", p.ActivityID)
	errs.nonNegative("totalAmount", p.TotalAmount)
	errs.nonNegative("discountAmount", p.DiscountAmount)
	errs.nonNegative("finalAmount", p.FinalAmount)
	errs.nonNegative("paidAmount", p.PaidAmount)
	return errs.err()
}

func (p ParticipationFields) Fields() []Field {
	return Fields{}.
		Int("registrationId", p.RegistrationID).
		Int("activityId", p.ActivityID).
		Str("state", p.State).
		JSON("items", p.Items).
		JSON("contact", p.Contact).
		Int("totalAmount", p.TotalAmount).
		Int("discountAmount", p.DiscountAmount).
		Int("finalAmount", p.FinalAmount).
		Int("paidAmount", p.PaidAmount).
		Str("needReceipt", p.NeedReceipt).
		Str("receiptNumber", p.ReceiptNumber).
		Str("receiptIssued", p.ReceiptIssued).
		Str("receiptIssuedAt", p.ReceiptIssuedAt).
		Str("receiptIssuedBy", p.ReceiptIssuedBy).
		Str("accountingState", p.AccountingState).
		Str("accountingDate", p.AccountingDate).
		Str("accountingBy", p.AccountingBy).
		Str("accountingNotes", p.AccountingNotes).
		Str("paymentState", p.PaymentState).
		Str("paymentMethod", p.PaymentMethod).
		Str("paymentDate", p.PaymentDate).
		Str("paymentNotes", p.PaymentNotes).
		Str("notes", p.Notes)
}

// CreateParticipationInput holds the fields of a new participation record.
type CreateParticipationInput struct {
	ParticipationFields
}

// UpdateParticipationInput is a partial update; absent fields are left unchanged.
type UpdateParticipationInput struct {
	ParticipationFields
	UserUpdated *string `json:"userUpdated"`
}

func (i UpdateParticipationInput) Fields() []Field {
	return Fields(i.ParticipationFields.Fields()).Str("user_updated", i.UserUpdated)
}
