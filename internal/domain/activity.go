package domain

// Activity defaults applied on create.
const (
	DefaultActivityItemType = "ceremony"
	DefaultActivityState    = "upcoming"
	DefaultActivityIcon     = "🕯️"
)

// Activity is a scheduled ceremony or event. ActivityID is the caller-assigned
// natural key and is unique across the table.
type Activity struct {
	ID int64 `json:"id" db:"id"`
	Audit
	ActivityID   *string `json:"activityId,omitempty"   db:"activityId"`
	Name         *string `json:"name,omitempty"         db:"name"`
	ItemType     *string `json:"itemType,omitempty"     db:"item_type"`
	Participants *int64  `json:"participants,omitempty" db:"participants"`
	Date         *string `json:"date,omitempty"         db:"date"`
	State        *string `json:"state,omitempty"        db:"state"`
	Icon         *string `json:"icon,omitempty"         db:"icon"`
	Description  *string `json:"description,omitempty"  db:"description"`
	Location     *string `json:"location,omitempty"     db:"location"`
	Stamps
}

// CreateActivityInput holds the fields of a new activity.
type CreateActivityInput struct {
	ActivityID   string  `json:"activityId"`
	Name         string  `json:"name"`
	ItemType     *string `json:"itemType"`
	Participants *int64  `json:"participants"`
	Date         string  `json:"date"`
	State        *string `json:"state"`
	Icon         *string `json:"icon"`
	Description  *string `json:"description"`
	Location     *string `json:"location"`
}

// Validate checks all fields and collects all errors.
func (i CreateActivityInput) Validate() error {
	var errs fieldErrors
	errs.required("activityId", i.ActivityID)
	errs.required("name", i.Name)
	errs.required("date", i.Date)
	errs.nonNegative("participants", i.Participants)
	return errs.err()
}

func (i CreateActivityInput) Fields() []Field {
	participants := int64(0)
	if i.Participants != nil {
		participants = *i.Participants
	}

	return Fields{
		{Column: "activityId", Value: i.ActivityID},
		{Column: "name", Value: i.Name},
		{Column: "date", Value: i.Date},
		{Column: "participants", Value: participants},
	}.
		Str("item_type", valueOr(i.ItemType, DefaultActivityItemType)).
		Str("state", valueOr(i.State, DefaultActivityState)).
		Str("icon", valueOr(i.Icon, DefaultActivityIcon)).
		Str("description", i.Description).
		Str("location", i.Location)
}

// UpdateActivityInput is a partial update; nil fields are left unchanged.
type UpdateActivityInput struct {
	Name         *string `json:"name"`
	ItemType     *string `json:"itemType"`
	Participants *int64  `json:"participants"`
	Date         *string `json:"date"`
	State        *string `json:"state"`
	Icon         *string `json:"icon"`
	Description  *string `json:"description"`
	Location     *string `json:"location"`
}

// Validate checks all fields and collects all errors.
func (i UpdateActivityInput) Validate() error {
	var errs fieldErrors
	errs.notBlank("name", i.Name)
	errs.notBlank("date", i.Date)
	errs.nonNegative("participants", i.Participants)
	return errs.err()
}

func (i UpdateActivityInput) Fields() []Field {
	return Fields{}.
		Str("name", i.Name).
		Str("item_type", i.ItemType).
		Int("participants", i.Participants).
		Str("date", i.Date).
		Str("state", i.State).
		Str("icon", i.Icon).
		Str("description", i.Description).
		Str("location", i.Location)
}
