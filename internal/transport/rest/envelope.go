package rest

// Envelope is the body of every API response. All keys are always
// serialized; absent parts are null.
type Envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data"`
	Message *string  `json:"message"`
	Meta    *Meta    `json:"meta"`
	Errors  []string `json:"errors"`
}

// Meta carries pagination for list responses.
type Meta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// OK wraps data in a success envelope.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKWithMeta wraps a page of items.
func OKWithMeta(data any, meta Meta) Envelope {
	return Envelope{Success: true, Data: data, Meta: &meta}
}

// OKWithMessage wraps data with a human-readable message.
func OKWithMessage(data any, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: &message}
}

// Fail builds an error envelope.
func Fail(message string) Envelope {
	return Envelope{Message: &message}
}

// FailWithDetails builds an error envelope with per-field details.
func FailWithDetails(message string, details []string) Envelope {
	return Envelope{Message: &message, Errors: details}
}
