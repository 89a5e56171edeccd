package model

// Enveloped is implemented by every raw response type through its embedded
// ErrorFields.
type Enveloped interface {
	Envelope() ErrorFields
}

// Envelope returns the error fields themselves.
func (e ErrorFields) Envelope() ErrorFields { return e }

// HasErrorCode reports whether the response carries a non-zero error code.
func (e ErrorFields) HasErrorCode() bool {
	return e.ErrorCode != nil && *e.ErrorCode != 0
}
