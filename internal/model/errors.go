package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for extraction.
var (
	// ErrAuthRequired matches a DeliveryError of kind KindAuthRequired.
	ErrAuthRequired = errors.New("authentication required")
	// ErrAPI matches a DeliveryError of kind KindAPIError.
	ErrAPI = errors.New("panopto api error")
	// ErrNoPlayableFormats is returned when a session has no extractable stream.
	ErrNoPlayableFormats = errors.New("session has no playable formats")
	// ErrUnsupportedURL is returned when a URL is neither a viewer nor a folder URL.
	ErrUnsupportedURL = errors.New("unsupported url")
	// ErrMissingDelivery is returned when a response has no error and no Delivery object.
	ErrMissingDelivery = errors.New("response has no Delivery object")
)

// ErrorKind classifies a server-reported failure.
type ErrorKind string

const (
	KindAuthRequired ErrorKind = "auth-required"
	KindAPIError     ErrorKind = "api-error"
)

// DeliveryError is a failure reported by Panopto inside a JSON response body.
type DeliveryError struct {
	Kind    ErrorKind
	Code    int
	Message string
}

func (e *DeliveryError) Error() string {
	if e.Kind == KindAuthRequired {
		return "login required to access this Panopto video"
	}
	return fmt.Sprintf("panopto returned error code %d: %s", e.Code, e.Message)
}

// Is lets errors.Is match the kind sentinels.
func (e *DeliveryError) Is(target error) bool {
	switch target {
	case ErrAuthRequired:
		return e.Kind == KindAuthRequired
	case ErrAPI:
		return e.Kind == KindAPIError
	}
	return false
}

// Expected reports whether the user can act on the error, as opposed to an
// unexpected server failure.
func (e *DeliveryError) Expected() bool {
	return e.Kind == KindAuthRequired
}
