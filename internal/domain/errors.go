package domain

import "errors"

// Sentinel errors shared across services and delivery.
var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrEventQueryFailed    = errors.New("event query failed")
	ErrInvalidCoordinate   = errors.New("invalid coordinate")
	ErrInvalidCategory     = errors.New("invalid category")
)

// Error kinds exposed to the presentation layer alongside the message.
const (
	ErrorKindPermissionDenied    = "permission_denied"
	ErrorKindLocationUnavailable = "location_unavailable"
	ErrorKindEventQueryFailed    = "event_query_failed"
)

// LocationError is returned by the location provider. Kind is one of
// ErrPermissionDenied or ErrLocationUnavailable; Err is the platform cause, if any.
type LocationError struct {
	Kind    error
	Message string
	Err     error
}

func (e *LocationError) Error() string {
	return e.Message
}

// Unwrap exposes both the kind and the underlying cause to errors.Is / errors.As.
func (e *LocationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// QueryError is returned by the event query pipeline. Message is user-facing.
type QueryError struct {
	Message string
	Err     error
}

func (e *QueryError) Error() string {
	return e.Message
}

func (e *QueryError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrEventQueryFailed}
	}
	return []error{ErrEventQueryFailed, e.Err}
}

// ErrorKind maps an error to the kind string shown to clients. Unknown errors map to "".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPermissionDenied):
		return ErrorKindPermissionDenied
	case errors.Is(err, ErrLocationUnavailable):
		return ErrorKindLocationUnavailable
	case errors.Is(err, ErrEventQueryFailed):
		return ErrorKindEventQueryFailed
	default:
		return ""
	}
}
