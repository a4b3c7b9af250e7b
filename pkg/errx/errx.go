package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies an error independently of its code
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeInternal      Type = "INTERNAL"
	TypeExternal      Type = "EXTERNAL"
)

// HTTPStatus returns the default status for errors of this type
func (t Type) HTTPStatus() int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeBusiness:
		return http.StatusUnprocessableEntity
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Code is a registry-qualified error code, e.g. "JOB_NOT_FOUND"
type Code string

func (c Code) String() string { return string(c) }

// Error is the structured error carried across layers and rendered by the HTTP error handler
type Error struct {
	Code       Code           `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

// HTTPResponse is the JSON body written for an *Error
type HTTPResponse struct {
	Error   string         `json:"error"`
	Type    Type           `json:"type"`
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// WithDetail attaches a single key/value to the error
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges the given map into the error details
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// WithCause sets the underlying error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// ToHTTPResponse renders the error for API clients
func (e *Error) ToHTTPResponse() HTTPResponse {
	return HTTPResponse{
		Error:   http.StatusText(e.HTTPStatus),
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}
}

// New creates an unregistered error of the given type
func New(message string, t Type) *Error {
	return &Error{
		Code:       Code(t),
		Type:       t,
		Message:    message,
		HTTPStatus: t.HTTPStatus(),
	}
}

// Wrap annotates err with a message and type. Errors that are already
// *Error keep their code, type and status so domain errors such as
// NOT_FOUND are not masked by the caller's fallback type.
func Wrap(err error, message string, t Type) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return New(message, t).WithCause(err)
}

// Is reports whether err is, or wraps, an *Error with the given code
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsType reports whether err is, or wraps, an *Error of the given type
func IsType(err error, t Type) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}
