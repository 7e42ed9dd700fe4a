// Package apierror defines the domain error type carried from stores and
// controllers to the HTTP error handler. Every domain failure is an Error
// with an HTTP status code and a client-facing message; anything else is
// rendered as a generic 500.
package apierror

import (
	"errors"
	"net/http"
)

type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with an arbitrary status code.
func New(statusCode int, message string) *Error {
	return &Error{StatusCode: statusCode, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// As unwraps err into an *Error if it is one.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
