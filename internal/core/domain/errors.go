package domain

import (
	"errors"
	"net/http"
)

type ErrorKind string

const (
	ErrorKindHTTP       ErrorKind = "http"
	ErrorKindNonJSON    ErrorKind = "non_json"
	ErrorKindNetwork    ErrorKind = "network"
	ErrorKindValidation ErrorKind = "validation"
)

const NetworkErrorMessage = "Network error: Unable to connect to the server. Please check your connection."

// Error is the single error shape every failure is normalized into.
// Only the message reaches the user.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewHTTPError(status int, message string) *Error {
	return &Error{Kind: ErrorKindHTTP, Status: status, Message: message}
}

func NewNonJSONError(status int, message string) *Error {
	return &Error{Kind: ErrorKindNonJSON, Status: status, Message: message}
}

func NewNetworkError() *Error {
	return &Error{Kind: ErrorKindNetwork, Status: http.StatusServiceUnavailable, Message: NetworkErrorMessage}
}

func NewValidationError(message string) *Error {
	return &Error{Kind: ErrorKindValidation, Status: http.StatusBadRequest, Message: message}
}

var (
	ErrNotConfirmed = errors.New("action was not confirmed")
	ErrNotDeletable = errors.New("this record cannot be deleted")
	ErrNotFound     = errors.New("record not found")
)

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
