// Package apperror defines the failure kinds surfaced by the image pipeline.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	// KindValidation is client fixable: bad image, bad category, missing ids.
	KindValidation Kind = iota + 1
	// KindProcessing is a codec failure or an empty responsive batch.
	KindProcessing
	// KindStorage is an object store upload, visibility or delete failure.
	KindStorage
	// KindConfiguration means a caller wired the pipeline incorrectly.
	KindConfiguration
	// KindForbidden is an ownership check failure.
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindProcessing:
		return "processing"
	case KindStorage:
		return "storage"
	case KindConfiguration:
		return "configuration"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the kind to the status class the HTTP layer answers with.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Public reports whether Message may be shown to the client verbatim.
func (e *Error) Public() bool {
	return e.Kind == KindValidation || e.Kind == KindForbidden
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Processing(msg string, err error) *Error {
	return &Error{Kind: KindProcessing, Message: msg, Err: err}
}

func Storage(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Message: msg, Err: err}
}

func Configuration(msg string) *Error {
	return &Error{Kind: KindConfiguration, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// KindOf returns the kind of the first *Error in err's chain, or zero.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return 0
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
