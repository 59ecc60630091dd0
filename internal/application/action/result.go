// Package action runs every organization-scoped operation through the same
// pipeline: authenticate, authorize, validate, execute, invalidate cache tags
// and report a tagged Result.
package action

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// Status tags the outcome of an action
type Status string

const (
	StatusSuccess         Status = "SUCCESS"
	StatusUnauthorized    Status = "UNAUTHORIZED"
	StatusForbidden       Status = "FORBIDDEN"
	StatusValidationError Status = "VALIDATION_ERROR"
	StatusNotFound        Status = "NOT_FOUND"
	StatusConflict        Status = "CONFLICT"
	StatusError           Status = "ERROR"
)

// FieldError is a validation message attached to one input field
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// Result is what every action returns
type Result[T any] struct {
	Status      Status       `json:"status"`
	Data        T            `json:"data,omitempty"`
	Code        string       `json:"code,omitempty"`
	Message     string       `json:"message,omitempty"`
	FieldErrors []FieldError `json:"field_errors,omitempty"`
}

// OK reports whether the action succeeded
func (r Result[T]) OK() bool {
	return r.Status == StatusSuccess
}

// Success wraps data in a SUCCESS result
func Success[T any](data T) Result[T] {
	return Result[T]{Status: StatusSuccess, Data: data}
}

// Fail builds a failed result of the given status
func Fail[T any](status Status, code, message string) Result[T] {
	return Result[T]{Status: status, Code: code, Message: message}
}

// Recast carries a failed result over to another data type
func Recast[T, U any](r Result[T]) Result[U] {
	return Result[U]{Status: r.Status, Code: r.Code, Message: r.Message, FieldErrors: r.FieldErrors}
}

const internalErrorMessage = "An unexpected error occurred"

// FromError classifies err into a failed result. The second return value is
// false for errors the caller should log, whose details stay hidden.
func FromError[T any](err error) (Result[T], bool) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return Result[T]{
			Status:      StatusValidationError,
			Code:        shared.ErrInvalidInput.Code,
			Message:     "Request validation failed",
			FieldErrors: fieldErrors(verrs),
		}, true
	}

	var de *shared.DomainError
	if !errors.As(err, &de) {
		return Fail[T](StatusError, "INTERNAL_ERROR", internalErrorMessage), false
	}

	switch {
	case de.Code == shared.ErrNotFound.Code:
		return Fail[T](StatusNotFound, de.Code, de.Message), true
	case de.Code == shared.ErrUnauthorized.Code:
		return Fail[T](StatusUnauthorized, de.Code, de.Message), true
	case de.Code == shared.ErrForbidden.Code:
		return Fail[T](StatusForbidden, de.Code, de.Message), true
	case shared.IsConflictCode(de.Code):
		r := Fail[T](StatusConflict, de.Code, de.Message)
		if de.Field != "" {
			r.FieldErrors = []FieldError{{Field: de.Field, Code: de.Code, Message: de.Message}}
		}
		return r, true
	case shared.IsValidationCode(de.Code):
		r := Fail[T](StatusValidationError, de.Code, de.Message)
		if de.Field != "" {
			r.FieldErrors = []FieldError{{Field: de.Field, Code: de.Code, Message: de.Message}}
		}
		return r, true
	}
	return Fail[T](StatusError, "INTERNAL_ERROR", internalErrorMessage), false
}
