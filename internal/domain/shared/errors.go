package shared

import "strings"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so sentinels work with errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewFieldError creates a domain error bound to an input field
func NewFieldError(code, field, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Field:   field,
	}
}

// IsValidationCode reports whether a code describes rejected input
func IsValidationCode(code string) bool {
	return code == ErrInvalidInput.Code ||
		code == ErrInvalidState.Code ||
		strings.HasPrefix(code, "INVALID_") ||
		strings.HasPrefix(code, "HAS_") ||
		code == "CIRCULAR_REFERENCE" ||
		code == "LAST_OWNER"
}

// IsConflictCode reports whether a code describes a uniqueness or concurrency clash
func IsConflictCode(code string) bool {
	return code == ErrAlreadyExists.Code ||
		code == ErrConcurrencyConflict.Code ||
		strings.HasPrefix(code, "DUPLICATE_")
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Authentication required")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this organization is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Uniqueness errors shared by organizations, partners and companies
var (
	ErrDuplicateReference = NewFieldError("DUPLICATE_REFERENCE", "reference", "This reference is already used")
	ErrDuplicateSIREN     = NewFieldError("DUPLICATE_SIREN", "siren", "This SIREN is already registered")
	ErrDuplicateSIRET     = NewFieldError("DUPLICATE_SIRET", "siret", "This SIRET is already registered")
)
