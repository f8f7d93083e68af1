package services

import (
	"errors"
	"fmt"

	"github.com/upb/notice-board/utils"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeNotFound           ErrorType = "not_found"
	ErrorTypeValidation         ErrorType = "validation"
	ErrorTypeUnauthorized       ErrorType = "unauthorized"
	ErrorTypeInvalidToken       ErrorType = "invalid_token"
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeForbidden          ErrorType = "forbidden"
	ErrorTypeConflict           ErrorType = "conflict"
	ErrorTypeInternal           ErrorType = "internal"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError of the same type
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Wrap returns a copy of e carrying cause. Sentinels are never mutated.
func (e *DomainError) Wrap(cause error) *DomainError {
	return NewDomainError(e.Type, e.Message, cause)
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// Domain error variables. Messages are returned to API clients verbatim.

var (
	// Authentication
	ErrMissingToken       = NewDomainError(ErrorTypeUnauthorized, "Access denied", nil)
	ErrInvalidToken       = NewDomainError(ErrorTypeInvalidToken, "Invalid token", nil)
	ErrUserNotFound       = NewDomainError(ErrorTypeInvalidCredentials, "User not found", nil)
	ErrInvalidCredentials = NewDomainError(ErrorTypeInvalidCredentials, "Invalid password", nil)

	// Authorization
	ErrForbidden             = NewDomainError(ErrorTypeForbidden, "Access forbidden", nil)
	ErrCreateUserForbidden   = NewDomainError(ErrorTypeForbidden, "Only admins can create users", nil)
	ErrCreateNoticeForbidden = NewDomainError(ErrorTypeForbidden, "Only teachers and admins can create notices", nil)
	ErrDeleteNoticeForbidden = NewDomainError(ErrorTypeForbidden, "Not authorized to delete this notice", nil)

	// Not found
	ErrNoticeNotFound = NewDomainError(ErrorTypeNotFound, "Notice not found", nil)

	// Validation
	ErrInvalidInput  = NewDomainError(ErrorTypeValidation, "Invalid input", nil)
	ErrInvalidAuthor = NewDomainError(ErrorTypeValidation, "Notice author does not exist", nil)

	// Conflict
	ErrDuplicateEmail = NewDomainError(ErrorTypeConflict, "Email already exists", nil)

	// Internal
	ErrInternal = NewDomainError(ErrorTypeInternal, "Server error", nil)
)

// Error type checking helper functions

func isType(err error, errType ErrorType) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == errType
	}
	return false
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsUnauthorizedError checks if an error is a missing-credentials error
func IsUnauthorizedError(err error) bool {
	return isType(err, ErrorTypeUnauthorized)
}

// IsInvalidTokenError checks if a presented token was rejected
func IsInvalidTokenError(err error) bool {
	return isType(err, ErrorTypeInvalidToken)
}

// IsInvalidCredentialsError checks if a login attempt failed
func IsInvalidCredentialsError(err error) bool {
	return isType(err, ErrorTypeInvalidCredentials)
}

// IsForbiddenError checks if an error is a forbidden error
func IsForbiddenError(err error) bool {
	return isType(err, ErrorTypeForbidden)
}

// IsConflictError checks if an error is a conflict error
func IsConflictError(err error) bool {
	return isType(err, ErrorTypeConflict)
}

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool {
	return isType(err, ErrorTypeInternal)
}

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorMessage returns the client-facing message of a domain error
func GetErrorMessage(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return ""
}

// GetErrorDetails returns the details map of a domain error, or nil if not a domain error
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

// WrapInternal wraps an error as an internal error. message goes to the
// log chain only; clients see ErrInternal's message.
func WrapInternal(message string, err error) error {
	return ErrInternal.Wrap(fmt.Errorf("%s: %w", message, err))
}

// invalidInput turns a struct validation failure into ErrInvalidInput with
// one detail per field. Anything else means the validator was misused.
func invalidInput(err error) error {
	if !utils.IsValidationError(err) {
		return WrapInternal("failed to validate input", err)
	}
	domainErr := ErrInvalidInput.Wrap(err)
	for field, msg := range utils.GetValidationFields(err) {
		domainErr.WithDetail(field, msg)
	}
	return domainErr
}
