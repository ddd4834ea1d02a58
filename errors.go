package permkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for PermKit operations.
var (
	// ErrInvalidPattern is returned when a permission pattern string is malformed.
	ErrInvalidPattern = errors.New("permkit: invalid permission pattern")

	// ErrInvalidPermission is returned when a permission identifier is malformed.
	ErrInvalidPermission = errors.New("permkit: invalid permission identifier")

	// ErrInvalidRole is returned when a role definition is malformed.
	ErrInvalidRole = errors.New("permkit: invalid role")

	// ErrDuplicateRole is returned when two roles in the same registry share a name.
	ErrDuplicateRole = errors.New("permkit: duplicate role name")

	// ErrPermissionDenied is returned when none of a subject's roles grant a permission.
	// This is an expected outcome of a check, not a fault.
	ErrPermissionDenied = errors.New("permkit: permission denied")

	// ErrNoSubject is returned when a subject is not found in context.
	ErrNoSubject = errors.New("permkit: no subject in context")
)

// Error wraps a sentinel error with additional context.
type Error struct {
	Err        error  // Underlying sentinel error
	Message    string // Additional context
	Pattern    string // Raw pattern string involved (if applicable)
	Role       string // Role involved (if applicable)
	Subject    string // Subject involved (if applicable)
	Permission string // Permission involved (if applicable)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a target error.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewError creates a new Error with context.
func NewError(err error, message string) *Error {
	return &Error{
		Err:     err,
		Message: message,
	}
}

// WithPattern adds the raw pattern string to the error.
func (e *Error) WithPattern(pattern string) *Error {
	e.Pattern = pattern
	return e
}

// WithRole adds role information to the error.
func (e *Error) WithRole(role string) *Error {
	e.Role = role
	return e
}

// WithSubject adds subject information to the error.
func (e *Error) WithSubject(subject string) *Error {
	e.Subject = subject
	return e
}

// WithPermission adds the permission identifier to the error.
func (e *Error) WithPermission(permission string) *Error {
	e.Permission = permission
	return e
}

// IsInvalidPattern checks if an error is due to a malformed pattern.
func IsInvalidPattern(err error) bool {
	return errors.Is(err, ErrInvalidPattern)
}

// IsDuplicateRole checks if an error is due to a duplicated role name.
func IsDuplicateRole(err error) bool {
	return errors.Is(err, ErrDuplicateRole)
}

// IsPermissionDenied checks if an error is a permission denial.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}
