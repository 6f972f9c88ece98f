package models

import "fmt"

// Error kinds of the domain. Handlers map these to HTTP statuses;
// everything else is treated as an internal error.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindNotFound      ErrorKind = "not_found"
	KindAuthorization ErrorKind = "authorization"
	KindConflict      ErrorKind = "conflict"
	KindDependency    ErrorKind = "dependency"
)

// DomainError carries the error kind alongside a caller-facing message.
// Validation and authorization errors are never retried; dependency
// errors are retryable.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Err     error // wrapped cause, may be nil
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

// Is makes errors.Is match on kind, so sentinel-style comparisons work
// against any instance of the same kind.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NewValidationError(msg string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: msg}
}

func NewNotFoundError(msg string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: msg}
}

func NewAuthorizationError(msg string) *DomainError {
	return &DomainError{Kind: KindAuthorization, Message: msg}
}

func NewConflictError(msg string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: msg}
}

func NewDependencyError(msg string, err error) *DomainError {
	return &DomainError{Kind: KindDependency, Message: msg, Err: err}
}

// Kind sentinels for errors.Is checks.
var (
	ErrValidation    = &DomainError{Kind: KindValidation}
	ErrNotFound      = &DomainError{Kind: KindNotFound}
	ErrAuthorization = &DomainError{Kind: KindAuthorization}
	ErrConflict      = &DomainError{Kind: KindConflict}
	ErrDependency    = &DomainError{Kind: KindDependency}
)
