package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")

	ErrProductNotFound = errors.New("product not found")
	ErrProductRejected = errors.New("the product is not valid")
	ErrProductConflict = errors.New("product was modified by another request")
	ErrForbidden       = errors.New("access forbidden")

	ErrInternal = errors.New("internal error")
)

// ValidationError carries client-fixable input problems keyed by field name.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends msg to the messages reported for field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Empty reports whether no field errors were collected.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, strings.Join(e.Fields[name], ", "))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// InternalError wraps an unexpected failure at a service boundary. Callers
// see only ErrInternal; Err is kept for server-side logs.
type InternalError struct {
	Op  string
	Err error
}

// Internal wraps err as an InternalError for operation op.
func Internal(op string, err error) error {
	return &InternalError{Op: op, Err: err}
}

func (e *InternalError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}
