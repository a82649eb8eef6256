package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInsufficientInventory is returned when a unit is used while its quantity is already 0
	ErrInsufficientInventory = errors.New("insufficient inventory")

	// ErrNotFound is returned when a referenced class, student or territory does not exist
	ErrNotFound = errors.New("not found")

	// ErrSubscriptionFailed is returned when subscription to the change feed fails
	ErrSubscriptionFailed = errors.New("subscription failed")
)

// Violation is a single rejected field
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned before any state mutation when input is rejected
type ValidationError struct {
	Violations []Violation
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Violations: []Violation{{Field: field, Message: message}}}
}

// Add appends a violation
func (e *ValidationError) Add(field, message string) {
	e.Violations = append(e.Violations, Violation{Field: field, Message: message})
}

// OrNil returns nil when no violation was recorded
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Violations) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// NotFoundError names the missing entity
type NotFoundError struct {
	Entity string
	ID     string
}

// NewNotFoundError creates a not found error for an entity kind and id
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// PersistenceError wraps a failure of the record store
type PersistenceError struct {
	Op  string
	Err error
}

// NewPersistenceError wraps a store error with the failed operation
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err refers to a missing entity
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsPersistence reports whether err is a store failure
func IsPersistence(err error) bool {
	var p *PersistenceError
	return errors.As(err, &p)
}
