package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfirmed is returned when the confirmation collaborator declines a delete
	ErrNotConfirmed = errors.New("delete was not confirmed")
	// ErrUnauthenticated is returned when a mutation requires an actor and none is present
	ErrUnauthenticated = errors.New("an authenticated actor is required")
)

// ValidationError reports a missing or invalid field. The mutation that produced it
// has not been applied.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NotFoundError reports an update or delete of an unknown id
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// DiscountRejectedError reports a discount code that exists but cannot be redeemed
type DiscountRejectedError struct {
	Code   string
	Reason string
}

func (e *DiscountRejectedError) Error() string {
	return fmt.Sprintf("discount %s cannot be redeemed: %s", e.Code, e.Reason)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func notFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err is or wraps a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is or wraps a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
