// Package domain holds the quote calendar's types, command grammar and
// errors. Domain errors describe business failures, not transport ones;
// the webhook turns them into chat replies and the read API into status codes.
package domain

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Typed errors below unwrap to one of them.
var (
	// ErrNotFound: no quote is stored for the date.
	ErrNotFound = errors.New("not found")

	// ErrValidation: a date key, month key, command segment or option
	// failed its grammar.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden: the caller is not allowed, e.g. a read API that
	// answers 401 or 403.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable: the quote store, the cache, Telegram or the read API
	// could not be reached or failed.
	ErrUnavailable = errors.New("unavailable")
)

// NotFoundError names the missing entity and its key.
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}

	return fmt.Sprintf("%s for %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError names the offending field. Value, when set, is the
// rejected input; it is kept out of the message because it may be long
// free text from a chat.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}

	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// UnavailableError names the dependency that failed. Its message is sent
// to the owner verbatim after "Error: ", so Reason must never carry
// credentials such as the bot token.
type UnavailableError struct {
	Service string
	Reason  string
}

func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return e.Service + " unavailable"
	}

	return fmt.Sprintf("%s unavailable: %s", e.Service, e.Reason)
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

func IsNotFound(err error) bool    { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool  { return errors.Is(err, ErrValidation) }
func IsForbidden(err error) bool   { return errors.Is(err, ErrForbidden) }
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }
