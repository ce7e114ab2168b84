package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrNotFound               = errors.New("not found")
	ErrDataStoreUnavailable   = errors.New("data store unavailable")
	ErrExternalServiceFailure = errors.New("external billing service failure")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUnauthorized           = errors.New("unauthorized")

	ErrPaymentLogNotFound   = fmt.Errorf("payment log %w", ErrNotFound)
	ErrSubscriptionNotFound = fmt.Errorf("subscription %w", ErrNotFound)
)

// FieldError is a validation failure on a single request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return ErrInvalidInput }

func NewFieldError(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// StoreError marks err as a data store failure while keeping the driver
// error in the chain for logging.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrDataStoreUnavailable, err)
}
