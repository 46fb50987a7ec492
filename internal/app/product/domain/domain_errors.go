package domain

import (
	"errors"
	"fmt"
)

// Domain errors as sentinel values
var (
	// Product errors
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateName    = errors.New("product name must be unique")
	ErrEmptyField       = errors.New("product name and quantity cannot be empty")
	ErrInvalidQuantity  = errors.New("quantity must be a non-negative whole number")
	ErrInvalidProductID = errors.New("product id cannot be empty")
	ErrDuplicateID      = errors.New("product id already exists")

	// View errors
	ErrInvalidPageSize = errors.New("page size is not one of the allowed values")
)

// Field names used by FieldError.
const (
	FieldProductName = "productName"
	FieldQuantity    = "quantity"
	FieldProductID   = "productId"
)

// FieldError ties a validation failure to the input field that caused it,
// so forms can render the message next to that field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// fieldErr wraps err for field.
func fieldErr(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

// ErrorField returns the field an error refers to, or "" when it is not a FieldError.
func ErrorField(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}
