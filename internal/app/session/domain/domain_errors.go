package domain

import "errors"

// Domain errors as sentinel values
var (
	ErrInvalidEmail    = errors.New("please enter a valid email address")
	ErrInvalidPassword = errors.New("password must be at least 8 characters long and contain letters, numbers, and special characters")
)

// Field names used by CredentialsError.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// CredentialsError collects every failed login field so a form can show
// all messages at once.
type CredentialsError struct {
	Fields map[string]error
}

func (e *CredentialsError) Error() string {
	if err, ok := e.Fields[FieldEmail]; ok {
		if _, both := e.Fields[FieldPassword]; both {
			return "invalid email and password"
		}
		return err.Error()
	}
	if err, ok := e.Fields[FieldPassword]; ok {
		return err.Error()
	}
	return "invalid credentials"
}

// Unwrap exposes each field error to errors.Is.
func (e *CredentialsError) Unwrap() []error {
	errs := make([]error, 0, len(e.Fields))
	for _, field := range []string{FieldEmail, FieldPassword} {
		if err, ok := e.Fields[field]; ok {
			errs = append(errs, err)
		}
	}
	return errs
}

// FieldMessage returns the message for field, or "" when that field passed.
func FieldMessage(err error, field string) string {
	var ce *CredentialsError
	if errors.As(err, &ce) {
		if fe, ok := ce.Fields[field]; ok {
			return fe.Error()
		}
	}
	return ""
}
