package tui

import (
	"errors"

	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
	sessiondomain "github.com/light-bringer/procat-inventory/internal/app/session/domain"
)

// errorMessage converts an error returned by a use case into the text shown
// next to the offending field.
func errorMessage(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, domain.ErrDuplicateName):
		return "Product name must be unique"

	case errors.Is(err, domain.ErrEmptyField):
		return "Product name and quantity cannot be empty"

	case errors.Is(err, domain.ErrInvalidQuantity):
		return "Quantity must be a non-negative whole number"

	case errors.Is(err, domain.ErrProductNotFound):
		return "This product no longer exists"

	case errors.Is(err, domain.ErrInvalidPageSize):
		return "Unsupported page size"

	case errors.Is(err, sessiondomain.ErrInvalidEmail):
		return "Please enter a valid email address"

	case errors.Is(err, sessiondomain.ErrInvalidPassword):
		return "Password must be at least 8 characters long and contain letters, numbers, and special characters"

	default:
		return "Something went wrong: " + err.Error()
	}
}

// productFieldErrors splits err into the messages shown under the name and
// quantity inputs. Errors not tied to a field come back as general.
func productFieldErrors(err error) (name, quantity, general string) {
	msg := errorMessage(err)
	switch domain.ErrorField(err) {
	case domain.FieldProductName:
		return msg, "", ""
	case domain.FieldQuantity:
		return "", msg, ""
	}
	return "", "", msg
}

// credentialFieldErrors splits a login failure into the messages shown under
// the email and password inputs.
func credentialFieldErrors(err error) (email, password, general string) {
	var ce *sessiondomain.CredentialsError
	if !errors.As(err, &ce) {
		return "", "", errorMessage(err)
	}
	return errorMessage(ce.Fields[sessiondomain.FieldEmail]),
		errorMessage(ce.Fields[sessiondomain.FieldPassword]), ""
}
