package domain

import (
	"github.com/dlclark/regexp2"
)

// The password rule needs look-aheads, which the standard regexp package
// does not support.
var (
	emailPattern    = regexp2.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`, regexp2.ECMAScript)
	passwordPattern = regexp2.MustCompile(`^(?=.*[A-Za-z])(?=.*\d)(?=.*[@$!%*#?&])[A-Za-z\d@$!%*#?&]{8,}$`, regexp2.ECMAScript)
)

// Credentials is what the login form submits. Nothing is checked against an
// account; only the shape of the values is validated.
type Credentials struct {
	Email    string
	Password string
}

// Validate checks both fields and reports every failure in one
// *CredentialsError.
func (c Credentials) Validate() error {
	fields := make(map[string]error, 2)
	if !matches(emailPattern, c.Email) {
		fields[FieldEmail] = ErrInvalidEmail
	}
	if !matches(passwordPattern, c.Password) {
		fields[FieldPassword] = ErrInvalidPassword
	}
	if len(fields) > 0 {
		return &CredentialsError{Fields: fields}
	}
	return nil
}

func matches(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}
