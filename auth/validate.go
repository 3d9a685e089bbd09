// ABOUTME: Login form validation and the authenticators behind the login screen
// ABOUTME: Email pattern and password length checks produce per-field messages
package auth

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// MinPasswordLength is the shortest password the form accepts.
const MinPasswordLength = 6

// Credentials are the values typed into the login form.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FieldErrors holds one message per invalid field.
type FieldErrors struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// Empty reports whether every field passed.
func (e FieldErrors) Empty() bool {
	return e.Email == "" && e.Password == ""
}

// Validate checks the credentials the way the form does before submitting.
func Validate(c Credentials) FieldErrors {
	var errs FieldErrors
	switch email := strings.TrimSpace(c.Email); {
	case email == "":
		errs.Email = "Email is required"
	case !emailPattern.MatchString(email):
		errs.Email = "Invalid email format"
	}
	switch {
	case c.Password == "":
		errs.Password = "Password is required"
	case len(c.Password) < MinPasswordLength:
		errs.Password = "Password must be at least 6 characters"
	}
	return errs
}
