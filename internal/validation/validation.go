// Package validation provides input validation for auth requests.
package validation

import (
	"fmt"
	"regexp"
	"unicode"
)

var emailRegex = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// ValidateFullname checks the minimum length rule for full names.
func ValidateFullname(fullname string) error {
	if len(fullname) < 3 {
		return fmt.Errorf("fullname must be at least 3 letters long")
	}
	return nil
}

// ValidateEmail checks that the email is present and well formed.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("email is invalid")
	}
	return nil
}

// ValidatePassword enforces the password policy: 6 to 20 characters with at
// least one digit, one lowercase and one uppercase letter.
func ValidatePassword(password string) error {
	if len(password) < 6 || len(password) > 20 {
		return fmt.Errorf("password should be 6 to 20 characters long")
	}

	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}

	if !hasDigit || !hasLower || !hasUpper {
		return fmt.Errorf("password must contain a digit, a lowercase and an uppercase letter")
	}
	return nil
}
