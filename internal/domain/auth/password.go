package auth

import (
	"errors"
	"strings"
)

const passwordSymbols = "!@#$%^&*"

var ErrWeakPassword = errors.New("password must be at least 8 characters long and include at least one number and one special character")

// ValidatePassword is the single source of truth for password strength:
// at least 8 characters drawn from letters, digits and the fixed symbol
// set, with at least one digit and one symbol.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}

	hasDigit := false
	hasSymbol := false
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		default:
			return ErrWeakPassword
		}
	}

	if !hasDigit || !hasSymbol {
		return ErrWeakPassword
	}
	return nil
}
