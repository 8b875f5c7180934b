package auth

import (
	"fmt"
	"strings"
	"unicode"
)

// Symbols accepted by the password policy.
const passwordSymbols = "@$!%*?&"

// ValidatePassword enforces the signup password policy: at least 8
// characters, with at least one lowercase letter, one uppercase letter,
// one digit, and one symbol from the allowed set.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool

	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSymbol {
		return fmt.Errorf("password must contain at least one uppercase letter, one lowercase letter, one number, and one special character (%s)", passwordSymbols)
	}

	return nil
}
