package auth

import (
	"fmt"
	"strings"
	"unicode"
)

const specialChars = "!@#$%^&*"

// ValidatePassword enforces the console's password acceptance policy:
// minimum length (12 by default), at least one uppercase letter, one
// lowercase letter, one digit, and one special character from a fixed set.
// This is a boundary contract; the store itself accepts any non-empty hash.
func ValidatePassword(password string, minLength int) error {
	if minLength == 0 {
		minLength = 12
	}

	if len(password) < minLength {
		return fmt.Errorf("password must be at least %d characters long", minLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain uppercase letters")
	}
	if !hasLower {
		return fmt.Errorf("password must contain lowercase letters")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain numbers")
	}
	if !hasSpecial {
		return fmt.Errorf("password must contain special characters (%s)", specialChars)
	}
	return nil
}

// ValidateUsername applies minimal username hygiene for account creation.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return fmt.Errorf("username may only contain letters, digits, '_', '-' and '.'")
		}
	}
	return nil
}
