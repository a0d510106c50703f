// Package validation contains input validation rules for user-supplied data.
package validation

import (
	"errors"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateName checks that a display name is present.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	return nil
}

// ValidateEmail checks that the email looks like an address.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return errors.New("please include a valid email")
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("please enter a password with 6 or more characters")
	}
	return nil
}

// ParseSkills splits a comma-separated skills string into trimmed tokens.
// Empty tokens (including those produced by a trailing comma) are dropped.
func ParseSkills(skills string) []string {
	parsed := []string{}
	for _, tok := range strings.Split(skills, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		parsed = append(parsed, tok)
	}
	return parsed
}
