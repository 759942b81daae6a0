package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,18}$`)
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateName checks if a display name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateContact checks if a contact handle is a phone number or an
// email address. Email contacts are eligible for credential delivery.
func ValidateContact(contact string) error {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return ValidationError{Field: "contact", Message: "contact is required"}
	}
	if !phoneRegex.MatchString(contact) && !emailRegex.MatchString(contact) {
		return ValidationError{Field: "contact", Message: "invalid contact number or email"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 4 {
		return ValidationError{Field: "password", Message: "password must be at least 4 characters"}
	}
	return nil
}

// ValidateQuestion checks if a question reference is present
func ValidateQuestion(question string) error {
	if strings.TrimSpace(question) == "" {
		return ValidationError{Field: "question", Message: "question is required"}
	}
	return nil
}
