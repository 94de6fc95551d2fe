package validation

import (
	"fmt"
	"net/mail"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidUUID  = fmt.Errorf("invalid UUID format")
	ErrInvalidEmail = fmt.Errorf("invalid email format")
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateEmail checks if a string is a plausible email address
func ValidateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidEmail, email)
	}
	return nil
}
