package newsletter

import (
	"net/mail"
	"strings"

	"github.com/petruschka/site-api/internal/types"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NormalizeSubscription trims the names and lower-cases the email.
func NormalizeSubscription(s types.NewsletterSubscription) types.NewsletterSubscription {
	s.FirstName = strings.TrimSpace(s.FirstName)
	s.LastName = strings.TrimSpace(s.LastName)
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	return s
}

// ValidateSubscription checks a normalized subscription.
func ValidateSubscription(s types.NewsletterSubscription) error {
	if s.FirstName == "" {
		return &ValidationError{Field: "firstName", Message: "firstName is required"}
	}
	if s.LastName == "" {
		return &ValidationError{Field: "lastName", Message: "lastName is required"}
	}
	if s.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if addr, err := mail.ParseAddress(s.Email); err != nil || addr.Address != s.Email {
		return &ValidationError{Field: "email", Message: "email is not a valid address"}
	}
	if !s.PrivacyConsent {
		return &ValidationError{Field: "privacyConsent", Message: "privacyConsent must be accepted"}
	}
	return nil
}
