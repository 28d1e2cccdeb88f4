package utils

import (
	"fmt"
	"regexp"
	"time"
)

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// ValidateParticipants validates an event's expected participant count
func ValidateParticipants(count int) error {
	if count <= 0 {
		return fmt.Errorf("participants must be positive: %d", count)
	}

	if count > 50000 {
		return fmt.Errorf("participants exceeds venue capacity limit: %d", count)
	}

	return nil
}

// ValidateEventDate validates an event date in YYYY-MM-DD form
func ValidateEventDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid event date, expected YYYY-MM-DD: %s", date)
	}
	return nil
}

// SanitizeString removes potentially harmful characters
func SanitizeString(s string) string {
	sanitized := regexp.MustCompile(`[\x00-\x1f\x7f]`).ReplaceAllString(s, "")
	return sanitized
}
