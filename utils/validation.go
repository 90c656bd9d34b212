// utils/validation.go
package utils

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

// RespondWithError writes a JSON error body with the given status.
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Regular expression for international phone numbers
	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// ValidateWindow checks an "HH:MM" pair and returns both ends as minutes
// since midnight. The window must not be inverted or empty.
func ValidateWindow(start, end string) (int, int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, 0, err
	}
	if s >= e {
		return 0, 0, ErrInvertedWindow
	}
	return s, e, nil
}
