package services

import (
	"fmt"
	"regexp"
	"strings"
)

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)

// MaskCardNumber keeps only the last four digits of a card number.
func MaskCardNumber(number string) (string, error) {
	digits := strings.NewReplacer(" ", "", "-", "").Replace(number)
	if len(digits) < 12 || len(digits) > 19 || !isDigits(digits) {
		return "", fmt.Errorf("%w: card number must be 12 to 19 digits", ErrInvalidInput)
	}
	return "**** **** **** " + digits[len(digits)-4:], nil
}

func ValidateExpiry(expiry string) error {
	if !expiryPattern.MatchString(expiry) {
		return fmt.Errorf("%w: expiry date must look like MM/YY", ErrInvalidInput)
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
