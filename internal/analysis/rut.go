package analysis

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateRUT checks the check digit of a Chilean taxpayer identifier.
// Separators ('.', '-') are stripped and the check character upper-cased
// before validation. Malformed input is invalid, never an error.
func ValidateRUT(rut string) bool {
	cleaned := strings.ToUpper(strings.NewReplacer(".", "", "-", "").Replace(rut))
	if len(cleaned) < 2 {
		return false
	}

	body := cleaned[:len(cleaned)-1]
	check := cleaned[len(cleaned)-1:]

	computed, err := CheckDigit(body)
	if err != nil {
		return false
	}

	return check == computed
}

// CheckDigit computes the modulo-11 check character for an all-digit RUT
// body: weighted sum right to left with multipliers cycling 2..7.
func CheckDigit(body string) (string, error) {
	if body == "" {
		return "", fmt.Errorf("empty rut body")
	}

	sum := 0
	multiplier := 2
	for i := len(body) - 1; i >= 0; i-- {
		digit, err := strconv.Atoi(string(body[i]))
		if err != nil {
			return "", fmt.Errorf("non-numeric rut body %q", body)
		}
		sum += digit * multiplier
		multiplier++
		if multiplier > 7 {
			multiplier = 2
		}
	}

	computed := 11 - sum%11
	switch computed {
	case 11:
		return "0", nil
	case 10:
		return "K", nil
	default:
		return strconv.Itoa(computed), nil
	}
}
