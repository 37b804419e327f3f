package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateRUT validates a Chilean tax identifier against its check
// digit. The input is expected in normalized form: no dots, upper case,
// with or without the dash before the verifier.
func ValidateRUT(rut string) error {
	rut = strings.ReplaceAll(rut, "-", "")
	if len(rut) < 2 {
		return fmt.Errorf("RUT too short: %s", rut)
	}

	body := rut[:len(rut)-1]
	dv := rut[len(rut)-1:]

	if _, err := strconv.ParseInt(body, 10, 64); err != nil {
		return fmt.Errorf("invalid RUT body: %s", rut)
	}

	if checkDigit(body) != dv {
		return fmt.Errorf("RUT check digit mismatch: %s", rut)
	}
	return nil
}

// checkDigit computes the modulo-11 verifier of a RUT body.
func checkDigit(body string) string {
	sum := 0
	factor := 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * factor
		factor++
		if factor > 7 {
			factor = 2
		}
	}

	switch rest := 11 - sum%11; rest {
	case 11:
		return "0"
	case 10:
		return "K"
	default:
		return strconv.Itoa(rest)
	}
}
