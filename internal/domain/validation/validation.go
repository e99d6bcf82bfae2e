// Package validation holds the pure field predicates applied at signup.
// None of them touch storage; each answers a single yes/no question about a
// string.
package validation

import (
	"regexp"
	"strings"
)

var (
	// A letter, one space, then a letter: somewhere in the name there are two
	// alphabetic tokens. Anything around them is allowed.
	namePattern = regexp.MustCompile(`[a-zA-Z] [a-zA-Z]+`)

	// local@domain, with both parts non-empty.
	emailPattern = regexp.MustCompile(`^(.+)@(.+)$`)

	// Three uppercase letters followed by four digits, e.g. AAA9999.
	licensePlatePattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)
)

// ValidName reports whether name contains at least two space-separated
// alphabetic tokens. Punctuation, digits and extra words elsewhere in the name
// do not matter.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// ValidEmail reports whether email has the local@domain shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidLicensePlate reports whether plate has the AAA0000 shape.
func ValidLicensePlate(plate string) bool {
	return licensePlatePattern.MatchString(plate)
}

const nationalIDLength = 11

// ValidNationalID checks an 11-digit national id (Brazilian CPF layout): nine
// base digits followed by two mod-11 check digits. Punctuation such as
// "974.563.215-58" is ignored. Ids made of one repeated digit pass the checksum
// arithmetically but are never issued, so they are rejected.
func ValidNationalID(id string) bool {
	digits := onlyDigits(id)
	if len(digits) != nationalIDLength {
		return false
	}
	if allSame(digits) {
		return false
	}
	first := checkDigit(digits[:9])
	second := checkDigit(digits[:10])
	return digits[9] == first && digits[10] == second
}

// checkDigit computes the next check digit for the given prefix. Weights run
// from len(prefix)+1 down to 2.
func checkDigit(prefix []int) int {
	sum := 0
	weight := len(prefix) + 1
	for _, d := range prefix {
		sum += d * weight
		weight--
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

func onlyDigits(s string) []int {
	digits := make([]int, 0, len(s))
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case r == '.' || r == '-' || r == ' ':
		default:
			// Any other character makes the id malformed.
			return nil
		}
	}
	return digits
}

func allSame(digits []int) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}
