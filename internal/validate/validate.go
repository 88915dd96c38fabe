// Package validate holds the format checks behind the checkout form. They
// are registered as custom rules on the validator instance the assembler
// uses and can be called directly.
package validate

import (
	"regexp"
	"strings"
)

var (
	// Brazilian CEP: 8 digits, optional dash
	reCEP = regexp.MustCompile(`^[0-9]{5}-?[0-9]{3}$`)
	// phone: optional +, digits with common separators; 8-15 digits total
	rePhoneChars = regexp.MustCompile(`^\+?[0-9 ()\-.]+$`)
	reDigits     = regexp.MustCompile(`[0-9]`)
	// state: two-letter UF code
	reUF = regexp.MustCompile(`^[A-Za-z]{2}$`)
)

func PostalCode(s string) bool {
	return reCEP.MatchString(strings.TrimSpace(s))
}

func Phone(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || !rePhoneChars.MatchString(s) {
		return false
	}
	n := len(reDigits.FindAllString(s, -1))
	return n >= 8 && n <= 15
}

func State(s string) bool {
	return reUF.MatchString(strings.TrimSpace(s))
}
