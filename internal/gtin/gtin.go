// Package gtin validates Global Trade Item Numbers (GTIN-8, UPC-12,
// EAN-13, GTIN-14) using the standard modulo-10 weighted checksum.
package gtin

import "strings"

// validLengths covers the GTIN family: GTIN-8, UPC-12, EAN-13, GTIN-14.
var validLengths = map[int]bool{8: true, 12: true, 13: true, 14: true}

// Normalize strips every non-digit character from a raw code.
func Normalize(code string) string {
	var b strings.Builder
	for _, r := range code {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// Valid reports whether code is a well-formed GTIN with a correct check
// digit. Non-digit characters are stripped before validation; any length
// other than 8, 12, 13, or 14 digits is rejected.
func Valid(code string) bool {
	digits := Normalize(code)
	if !validLengths[len(digits)] {
		return false
	}
	return CheckDigit(digits[:len(digits)-1]) == int(digits[len(digits)-1]-'0')
}

// CheckDigit computes the check digit for the given digit string (the code
// without its trailing check digit). Digits are weighted alternately 3 and 1
// starting from the ones position.
func CheckDigit(digits string) int {
	sum := 0
	weight := 3
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		if weight == 3 {
			weight = 1
		} else {
			weight = 3
		}
	}
	return (10 - sum%10) % 10
}

// Equal reports whether two raw codes refer to the same number after
// normalization. It does not imply either code is valid.
func Equal(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	return na != "" && na == nb
}
