// Package fips normalizes county identifiers and carries the New York City
// borough table the case source collapses into a single row.
package fips

import (
	"fmt"
	"strings"
)

// NormalizeState normalizes a state FIPS code to 2 digits with zero-padding.
func NormalizeState(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if len(code) == 1 {
		return "0" + code
	}
	return code
}

// NormalizeCounty normalizes a county FIPS code to 3 digits with zero-padding.
func NormalizeCounty(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	for len(code) < 3 {
		code = "0" + code
	}
	return code
}

// Combine combines state and county FIPS codes into a 5-digit GEOID.
func Combine(state, county string) string {
	s := NormalizeState(state)
	c := NormalizeCounty(county)
	if s == "" || c == "" {
		return ""
	}
	return s + c
}

// Format formats a numeric FIPS code with proper zero-padding.
func Format(code int, digits int) string {
	return fmt.Sprintf("%0*d", digits, code)
}

// Normalize trims a full county code and restores the leading zero that
// spreadsheets and numeric JSON encoders strip from 4-digit codes.
func Normalize(code string) string {
	code = strings.TrimSpace(code)
	if len(code) == 4 && isDigits(code) {
		return "0" + code
	}
	return code
}

// Valid reports whether code is a 5-digit county GEOID.
func Valid(code string) bool {
	return len(code) == 5 && isDigits(code)
}

// ValidState reports whether code is a 2-digit state code.
func ValidState(code string) bool {
	return len(code) == 2 && isDigits(code)
}

// StateOf returns the 2-digit state prefix of a county GEOID, or "" if the
// code is too short.
func StateOf(code string) string {
	if len(code) < 2 {
		return ""
	}
	return code[:2]
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
