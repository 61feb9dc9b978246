// File: stringx.go
// Title: Core String Utility Functions
// Description: Implements the small set of string helpers shared across the
//              cliscript packages. Focuses on validation ergonomics for
//              blank/empty checks and safe defaulting.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial implementation

package stringx

import (
	"strings"
	"unicode"
)

// IsEmpty returns true if the string has length 0.
func IsEmpty(s string) bool {
	return len(s) == 0
}

// IsNotEmpty returns true if the string is not empty.
func IsNotEmpty(s string) bool {
	return len(s) > 0
}

// IsBlank returns true if the string is empty or contains only whitespace.
func IsBlank(s string) bool {
	if len(s) == 0 {
		return true
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsNotBlank returns true if the string contains non-whitespace characters.
func IsNotBlank(s string) bool {
	return !IsBlank(s)
}

// DefaultIfBlank returns def when s is blank, otherwise s.
func DefaultIfBlank(s, def string) string {
	if IsBlank(s) {
		return def
	}
	return s
}

// FirstNonBlank returns the first non-blank string from the candidates,
// or the empty string if all are blank.
func FirstNonBlank(candidates ...string) string {
	for _, c := range candidates {
		if IsNotBlank(c) {
			return c
		}
	}
	return ""
}

// EqualsIgnoreCase reports whether a and b are equal under Unicode case
// folding.
func EqualsIgnoreCase(a, b string) bool {
	return strings.EqualFold(a, b)
}
