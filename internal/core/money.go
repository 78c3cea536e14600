package core

import (
	"strconv"
	"strings"
)

// ParseAmount converts free-text user input into a non-negative amount.
// Both comma and dot decimal separators are accepted. Input that does not
// parse, and any negative or non-finite value, coerces to 0 instead of
// erroring; amount fields have no failure state of their own.
//
// Examples:
//
//	"12.50" -> 12.5
//	"12,50" -> 12.5
//	"-3"    -> 0
//	"abc"   -> 0
//	""      -> 0
func ParseAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return ClampAmount(v)
}

// ParseCount converts free-text user input into a count of at least 1.
// Counts (travellers, nights) have no meaningful zero, so unparsable or
// too-small input coerces to 1.
//
// Examples:
//
//	"4"  -> 4
//	"0"  -> 1
//	"-2" -> 1
//	"x"  -> 1
//	""   -> 1
func ParseCount(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return ClampCount(n)
}
