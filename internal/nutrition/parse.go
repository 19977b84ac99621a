package nutrition

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	leadingNumber  = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	leadingInteger = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseNumber reads the leading decimal number of a free-text field, so
// " 65.5 kg" yields 65.5. Blank or non-numeric text reports false.
func ParseNumber(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ParseInteger reads the leading integer of a free-text field, truncating
// any fraction: "1800.9" yields 1800.
func ParseInteger(s string) (int, bool) {
	m := leadingInteger.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return v, true
}

// positiveOverride returns the calorie override when it parses to an
// integer greater than zero.
func positiveOverride(s string) (int, bool) {
	v, ok := ParseInteger(s)
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}
