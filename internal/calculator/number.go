// ============================================================================
// mDW Rechner - Taschenrechner
// ============================================================================
//
// Package:     calculator
// Description: Text form of numbers shown on the live line
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package calculator

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Exponent notation kicks in outside [expLow, expHigh).
const (
	expLow  = 1e-6
	expHigh = 1e21
)

// FormatNumber renders f as the shortest decimal literal that parses back to
// f. Non-finite values render as "NaN", "Infinity" and "-Infinity"; negative
// zero renders as "0". Very large and very small magnitudes use exponent
// form such as "1e+21" or "1.5e-7".
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= expHigh || abs < expLow {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		// strconv pads the exponent to two digits
		digits := strings.TrimLeft(exp[1:], "0")
		return mant + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseNumber reads the longest numeric prefix of s. Text without one
// yields NaN. Out-of-range literals yield the corresponding infinity.
func ParseNumber(s string) float64 {
	for i := len(s); i > 0; i-- {
		if f, ok := parsePrefix(s[:i]); ok {
			return f
		}
	}
	return math.NaN()
}

func parsePrefix(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return f, true
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		return f, true
	}
	return 0, false
}

// isNumeric reports whether s as a whole is a numeric literal.
func isNumeric(s string) bool {
	_, ok := parsePrefix(s)
	return ok
}
