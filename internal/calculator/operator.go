// ============================================================================
// mDW Rechner - Taschenrechner
// ============================================================================
//
// Package:     calculator
// Description: Closed operator enumeration
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package calculator

// Operator is the binary operator waiting for its right-hand operand.
type Operator int

const (
	// OpNone means no operator has been chosen in the current chain.
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	// OpDivide is IEEE-754 division; a zero divisor yields Inf or NaN.
	OpDivide
	// OpPercent is wired like the other operators but has no evaluation
	// rule: resolving it yields 0.
	OpPercent
)

// Symbol returns the glyph written into the history trail.
func (o Operator) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpPercent:
		return "%"
	default:
		return ""
	}
}

// String returns a readable operator name.
func (o Operator) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	case OpPercent:
		return "percent"
	default:
		return "unknown"
	}
}

// apply resolves o against the accumulator and the entered operand.
func (o Operator) apply(acc, operand float64) float64 {
	switch o {
	case OpNone:
		return operand
	case OpAdd:
		return acc + operand
	case OpSubtract:
		return acc - operand
	case OpMultiply:
		return acc * operand
	case OpDivide:
		return acc / operand
	default:
		return 0
	}
}
