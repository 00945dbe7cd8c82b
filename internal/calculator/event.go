// ============================================================================
// mDW Rechner - Taschenrechner
// ============================================================================
//
// Package:     calculator
// Description: Event enumeration dispatched by collaborators
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package calculator

import "fmt"

// EventKind identifies what a button press means to the engine.
type EventKind int

const (
	EventDigit EventKind = iota
	EventOperator
	EventEquals
	EventClear
	EventBackspace
	EventNegate
)

// String returns the event kind name used in logs and on the wire.
func (k EventKind) String() string {
	switch k {
	case EventDigit:
		return "digit"
	case EventOperator:
		return "operator"
	case EventEquals:
		return "equals"
	case EventClear:
		return "clear"
	case EventBackspace:
		return "backspace"
	case EventNegate:
		return "negate"
	default:
		return "unknown"
	}
}

// Event is a single input to the engine. Token is only used by EventDigit,
// Operator only by EventOperator.
type Event struct {
	Kind     EventKind
	Token    string
	Operator Operator
}

// Digit returns the event for a digit or decimal point token.
func Digit(token string) Event {
	return Event{Kind: EventDigit, Token: token}
}

// Op returns the event for choosing a binary operator.
func Op(op Operator) Event {
	return Event{Kind: EventOperator, Operator: op}
}

// Equals returns the event that completes the current chain.
func Equals() Event { return Event{Kind: EventEquals} }

// Clear returns the event that resets the engine.
func Clear() Event { return Event{Kind: EventClear} }

// Backspace returns the event that drops the last entered character.
func Backspace() Event { return Event{Kind: EventBackspace} }

// Negate returns the event that flips the sign of the live value.
func Negate() Event { return Event{Kind: EventNegate} }

func (ev Event) String() string {
	switch ev.Kind {
	case EventDigit:
		return fmt.Sprintf("digit(%s)", ev.Token)
	case EventOperator:
		return fmt.Sprintf("operator(%s)", ev.Operator)
	default:
		return ev.Kind.String()
	}
}
