// ============================================================================
// mDW Rechner - Taschenrechner
// ============================================================================
//
// Package:     calculator
// Description: Calculator engine state and transitions
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package calculator

import "strings"

// Display width limits for the live value. The extra slot makes room for
// the decimal point itself.
const (
	MaxDigits        = 8
	MaxDigitsWithDot = 9
	initialLiveValue = "0"
	decimalPoint     = "."
)

// State is the full engine aggregate.
type State struct {
	Live        string
	Accumulator float64
	Pending     Operator
	History     string
}

// Display is what a view renders after every event.
type Display struct {
	Live    string `json:"live"`
	History string `json:"history"`
}

// Engine is the calculator state machine.
type Engine struct {
	state State
}

// New returns an engine in its reset state.
func New() *Engine {
	e := &Engine{}
	e.ClearAll()
	return e
}

// State returns a copy of the current aggregate.
func (e *Engine) State() State {
	return e.state
}

// Display returns the live value and history trail.
func (e *Engine) Display() Display {
	return Display{Live: e.state.Live, History: e.state.History}
}

// Chaining reports whether an operator is waiting for its operand.
func (e *Engine) Chaining() bool {
	return e.state.Pending != OpNone
}

// Apply dispatches ev to the matching transition.
func (e *Engine) Apply(ev Event) Display {
	switch ev.Kind {
	case EventDigit:
		return e.EnterDigitOrPoint(ev.Token)
	case EventOperator:
		return e.ChooseOperator(ev.Operator)
	case EventEquals:
		return e.Equals()
	case EventClear:
		return e.ClearAll()
	case EventBackspace:
		return e.Backspace()
	case EventNegate:
		return e.Negate()
	default:
		return e.Display()
	}
}

// EnterDigitOrPoint appends a digit or the decimal point to the live value.
// Tokens other than "0"-"9" and ".", a second point, and entries beyond the
// display width are ignored. A lone "0" is replaced by the next digit.
func (e *Engine) EnterDigitOrPoint(token string) Display {
	if !isDigitOrPoint(token) {
		return e.Display()
	}

	live := e.state.Live
	hasPoint := strings.Contains(live, decimalPoint)
	if token == decimalPoint && hasPoint {
		return e.Display()
	}

	limit := MaxDigits
	if hasPoint {
		limit = MaxDigitsWithDot
	}
	if len(live) >= limit {
		return e.Display()
	}

	if live == initialLiveValue && token != decimalPoint {
		e.state.Live = token
	} else {
		e.state.Live = live + token
	}
	return e.Display()
}

// ChooseOperator records the live value and op in the history trail and
// resolves the pending operation, carrying op forward.
func (e *Engine) ChooseOperator(op Operator) Display {
	if op == OpNone || op.Symbol() == "" {
		return e.Display()
	}
	e.state.History += e.state.Live + op.Symbol()
	e.resolve(op, false)
	return e.Display()
}

// Equals resolves the pending operation and publishes the result on the live
// line. With no pending operator the live value is echoed.
func (e *Engine) Equals() Display {
	e.resolve(OpNone, true)
	return e.Display()
}

// ClearAll resets the engine.
func (e *Engine) ClearAll() Display {
	e.state = State{Live: initialLiveValue, Pending: OpNone}
	return e.Display()
}

// Backspace drops the last character of the live value. The live value
// falls back to "0" when nothing numeric would remain.
func (e *Engine) Backspace() Display {
	live := e.state.Live
	if len(live) <= 1 {
		e.state.Live = initialLiveValue
		return e.Display()
	}

	live = live[:len(live)-1]
	if !isNumeric(live) {
		live = initialLiveValue
	}
	e.state.Live = live
	return e.Display()
}

// Negate flips the sign of the live value. The chain is untouched.
func (e *Engine) Negate() Display {
	e.state.Live = FormatNumber(ParseNumber(e.state.Live) * -1)
	return e.Display()
}

// resolve applies the pending operator to the accumulator and the live
// value. An intermediate resolution clears the live line for the next
// operand; a final one publishes the result and ends the chain.
func (e *Engine) resolve(next Operator, final bool) {
	result := e.state.Pending.apply(e.state.Accumulator, ParseNumber(e.state.Live))

	if !final {
		e.state.Pending = next
		e.state.Live = initialLiveValue
		e.state.Accumulator = result
		return
	}

	e.state.Live = FormatNumber(result)
	e.state.Pending = OpNone
	e.state.History = ""
	e.state.Accumulator = 0
}

func isDigitOrPoint(token string) bool {
	if len(token) != 1 {
		return false
	}
	c := token[0]
	return c == '.' || (c >= '0' && c <= '9')
}
