// ============================================================================
// mDW Rechner - Taschenrechner
// ============================================================================
//
// Package:     calculator
// Description: Input and evaluation state machine of the calculator
// Created:     2026-10-18
// License:     MIT
// ============================================================================

// Package calculator implements the state machine behind a four-function
// calculator with immediate evaluation.
//
// Every binary operator is resolved against the running accumulator as soon
// as the next operator or "=" arrives; there is no expression tree and no
// precedence. The engine has no I/O. Collaborators feed it events and read
// back a Display holding the live value and the history trail.
//
// An Engine is not safe for concurrent use. Each collaborator owns its own.
//
//	e := calculator.New()
//	e.EnterDigitOrPoint("7")
//	e.ChooseOperator(calculator.OpAdd)
//	e.EnterDigitOrPoint("3")
//	d := e.Equals() // d.Live == "10", d.History == ""
package calculator
