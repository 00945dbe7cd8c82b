// ============================================================================
// mDW Rechner - Taschenrechner
// ============================================================================
//
// Package:     keypad
// Description: Button layout and glyph-to-event translation
// Created:     2026-10-18
// License:     MIT
// ============================================================================

// Package keypad translates what a user sees or types into calculator
// events. Button labels and key names never reach the engine.
package keypad

import (
	"fmt"
	"sort"
	"strings"

	"github.com/msto63/mdwcalc/internal/calculator"
)

// Button is one key of the on-screen keypad.
type Button struct {
	Label string
	Event calculator.Event
}

// Layout is the keypad grid, row by row.
var Layout = [][]Button{
	{
		{"C", calculator.Clear()},
		{"+/-", calculator.Negate()},
		{"%", calculator.Op(calculator.OpPercent)},
		{"/", calculator.Op(calculator.OpDivide)},
	},
	{
		{"7", calculator.Digit("7")},
		{"8", calculator.Digit("8")},
		{"9", calculator.Digit("9")},
		{"*", calculator.Op(calculator.OpMultiply)},
	},
	{
		{"4", calculator.Digit("4")},
		{"5", calculator.Digit("5")},
		{"6", calculator.Digit("6")},
		{"-", calculator.Op(calculator.OpSubtract)},
	},
	{
		{"1", calculator.Digit("1")},
		{"2", calculator.Digit("2")},
		{"3", calculator.Digit("3")},
		{"+", calculator.Op(calculator.OpAdd)},
	},
	{
		{".", calculator.Digit(".")},
		{"0", calculator.Digit("0")},
		{"CE", calculator.Backspace()},
		{"=", calculator.Equals()},
	},
}

var byLabel = func() map[string]calculator.Event {
	m := make(map[string]calculator.Event)
	for _, row := range Layout {
		for _, b := range row {
			m[b.Label] = b.Event
		}
	}
	return m
}()

// keyAliases maps terminal key names onto button labels.
var keyAliases = map[string]string{
	",":         ".",
	"x":         "*",
	"enter":     "=",
	"backspace": "CE",
	"delete":    "C",
	"esc":       "C",
	"c":         "C",
	"n":         "+/-",
	"_":         "+/-",
	"±":         "+/-",
}

// UnknownButtonError reports a label that is not on the keypad.
type UnknownButtonError struct {
	Label string
}

func (e *UnknownButtonError) Error() string {
	return fmt.Sprintf("unknown button %q", e.Label)
}

// Lookup returns the event behind a button label.
func Lookup(label string) (calculator.Event, bool) {
	ev, ok := byLabel[label]
	return ev, ok
}

// FromKey returns the event for a terminal key name such as "7", "enter"
// or "backspace".
func FromKey(key string) (calculator.Event, bool) {
	if ev, ok := byLabel[key]; ok {
		return ev, true
	}
	if label, ok := keyAliases[key]; ok {
		return Lookup(label)
	}
	return calculator.Event{}, false
}

// Keys returns label followed by its terminal key aliases, sorted.
func Keys(label string) []string {
	var aliases []string
	for key, target := range keyAliases {
		if target == label {
			aliases = append(aliases, key)
		}
	}
	sort.Strings(aliases)
	return append([]string{label}, aliases...)
}

// LabelOf returns the button label that produces ev.
func LabelOf(ev calculator.Event) (string, bool) {
	for _, row := range Layout {
		for _, b := range row {
			if b.Event == ev {
				return b.Label, true
			}
		}
	}
	return "", false
}

// Events expands labels into events. Multi-digit labels such as "12.5" are
// split into single presses.
func Events(labels ...string) ([]calculator.Event, error) {
	var events []calculator.Event
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if ev, ok := FromKey(label); ok {
			events = append(events, ev)
			continue
		}
		if !isNumberEntry(label) {
			return nil, &UnknownButtonError{Label: label}
		}
		for _, r := range label {
			events = append(events, calculator.Digit(string(r)))
		}
	}
	return events, nil
}

// Press feeds labels into e and returns the display after the last one.
// Nothing is pressed when any label is unknown.
func Press(e *calculator.Engine, labels ...string) (calculator.Display, error) {
	events, err := Events(labels...)
	if err != nil {
		return e.Display(), err
	}
	d := e.Display()
	for _, ev := range events {
		d = e.Apply(ev)
	}
	return d, nil
}

func isNumberEntry(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '.' && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
