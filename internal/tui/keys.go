// ============================================================================
// mDW Rechner - Taschenrechner
// ============================================================================
//
// Package:     tui
// Description: Key bindings of the calculator view
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/msto63/mdwcalc/internal/keypad"
)

// keyMap lists the bindings of the view. Calculator bindings take their
// keys from the keypad, so every key that reaches the engine is listed in
// the help.
type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Press key.Binding

	Digits    key.Binding
	Point     key.Binding
	Operators key.Binding
	Equals    key.Binding
	Clear     key.Binding
	Back      key.Binding
	Negate    key.Binding

	Theme key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func keysOf(labels ...string) []string {
	var keys []string
	for _, label := range labels {
		keys = append(keys, keypad.Keys(label)...)
	}
	return keys
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "hoch")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "runter")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "links")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "rechts")),
		Press: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "Taste drücken")),

		Digits: key.NewBinding(
			key.WithKeys(keysOf("0", "1", "2", "3", "4", "5", "6", "7", "8", "9")...),
			key.WithHelp("0-9", "Ziffern"),
		),
		Point:     key.NewBinding(key.WithKeys(keysOf(".")...), key.WithHelp(". ,", "Dezimalpunkt")),
		Operators: key.NewBinding(key.WithKeys(keysOf("+", "-", "*", "/", "%")...), key.WithHelp("+ - * x / %", "Operator")),
		Equals:    key.NewBinding(key.WithKeys(keysOf("=")...), key.WithHelp("enter/=", "Ergebnis")),
		Clear:     key.NewBinding(key.WithKeys(keysOf("C")...), key.WithHelp("c/esc/del", "löschen (C)")),
		Back:      key.NewBinding(key.WithKeys(keysOf("CE")...), key.WithHelp("⌫", "CE")),
		Negate:    key.NewBinding(key.WithKeys(keysOf("+/-")...), key.WithHelp("n/_/±", "+/-")),

		Theme: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "Theme")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Hilfe")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "beenden")),
	}
}

// calculatorKeys are the bindings forwarded to the engine
func (k keyMap) calculatorKeys() []key.Binding {
	return []key.Binding{k.Digits, k.Point, k.Operators, k.Equals, k.Clear, k.Back, k.Negate}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Equals, k.Clear, k.Theme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Press},
		{k.Digits, k.Point, k.Operators, k.Equals},
		{k.Clear, k.Back, k.Negate},
		{k.Theme, k.Help, k.Quit},
	}
}
