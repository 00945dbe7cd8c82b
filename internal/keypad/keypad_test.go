package keypad

import (
	"errors"
	"strings"
	"testing"

	"github.com/msto63/mdwcalc/internal/calculator"
)

func TestLayout(t *testing.T) {
	if len(Layout) != 5 {
		t.Fatalf("Layout has %d rows, want 5", len(Layout))
	}
	seen := make(map[string]bool)
	for i, row := range Layout {
		if len(row) != 4 {
			t.Errorf("row %d has %d buttons, want 4", i, len(row))
		}
		for _, b := range row {
			if seen[b.Label] {
				t.Errorf("duplicate label %q", b.Label)
			}
			seen[b.Label] = true
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		label string
		want  calculator.Event
	}{
		{"7", calculator.Digit("7")},
		{".", calculator.Digit(".")},
		{"+", calculator.Op(calculator.OpAdd)},
		{"-", calculator.Op(calculator.OpSubtract)},
		{"*", calculator.Op(calculator.OpMultiply)},
		{"/", calculator.Op(calculator.OpDivide)},
		{"%", calculator.Op(calculator.OpPercent)},
		{"=", calculator.Equals()},
		{"C", calculator.Clear()},
		{"CE", calculator.Backspace()},
		{"+/-", calculator.Negate()},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := Lookup(tt.label)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.label)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}

	if _, ok := Lookup("enter"); ok {
		t.Error("Lookup(enter) found a button, key names are not labels")
	}
}

func TestFromKey(t *testing.T) {
	tests := []struct {
		key  string
		want calculator.Event
		ok   bool
	}{
		{"5", calculator.Digit("5"), true},
		{",", calculator.Digit("."), true},
		{"x", calculator.Op(calculator.OpMultiply), true},
		{"enter", calculator.Equals(), true},
		{"backspace", calculator.Backspace(), true},
		{"delete", calculator.Clear(), true},
		{"esc", calculator.Clear(), true},
		{"c", calculator.Clear(), true},
		{"n", calculator.Negate(), true},
		{"q", calculator.Event{}, false},
		{"ctrl+c", calculator.Event{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := FromKey(tt.key)
			if ok != tt.ok {
				t.Fatalf("FromKey(%q) ok = %v, want %v", tt.key, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("FromKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"7", "7"},
		{".", ". ,"},
		{"*", "* x"},
		{"=", "= enter"},
		{"C", "C c delete esc"},
		{"CE", "CE backspace"},
		{"+/-", "+/- _ n ±"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := strings.Join(Keys(tt.label), " ")
			if got != tt.want {
				t.Errorf("Keys(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}

	for key, label := range keyAliases {
		ev, ok := FromKey(key)
		want, _ := Lookup(label)
		if !ok || ev != want {
			t.Errorf("alias %q does not resolve to %q", key, label)
		}
	}
}

func TestLabelOf(t *testing.T) {
	for _, row := range Layout {
		for _, b := range row {
			label, ok := LabelOf(b.Event)
			if !ok || label != b.Label {
				t.Errorf("LabelOf(%v) = %q, %v, want %q", b.Event, label, ok, b.Label)
			}
		}
	}
	if _, ok := LabelOf(calculator.Digit("x")); ok {
		t.Error("LabelOf found a label for an invalid digit")
	}
}

func TestPress(t *testing.T) {
	tests := []struct {
		name    string
		labels  []string
		live    string
		history string
	}{
		{"chain", []string{"7", "+", "3", "*", "2", "="}, "20", ""},
		{"multi digit entry", []string{"12.5", "*", "2", "="}, "25", ""},
		{"pending chain", []string{"12", "+", "30", "-"}, "0", "12+30-"},
		{"key aliases", []string{"9", "x", "3", "enter"}, "27", ""},
		{"negate and backspace", []string{"123", "CE", "+/-"}, "-12", ""},
		{"whitespace trimmed", []string{" 4 ", " + ", "4", "="}, "8", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Press(calculator.New(), tt.labels...)
			if err != nil {
				t.Fatalf("Press() error = %v", err)
			}
			if d.Live != tt.live || d.History != tt.history {
				t.Errorf("Press() = %+v, want live %q history %q", d, tt.live, tt.history)
			}
		})
	}
}

func TestPress_UnknownButton(t *testing.T) {
	e := calculator.New()
	_, err := Press(e, "1", "+", "sqrt", "4")

	var unknown *UnknownButtonError
	if !errors.As(err, &unknown) {
		t.Fatalf("Press() error = %v, want UnknownButtonError", err)
	}
	if unknown.Label != "sqrt" {
		t.Errorf("Label = %q, want %q", unknown.Label, "sqrt")
	}
	if d := e.Display(); d.Live != "0" || d.History != "" {
		t.Errorf("engine changed despite error: %+v", d)
	}

	if _, err := Press(e, ""); err == nil {
		t.Error("Press(\"\") error = nil, want UnknownButtonError")
	}
}
