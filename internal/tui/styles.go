// ============================================================================
// mDW Rechner - Taschenrechner
// ============================================================================
//
// Package:     tui
// Description: Light and dark lipgloss themes
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/mdwcalc/internal/preferences"
)

const buttonWidth = 7

// Palette holds the colors of one theme
type Palette struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Operator   lipgloss.Color
	Action     lipgloss.Color
	Key        lipgloss.Color
	Error      lipgloss.Color
}

// Colors
var (
	lightPalette = Palette{
		Background: lipgloss.Color("#F9FAFB"),
		Foreground: lipgloss.Color("#111827"),
		Muted:      lipgloss.Color("#6B7280"),
		Accent:     lipgloss.Color("#7C3AED"),
		Operator:   lipgloss.Color("#10B981"),
		Action:     lipgloss.Color("#F59E0B"),
		Key:        lipgloss.Color("#E5E7EB"),
		Error:      lipgloss.Color("#EF4444"),
	}

	darkPalette = Palette{
		Background: lipgloss.Color("#1F2937"),
		Foreground: lipgloss.Color("#F9FAFB"),
		Muted:      lipgloss.Color("#9CA3AF"),
		Accent:     lipgloss.Color("#8B5CF6"),
		Operator:   lipgloss.Color("#34D399"),
		Action:     lipgloss.Color("#FBBF24"),
		Key:        lipgloss.Color("#374151"),
		Error:      lipgloss.Color("#F87171"),
	}
)

// PaletteFor returns the palette of theme
func PaletteFor(theme preferences.Theme) Palette {
	if theme.Dark() {
		return darkPalette
	}
	return lightPalette
}

// Styles are the rendered styles of one theme
type Styles struct {
	App      lipgloss.Style
	Screen   lipgloss.Style
	History  lipgloss.Style
	Live     lipgloss.Style
	Digit    lipgloss.Style
	Operator lipgloss.Style
	Action   lipgloss.Style
	Selected lipgloss.Style
	Title    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
}

// NewStyles builds the styles for theme
func NewStyles(theme preferences.Theme) Styles {
	p := PaletteFor(theme)
	screenWidth := buttonWidth * 4

	button := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Background(p.Key).
		Foreground(p.Foreground)

	return Styles{
		App: lipgloss.NewStyle().
			Background(p.Background).
			Foreground(p.Foreground).
			Padding(1, 2),

		Screen: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Width(screenWidth - 2),

		History: lipgloss.NewStyle().
			Foreground(p.Muted).
			Width(screenWidth - 2).
			Align(lipgloss.Right),

		Live: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Foreground).
			Width(screenWidth - 2).
			Align(lipgloss.Right),

		Digit:    button,
		Operator: button.Foreground(p.Operator).Bold(true),
		Action:   button.Foreground(p.Action),

		Selected: button.
			Background(p.Accent).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			MarginBottom(1),

		Status: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		Error: lipgloss.NewStyle().
			Foreground(p.Error),
	}
}
