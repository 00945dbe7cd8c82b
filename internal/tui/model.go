// ============================================================================
// mDW Rechner - Taschenrechner
// ============================================================================
//
// Package:     tui
// Description: Bubbletea view driving the calculator engine
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package tui

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/mdwcalc/internal/calculator"
	"github.com/msto63/mdwcalc/internal/keypad"
	"github.com/msto63/mdwcalc/internal/preferences"
	"github.com/msto63/mdwcalc/pkg/core/logging"
)

const storeTimeout = 2 * time.Second

// Config configures the calculator view
type Config struct {
	// Store persists the theme; nil keeps it in memory only
	Store preferences.Store

	// Logger receives one debug record per applied event
	Logger *logging.Logger

	// Inline renders without the alternate screen
	Inline bool

	// ShowHelp starts with the full help expanded
	ShowHelp bool
}

// Message types
type themeLoadedMsg struct {
	theme preferences.Theme
	err   error
}

type themeSavedMsg struct {
	theme preferences.Theme
	err   error
}

// themeSaver writes themes in toggle order. Save commands run on their own
// goroutines; a save older than the last written one is dropped.
type themeSaver struct {
	store preferences.Store

	mu      sync.Mutex
	written int
}

func (s *themeSaver) save(seq int, theme preferences.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.written {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := preferences.SetTheme(ctx, s.store, theme); err != nil {
		return err
	}
	s.written = seq
	return nil
}

// Model is the calculator view. It owns its engine exclusively.
type Model struct {
	engine  *calculator.Engine
	display calculator.Display

	store  preferences.Store
	saver  *themeSaver
	theme  preferences.Theme
	styles Styles

	// Number of theme toggles; orders saves and outdates the initial load
	themeSeq int

	keys keyMap
	help help.Model

	// Selected keypad cell
	row, col int

	width  int
	height int

	status    string
	statusErr bool

	logger *logging.Logger
}

// NewModel creates the view in the light theme; the stored theme is
// applied once Init has loaded it.
func NewModel(cfg Config) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	var saver *themeSaver
	if cfg.Store != nil {
		saver = &themeSaver{store: cfg.Store}
	}

	engine := calculator.New()
	return Model{
		engine:  engine,
		display: engine.Display(),
		store:   cfg.Store,
		saver:   saver,
		theme:   preferences.ThemeLight,
		styles:  NewStyles(preferences.ThemeLight),
		keys:    defaultKeyMap(),
		help:    h,
		row:     1,
		col:     0,
		logger:  logger,
	}
}

// Init loads the stored theme
func (m Model) Init() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		p, err := store.Load(ctx)
		return themeLoadedMsg{theme: p.Theme(), err: err}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case themeLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("Failed to load preferences", "error", msg.err)
			m.setStatus("Einstellungen nicht lesbar: "+msg.err.Error(), true)
			return m, nil
		}
		if m.themeSeq > 0 {
			// toggled before the stored theme arrived
			return m, nil
		}
		m.setTheme(msg.theme)

	case themeSavedMsg:
		if msg.err != nil {
			m.logger.Warn("Failed to save preferences", "error", msg.err)
			m.setStatus("Theme nicht gespeichert: "+msg.err.Error(), true)
			return m, nil
		}
		m.setStatus("Theme: "+string(m.theme), false)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Theme):
		theme := m.theme.Toggle()
		m.setTheme(theme)
		m.themeSeq++
		return m, m.saveTheme(m.themeSeq, theme)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveSelection(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveSelection(0, 1)

	case key.Matches(msg, m.keys.Press):
		m.apply(keypad.Layout[m.row][m.col].Event)

	case key.Matches(msg, m.keys.calculatorKeys()...):
		if ev, ok := keypad.FromKey(msg.String()); ok {
			m.apply(ev)
		}
	}
	return m, nil
}

// apply forwards ev to the engine and keeps the selection on the button
// that produces it.
func (m *Model) apply(ev calculator.Event) {
	m.display = m.engine.Apply(ev)
	m.status = ""

	if label, ok := keypad.LabelOf(ev); ok {
		m.selectLabel(label)
	}

	m.logger.Debug("Event applied",
		"event", ev.String(),
		"live", m.display.Live,
		"history", m.display.History,
	)
}

func (m *Model) moveSelection(dRow, dCol int) {
	rows := len(keypad.Layout)
	m.row = (m.row + dRow + rows) % rows
	cols := len(keypad.Layout[m.row])
	m.col = (m.col + dCol + cols) % cols
}

func (m *Model) selectLabel(label string) {
	for r, row := range keypad.Layout {
		for c, b := range row {
			if b.Label == label {
				m.row, m.col = r, c
				return
			}
		}
	}
}

func (m *Model) setTheme(theme preferences.Theme) {
	m.theme = theme
	m.styles = NewStyles(theme)
}

func (m *Model) setStatus(status string, isErr bool) {
	m.status = status
	m.statusErr = isErr
}

func (m Model) saveTheme(seq int, theme preferences.Theme) tea.Cmd {
	if m.saver == nil {
		return nil
	}
	saver := m.saver
	return func() tea.Msg {
		err := saver.save(seq, theme)
		return themeSavedMsg{theme: theme, err: err}
	}
}

// Display returns what the view currently shows
func (m Model) Display() calculator.Display {
	return m.display
}

// Theme returns the active theme
func (m Model) Theme() preferences.Theme {
	return m.theme
}

// Selected returns the label of the highlighted button
func (m Model) Selected() string {
	return keypad.Layout[m.row][m.col].Label
}

// View renders the UI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(m.styles.Title.Render("mDW Rechner"))
	s.WriteString("\n")
	s.WriteString(m.renderScreen())
	s.WriteString("\n")
	s.WriteString(m.renderKeypad())
	s.WriteString("\n\n")

	if m.status != "" {
		if m.statusErr {
			s.WriteString(m.styles.Error.Render(m.status))
		} else {
			s.WriteString(m.styles.Status.Render(m.status))
		}
		s.WriteString("\n")
	}
	s.WriteString(m.help.View(m.keys))

	return m.styles.App.Render(s.String())
}

func (m Model) renderScreen() string {
	history := m.display.History
	if history == "" {
		// keep the screen height stable
		history = " "
	}
	screen := lipgloss.JoinVertical(lipgloss.Right,
		m.styles.History.Render(history),
		m.styles.Live.Render(m.display.Live),
	)
	return m.styles.Screen.Render(screen)
}

func (m Model) renderKeypad() string {
	rows := make([]string, 0, len(keypad.Layout))
	for r, row := range keypad.Layout {
		cells := make([]string, 0, len(row))
		for c, b := range row {
			cells = append(cells, m.buttonStyle(r, c, b).Render(b.Label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) buttonStyle(r, c int, b keypad.Button) lipgloss.Style {
	if r == m.row && c == m.col {
		return m.styles.Selected
	}
	switch b.Event.Kind {
	case calculator.EventOperator, calculator.EventEquals:
		return m.styles.Operator
	case calculator.EventDigit:
		return m.styles.Digit
	default:
		return m.styles.Action
	}
}

// Run starts the calculator view and blocks until it exits
func Run(cfg Config) error {
	var opts []tea.ProgramOption
	if !cfg.Inline {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(NewModel(cfg), opts...)
	_, err := p.Run()
	return err
}
