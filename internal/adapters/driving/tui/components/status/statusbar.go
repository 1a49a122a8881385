// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/friesencafe/statusportal/internal/adapters/driving/tui/keymap"
	"github.com/friesencafe/statusportal/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateEditing State = "editing"
	StateNotice  State = "notice"
	StateError   State = "error"
)

// Bar displays edit mode, the last message and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	editMode bool
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	mode := s.styles.Muted.Render("[nur lesen]")
	if s.editMode {
		mode = s.styles.Success.Render("[bearbeiten]")
	}

	switch s.state {
	case StateError:
		msg := "Error"
		if s.message != "" {
			msg = fmt.Sprintf("Error: %s", s.message)
		}
		return mode + " " + s.styles.Error.Render(msg)
	case StateNotice:
		return mode + " " + s.styles.Normal.Render(s.message)
	case StateEditing:
		return mode + " " + s.styles.Warning.Render("Neuer Eintrag")
	case StateReady:
	}
	return mode
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StateEditing {
		bindings = s.keymap.FormHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the message shown for notice and error states.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// Notice shows an informational message.
func (s *Bar) Notice(message string) {
	s.state = StateNotice
	s.message = message
}

// Fail shows an error message.
func (s *Bar) Fail(err error) {
	s.state = StateError
	s.message = err.Error()
}

// SetEditMode sets the edit mode indicator.
func (s *Bar) SetEditMode(enabled bool) {
	s.editMode = enabled
}

// EditMode returns the edit mode indicator.
func (s *Bar) EditMode() bool {
	return s.editMode
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to its ready state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
