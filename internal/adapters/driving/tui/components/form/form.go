// Package form provides a multi-field entry form for the TUI.
package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/friesencafe/statusportal/internal/adapters/driving/tui/styles"
)

// Field describes one input of the form.
type Field struct {
	Label       string
	Placeholder string
	Value       string
	Required    bool
}

// Form is a vertical list of labelled text inputs with one focused input.
type Form struct {
	title  string
	fields []Field
	inputs []textinput.Model
	focus  int
	styles *styles.Styles
	width  int
}

// New creates a form with the first field focused.
func New(s *styles.Styles, title string, fields []Field) *Form {
	if s == nil {
		s = styles.DefaultStyles()
	}

	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 512
		ti.Width = 50
		ti.SetValue(f.Value)
		inputs[i] = ti
	}

	fm := &Form{
		title:  title,
		fields: fields,
		inputs: inputs,
		styles: s,
		width:  60,
	}
	fm.setFocus(0)
	return fm
}

// Init starts the cursor blink.
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update moves focus on tab, shift+tab, up and down and forwards all other
// keys to the focused input.
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if len(f.inputs) == 0 {
		return f, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			f.setFocus((f.focus + 1) % len(f.inputs))
			return f, nil
		case "shift+tab", "up":
			f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// View renders the form.
func (f *Form) View() string {
	lines := make([]string, 0, len(f.inputs)*2+2)
	lines = append(lines, f.styles.Subtitle.Render(f.title), "")

	for i, field := range f.fields {
		label := field.Label
		if field.Required {
			label += " *"
		}
		style := f.styles.Muted
		if i == f.focus {
			style = f.styles.Normal
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			style.Width(18).Render(label),
			f.styles.InputField.Render(f.inputs[i].View()),
		))
	}

	return strings.Join(lines, "\n")
}

// Values returns the trimmed value of every field in order.
func (f *Form) Values() []string {
	out := make([]string, len(f.inputs))
	for i := range f.inputs {
		out[i] = strings.TrimSpace(f.inputs[i].Value())
	}
	return out
}

// Missing returns the label of the first empty required field, or "".
func (f *Form) Missing() string {
	values := f.Values()
	for i, field := range f.fields {
		if field.Required && values[i] == "" {
			return field.Label
		}
	}
	return ""
}

// SetValue sets the value of field i.
func (f *Form) SetValue(i int, value string) {
	if i >= 0 && i < len(f.inputs) {
		f.inputs[i].SetValue(value)
	}
}

// Focused returns the index of the focused field.
func (f *Form) Focused() int {
	return f.focus
}

// Title returns the form title.
func (f *Form) Title() string {
	return f.title
}

// SetWidth sets the width of the inputs.
func (f *Form) SetWidth(width int) {
	f.width = width
	inputWidth := width - 26
	if inputWidth < 20 {
		inputWidth = 20
	}
	for i := range f.inputs {
		f.inputs[i].Width = inputWidth
	}
}

// Width returns the current width.
func (f *Form) Width() int {
	return f.width
}

func (f *Form) setFocus(i int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}
