// Package list provides list display components for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/friesencafe/statusportal/internal/adapters/driving/tui/styles"
)

// Row is one entry of a section: a headline, optional chips and detail lines.
type Row struct {
	Meta    string
	Title   string
	Labels  []string
	Details []string
}

// EntryList displays section rows in a navigable, scrolling list.
type EntryList struct {
	rows     []Row
	selected int
	empty    string
	styles   *styles.Styles
	width    int
	height   int
}

// NewEntryList creates a new entry list component.
func NewEntryList(s *styles.Styles) *EntryList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &EntryList{
		styles: s,
		empty:  "Noch keine Einträge.",
		width:  80,
		height: 10,
	}
}

// Init initialises the entry list.
func (l *EntryList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *EntryList) Update(msg tea.Msg) (*EntryList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the visible rows.
func (l *EntryList) View() string {
	if len(l.rows) == 0 {
		return l.styles.Muted.Render(l.empty)
	}

	// Rows take up to three lines plus a blank separator.
	visibleCount := l.height / 4
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.rows) {
		end = len(l.rows)
	}

	blocks := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		blocks = append(blocks, l.renderRow(i, l.rows[i]))
	}
	return strings.Join(blocks, "\n\n")
}

func (l *EntryList) renderRow(index int, row Row) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	title := truncate(row.Title, l.width-len(row.Meta)-8)
	var head string
	if index == l.selected {
		head = l.styles.Selected.Render(indicator + title)
	} else {
		head = l.styles.Normal.Render(indicator + title)
	}
	if row.Meta != "" {
		head += "  " + l.styles.Muted.Render(row.Meta)
	}
	for _, label := range row.Labels {
		head += " " + l.styles.Label.Render(label)
	}

	lines := []string{head}
	for _, d := range row.Details {
		if d == "" {
			continue
		}
		lines = append(lines, l.styles.Muted.Render("    "+truncate(d, l.width-6)))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, maxLen int) string {
	if maxLen < 10 {
		maxLen = 10
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// SetRows replaces the rows and keeps the selection in range.
func (l *EntryList) SetRows(rows []Row) {
	l.rows = rows
	if l.selected >= len(rows) {
		l.selected = len(rows) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Rows returns the current rows.
func (l *EntryList) Rows() []Row {
	return l.rows
}

// SetEmptyText sets the text shown for an empty list.
func (l *EntryList) SetEmptyText(text string) {
	l.empty = text
}

// Selected returns the index of the selected row.
func (l *EntryList) Selected() int {
	return l.selected
}

// ResetSelection selects the first row.
func (l *EntryList) ResetSelection() {
	l.selected = 0
}

// MoveUp moves selection up.
func (l *EntryList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *EntryList) MoveDown() {
	if l.selected < len(l.rows)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *EntryList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of rows.
func (l *EntryList) Count() int {
	return len(l.rows)
}
