// Package history provides the command history list for the TUI.
package history

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

// maxEntries bounds the number of remembered commands.
const maxEntries = 100

// Entry is one handled command.
type Entry struct {
	Transcript string
	Report     *domain.CommandReport
}

// List displays handled commands, newest first.
type List struct {
	entries  []Entry
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewList creates an empty history list.
func NewList(s *styles.Styles) *List {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &List{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *List) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *List) Update(msg tea.Msg) (*List, tea.Cmd) {
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

// Add records a handled command at the top of the list.
func (l *List) Add(e Entry) {
	l.entries = append([]Entry{e}, l.entries...)
	if len(l.entries) > maxEntries {
		l.entries = l.entries[:maxEntries]
	}
	l.selected = 0
}

// View renders the list.
func (l *List) View() string {
	if len(l.entries) == 0 {
		return l.styles.Muted.Render("No commands yet")
	}

	lines := make([]string, 0, len(l.entries)*2+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("History (%d)", len(l.entries))), "")

	// Each entry takes two lines.
	visible := (l.height - 2) / 2
	if visible < 1 {
		visible = 1
	}

	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.entries) {
		end = len(l.entries)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderEntry(i, &l.entries[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *List) renderEntry(index int, e *Entry) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	transcript := truncate(e.Transcript, l.width-6)
	var head string
	if index == l.selected {
		head = l.styles.Selected.Render(indicator + transcript)
	} else {
		head = l.styles.Normal.Render(indicator + transcript)
	}

	if e.Report == nil {
		return head + "\n" + l.styles.Muted.Render("    (pending)")
	}

	mark := styles.StatusMark(e.Report.Status)
	body := l.styles.ForStatus(e.Report.Status).Render(
		fmt.Sprintf("    %s %s", mark, truncate(e.Report.Message, l.width-8)),
	)
	if o := e.Report.Outcome; o != nil && l.width >= 60 {
		body += l.styles.Muted.Render(fmt.Sprintf("  [%s]", o.Stage))
	}
	return head + "\n" + body
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

// Entries returns the recorded commands, newest first.
func (l *List) Entries() []Entry {
	return l.entries
}

// Selected returns the index of the selected entry.
func (l *List) Selected() int {
	return l.selected
}

// SelectedEntry returns the selected entry, or nil if the list is empty.
func (l *List) SelectedEntry() *Entry {
	if len(l.entries) == 0 || l.selected < 0 || l.selected >= len(l.entries) {
		return nil
	}
	return &l.entries[l.selected]
}

// MoveUp moves selection up.
func (l *List) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *List) MoveDown() {
	if l.selected < len(l.entries)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *List) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of entries.
func (l *List) Count() int {
	return len(l.entries)
}

// Clear removes all entries.
func (l *List) Clear() {
	l.entries = nil
	l.selected = 0
}
