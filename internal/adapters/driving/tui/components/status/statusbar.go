// Package status renders the bottom line of the voice console: the
// outcome of the last command on the left, key hints on the right.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

// State selects the left text and the hint set.
type State string

const (
	StateReady   State = "ready"
	StateWorking State = "working"
	StateError   State = "error"
	StateHistory State = "history"
	StateCart    State = "cart"
)

// Bar is the console status line. It also tallies the adds and deletes
// applied during the session.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	status  domain.CommandStatus
	added   int
	removed int
	width   int
}

// NewBar creates a status bar. Nil arguments use the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, state: StateReady, width: 80}
}

func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the owning view drives the bar through its setters.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

func (s *Bar) View() string {
	left, right := s.left(), s.hints()
	gap := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) left() string {
	switch s.state {
	case StateWorking:
		return s.styles.Muted.Render("Working...")
	case StateError:
		if s.message == "" {
			return s.styles.Error.Render("Error")
		}
		return s.styles.Error.Render("Error: " + s.message)
	}

	switch {
	case s.status != "":
		return s.styles.ForStatus(s.status).Render(styles.StatusMark(s.status) + " " + s.message)
	case s.message != "":
		return s.styles.Normal.Render(s.message)
	case s.added+s.removed > 0:
		return s.styles.Normal.Render(fmt.Sprintf("%d added, %d removed", s.added, s.removed))
	default:
		return s.styles.Muted.Render("Ready")
	}
}

func (s *Bar) hints() string {
	var bindings []key.Binding
	switch s.state {
	case StateHistory:
		bindings = s.keymap.HistoryHelp()
	case StateCart:
		bindings = s.keymap.CartHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}

	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = b.Help().Key + ": " + b.Help().Desc
	}
	return s.styles.Muted.Render(strings.Join(parts, " | "))
}

// SetReport shows the outcome of a handled command and counts it.
// A nil report clears the outcome.
func (s *Bar) SetReport(r *domain.CommandReport) {
	s.state = StateReady
	if r == nil {
		s.status, s.message = "", ""
		return
	}
	s.status, s.message = r.Status, r.Message
	switch r.Status {
	case domain.StatusAdded:
		s.added++
	case domain.StatusDeleted:
		s.removed++
	}
}

// SetState changes the state without touching the message.
func (s *Bar) SetState(state State) {
	s.state = state
}

func (s *Bar) State() State {
	return s.state
}

// SetMessage shows plain text and forgets the last report status.
func (s *Bar) SetMessage(message string) {
	s.message = message
	s.status = ""
}

func (s *Bar) Message() string {
	return s.message
}

// Tally returns how many adds and deletes succeeded this session.
func (s *Bar) Tally() (added, removed int) {
	return s.added, s.removed
}

func (s *Bar) SetWidth(width int) {
	s.width = width
}

func (s *Bar) Width() int {
	return s.width
}

// Clear resets state and message. The session tally is kept.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.status = ""
}
