// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/styles"
)

// Placeholder is shown while the input is empty.
const Placeholder = "Add 2 bananas · दूध जोड़ो · delete milk"

// CommandInput wraps a bubbles textinput for typed voice transcripts.
type CommandInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewCommandInput creates a new command input component.
func NewCommandInput(s *styles.Styles) *CommandInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &CommandInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the command input.
func (c *CommandInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (c *CommandInput) Update(msg tea.Msg) (*CommandInput, tea.Cmd) {
	var cmd tea.Cmd
	c.textinput, cmd = c.textinput.Update(msg)
	return c, cmd
}

// View renders the command input.
func (c *CommandInput) View() string {
	label := c.styles.Title.Render("Say: ")
	field := c.styles.InputField.Render(c.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (c *CommandInput) Value() string {
	return c.textinput.Value()
}

// SetValue sets the input value.
func (c *CommandInput) SetValue(value string) {
	c.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (c *CommandInput) Focus() tea.Cmd {
	return c.textinput.Focus()
}

// Blur removes focus from the input.
func (c *CommandInput) Blur() {
	c.textinput.Blur()
}

// Focused returns whether the input is focused.
func (c *CommandInput) Focused() bool {
	return c.textinput.Focused()
}

// SetWidth sets the width of the input, leaving room for the label.
func (c *CommandInput) SetWidth(width int) {
	c.width = width
	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	c.textinput.Width = inputWidth
}

// Width returns the current width.
func (c *CommandInput) Width() int {
	return c.width
}

// Reset clears the input.
func (c *CommandInput) Reset() {
	c.textinput.Reset()
}
