// Package styles holds the colour palette and lipgloss styles of the
// voice console.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

// Theme is the console palette.
type Theme struct {
	Accent  lipgloss.Color // titles, selection background
	Basket  lipgloss.Color // section headers
	Text    lipgloss.Color
	Dim     lipgloss.Color
	Added   lipgloss.Color
	Caution lipgloss.Color // not understood, prices
	Failed  lipgloss.Color
	Frame   lipgloss.Color // input border
	Bar     lipgloss.Color // status bar background
}

// DefaultTheme returns the market palette: saffron on charcoal.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:  lipgloss.Color("#F97316"),
		Basket:  lipgloss.Color("#14B8A6"),
		Text:    lipgloss.Color("#CDD6F4"),
		Dim:     lipgloss.Color("#6C7086"),
		Added:   lipgloss.Color("#A6E3A1"),
		Caution: lipgloss.Color("#F9E2AF"),
		Failed:  lipgloss.Color("#F38BA8"),
		Frame:   lipgloss.Color("#45475A"),
		Bar:     lipgloss.Color("#181825"),
	}
}

// Styles are the rendered styles derived from a Theme.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Help     lipgloss.Style

	// InputField frames the transcript input.
	InputField lipgloss.Style

	// StatusBar is the bottom line of every view.
	StatusBar lipgloss.Style

	// Price renders rupee amounts.
	Price lipgloss.Style

	// Quantity renders the "2 ×" prefix of cart lines.
	Quantity lipgloss.Style
}

// NewStyles builds styles from theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		theme:    theme,
		Title:    fg(theme.Accent).Bold(true),
		Subtitle: fg(theme.Basket).Bold(true),
		Normal:   fg(theme.Text),
		Muted:    fg(theme.Dim),
		Selected: fg(theme.Text).Background(theme.Accent).Bold(true),
		Error:    fg(theme.Failed),
		Success:  fg(theme.Added),
		Warning:  fg(theme.Caution),
		Help:     fg(theme.Dim),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Frame).
			Padding(0, 1),
		StatusBar: fg(theme.Dim).Background(theme.Bar).Padding(0, 1),
		Price:     fg(theme.Caution).Bold(true),
		Quantity:  fg(theme.Basket),
	}
}

// DefaultStyles returns styles for DefaultTheme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// ForStatus returns the style a report with status is rendered in.
func (s *Styles) ForStatus(status domain.CommandStatus) lipgloss.Style {
	switch status {
	case domain.StatusAdded, domain.StatusDeleted:
		return s.Success
	case domain.StatusNotUnderstood, domain.StatusEmpty:
		return s.Warning
	case domain.StatusNotFound, domain.StatusFailed:
		return s.Error
	default:
		return s.Normal
	}
}

// StatusMark returns the one-character history marker for status.
func StatusMark(status domain.CommandStatus) string {
	switch status {
	case domain.StatusAdded:
		return "+"
	case domain.StatusDeleted:
		return "-"
	case domain.StatusNotUnderstood, domain.StatusEmpty:
		return "?"
	default:
		return "!"
	}
}
