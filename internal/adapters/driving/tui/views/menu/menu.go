// Package menu is the start screen of the voice console.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/styles"
)

// Item is one menu entry. Quit entries end the program instead of
// switching view.
type Item struct {
	Label string
	Hint  string
	View  messages.ViewType
	Quit  bool
}

// View lists the console's screens.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates the menu. A nil s uses the default styles.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		items: []Item{
			{Label: "Voice commands", Hint: "say or type what to add or remove", View: messages.ViewVoice},
			{Label: "Cart", Hint: "review lines and totals", View: messages.ViewCart},
			{Label: "Help", Hint: "keys and example phrases", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

func (v *View) Init() tea.Cmd {
	return nil
}

func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Up):
			v.selected = max(v.selected-1, 0)
		case keymap.Matches(k, v.keymap.Down):
			v.selected = min(v.selected+1, len(v.items)-1)
		case keymap.Matches(k, v.keymap.Send):
			return v, v.choose(v.selected)
		case keymap.Matches(k, v.keymap.Help):
			return v, v.choose(v.indexOf(messages.ViewHelp))
		case k == "q":
			return v, tea.Quit
		case len(k) == 1 && k[0] >= '1' && int(k[0]-'1') < len(v.items):
			v.selected = int(k[0] - '1')
			return v, v.choose(v.selected)
		}
	}
	return v, nil
}

func (v *View) choose(i int) tea.Cmd {
	if i < 0 {
		return nil
	}
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

func (v *View) indexOf(view messages.ViewType) int {
	for i, item := range v.items {
		if !item.Quit && item.View == view {
			return i
		}
	}
	return -1
}

func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("cartvoice"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Shopping by voice in English, Hindi or Hinglish"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		label := fmt.Sprintf("%d. %s", i+1, item.Label)
		if i == v.selected {
			b.WriteString("> " + v.styles.Subtitle.Render(label))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(label))
		}
		if item.Hint != "" && v.width >= 60 {
			b.WriteString("  " + v.styles.Muted.Render(item.Hint))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] move  [1-4/enter] open  [?] help  [q] quit"))
	return b.String()
}

// SetDimensions records the terminal size and marks the view ready.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the highlighted index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu entries.
func (v *View) Items() []Item {
	return v.items
}
