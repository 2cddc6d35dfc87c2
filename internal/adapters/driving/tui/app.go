package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/views/cart"
	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/views/voice"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView  *menu.View
	voiceView *voice.View
	cartView  *cart.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		menuView:    menu.NewView(s),
		voiceView:   voice.NewView(s, km, ports.Voice),
		cartView:    cart.NewView(s, km, ports.Cart),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.voiceView.WithContext(ctx)
	a.cartView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("cartvoice"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
		return a.updateActive(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewVoice:
			a.voiceView.Reset()
			return a, a.voiceView.Init()
		case messages.ViewCart:
			return a, a.cartView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.CommandHandled:
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.voiceView, cmd = a.voiceView.Update(msg)
		return a, cmd

	case messages.CartLoaded, messages.CartLineDeleted:
		a.cartView, cmd = a.cartView.Update(msg)
		a.err = a.cartView.Err()
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewVoice {
			a.voiceView, cmd = a.voiceView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a.updateActive(msg)
}

// updateActive forwards msg to the active view.
func (a *App) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewVoice:
		a.voiceView, cmd = a.voiceView.Update(msg)
	case messages.ViewCart:
		a.cartView, cmd = a.cartView.Update(msg)
	case messages.ViewHelp:
		if k, ok := msg.(tea.KeyMsg); ok && keymap.Matches(k.String(), a.keymap.Back) {
			a.currentView = messages.ViewMenu
		}
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewVoice:
		return a.voiceView.View()
	case messages.ViewCart:
		return a.cartView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Muted.Render("Examples: \"Add 2 bananas\", \"Delete milk\", \"दूध जोड़ो\", \"2 kilo chawal daalo\""))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.voiceView.SetDimensions(width, height)
	a.cartView.SetDimensions(width, height)
}
