// Package cart provides the cart view component for the TUI.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driving"
)

// ErrNoCartService indicates that no cart service was provided.
var ErrNoCartService = errors.New("cart service not available")

// View lists the merged cart lines.
type View struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	cartService driving.CartService
	ctx         context.Context

	items    []domain.CartItem
	selected int
	width    int
	height   int
	ready    bool
	err      error
	notice   string
	loading  bool
}

// NewView creates a new cart view.
func NewView(s *styles.Styles, km *keymap.KeyMap, cartService driving.CartService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:      s,
		keymap:      km,
		cartService: cartService,
		ctx:         context.Background(),
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the cart.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadCart()
}

func (v *View) loadCart() tea.Cmd {
	return func() tea.Msg {
		if v.cartService == nil {
			return messages.CartLoaded{Err: ErrNoCartService}
		}
		items, err := v.cartService.Items(v.ctx)
		return messages.CartLoaded{Items: items, Err: err}
	}
}

func (v *View) deleteLine(ref string) tea.Cmd {
	return func() tea.Msg {
		if v.cartService == nil {
			return messages.CartLineDeleted{Ref: ref, Err: ErrNoCartService}
		}
		item, err := v.cartService.Delete(v.ctx, ref)
		return messages.CartLineDeleted{Ref: ref, Item: item, Err: err}
	}
}

// Update handles messages for the cart view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.CartLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.items = msg.Items
		if v.selected >= len(v.items) {
			v.selected = max(len(v.items)-1, 0)
		}
		return v, nil

	case messages.CartLineDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		if msg.Item != nil {
			v.notice = "Deleted " + msg.Item.Name
		}
		v.loading = true
		return v, v.loadCart()
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.items)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Remove):
		if v.selected < len(v.items) {
			return v, v.deleteLine(v.items[v.selected].ID)
		}
	case keymap.Matches(k, v.keymap.Reload):
		v.notice = ""
		v.loading = true
		return v, v.loadCart()
	}
	return v, nil
}

// View renders the cart view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Cart"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading cart..."))
		b.WriteString("\n\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	case len(v.items) == 0:
		b.WriteString(v.styles.Muted.Render("Cart is empty."))
		b.WriteString("\n\n")
	default:
		var total float64
		for i := range v.items {
			b.WriteString(v.renderLine(i, &v.items[i]))
			b.WriteString("\n")
			total += v.items[i].Total()
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render("Total: ") + v.styles.Price.Render(domain.FormatINR(total)))
		b.WriteString("\n\n")
	}

	if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [d] remove  [r] reload  [esc] back"))
	return b.String()
}

func (v *View) renderLine(index int, item *domain.CartItem) string {
	name := item.Name
	maxNameLen := v.width - 24
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if r := []rune(name); len(r) > maxNameLen {
		name = string(r[:maxNameLen-3]) + "..."
	}

	qty := fmt.Sprintf("%3d ×", item.Quantity)
	price := domain.FormatINR(item.Total())
	if index == v.selected {
		return v.styles.Selected.Render("> "+qty+" "+name) + "  " + v.styles.Price.Render(price)
	}
	return "  " + v.styles.Quantity.Render(qty) + " " + v.styles.Normal.Render(name) + "  " + v.styles.Muted.Render(price)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Items returns the loaded cart lines.
func (v *View) Items() []domain.CartItem {
	return v.items
}

// SelectedIndex returns the selected line index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Loading returns true while the cart is being fetched.
func (v *View) Loading() bool {
	return v.loading
}
