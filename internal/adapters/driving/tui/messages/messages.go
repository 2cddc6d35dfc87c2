// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewVoice is the command input and history view.
	ViewVoice
	// ViewCart lists the cart lines.
	ViewCart
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewVoice:
		return "voice"
	case ViewCart:
		return "cart"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// CommandSubmitted is sent when the user enters a transcript.
type CommandSubmitted struct {
	Transcript string
}

// CommandHandled carries the report for a submitted transcript.
type CommandHandled struct {
	Transcript string
	Report     *domain.CommandReport
	Err        error
}

// CartLoaded carries the merged cart lines.
type CartLoaded struct {
	Items []domain.CartItem
	Err   error
}

// CartLineDeleted signals a cart line was removed.
type CartLineDeleted struct {
	Ref  string
	Item *domain.CartItem
	Err  error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
