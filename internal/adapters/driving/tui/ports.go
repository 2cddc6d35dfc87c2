// Package tui provides an interactive voice console for cartvoice.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/cartvoice/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Voice interprets commands and applies them to the cart.
	Voice driving.VoiceCommandService

	// Cart lists and edits cart lines. Optional; the cart view is
	// read-only without it.
	Cart driving.CartService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(voice driving.VoiceCommandService, cart driving.CartService) *Ports {
	return &Ports{
		Voice: voice,
		Cart:  cart,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Voice == nil {
		return ErrMissingVoiceService
	}
	return nil
}
