package mcp

import (
	"github.com/custodia-labs/cartvoice/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Voice interprets transcripts and applies them to the cart.
	Voice driving.VoiceCommandService

	// Matcher resolves item names to products.
	Matcher driving.ProductMatcher

	// Catalog lists the stored catalog.
	Catalog driving.CatalogService

	// Cart reads the current cart.
	Cart driving.CartService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Voice == nil {
		return ErrMissingVoiceService
	}
	// Matcher, Catalog and Cart are optional
	return nil
}
