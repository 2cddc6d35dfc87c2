package driving

import (
	"context"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

// VoiceCommandService applies voice commands to the cart.
type VoiceCommandService interface {
	// Handle interprets the transcript and applies it to the cart.
	// User-facing failures are reported in the returned report.
	Handle(ctx context.Context, raw string) (*domain.CommandReport, error)

	// Preview interprets the transcript without touching the cart.
	Preview(ctx context.Context, raw string) (*domain.CommandOutcome, error)
}
