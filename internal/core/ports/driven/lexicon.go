package driven

import "github.com/custodia-labs/cartvoice/internal/core/domain"

// LexiconSource provides the static translation and synonym tables.
type LexiconSource interface {
	// Load parses and returns the lexicon.
	Load() (*domain.Lexicon, error)
}
