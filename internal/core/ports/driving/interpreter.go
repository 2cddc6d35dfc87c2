package driving

import (
	"context"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

// Interpreter turns a raw transcript into a command outcome.
type Interpreter interface {
	// Interpret translates, parses and matches a transcript.
	// Translation and parse failures are recovered internally; an error
	// is returned only when ctx is done.
	Interpret(ctx context.Context, raw string, opts domain.InterpretOptions) (*domain.CommandOutcome, error)

	// LastResort parses the raw transcript without translation.
	LastResort(raw string) domain.ParsedIntent
}

// ProductMatcher selects the catalog product for a spoken item name.
type ProductMatcher interface {
	// Match returns the best product, or nil when none qualifies.
	Match(item string) *domain.MatchResult
}
