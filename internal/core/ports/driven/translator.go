package driven

import (
	"context"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

// OnlineTranslator translates text through an external service.
// This is an optional service - when nil, the offline lexicon is used.
//
// Failures are returned, never retried here. Callers recover by
// translating offline.
type OnlineTranslator interface {
	// Translate returns the English translation of text.
	// The call is abandoned when ctx is cancelled.
	Translate(ctx context.Context, text string, opts domain.TranslateOptions) (string, error)

	// Name returns the provider name for logs and status output.
	Name() string
}
