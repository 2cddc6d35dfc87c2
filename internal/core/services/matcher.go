package services

import (
	"strings"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driving"
)

// Ensure ProductMatcher implements the interface.
var _ driving.ProductMatcher = (*ProductMatcher)(nil)

// Catalog pass weights.
const (
	scoreNameHit    = 4
	scorePoolHit    = 2
	scorePrefixHit  = 1
	scoreWholeQuery = 1
)

// MatcherOptions configures acceptance thresholds.
type MatcherOptions struct {
	// CatalogThreshold is the minimum primary score. Zero uses the default.
	CatalogThreshold int

	// FallbackThreshold is the minimum fallback score. Zero uses the default.
	FallbackThreshold int
}

// ProductMatcher scores item names against an immutable catalog snapshot.
// It holds no mutable state and is safe for concurrent use.
type ProductMatcher struct {
	lexicon  *domain.Lexicon
	opts     MatcherOptions
	entries  []scoredEntry
	fallback []scoredFallback
}

// scoredEntry caches the normalised fields of a catalog entry.
type scoredEntry struct {
	entry *domain.CatalogEntry
	name  string
	pool  string
	lower string
}

type scoredFallback struct {
	product *domain.FallbackProduct
	pool    string
	lower   string
}

// NewProductMatcher creates a matcher over catalog.
// The lexicon supplies synonyms and may be nil.
func NewProductMatcher(catalog *domain.Catalog, lexicon *domain.Lexicon, opts MatcherOptions) *ProductMatcher {
	if opts.CatalogThreshold <= 0 {
		opts.CatalogThreshold = domain.DefaultCatalogThreshold
	}
	if opts.FallbackThreshold <= 0 {
		opts.FallbackThreshold = domain.DefaultFallbackThreshold
	}

	m := &ProductMatcher{
		lexicon: lexicon,
		opts:    opts,
	}

	entries := catalog.Entries()
	m.entries = make([]scoredEntry, len(entries))
	for i := range entries {
		e := &entries[i]
		m.entries[i] = scoredEntry{
			entry: e,
			name:  Normalize(e.Name),
			pool:  Normalize(strings.Join([]string{e.Name, e.Category, e.Brand, strings.Join(e.Tags, " ")}, " ")),
			lower: strings.ToLower(e.Name),
		}
	}

	fallback := catalog.Fallback()
	m.fallback = make([]scoredFallback, len(fallback))
	for i := range fallback {
		p := &fallback[i]
		m.fallback[i] = scoredFallback{
			product: p,
			pool:    Normalize(p.Title),
			lower:   strings.ToLower(p.Title),
		}
	}

	return m
}

// Match returns the best product for item, or nil when nothing qualifies.
// The primary catalog is tried first, then the fallback catalog.
func (m *ProductMatcher) Match(item string) *domain.MatchResult {
	query := Normalize(item)
	if query == "" {
		return nil
	}

	tokens := strings.Fields(query)
	for i, tok := range tokens {
		tokens[i] = m.lexicon.Synonym(tok)
	}

	if best, score := foldBest(m.entries, func(e scoredEntry) int {
		return scoreCatalogEntry(e, tokens, query)
	}); best != nil && score >= m.opts.CatalogThreshold {
		raw := *best.entry
		rating := raw.Rating
		if rating == 0 {
			rating = domain.DefaultRating
		}
		id := raw.ID
		if id == "" {
			id = raw.Name
		}
		return &domain.MatchResult{
			Source: domain.MatchSourceCatalog,
			Product: domain.Product{
				ID:     id,
				Title:  raw.Name,
				Price:  raw.Price,
				Rating: rating,
				Raw:    &raw,
			},
			Score: score,
		}
	}

	if best, score := foldBest(m.fallback, func(f scoredFallback) int {
		return scoreFallback(f, tokens, query)
	}); best != nil && score >= m.opts.FallbackThreshold {
		p := *best.product
		return &domain.MatchResult{
			Source: domain.MatchSourceFallback,
			Product: domain.Product{
				ID:     p.ID,
				Title:  p.Title,
				Price:  p.Price,
				Rating: p.Rating,
			},
			Score: score,
		}
	}

	return nil
}

// foldBest reduces items left to right to the first element with the
// highest positive score.
func foldBest[T any](items []T, score func(T) int) (*T, int) {
	var best *T
	bestScore := 0
	for i := range items {
		if s := score(items[i]); s > bestScore {
			best, bestScore = &items[i], s
		}
	}
	return best, bestScore
}

func scoreCatalogEntry(e scoredEntry, tokens []string, query string) int {
	score := 0
	for _, tok := range tokens {
		if tokenMatchesPool(tok, e.name) {
			score += scoreNameHit
		}
		if tokenMatchesPool(tok, e.pool) {
			score += scorePoolHit
		}
		if strings.HasPrefix(e.lower, tok) {
			score += scorePrefixHit
		}
	}
	if strings.Contains(e.pool, query) {
		score += scoreWholeQuery
	}
	return score
}

func scoreFallback(f scoredFallback, tokens []string, query string) int {
	score := 0
	for _, tok := range tokens {
		if tokenMatchesPool(tok, f.pool) {
			score += scorePoolHit
		}
		if strings.HasPrefix(f.lower, tok) {
			score += scorePrefixHit
		}
	}
	if strings.Contains(f.pool, query) {
		score += scoreWholeQuery
	}
	return score
}

// tokenMatchesPool reports whether token equals pool, occurs in it, or
// appears in it as a whole word.
func tokenMatchesPool(token, pool string) bool {
	if token == "" || pool == "" {
		return false
	}
	if pool == token || strings.Contains(pool, token) {
		return true
	}
	return strings.Contains(" "+pool+" ", " "+token+" ")
}
