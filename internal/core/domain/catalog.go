package domain

// CatalogEntry is a product in the authoritative catalog.
// Entries are owned by the catalog store and read-only to the core.
type CatalogEntry struct {
	// ID is the unique product identifier.
	ID string `json:"id" toml:"id"`

	// Name is the display name, e.g. "Fresh Bananas (1 dozen)".
	Name string `json:"name" toml:"name"`

	// Category is the optional product category.
	Category string `json:"category,omitempty" toml:"category"`

	// Brand is the optional brand name.
	Brand string `json:"brand,omitempty" toml:"brand"`

	// Tags are additional search terms, in catalog order.
	Tags []string `json:"tags,omitempty" toml:"tags"`

	// Price is the unit price in rupees.
	Price float64 `json:"price" toml:"price"`

	// Rating is the average customer rating.
	Rating float64 `json:"rating" toml:"rating"`
}

// DefaultRating is used when a catalog entry carries no rating.
const DefaultRating = 4.2

// FallbackProduct is an entry of the small fixed fallback catalog.
type FallbackProduct struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Rating float64 `json:"rating"`
}

// DefaultFallbackProducts returns the illustrative grocery products used
// when the primary catalog is absent or yields no match.
func DefaultFallbackProducts() []FallbackProduct {
	return []FallbackProduct{
		{ID: "m1", Title: "Fresh Bananas (1 dozen)", Price: 80, Rating: 4.4},
		{ID: "m2", Title: "Brown Eggs (12 pcs)", Price: 120, Rating: 4.6},
		{ID: "m3", Title: "Whole Wheat Bread (500g)", Price: 45, Rating: 4.2},
		{ID: "m4", Title: "Organic Milk (1L)", Price: 65, Rating: 4.5},
		{ID: "m5", Title: "Tomatoes (1 kg)", Price: 70, Rating: 4.1},
		{ID: "m6", Title: "Basmati Rice (5kg)", Price: 420, Rating: 4.7},
		{ID: "m7", Title: "Olive Oil (500ml)", Price: 499, Rating: 4.3},
		{ID: "m8", Title: "Sugar (1 kg)", Price: 48, Rating: 4.0},
	}
}

// Catalog is an immutable snapshot of the product catalog.
// It is built once at startup and shared read-only between invocations.
type Catalog struct {
	entries  []CatalogEntry
	fallback []FallbackProduct
}

// NewCatalog creates a snapshot from copies of the given slices.
func NewCatalog(entries []CatalogEntry, fallback []FallbackProduct) *Catalog {
	c := &Catalog{
		entries:  make([]CatalogEntry, len(entries)),
		fallback: make([]FallbackProduct, len(fallback)),
	}
	copy(c.entries, entries)
	copy(c.fallback, fallback)
	for i := range c.entries {
		if len(c.entries[i].Tags) > 0 {
			tags := make([]string, len(c.entries[i].Tags))
			copy(tags, c.entries[i].Tags)
			c.entries[i].Tags = tags
		}
	}
	return c
}

// Entries returns the primary catalog entries in catalog order.
// The returned slice must not be modified.
func (c *Catalog) Entries() []CatalogEntry {
	if c == nil {
		return nil
	}
	return c.entries
}

// Fallback returns the fallback products in order.
// The returned slice must not be modified.
func (c *Catalog) Fallback() []FallbackProduct {
	if c == nil {
		return nil
	}
	return c.fallback
}

// Len returns the number of primary catalog entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// MatchSource identifies which catalog produced a match.
type MatchSource string

// Match sources.
const (
	// MatchSourceCatalog is the authoritative catalog.
	MatchSourceCatalog MatchSource = "catalog"

	// MatchSourceFallback is the fixed fallback catalog.
	MatchSourceFallback MatchSource = "fallback"
)

// Product is the matched product as consumed by the cart layer.
type Product struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Price  float64       `json:"price"`
	Rating float64       `json:"rating"`
	Raw    *CatalogEntry `json:"raw,omitempty"`
}

// CartName returns the name to use when adding the product to the cart.
func (p Product) CartName() string {
	if p.Raw != nil && p.Raw.Name != "" {
		return p.Raw.Name
	}
	return p.Title
}

// MatchResult is the product selected for a spoken item name.
// A new value is produced for every match attempt.
type MatchResult struct {
	Source  MatchSource `json:"source"`
	Product Product     `json:"product"`
	Score   int         `json:"score"`
}
