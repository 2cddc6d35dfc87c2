// Package domain defines the core business entities for cartvoice.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ParsedIntent: The structured {action, quantity, item} of a command
//   - CatalogEntry: A product in the authoritative catalog
//   - Catalog: An immutable snapshot of the catalog plus fallback products
//   - MatchResult: The product selected for a spoken item name
//   - CommandOutcome: The terminal artifact of the interpretation pipeline
//   - CartItem: A line in the shopping cart
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
