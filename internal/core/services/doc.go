// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The interpretation pipeline is built from pure functions
// (Normalize, ParseIntent) and stateless components
// (OfflineTranslator, ProductMatcher, Interpreter) that share only
// immutable catalog and lexicon data. CartService is the one
// component with mutable state and serialises its writes.
package services
