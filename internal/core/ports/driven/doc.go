// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CatalogStore: Read access to the product catalog
//   - LexiconSource: Translation dictionary and synonym tables
//   - CartAPI: Cart mutation API (remote or in-memory)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - OnlineTranslator: External translation service. Without it, native
//     language input is translated with the offline lexicon only.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
