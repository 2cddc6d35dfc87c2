package domain

import "time"

const unknownDescription = "Unknown"

// TranslationProvider identifies an online translation service.
type TranslationProvider string

// Available translation providers.
const (
	// TranslationProviderNone disables online translation.
	TranslationProviderNone TranslationProvider = "none"

	// TranslationProviderLibreTranslate is a LibreTranslate-compatible endpoint.
	TranslationProviderLibreTranslate TranslationProvider = "libretranslate"
)

// IsValid returns true if the provider is recognised.
func (p TranslationProvider) IsValid() bool {
	switch p {
	case TranslationProviderNone, TranslationProviderLibreTranslate:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p TranslationProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p TranslationProvider) Description() string {
	switch p {
	case TranslationProviderNone:
		return "None (offline lexicon only)"
	case TranslationProviderLibreTranslate:
		return "LibreTranslate (cloud or self-hosted)"
	default:
		return unknownDescription
	}
}

// AllTranslationProviders returns all available translation providers.
func AllTranslationProviders() []TranslationProvider {
	return []TranslationProvider{
		TranslationProviderNone,
		TranslationProviderLibreTranslate,
	}
}

// Translation defaults.
const (
	// DefaultTranslationURL is the public LibreTranslate endpoint.
	DefaultTranslationURL = "https://libretranslate.com/translate"

	// DefaultTranslationTimeout bounds a single online translation call.
	DefaultTranslationTimeout = 4 * time.Second

	// DefaultTranslationRate is the maximum online requests per second.
	DefaultTranslationRate = 2.0
)

// TranslationSettings holds online translation configuration.
type TranslationSettings struct {
	// Online enables the online translator for native-language input.
	Online bool

	// Provider is the translation service.
	Provider TranslationProvider

	// BaseURL is the translation endpoint.
	BaseURL string

	// APIKey is the optional service API key.
	APIKey string

	// Timeout bounds each online call.
	Timeout time.Duration

	// RatePerSecond limits outgoing requests.
	RatePerSecond float64
}

// IsConfigured returns true if online translation can be attempted.
func (t TranslationSettings) IsConfigured() bool {
	if !t.Online {
		return false
	}
	if t.Provider != TranslationProviderLibreTranslate {
		return false
	}
	return t.BaseURL != ""
}

// Matching thresholds.
const (
	DefaultCatalogThreshold  = 2
	DefaultFallbackThreshold = 1
)

// MatchingSettings holds product matcher thresholds.
type MatchingSettings struct {
	// CatalogThreshold is the minimum score for a primary catalog match.
	CatalogThreshold int

	// FallbackThreshold is the minimum score for a fallback match.
	FallbackThreshold int
}

// CartSettings holds cart API configuration.
type CartSettings struct {
	// BaseURL is the cart REST endpoint. Empty uses the in-memory cart.
	BaseURL string
}

// IsRemote returns true if a remote cart API is configured.
func (c CartSettings) IsRemote() bool {
	return c.BaseURL != ""
}

// CatalogSettings holds catalog source configuration.
type CatalogSettings struct {
	// Path is the SQLite catalog database. Empty uses the data directory default.
	Path string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Translation holds online translation settings.
	Translation TranslationSettings

	// Matching holds matcher thresholds.
	Matching MatchingSettings

	// Cart holds cart API settings.
	Cart CartSettings

	// Catalog holds catalog source settings.
	Catalog CatalogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Online translation is off until the user enables it.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Translation: TranslationSettings{
			Online:        false,
			Provider:      TranslationProviderLibreTranslate,
			BaseURL:       DefaultTranslationURL,
			Timeout:       DefaultTranslationTimeout,
			RatePerSecond: DefaultTranslationRate,
		},
		Matching: MatchingSettings{
			CatalogThreshold:  DefaultCatalogThreshold,
			FallbackThreshold: DefaultFallbackThreshold,
		},
	}
}
