package driving

import "github.com/custodia-labs/cartvoice/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetOnline enables or disables online translation.
	SetOnline(enabled bool) error

	// SetTranslator configures the online translation provider.
	SetTranslator(provider domain.TranslationProvider, baseURL, apiKey string) error

	// SetCartURL configures the remote cart API. Empty selects the local cart.
	SetCartURL(baseURL string) error

	// SetThresholds updates the matcher thresholds.
	SetThresholds(catalog, fallback int) error

	// Validate checks if current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
