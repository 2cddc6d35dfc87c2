package services

import (
	"fmt"
	"net/url"
	"time"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driven"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyTranslationOnline   = "translation.online"
	keyTranslationProvider = "translation.provider"
	keyTranslationBaseURL  = "translation.base_url"
	keyTranslationAPIKey   = "translation.api_key"
	keyTranslationTimeout  = "translation.timeout_ms"
	keyTranslationRate     = "translation.rate_per_second"
	keyCatalogThreshold    = "matching.catalog_threshold"
	keyFallbackThreshold   = "matching.fallback_threshold"
	keyCartBaseURL         = "cart.base_url"
	keyCatalogPath         = "catalog.path"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Translation: domain.TranslationSettings{
			Online:        s.getBool(keyTranslationOnline, defaults.Translation.Online),
			Provider:      s.getProvider(defaults.Translation.Provider),
			BaseURL:       s.getString(keyTranslationBaseURL, defaults.Translation.BaseURL),
			APIKey:        s.configStore.GetString(keyTranslationAPIKey),
			Timeout:       s.getDuration(keyTranslationTimeout, defaults.Translation.Timeout),
			RatePerSecond: s.getFloat(keyTranslationRate, defaults.Translation.RatePerSecond),
		},
		Matching: domain.MatchingSettings{
			CatalogThreshold:  s.getInt(keyCatalogThreshold, defaults.Matching.CatalogThreshold),
			FallbackThreshold: s.getInt(keyFallbackThreshold, defaults.Matching.FallbackThreshold),
		},
		Cart: domain.CartSettings{
			BaseURL: s.configStore.GetString(keyCartBaseURL),
		},
		Catalog: domain.CatalogSettings{
			Path: s.configStore.GetString(keyCatalogPath),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	t := settings.Translation
	if err := s.configStore.Set(keyTranslationOnline, t.Online); err != nil {
		return fmt.Errorf("save translation online: %w", err)
	}
	if err := s.configStore.Set(keyTranslationProvider, t.Provider.String()); err != nil {
		return fmt.Errorf("save translation provider: %w", err)
	}
	if err := s.configStore.Set(keyTranslationBaseURL, t.BaseURL); err != nil {
		return fmt.Errorf("save translation base_url: %w", err)
	}
	if t.APIKey != "" {
		if err := s.configStore.Set(keyTranslationAPIKey, t.APIKey); err != nil {
			return fmt.Errorf("save translation api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyTranslationTimeout, int(t.Timeout/time.Millisecond)); err != nil {
		return fmt.Errorf("save translation timeout: %w", err)
	}
	if err := s.configStore.Set(keyTranslationRate, t.RatePerSecond); err != nil {
		return fmt.Errorf("save translation rate: %w", err)
	}

	if err := s.configStore.Set(keyCatalogThreshold, settings.Matching.CatalogThreshold); err != nil {
		return fmt.Errorf("save catalog threshold: %w", err)
	}
	if err := s.configStore.Set(keyFallbackThreshold, settings.Matching.FallbackThreshold); err != nil {
		return fmt.Errorf("save fallback threshold: %w", err)
	}

	if err := s.configStore.Set(keyCartBaseURL, settings.Cart.BaseURL); err != nil {
		return fmt.Errorf("save cart base_url: %w", err)
	}
	if err := s.configStore.Set(keyCatalogPath, settings.Catalog.Path); err != nil {
		return fmt.Errorf("save catalog path: %w", err)
	}

	return nil
}

// SetOnline enables or disables online translation.
func (s *SettingsService) SetOnline(enabled bool) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Translation.Online = enabled
	return s.Save(settings)
}

// SetTranslator configures the online translation provider.
// An empty baseURL keeps the current endpoint.
func (s *SettingsService) SetTranslator(provider domain.TranslationProvider, baseURL, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid translation provider: %s", provider)
	}
	if baseURL != "" {
		if err := validateURL(baseURL); err != nil {
			return err
		}
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Translation.Provider = provider
	if baseURL != "" {
		settings.Translation.BaseURL = baseURL
	}
	if apiKey != "" {
		settings.Translation.APIKey = apiKey
	}
	if provider == domain.TranslationProviderNone {
		settings.Translation.Online = false
	}

	return s.Save(settings)
}

// SetCartURL configures the remote cart API. Empty selects the local cart.
func (s *SettingsService) SetCartURL(baseURL string) error {
	if baseURL != "" {
		if err := validateURL(baseURL); err != nil {
			return err
		}
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Cart.BaseURL = baseURL
	return s.Save(settings)
}

// SetThresholds updates the matcher thresholds.
func (s *SettingsService) SetThresholds(catalog, fallback int) error {
	if catalog < 1 || fallback < 1 {
		return fmt.Errorf("%w: thresholds must be at least 1", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Matching.CatalogThreshold = catalog
	settings.Matching.FallbackThreshold = fallback
	return s.Save(settings)
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	t := settings.Translation
	if !t.Provider.IsValid() {
		return fmt.Errorf("invalid translation provider: %s", t.Provider)
	}
	if t.Online && !t.IsConfigured() {
		return fmt.Errorf(
			"online translation requires a provider endpoint (provider %q)",
			t.Provider.Description(),
		)
	}
	if t.Timeout <= 0 {
		return fmt.Errorf("translation timeout must be positive")
	}
	if settings.Cart.IsRemote() {
		if err := validateURL(settings.Cart.BaseURL); err != nil {
			return err
		}
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	ms := s.configStore.GetInt(key)
	if ms <= 0 {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *SettingsService) getProvider(defaultVal domain.TranslationProvider) domain.TranslationProvider {
	val := s.configStore.GetString(keyTranslationProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.TranslationProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: invalid url %q: %w", domain.ErrInvalidInput, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: url %q must use http or https", domain.ErrInvalidInput, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: url %q has no host", domain.ErrInvalidInput, raw)
	}
	return nil
}
