// Command cartvoice interprets spoken shopping commands and applies them
// to a cart.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/cartvoice/internal/adapters/driven/cartapi"
	"github.com/custodia-labs/cartvoice/internal/adapters/driven/catalogfile"
	"github.com/custodia-labs/cartvoice/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cartvoice/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cartvoice/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/cartvoice/internal/adapters/driven/translate/libretranslate"
	"github.com/custodia-labs/cartvoice/internal/adapters/driving/cli"
	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driven"
	"github.com/custodia-labs/cartvoice/internal/core/services"
	"github.com/custodia-labs/cartvoice/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(build)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// build wires the driven adapters into the core services.
func build(opts cli.Options) (*cli.Services, func(), error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, nil, fmt.Errorf("resolving config directory: %w", err)
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}

	lexiconStore, err := file.NewLexiconStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening lexicon: %w", err)
	}
	lex, err := lexiconStore.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading lexicon: %w", err)
	}

	store, err := openCatalog(settings.Catalog.Path, opts.DataDir)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if err := store.Close(); err != nil {
			logger.Warn("Closing catalog database: %v", err)
		}
	}

	catalogService := services.NewCatalogService(
		store.CatalogStore(),
		catalogfile.NewReader(),
		domain.DefaultFallbackProducts(),
	)
	catalog := catalogService.LoadOrFallback(context.Background())

	matcher := services.NewProductMatcher(catalog, lex, services.MatcherOptions{
		CatalogThreshold:  settings.Matching.CatalogThreshold,
		FallbackThreshold: settings.Matching.FallbackThreshold,
	})

	var online driven.OnlineTranslator
	t := settings.Translation
	useOnline := t.Online && t.IsConfigured()
	if useOnline {
		online = libretranslate.New(libretranslate.Config{
			BaseURL:       t.BaseURL,
			APIKey:        t.APIKey,
			Timeout:       t.Timeout,
			RatePerSecond: t.RatePerSecond,
		})
		logger.Debug("Online translation via %s", t.BaseURL)
	}

	interpreter := services.NewInterpreter(services.NewOfflineTranslator(lex), online, matcher, t.Timeout)

	cartAPI, err := openCart(settings.Cart)
	if err != nil {
		release()
		return nil, nil, err
	}
	cartService := services.NewCartService(cartAPI)

	voiceService := services.NewVoiceCommandService(interpreter, matcher, cartService, domain.InterpretOptions{
		UseOnline: useOnline,
	})

	return &cli.Services{
		Voice:    voiceService,
		Matcher:  matcher,
		Cart:     cartService,
		Catalog:  catalogService,
		Settings: settingsService,
	}, release, nil
}

func openCatalog(path, dataDir string) (*sqlite.Store, error) {
	var (
		store *sqlite.Store
		err   error
	)
	if path != "" {
		store, err = sqlite.Open(path)
	} else {
		store, err = sqlite.NewStore(dataDir)
	}
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}
	logger.Debug("Catalog database: %s", store.Path())
	return store, nil
}

func openCart(cfg domain.CartSettings) (driven.CartAPI, error) {
	if !cfg.IsRemote() {
		logger.Debug("Using in-memory cart")
		return memory.NewCart(nil), nil
	}

	client, err := cartapi.NewClient(cartapi.Config{BaseURL: cfg.BaseURL})
	if err != nil {
		return nil, fmt.Errorf("configuring cart api: %w", err)
	}
	logger.Debug("Cart API: %s", cfg.BaseURL)
	return client, nil
}
