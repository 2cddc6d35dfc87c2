package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

var (
	translatorProvider string
	translatorURL      string
	translatorAPIKey   string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure translation, matching and cart settings.

Settings are stored in ~/.cartvoice/config.toml unless --config-dir is given.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsOnlineCmd = &cobra.Command{
	Use:   "online [on|off]",
	Short: "Enable or disable online translation",
	Long: `Online translation is used only for input containing Devanagari
script. English and romanized input is always translated offline.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runSettingsOnline,
}

var settingsTranslatorCmd = &cobra.Command{
	Use:   "translator",
	Short: "Configure the online translation provider",
	Long: `Configure the online translation provider.

Without flags an interactive prompt asks for the provider, endpoint and
API key. The key is read without echo on a terminal.

Available providers:
  none           - Offline lexicon only
  libretranslate - LibreTranslate (cloud or self-hosted)`,
	RunE: runSettingsTranslator,
}

var settingsCartCmd = &cobra.Command{
	Use:   "cart [url|local]",
	Short: "Set the cart API endpoint",
	Long: `Set the base URL of the cart REST API.
Use "local" to switch back to the in-memory cart.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsCart,
}

var settingsThresholdsCmd = &cobra.Command{
	Use:   "thresholds [catalog] [fallback]",
	Short: "Set the product matcher thresholds",
	Long: `Set the minimum scores a product needs to be matched.
The first value applies to the catalog, the second to the fallback list.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsThresholds,
}

func init() {
	settingsTranslatorCmd.Flags().StringVar(&translatorProvider, "provider", "", "translation provider (none, libretranslate)")
	settingsTranslatorCmd.Flags().StringVar(&translatorURL, "url", "", "translation endpoint")
	settingsTranslatorCmd.Flags().StringVar(&translatorAPIKey, "api-key", "", "translation API key")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsOnlineCmd)
	settingsCmd.AddCommand(settingsTranslatorCmd)
	settingsCmd.AddCommand(settingsCartCmd)
	settingsCmd.AddCommand(settingsThresholdsCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	t := settings.Translation
	cmd.Println("[Translation]")
	cmd.Printf("  Online: %s\n", onOff(t.Online))
	cmd.Printf("  Provider: %s\n", t.Provider.Description())
	if t.Provider != domain.TranslationProviderNone {
		cmd.Printf("  Base URL: %s\n", t.BaseURL)
		if t.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(t.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	cmd.Printf("  Timeout: %s\n", t.Timeout)
	cmd.Printf("  Rate limit: %.1f req/s\n", t.RatePerSecond)
	cmd.Println()

	cmd.Println("[Matching]")
	cmd.Printf("  Catalog threshold: %d\n", settings.Matching.CatalogThreshold)
	cmd.Printf("  Fallback threshold: %d\n", settings.Matching.FallbackThreshold)
	cmd.Println()

	cmd.Println("[Cart]")
	if settings.Cart.IsRemote() {
		cmd.Printf("  API: %s\n", settings.Cart.BaseURL)
	} else {
		cmd.Println("  API: local (in-memory)")
	}
	cmd.Println()

	cmd.Println("[Catalog]")
	if settings.Catalog.Path != "" {
		cmd.Printf("  Database: %s\n", settings.Catalog.Path)
	} else {
		cmd.Println("  Database: (data directory default)")
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'cartvoice settings translator' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsOnline(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var enabled bool
	switch strings.ToLower(args[0]) {
	case "on", "true", "yes":
		enabled = true
	case "off", "false", "no":
		enabled = false
	default:
		return fmt.Errorf("expected on or off, got %q", args[0])
	}

	if err := settingsService.SetOnline(enabled); err != nil {
		return fmt.Errorf("failed to set online translation: %w", err)
	}
	cmd.Printf("Online translation: %s\n", onOff(enabled))

	if enabled {
		if err := settingsService.Validate(); err != nil {
			cmd.Printf("Warning: %v\n", err)
		}
	}
	return nil
}

func runSettingsTranslator(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if translatorProvider != "" {
		provider := domain.TranslationProvider(translatorProvider)
		if err := settingsService.SetTranslator(provider, translatorURL, translatorAPIKey); err != nil {
			return fmt.Errorf("failed to configure translator: %w", err)
		}
		cmd.Printf("Translation provider configured: %s\n", provider.Description())
		return nil
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	return configureTranslator(cmd, reader)
}

func configureTranslator(cmd *cobra.Command, reader *bufio.Reader) error {
	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Select Translation Provider")
	providers := domain.AllTranslationProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [2]: ")
	idx := parseChoice(readLine(reader), len(providers), 2)
	selected := providers[idx-1]

	if selected == domain.TranslationProviderNone {
		if err := settingsService.SetTranslator(selected, "", ""); err != nil {
			return fmt.Errorf("failed to configure translator: %w", err)
		}
		cmd.Println("Online translation disabled.")
		return nil
	}

	cmd.Printf("Endpoint [%s]: ", current.Translation.BaseURL)
	baseURL := readLine(reader)

	cmd.Print("API key (leave empty to keep current): ")
	apiKey := readPassword(cmd, reader)
	cmd.Println()

	if err := settingsService.SetTranslator(selected, baseURL, apiKey); err != nil {
		return fmt.Errorf("failed to configure translator: %w", err)
	}
	cmd.Printf("Translation provider configured: %s\n", selected.Description())

	updated, err := settingsService.Get()
	if err == nil && !updated.Translation.Online {
		cmd.Println("Run 'cartvoice settings online on' to use it.")
	}
	return nil
}

func runSettingsCart(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	baseURL := args[0]
	if strings.EqualFold(baseURL, "local") {
		baseURL = ""
	}

	if err := settingsService.SetCartURL(baseURL); err != nil {
		return fmt.Errorf("failed to set cart API: %w", err)
	}

	if baseURL == "" {
		cmd.Println("Cart API: local (in-memory)")
	} else {
		cmd.Printf("Cart API: %s\n", baseURL)
	}
	return nil
}

func runSettingsThresholds(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	catalog, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid catalog threshold %q", args[0])
	}
	fallback, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid fallback threshold %q", args[1])
	}

	if err := settingsService.SetThresholds(catalog, fallback); err != nil {
		return fmt.Errorf("failed to set thresholds: %w", err)
	}
	cmd.Printf("Thresholds set: catalog %d, fallback %d\n", catalog, fallback)
	return nil
}

// Helper functions.

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads a secret without echo when stdin is a terminal,
// otherwise it reads a plain line from reader.
func readPassword(cmd *cobra.Command, reader *bufio.Reader) string {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
