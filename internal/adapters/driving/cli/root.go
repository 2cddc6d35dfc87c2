// Package cli provides the cobra command tree for cartvoice.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cartvoice/internal/core/ports/driving"
	"github.com/custodia-labs/cartvoice/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

// Global flags.
var (
	verbose   bool
	configDir string
	dataDir   string
)

// Services used by the commands. Set by the bootstrap or by SetServices.
var (
	voiceService    driving.VoiceCommandService
	matcher         driving.ProductMatcher
	cartService     driving.CartService
	catalogService  driving.CatalogService
	settingsService driving.SettingsService
)

// Options holds the flag values the bootstrap needs.
type Options struct {
	// ConfigDir overrides the configuration directory.
	ConfigDir string

	// DataDir overrides the data directory.
	DataDir string
}

// Services bundles the driving ports used by the commands.
type Services struct {
	Voice    driving.VoiceCommandService
	Matcher  driving.ProductMatcher
	Cart     driving.CartService
	Catalog  driving.CatalogService
	Settings driving.SettingsService
}

// Bootstrap builds the services once flags are parsed.
// The returned function releases resources and may be nil.
type Bootstrap func(opts Options) (*Services, func(), error)

var (
	bootstrap Bootstrap
	shutdown  func()
)

var rootCmd = &cobra.Command{
	Use:   "cartvoice",
	Short: "Voice-driven shopping cart",
	Long: `cartvoice turns spoken shopping commands into cart operations.

Commands may be English, Hindi or Hinglish. Each transcript is translated
offline (or online when enabled), parsed into an add or delete intent,
matched against the product catalog and applied to the cart.

Examples:
  cartvoice voice "Add 2 bananas"
  cartvoice interpret "दूध जोड़ो"
  cartvoice cart list`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if shutdown != nil {
			shutdown()
			shutdown = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline stages to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.cartvoice)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.cartvoice/data)")
}

// SetBootstrap registers the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices sets the services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	voiceService = s.Voice
	matcher = s.Matcher
	cartService = s.Cart
	catalogService = s.Catalog
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd.Annotations[skipBootstrap] == "true" {
		return nil
	}

	services, release, err := bootstrap(Options{ConfigDir: configDir, DataDir: dataDir})
	if err != nil {
		return err
	}
	if services == nil {
		return errors.New("bootstrap returned no services")
	}

	SetServices(services)
	shutdown = release
	return nil
}
