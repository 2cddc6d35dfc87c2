package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

var catalogJSON bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the product catalog",
	RunE:  runCatalogList,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries",
	RunE:  runCatalogList,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import catalog entries from a JSON or TOML file",
	Long: `Reads catalog entries from a .json or .toml file and stores them.
Entries with an existing id are updated in place.

JSON files hold an array of entries or an object with an "items" array.
TOML files use [[items]] tables.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogImport,
}

func init() {
	catalogListCmd.Flags().BoolVar(&catalogJSON, "json", false, "output entries as JSON")
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	entries, err := catalogService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list catalog: %w", err)
	}

	if catalogJSON {
		return printJSON(cmd, entries)
	}

	if len(entries) == 0 {
		cmd.Println("Catalog is empty. Import one with 'cartvoice catalog import <file>'.")
		return nil
	}

	for i := range entries {
		e := entries[i]
		cmd.Printf("  %-12s %-32s %10s", e.ID, e.Name, domain.FormatINR(e.Price))
		if len(e.Tags) > 0 {
			cmd.Printf("  [%s]", strings.Join(e.Tags, ", "))
		}
		cmd.Println()
	}
	cmd.Printf("\n%d entries\n", len(entries))
	return nil
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	n, err := catalogService.Import(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d entries from %s\n", n, args[0])
	cmd.Println("The matcher uses the new entries from the next run.")
	return nil
}
