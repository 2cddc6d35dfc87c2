package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

var cartJSON bool

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show and edit the cart",
	RunE:  runCartList,
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cart lines",
	RunE:  runCartList,
}

var cartDeleteCmd = &cobra.Command{
	Use:   "delete [name or id]",
	Short: "Remove a cart line",
	Long:  `Removes the cart line with the given id or product name.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCartDelete,
}

func init() {
	cartListCmd.Flags().BoolVar(&cartJSON, "json", false, "output cart lines as JSON")
	cartCmd.AddCommand(cartListCmd)
	cartCmd.AddCommand(cartDeleteCmd)
	rootCmd.AddCommand(cartCmd)
}

func runCartList(cmd *cobra.Command, _ []string) error {
	if cartService == nil {
		return errors.New("cart service not configured")
	}

	items, err := cartService.Items(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list cart: %w", err)
	}

	if cartJSON {
		return printJSON(cmd, items)
	}

	if len(items) == 0 {
		cmd.Println("Cart is empty.")
		return nil
	}

	var total float64
	for i := range items {
		it := items[i]
		cmd.Printf("  %d × %-32s %10s  %s\n", it.Quantity, it.Name, domain.FormatINR(it.Total()), it.ID)
		total += it.Total()
	}
	cmd.Printf("\nTotal: %s\n", domain.FormatINR(total))
	return nil
}

func runCartDelete(cmd *cobra.Command, args []string) error {
	if cartService == nil {
		return errors.New("cart service not configured")
	}

	ref := joinArgs(args)
	removed, err := cartService.Delete(cmd.Context(), ref)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("no cart line matches %q", ref)
	}
	if err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}

	cmd.Printf("Deleted %s\n", removed.Name)
	return nil
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
