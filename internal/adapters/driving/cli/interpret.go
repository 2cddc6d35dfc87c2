package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

var interpretJSON bool

var interpretCmd = &cobra.Command{
	Use:   "interpret [transcript]",
	Short: "Interpret a voice command without changing the cart",
	Long: `Runs the translate, parse and match stages for a transcript and
prints the result. The cart is not modified.

Without arguments, each line read from stdin is interpreted.`,
	RunE: runInterpret,
}

var matchCmd = &cobra.Command{
	Use:   "match [item]",
	Short: "Find the catalog product for an item name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMatch,
}

func init() {
	interpretCmd.Flags().BoolVar(&interpretJSON, "json", false, "output the interpretation as JSON")
	rootCmd.AddCommand(interpretCmd)
	rootCmd.AddCommand(matchCmd)
}

func runInterpret(cmd *cobra.Command, args []string) error {
	if voiceService == nil {
		return errors.New("voice service not configured")
	}

	return eachTranscript(cmd, args, func(raw string) error {
		outcome, err := voiceService.Preview(cmd.Context(), raw)
		if err != nil {
			return fmt.Errorf("interpretation failed: %w", err)
		}
		if interpretJSON {
			return printJSON(cmd, outcome)
		}
		printOutcome(cmd, raw, outcome)
		return nil
	})
}

func runMatch(cmd *cobra.Command, args []string) error {
	if matcher == nil {
		return errors.New("product matcher not configured")
	}

	item := joinArgs(args)
	result := matcher.Match(item)
	if result == nil {
		cmd.Printf("No product matches %q.\n", item)
		return nil
	}
	cmd.Printf("%s\n", formatMatch(result))
	return nil
}

func printOutcome(cmd *cobra.Command, raw string, outcome *domain.CommandOutcome) {
	cmd.Printf("Transcript:  %s\n", raw)
	cmd.Printf("Translated:  %s\n", outcome.TranslatedText)
	stage := string(outcome.Stage)
	if outcome.UsedOnline {
		stage += " (online translation)"
	}
	cmd.Printf("Stage:       %s\n", stage)

	p := outcome.Parsed
	if p.Action == domain.ActionUnknown {
		cmd.Println("Intent:      not understood")
	} else {
		cmd.Printf("Intent:      %s %d × %s\n", p.Action, p.Quantity, p.Item)
	}

	if outcome.Match != nil {
		cmd.Printf("Product:     %s\n", formatMatch(outcome.Match))
	} else if p.Action == domain.ActionAdd {
		cmd.Println("Product:     (no match)")
	}
	cmd.Println()
}

func formatMatch(m *domain.MatchResult) string {
	return fmt.Sprintf("%s %s [%s, score %d]",
		m.Product.Title, domain.FormatINR(m.Product.Price), m.Source, m.Score)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
