package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

var voiceJSON bool

var voiceCmd = &cobra.Command{
	Use:   "voice [transcript]",
	Short: "Apply a voice command to the cart",
	Long: `Interprets a transcript and applies the add or delete to the cart.

Examples:
  cartvoice voice "Add 2 bananas"
  cartvoice voice "Delete milk"
  cartvoice voice "2 किलो चावल डालो"

Without arguments, each line read from stdin is handled in turn.`,
	RunE: runVoice,
}

func init() {
	voiceCmd.Flags().BoolVar(&voiceJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(voiceCmd)
}

func runVoice(cmd *cobra.Command, args []string) error {
	if voiceService == nil {
		return errors.New("voice service not configured")
	}

	return eachTranscript(cmd, args, func(raw string) error {
		report, err := voiceService.Handle(cmd.Context(), raw)
		if err != nil {
			return fmt.Errorf("voice command failed: %w", err)
		}
		if voiceJSON {
			return printJSON(cmd, report)
		}
		cmd.Printf("%s %s\n", statusMark(report.Status), report.Message)
		return nil
	})
}

func statusMark(status domain.CommandStatus) string {
	switch status {
	case domain.StatusAdded, domain.StatusDeleted:
		return "✓"
	case domain.StatusNotUnderstood, domain.StatusEmpty:
		return "?"
	default:
		return "✗"
	}
}
