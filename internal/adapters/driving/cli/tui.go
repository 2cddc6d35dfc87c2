package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui"
	"github.com/custodia-labs/cartvoice/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive voice console",
	Long: `Launch the interactive terminal console for cartvoice.

Type commands as you would speak them and watch the cart update.

Controls:
  Enter    - Send command / Select
  Tab      - Switch between input and history
  ↑/k, ↓/j - Navigate
  d        - Remove cart line
  r        - Reload cart
  Esc      - Back
  Ctrl+C   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// Verbose output would corrupt the alternate screen.
	if logger.IsVerbose() {
		logger.SetVerbose(false)
		defer logger.SetVerbose(true)
	}

	app, err := tui.NewApp(tui.NewPorts(voiceService, cartService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
