package cli

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// eachTranscript calls fn with the transcript given as arguments, or
// with every non-blank stdin line when no arguments are given.
// On an interactive terminal a prompt is printed before each line.
func eachTranscript(cmd *cobra.Command, args []string, fn func(string) error) error {
	if len(args) > 0 {
		return fn(strings.Join(args, " "))
	}

	interactive := isInteractive(cmd.InOrStdin())
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		if interactive {
			cmd.Print("> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
