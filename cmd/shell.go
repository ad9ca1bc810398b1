package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/taskline/internal/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell",
	Long: `Reads commands line by line (todo, deadline, event, list, mark, unmark,
delete, clear, find, help, bye) and answers each one. This is also what
taskline does when run without a command.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// runShell does not hold the data file lock: a session can last for hours
// and one-shot commands would block behind it.
func runShell(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	return shell.New(openList(cfg), os.Stdout, interactive).Run(os.Stdin)
}
