package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskline/internal/filelock"
	"github.com/twiced-technology-gmbh/taskline/internal/output"
	"github.com/twiced-technology-gmbh/taskline/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the data file",
	Long: `Removes the task data file entirely. The next command starts from an
empty list and recreates the file.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		ok, err := confirm(fmt.Sprintf("Delete %s?", cfg.DataFile))
		if err != nil || !ok {
			return err
		}
	}

	// A missing directory means there is nothing to lock or remove.
	unlock, err := filelock.Lock(filelock.PathFor(cfg.DataFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	if unlock != nil {
		defer unlock() //nolint:errcheck // best-effort unlock on exit
	}

	st := store.NewOS(cfg.DataFile)
	if err := st.Delete(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing data file: %w", err)
	}

	if outputFormat(cfg) == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status": "reset",
			"file":   cfg.DataFile,
		})
	}
	output.Messagef(os.Stdout, "Removed %s", cfg.DataFile)
	return nil
}
