package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskline/internal/output"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "Show accepted date formats and the data file format",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		color := !flagNoColor && os.Getenv("NO_COLOR") == ""
		return output.Reference(os.Stdout, color)
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
