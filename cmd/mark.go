package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskline/internal/config"
	"github.com/twiced-technology-gmbh/taskline/internal/tasklist"
)

var markCmd = &cobra.Command{
	Use:     "mark N",
	Aliases: []string{"done"},
	Short:   "Mark a task as done",
	Args:    cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runMark(args[0], "marked", (*tasklist.List).MarkDone)
	},
}

var unmarkCmd = &cobra.Command{
	Use:     "unmark N",
	Aliases: []string{"undone"},
	Short:   "Mark a task as not done",
	Args:    cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runMark(args[0], "unmarked", (*tasklist.List).MarkUndone)
	},
}

func init() {
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(unmarkCmd)
}

func runMark(arg, status string, op func(*tasklist.List, int) (string, error)) error {
	index, err := tasklist.ParseIndex(arg)
	if err != nil {
		return err
	}

	return withList(func(cfg *config.Config, list *tasklist.List) error {
		reply, err := op(list, index)
		if err != nil {
			return err
		}
		return printResult(cfg, status, reply, list, index, list.Tasks()[index-1])
	})
}
