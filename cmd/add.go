package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/taskline/internal/config"
	"github.com/twiced-technology-gmbh/taskline/internal/task"
	"github.com/twiced-technology-gmbh/taskline/internal/tasklist"
)

var addCmd = &cobra.Command{
	Use:   "add TYPE DESCRIPTION...",
	Short: "Add a to-do, deadline or event",
	Long: `Adds a task. TYPE is todo, deadline or event (case-insensitive).

Dates can be given inline, exactly as in the shell:
  taskline add deadline submit report /by 12-05-2024 18:00
  taskline add event team sync /from 2024-01-01 09:00 /to 2024-01-01 10:00
or with flags:
  taskline add deadline submit report --by "12-05-2024 18:00"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().String("by", "", "deadline date-time")
	addCmd.Flags().String("from", "", "event start date-time")
	addCmd.Flags().String("to", "", "event end date-time")
	addCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "due":
			name = "by"
		case "start":
			name = "from"
		case "end":
			name = "to"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	by, _ := cmd.Flags().GetString("by")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	command := addCommandLine(args, by, from, to)

	return withList(func(cfg *config.Config, list *tasklist.List) error {
		reply, err := list.AddCommand(command)
		if err != nil {
			return err
		}
		tasks := list.Tasks()
		return printResult(cfg, "added", reply, list, len(tasks), tasks[len(tasks)-1])
	})
}

// addCommandLine rebuilds the shell form of an add command from arguments
// and date flags, so both spellings go through the same parser.
func addCommandLine(args []string, by, from, to string) string {
	var b strings.Builder
	b.WriteString(strings.Join(args, " "))
	if by != "" {
		b.WriteString(task.SeparatorBy + by)
	}
	if from != "" {
		b.WriteString(task.SeparatorFrom + from)
	}
	if to != "" {
		b.WriteString(task.SeparatorTo + to)
	}
	return b.String()
}
