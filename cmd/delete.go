package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/taskline/internal/clierr"
	"github.com/twiced-technology-gmbh/taskline/internal/config"
	"github.com/twiced-technology-gmbh/taskline/internal/tasklist"
)

var deleteCmd = &cobra.Command{
	Use:     "delete N | --all",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Removes task N; the tasks after it move up by one.
With --all every task is removed. Prompts for confirmation in interactive mode.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().Bool("all", false, "remove every task")
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	yes, _ := cmd.Flags().GetBool("yes")

	if all {
		if len(args) > 0 {
			return clierr.New(clierr.InvalidArgument, "use either a task number or --all, not both")
		}
		return deleteAll(yes)
	}
	if len(args) == 0 {
		return clierr.New(clierr.InvalidArgument, "a task number is required (or --all)")
	}

	index, err := tasklist.ParseIndex(args[0])
	if err != nil {
		return err
	}

	return withList(func(cfg *config.Config, list *tasklist.List) error {
		tasks := list.Tasks()
		reply, err := list.Delete(index)
		if err != nil {
			return err
		}
		return printResult(cfg, "deleted", reply, list, index, tasks[index-1])
	})
}

func deleteAll(yes bool) error {
	return withList(func(cfg *config.Config, list *tasklist.List) error {
		if list.Len() > 0 && !yes {
			ok, err := confirm(fmt.Sprintf("Delete all %d tasks?", list.Len()))
			if err != nil || !ok {
				return err
			}
		}
		list.DeleteAll()
		return printResult(cfg, "cleared", tasklist.MsgCleared, list, 0, nil)
	})
}

// confirm asks a yes/no question on stderr. It refuses to guess when stdin
// is not a terminal.
func confirm(question string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, clierr.New(clierr.ConfirmationReq,
			"cannot prompt for confirmation (not a terminal); use --yes")
	}
	fmt.Fprintf(os.Stderr, "%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer != "y" && answer != "yes" {
		fmt.Fprintln(os.Stderr, "Canceled.")
		return false, nil
	}
	return true, nil
}
