package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskline/internal/clierr"
	"github.com/twiced-technology-gmbh/taskline/internal/output"
	"github.com/twiced-technology-gmbh/taskline/internal/query"
	"github.com/twiced-technology-gmbh/taskline/internal/task"
	"github.com/twiced-technology-gmbh/taskline/internal/tasklist"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Lists every task with its 1-based number, in the order they were added.
Filters and sorting keep each task's number, so it can be passed to mark,
unmark or delete as shown.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var findCmd = &cobra.Command{
	Use:   "find KEYWORD...",
	Short: "Find tasks whose description contains a keyword",
	Long: `Lists tasks whose description contains KEYWORD (case-sensitive).
Matches are numbered from 1 in the order they appear in the list.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

func init() {
	listCmd.Flags().StringSlice("kind", nil, "filter by type (todo, deadline, event; comma-separated)")
	listCmd.Flags().Bool("done", false, "show only done tasks")
	listCmd.Flags().Bool("pending", false, "show only tasks not done yet")
	listCmd.Flags().Bool("overdue", false, "show only pending deadlines that have passed")
	listCmd.Flags().StringP("search", "s", "", "filter by description (case-insensitive)")
	listCmd.Flags().String("sort", query.SortIndex, "sort field ("+strings.Join(query.ValidSortFields(), ", ")+")")
	listCmd.Flags().BoolP("reverse", "r", false, "reverse sort order")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	listCmd.MarkFlagsMutuallyExclusive("done", "pending")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(findCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	kinds, _ := cmd.Flags().GetStringSlice("kind")
	done, _ := cmd.Flags().GetBool("done")
	pending, _ := cmd.Flags().GetBool("pending")
	overdue, _ := cmd.Flags().GetBool("overdue")
	search, _ := cmd.Flags().GetString("search")
	sortBy, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")
	limit, _ := cmd.Flags().GetInt("limit")

	if err := query.ValidateSortField(sortBy); err != nil {
		return err
	}
	if limit < 0 {
		return clierr.Newf(clierr.InvalidArgument, "invalid --limit %d: must not be negative", limit)
	}

	filter := query.FilterOptions{Search: search, Overdue: overdue, Now: time.Now()}
	for _, k := range kinds {
		kind, err := task.ParseKind(strings.TrimSpace(k))
		if err != nil {
			return err
		}
		filter.Kinds = append(filter.Kinds, kind)
	}
	if done {
		filter.Done = &done
	} else if pending {
		v := false
		filter.Done = &v
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	list := openList(cfg)

	entries := query.Filter(output.Indexed(list.Tasks()), filter)
	query.Sort(entries, sortBy, reverse)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	format := outputFormat(cfg)
	plain := !filter.Active() && sortBy == query.SortIndex && !reverse && limit == 0
	if format == output.FormatText && plain {
		fmt.Fprintln(os.Stdout, list.List())
		return nil
	}
	return outputEntries(format, entries)
}

func runFind(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	list := openList(cfg)
	keyword := strings.Join(args, " ")

	format := outputFormat(cfg)
	if format == output.FormatText {
		fmt.Fprintln(os.Stdout, list.Find(keyword))
		return nil
	}
	// Find renumbers matches from 1.
	return outputEntries(format, output.Indexed(list.Matches(keyword)))
}

// outputEntries prints numbered tasks in the selected format.
func outputEntries(format output.Format, entries []output.IndexedTask) error {
	switch format {
	case output.FormatJSON:
		return output.JSON(os.Stdout, entries)
	case output.FormatTable:
		output.TaskTable(os.Stdout, entries)
		return nil
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, tasklist.MsgNoMatches)
		return nil
	}
	fmt.Fprintln(os.Stdout, tasklist.MsgListHeader)
	output.Numbered(os.Stdout, entries)
	return nil
}
