package cmd

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskline/internal/config"
	"github.com/twiced-technology-gmbh/taskline/internal/logging"
	"github.com/twiced-technology-gmbh/taskline/internal/store"
	"github.com/twiced-technology-gmbh/taskline/internal/tasklist"
	"github.com/twiced-technology-gmbh/taskline/internal/tui"
	"github.com/twiced-technology-gmbh/taskline/internal/watcher"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and edit tasks in a terminal UI",
	Long: `Opens a full-screen task list. The view reloads when the data file
changes, so edits from another terminal show up immediately.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	model := tui.New(tuiOpener(cfg))
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startTUIWatcher(ctx, cfg.DataFile, p)

	_, err = p.Run()
	return err
}

// tuiOpener reloads the list with logging silenced; stderr output would be
// drawn over the alternate screen.
func tuiOpener(cfg *config.Config) tui.Opener {
	logger := logging.NewFromConfig(io.Discard, cfg.Log.Level, cfg.Log.Format)
	st := store.NewOS(cfg.DataFile)
	return func() *tasklist.List {
		return tasklist.Open(st, logger)
	}
}

func startTUIWatcher(ctx context.Context, path string, p *tea.Program) {
	w, err := watcher.New(path, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()
	w.Run(ctx, nil)
}
