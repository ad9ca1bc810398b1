// Package cmd implements the taskline CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskline/internal/clierr"
	"github.com/twiced-technology-gmbh/taskline/internal/config"
	"github.com/twiced-technology-gmbh/taskline/internal/filelock"
	"github.com/twiced-technology-gmbh/taskline/internal/logging"
	"github.com/twiced-technology-gmbh/taskline/internal/output"
	"github.com/twiced-technology-gmbh/taskline/internal/store"
	"github.com/twiced-technology-gmbh/taskline/internal/task"
	"github.com/twiced-technology-gmbh/taskline/internal/tasklist"
)

// version is set at build time via ldflags.
var version = "dev"

const dataDirMode = 0o750

// Global flags.
var (
	flagJSON     bool
	flagTable    bool
	flagNoColor  bool
	flagFile     string
	flagConfig   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "taskline",
	Short: "A small personal task tracker",
	Long: `taskline keeps to-dos, deadlines and events in a plain text file.
Run taskline without a command to start the interactive shell.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runShell,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "path to the task data file")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to the config file (default ~/.config/taskline/config.yml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv(config.EnvPrefix+"OUTPUT") == config.OutputJSON
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error: wrap as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// configPath returns the config file to read, honoring --config.
func configPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(config.DefaultDir(home), config.ConfigFileName), nil
}

// loadConfig loads the config file and environment, then applies flag overrides.
func loadConfig() (*config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, configError(err)
	}

	if flagFile != "" {
		cfg.DataFile = flagFile
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, configError(err)
	}
	return cfg, nil
}

func configError(err error) error {
	if errors.Is(err, config.ErrInvalid) {
		return clierr.New(clierr.InvalidArgument, err.Error())
	}
	return err
}

// newLogger returns the stderr logger described by cfg.
func newLogger(cfg *config.Config) *log.Logger {
	return logging.NewFromConfig(os.Stderr, cfg.Log.Level, cfg.Log.Format)
}

// openList loads the task list from the configured data file.
func openList(cfg *config.Config) *tasklist.List {
	return tasklist.Open(store.NewOS(cfg.DataFile), newLogger(cfg))
}

// withList loads the list under an exclusive lock on the data file and runs fn.
// The lock covers the whole load-modify-save cycle.
func withList(fn func(cfg *config.Config, list *tasklist.List) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DataFile), dataDirMode); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	unlock, err := filelock.Lock(filelock.PathFor(cfg.DataFile))
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer unlock() //nolint:errcheck // best-effort unlock on exit

	return fn(cfg, openList(cfg))
}

// outputFormat returns the detected output format from flags and config.
func outputFormat(cfg *config.Config) output.Format {
	return output.Detect(flagJSON, flagTable, cfg.Output)
}

// printResult reports a mutation. Text mode prints the confirmation as is;
// JSON mode wraps it with the affected task and the new list size.
func printResult(cfg *config.Config, status, reply string, list *tasklist.List, index int, t *task.Task) error {
	if outputFormat(cfg) == output.FormatJSON {
		headline, _, _ := strings.Cut(reply, "\n")
		res := output.Result{Status: status, Message: headline, Count: list.Len()}
		if t != nil {
			res.Task = &output.IndexedTask{Index: index, Task: t}
		}
		return output.JSON(os.Stdout, res)
	}
	fmt.Fprintln(os.Stdout, reply)
	return nil
}
