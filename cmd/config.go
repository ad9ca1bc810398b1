package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskline/internal/clierr"
	"github.com/twiced-technology-gmbh/taskline/internal/config"
	"github.com/twiced-technology-gmbh/taskline/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify configuration",
	Long: `Shows the effective configuration: the config file, then TASKLINE_*
environment variables, then command-line flags.`,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a value in the config file",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get func(*config.Config) string
	set func(*config.Config, string)
}

var configAccessors = map[string]configAccessor{
	"data_file": {
		get: func(c *config.Config) string { return c.DataFile },
		set: func(c *config.Config, v string) { c.DataFile = v },
	},
	"output": {
		get: func(c *config.Config) string { return c.Output },
		set: func(c *config.Config, v string) { c.Output = v },
	},
	"log.level": {
		get: func(c *config.Config) string { return c.Log.Level },
		set: func(c *config.Config, v string) { c.Log.Level = v },
	},
	"log.format": {
		get: func(c *config.Config) string { return c.Log.Format },
		set: func(c *config.Config, v string) { c.Log.Format = v },
	},
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{"data_file", "output", "log.level", "log.format"}
}

func lookupAccessor(key string) (configAccessor, error) {
	acc, ok := configAccessors[key]
	if !ok {
		return configAccessor{}, clierr.Newf(clierr.InvalidArgument, "unknown config key %q", key).
			WithDetails(map[string]any{"valid": allConfigKeys()})
	}
	return acc, nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if outputFormat(cfg) == output.FormatJSON {
		m := make(map[string]string, len(configAccessors)+1)
		for _, key := range allConfigKeys() {
			m[key] = configAccessors[key].get(cfg)
		}
		m["config_file"] = cfg.Path()
		return output.JSON(os.Stdout, m)
	}

	fmt.Fprintf(os.Stdout, "%-12s %s\n", "config_file", cfg.Path())
	for _, key := range allConfigKeys() {
		fmt.Fprintf(os.Stdout, "%-12s %s\n", key, configAccessors[key].get(cfg))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	acc, err := lookupAccessor(args[0])
	if err != nil {
		return err
	}

	if outputFormat(cfg) == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{"key": args[0], "value": acc.get(cfg)})
	}
	fmt.Fprintln(os.Stdout, acc.get(cfg))
	return nil
}

// runConfigSet edits the file contents only, so environment overrides in
// effect right now are not written back.
func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	acc, err := lookupAccessor(key)
	if err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	cfg, err := config.Read(path)
	if err != nil {
		return err
	}

	acc.set(cfg, value)
	if err := cfg.Validate(); err != nil {
		return configError(err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if flagJSON {
		return output.JSON(os.Stdout, map[string]string{"key": key, "value": acc.get(cfg)})
	}
	output.Messagef(os.Stdout, "Set %s = %s", key, acc.get(cfg))
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return clierr.Newf(clierr.InvalidArgument, "config file %s already exists; use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config file: %w", err)
	}

	cfg := config.NewDefault()
	cfg.SetPath(path)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if flagJSON {
		return output.JSON(os.Stdout, map[string]string{"status": "created", "config_file": path})
	}
	output.Messagef(os.Stdout, "Wrote %s", path)
	return nil
}
