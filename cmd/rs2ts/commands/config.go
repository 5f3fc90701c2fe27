package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/rs2ts/am"
	"github.com/teranos/rs2ts/display"
	"github.com/teranos/rs2ts/errors"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage rs2ts configuration",
		Long: `Display and manage rs2ts configuration.

Examples:
  rs2ts config show                  # Effective configuration as TOML
  rs2ts config show --format json
  rs2ts config get translate.workers
  rs2ts config where                 # Which source set each value
  rs2ts config init                  # Write ./rs2ts.toml with defaults
  rs2ts config validate              # Strictly check config files`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			f, err := display.ParseFormat(format)
			if err != nil {
				return err
			}
			return display.Fprint(cmd.OutOrStdout(), f, a.cfg)
		},
	}
	show.Flags().String("format", "toml", "Output format: toml, json, yaml")

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value using dot notation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !am.GetViper().IsSet(key) {
				return errors.Newf("configuration key %q not found", key)
			}
			fmt.Fprintln(cmd.OutOrStdout(), am.Get(key))
			return nil
		},
	}

	where := &cobra.Command{
		Use:   "where",
		Short: "Show where each configuration value comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigWhere(cmd)
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write rs2ts.toml with default settings to the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return runConfigInit(cmd, force)
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing rs2ts.toml (previous versions are kept as .back1-3)")

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files and the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigValidate(cmd, a.cfg)
		},
	}

	cmd.AddCommand(show, get, where, initCmd, validate)
	return cmd
}

func runConfigWhere(cmd *cobra.Command) error {
	intro, err := am.GetConfigIntrospection()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [default]      Built-in defaults")
	fmt.Fprintln(out, "  2. [user]         ~/.rs2ts/config.toml")
	fmt.Fprintln(out, "  3. [project]      rs2ts.toml (searches up directories)")
	fmt.Fprintln(out, "  4. [environment]  RS2TS_* environment variables")
	fmt.Fprintln(out, "  5. [flag]         Command line flags")
	fmt.Fprintln(out)

	data := pterm.TableData{{"KEY", "VALUE", "SOURCE", "FROM"}}
	for _, s := range intro.Settings {
		data = append(data, []string{s.Key, fmt.Sprint(s.Value), string(s.Source), s.SourcePath})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render table")
	}
	fmt.Fprintln(out, table)
	return nil
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	wd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get working directory")
	}
	path := filepath.Join(wd, am.ProjectConfigName)

	if _, err := os.Stat(path); err == nil && !force {
		return errors.WithHint(
			errors.Newf("%s already exists", path),
			"use --force to overwrite it")
	}

	cfg := &am.Config{
		Input:     []string{},
		Translate: am.TranslateConfig{Workers: am.DefaultWorkers},
		Log:       am.LogConfig{Theme: am.DefaultLogTheme},
		Watch:     am.WatchConfig{DebounceMS: am.DefaultDebounceMS},
	}
	if err := am.Save(path, cfg); err != nil {
		return err
	}
	summaryf(cmd, "Wrote %s", path)
	return nil
}

func runConfigValidate(cmd *cobra.Command, cfg *am.Config) error {
	wd, _ := os.Getwd()
	files := []string{am.UserConfigPath(), am.FindProjectConfig(wd)}

	checked := 0
	for _, path := range files {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if _, err := am.CheckFile(path); err != nil {
			return err
		}
		checked++
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	summaryf(cmd, "Configuration is valid (%d files checked)", checked)
	return nil
}
