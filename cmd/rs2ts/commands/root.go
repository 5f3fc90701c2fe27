// Package commands implements the rs2ts command line.
package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/rs2ts/am"
	"github.com/teranos/rs2ts/errors"
	"github.com/teranos/rs2ts/logger"
	"github.com/teranos/rs2ts/rustsrc"
	"github.com/teranos/rs2ts/version"
)

// flagKeys maps command-line flags to the config keys they override
var flagKeys = map[string]string{
	"input":     "input",
	"output":    "output",
	"workers":   "translate.workers",
	"json-logs": "log.json",
}

// app carries state shared by the subcommands of one invocation
type app struct {
	cfg   *am.Config
	runID string
}

// NewRootCmd builds the rs2ts command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "rs2ts",
		Short: "Generate TypeScript declarations from Rust types",
		Long: `rs2ts - Generate TypeScript declarations from Rust types.

Reads Rust source files and writes TypeScript type declarations for their
type aliases, structs and serde adjacently tagged enums
(#[serde(tag = "test", content = "result")]). Every other item is skipped
and reported; a skip never fails the run.

Configuration sources (later overrides earlier):
  1. Built-in defaults
  2. ~/.rs2ts/config.toml
  3. rs2ts.toml (searched upward from the working directory)
  4. RS2TS_* environment variables
  5. Command line flags

Examples:
  rs2ts -i src/types.rs -o web/types.ts    # Generate (default command)
  rs2ts check -i src/types.rs -o web/types.ts
  rs2ts watch -i src/types.rs -o web/types.ts
  rs2ts config show --format yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	root.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")

	gen := newGenerateCmd(a)
	root.RunE = gen.RunE
	addTranslateFlags(root)
	root.Flags().String("report", "", "Print a report of generated and skipped declarations: json, yaml")

	root.AddCommand(gen)
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newWatchCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

// addTranslateFlags registers the flags shared by generate, check and watch
func addTranslateFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("input", "i", nil, "Rust input files (repeatable, - for stdin)")
	cmd.Flags().StringP("output", "o", "", "TypeScript output file (default: stdout)")
	cmd.Flags().Int("workers", am.DefaultWorkers, "Declarations rendered concurrently")
}

// setup loads configuration, initializes logging and tags the command
// context with a run ID
func (a *app) setup(cmd *cobra.Command) error {
	// config validate reports problems itself
	cfg, err := loadConfig(cmd, cmd.Name() != "validate")
	if err != nil {
		return err
	}
	a.cfg = cfg

	verbosity, _ := cmd.Flags().GetCount("verbose")
	logger.SetTheme(cfg.GetLogTheme())
	if err := logger.Initialize(cfg.Log.JSON, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	a.runID = uuid.NewString()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithRunID(ctx, a.runID)
	ctx = logger.WithComponent(ctx, cmd.Name())
	cmd.SetContext(ctx)

	logger.LoggerFromContext(ctx).Debugw("Configuration loaded",
		"config", cfg.String(),
		"build", version.Get().Short(),
		"verbosity", logger.LevelName(verbosity))
	return nil
}

// loadConfig reloads configuration with the flags of cmd bound on top
func loadConfig(cmd *cobra.Command, validate bool) (*am.Config, error) {
	am.Reset()
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := am.BindFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if validate {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// FormatError renders err for the terminal: parse errors with their
// location and suggestions, everything else with any attached hints
func FormatError(err error) string {
	var pe *rustsrc.ParseError
	if errors.As(err, &pe) {
		return pe.FormatError(rustsrc.ErrorContextTerminal)
	}
	msg := pterm.Error.Sprint(err.Error())
	if hints := errors.FlattenHints(err); hints != "" {
		msg += "\n" + pterm.Info.Sprint(hints)
	}
	return msg
}

// summaryf prints a success line to w
func summaryf(cmd *cobra.Command, format string, args ...interface{}) {
	pterm.Success.WithWriter(cmd.ErrOrStderr()).Println(fmt.Sprintf(format, args...))
}
