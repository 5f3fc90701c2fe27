package commands

import (
	"context"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/rs2ts/am"
	"github.com/teranos/rs2ts/errors"
	"github.com/teranos/rs2ts/logger"
	"github.com/teranos/rs2ts/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the output whenever an input changes",
		Long: `Generate once, then regenerate whenever an input file or the project
rs2ts.toml changes. Rapid successive saves are coalesced
(watch.debounce_ms, default 300). Parse errors are reported and the
previous output is kept. Stop with Ctrl-C.

Examples:
  rs2ts watch -i src/types.rs -o web/types.ts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runWatch(ctx, cmd)
		},
	}
	addTranslateFlags(cmd)
	return cmd
}

func (a *app) runWatch(ctx context.Context, cmd *cobra.Command) error {
	if a.cfg.Output == "" {
		return errors.WithHint(
			errors.New("watch needs an output file"),
			"pass -o/--output or set output in rs2ts.toml")
	}
	if slices.Contains(a.cfg.Input, stdinName) {
		return errors.New("watch cannot read from stdin")
	}
	log := logger.LoggerFromContext(ctx)

	// First pass must succeed so a broken setup fails fast
	if err := a.regenerate(ctx, cmd); err != nil {
		return err
	}

	paths := slices.Clone(a.cfg.Input)
	wd, _ := os.Getwd()
	projectConfig := am.FindProjectConfig(wd)
	if projectConfig != "" {
		paths = append(paths, projectConfig)
	}

	w, err := watch.New(paths, time.Duration(a.cfg.Watch.DebounceMS)*time.Millisecond, func(changed []string) {
		if projectConfig != "" && slices.Contains(changed, projectConfig) {
			if err := a.reloadConfig(cmd); err != nil {
				log.Errorw("Config reload failed, keeping previous config", "error", err)
			}
		}
		if err := a.regenerate(ctx, cmd); err != nil {
			log.Errorw("Regeneration failed, keeping previous output",
				logger.FieldOutput, a.cfg.Output,
				"error", err)
			cmd.PrintErrln(FormatError(err))
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()

	log.Infow("Watching inputs",
		logger.FieldCount, len(paths),
		logger.FieldOutput, a.cfg.Output)
	return w.Run(ctx)
}

func (a *app) regenerate(ctx context.Context, cmd *cobra.Command) error {
	r, err := translateInputs(ctx, a.cfg, nil)
	if err != nil {
		return err
	}
	if err := writeOutput(a.cfg.Output, r.result.Text, nil); err != nil {
		return err
	}
	printDiagnostics(cmd.ErrOrStderr(), r.result.Diagnostics)
	summaryf(cmd, "Generated %s (%d declarations, %d skipped)",
		a.cfg.Output, len(r.result.Declarations), r.result.Skipped())
	return nil
}

// reloadConfig re-reads configuration after rs2ts.toml changed. Flags
// bound at startup keep their precedence.
func (a *app) reloadConfig(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}
	a.cfg = cfg
	logger.Infow("Config reloaded", "config", cfg.String())
	return nil
}
