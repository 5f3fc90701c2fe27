package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/rs2ts/errors"
	"github.com/teranos/rs2ts/logger"
	"github.com/teranos/rs2ts/typegen"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the output file matches its Rust inputs",
		Long: `Translate the Rust inputs in memory and compare the result with the
existing output file. Exits non-zero and prints a unified diff when the
file is missing or out of date. Nothing is written.

Examples:
  rs2ts check -i src/types.rs -o web/types.ts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd)
		},
	}
	addTranslateFlags(cmd)
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command) error {
	if a.cfg.Output == "" {
		return errors.WithHint(
			errors.New("check needs an output file to compare against"),
			"pass -o/--output or set output in rs2ts.toml")
	}

	r, err := translateInputs(cmd.Context(), a.cfg, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cr, err := typegen.CompareFile(a.cfg.Output, r.result.Text)
	if err != nil {
		return err
	}
	if cr.UpToDate {
		summaryf(cmd, "%s is up to date (%d declarations)", a.cfg.Output, len(r.result.Declarations))
		return nil
	}

	logger.LoggerFromContext(cmd.Context()).Debugw("Output out of date",
		logger.FieldOutput, a.cfg.Output,
		"missing", cr.Missing)
	fmt.Fprint(cmd.OutOrStdout(), cr.Diff)

	reason := "differs from its inputs"
	if cr.Missing {
		reason = "does not exist"
	}
	return errors.WithHint(
		errors.Wrapf(errors.ErrOutOfDate, "%s %s", a.cfg.Output, reason),
		"run rs2ts generate to update it")
}
