package commands

import (
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/rs2ts/display"
	"github.com/teranos/rs2ts/typegen"
)

// report is the machine-readable summary printed by --report
type report struct {
	RunID        string                `json:"run_id" yaml:"run_id"`
	Inputs       []string              `json:"inputs" yaml:"inputs"`
	Output       string                `json:"output,omitempty" yaml:"output,omitempty"`
	Language     string                `json:"language" yaml:"language"`
	Declarations []typegen.Declaration `json:"declarations" yaml:"declarations"`
	Diagnostics  []typegen.Diagnostic  `json:"diagnostics" yaml:"diagnostics"`
}

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write TypeScript declarations for Rust inputs",
		Long: `Translate the Rust inputs and write the TypeScript declarations.

Output starts with a fixed prelude (Option, Vec, HashMap, HashSet, Result)
followed by one declaration per translatable item, in source order.
Untranslatable items are skipped with a warning.

Examples:
  rs2ts generate -i src/types.rs -o web/types.ts
  rs2ts generate -i a.rs -i b.rs --workers 4 --report json
  cat types.rs | rs2ts generate -i -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd)
		},
	}
	addTranslateFlags(cmd)
	cmd.Flags().String("report", "", "Print a report of generated and skipped declarations: json, yaml")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command) error {
	reportFormat, _ := cmd.Flags().GetString("report")
	var format display.Format
	if reportFormat != "" {
		f, err := display.ParseFormat(reportFormat)
		if err != nil {
			return err
		}
		format = f
	}

	r, err := translateInputs(cmd.Context(), a.cfg, cmd.InOrStdin())
	if err != nil {
		return err
	}
	res := r.result

	if err := writeOutput(a.cfg.Output, res.Text, cmd.OutOrStdout()); err != nil {
		return err
	}

	printDiagnostics(cmd.ErrOrStderr(), res.Diagnostics)
	summaryf(cmd, "Generated %s (%d declarations, %d skipped)",
		outputName(a.cfg.Output), len(res.Declarations), res.Skipped())

	if format != "" {
		// Keep stdout clean when the declarations went there
		w := cmd.OutOrStdout()
		if a.cfg.Output == "" {
			w = cmd.ErrOrStderr()
		}
		return display.Fprint(w, format, report{
			RunID:        a.runID,
			Inputs:       r.inputs,
			Output:       a.cfg.Output,
			Language:     res.Language,
			Declarations: res.Declarations,
			Diagnostics:  res.Diagnostics,
		})
	}
	return nil
}

func printDiagnostics(w io.Writer, diags []typegen.Diagnostic) {
	warn := pterm.Warning.WithWriter(w)
	for _, d := range diags {
		if d.Item != "" {
			warn.Printfln("skipped %s (item %d): %s", d.Item, d.Index, d.Message)
		} else {
			warn.Printfln("skipped item %d: %s", d.Index, d.Message)
		}
	}
}

func outputName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
