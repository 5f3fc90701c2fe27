package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/rs2ts/display"
	"github.com/teranos/rs2ts/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show rs2ts version information",
		Long:  `Display version, build time, commit hash, and platform information for the rs2ts binary.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()

			if display.ShouldOutputJSON(cmd) {
				return display.Fprint(cmd.OutOrStdout(), display.FormatJSON, info)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, info.String())
			fmt.Fprintf(out, "Platform: %s\n", info.Platform)
			fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
			return nil
		},
	}
	cmd.Flags().BoolP("json", "j", false, "Output version info as JSON")
	return cmd
}
