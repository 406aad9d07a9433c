package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/pystyle/internal/adapters/outbound/tui"
)

func newFormatCmd(opts *rootOptions) *cobra.Command {
	var (
		preview    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "format <file>",
		Short: "Run the external formatter on a file",
		Long:  "Ask the configured formatter (autopep8 by default) for a diff and apply it in place when it is not empty.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd, args[0])
			if err != nil {
				return err
			}

			name, res, err := a.format.Format(cmd.Context(), args[0], preview)
			if err != nil {
				return fmt.Errorf("format failed: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, res)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFormat(name, res))
			return nil
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "Show the formatter's diff without applying it")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
