package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/pystyle/internal/adapters/outbound/metrics"
	"github.com/abdidvp/pystyle/internal/adapters/outbound/tui"
)

func newCompareCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput  bool
		showHistory bool
		metricsOut  string
	)

	cmd := &cobra.Command{
		Use:   "compare <file>",
		Short: "Compare pystyle's findings with the external linter",
		Long: "Run the rules and the configured linter (flake8 by default) on the same file, " +
			"partition the findings and report the time and memory each tool took.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			a, err := opts.newApp(cmd, path)
			if err != nil {
				return err
			}

			if showHistory {
				entries, err := a.compare.History(path)
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				if jsonOutput {
					return writeJSON(cmd, entries)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			c, err := a.compare.Compare(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("compare failed: %w", err)
			}

			if metricsOut != "" {
				m := metrics.New()
				m.Observe(c)
				if err := m.WriteTextfile(metricsOut); err != nil {
					return err
				}
			}

			if jsonOutput {
				return writeJSON(cmd, c)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderComparison(c))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show previous compare runs for the file instead of running one")
	cmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write Prometheus textfile metrics to this path")

	return cmd
}
