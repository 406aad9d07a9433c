package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/pystyle/internal/adapters/outbound/tui"
	"github.com/abdidvp/pystyle/internal/domain"
)

func newFixCmd(opts *rootOptions) *cobra.Command {
	var (
		dryRun     bool
		backup     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "fix <file>",
		Short: "Rewrite a Python file to remove fixable violations",
		Long: "Rename identifiers to their conventional case, drop unused imports, add missing " +
			"docstrings and tidy layout, then print a unified diff of the change.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy := domain.BackupPolicy(backup)
			switch policy {
			case "", domain.BackupAuto, domain.BackupAlways, domain.BackupNever:
			default:
				return fmt.Errorf("unknown backup policy %q (valid: auto, always, never)", backup)
			}

			a, err := opts.newApp(cmd, args[0])
			if err != nil {
				return err
			}

			res, err := a.fix.Fix(cmd.Context(), args[0], domain.FixOptions{DryRun: dryRun, Backup: policy})
			if err != nil {
				return fmt.Errorf("fix failed: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, res)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFix(res))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the diff without writing the file")
	cmd.Flags().StringVar(&backup, "backup", "", "Backup policy: auto, always or never (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
