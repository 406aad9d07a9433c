package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/abdidvp/pystyle/internal/adapters/outbound/tui"
	"github.com/abdidvp/pystyle/internal/adapters/outbound/watcher"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file|dir>",
		Short: "Re-check Python files whenever they change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			a, err := opts.newApp(cmd, root)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			// 1. Start watching before the first check so no write is missed.
			w, err := watcher.New(root, a.scanner.Skips, a.logger)
			if err != nil {
				return fmt.Errorf("watching %s: %w", root, err)
			}
			defer w.Close()

			// 2. Initial pass over everything.
			out := cmd.OutOrStdout()
			reports, err := a.check.CheckPaths(ctx, []string{root})
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}
			renderCheckReports(cmd, reports)
			fmt.Fprintf(out, "\nWatching %s for changes (Ctrl+C to stop)\n", root)

			// 3. Re-check each changed file. Errors are printed, not fatal.
			return w.Run(ctx, func(path string) {
				recheck(ctx, cmd, a, path)
			})
		},
	}
	return cmd
}

func recheck(ctx context.Context, cmd *cobra.Command, a *app, path string) {
	report, err := a.check.CheckFile(ctx, path)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s: %v\n", path, err)
		return
	}
	fmt.Fprint(cmd.OutOrStdout(), tui.RenderCheckReport(report))
}
