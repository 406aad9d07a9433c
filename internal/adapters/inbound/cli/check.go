package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/pystyle/internal/adapters/outbound/cache"
	"github.com/abdidvp/pystyle/internal/adapters/outbound/report"
	"github.com/abdidvp/pystyle/internal/adapters/outbound/tui"
	"github.com/abdidvp/pystyle/internal/domain"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput  bool
		sarifOutput bool
		useCache    bool
	)

	cmd := &cobra.Command{
		Use:   "check <file|dir>...",
		Short: "Check Python files for style violations",
		Long: "Run every enabled rule over the given files. Directories are searched for .py files. " +
			"Exits 1 when a violation is found or a file cannot be checked.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd, args[0])
			if err != nil {
				return err
			}

			svc := a.check
			if useCache {
				svc = svc.WithCache(cache.New(), cacheRoot(args[0]), version)
			}

			reports, err := svc.CheckPaths(cmd.Context(), args)
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			switch {
			case jsonOutput:
				err = writeJSON(cmd, reports)
			case sarifOutput:
				err = report.WriteSARIF(cmd.OutOrStdout(), reports, version)
			default:
				renderCheckReports(cmd, reports)
			}
			if err != nil {
				return err
			}

			for _, r := range reports {
				if r.HasFindings() || r.Failed() {
					return errFindings
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&sarifOutput, "sarif", false, "Output as SARIF 2.1.0")
	cmd.Flags().BoolVar(&useCache, "cache", false, "Reuse results for files unchanged since the last cached run")
	cmd.MarkFlagsMutuallyExclusive("json", "sarif")

	return cmd
}

func renderCheckReports(cmd *cobra.Command, reports []*domain.CheckReport) {
	if len(reports) == 1 {
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderCheckReport(reports[0]))
		return
	}
	fmt.Fprint(cmd.OutOrStdout(), tui.RenderCheckSummary(reports))
}

// cacheRoot is the directory the cache lives in: the first path when it is a
// directory, its parent otherwise.
func cacheRoot(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
