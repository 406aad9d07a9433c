package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// errFindings makes the process exit non-zero without printing anything;
// the report already said what was found.
var errFindings = errors.New("violations found")

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "pystyle",
		Short: "Check and fix Python style",
		Long: "pystyle checks Python files against a fixed set of style rules, rewrites " +
			"what it can fix safely and compares its findings with flake8.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, off)")
	cmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "Write logs as JSON")
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Use this config file instead of searching for one")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newFixCmd(opts))
	cmd.AddCommand(newCompareCmd(opts))
	cmd.AddCommand(newFormatCmd(opts))
	cmd.AddCommand(newInteractiveCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newRulesCmd(opts))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// IsFindings reports whether err only signals that findings were reported.
func IsFindings(err error) bool {
	return errors.Is(err, errFindings)
}

func Execute() error {
	err := newRootCmd().Execute()
	if err != nil && !IsFindings(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
