package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/pystyle/internal/adapters/outbound/tui"
	"github.com/abdidvp/pystyle/internal/domain/rules"
)

type ruleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

func newRulesCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		path       string
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules in the order they run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.configLoader().Load(path)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			all := rules.All()
			if jsonOutput {
				infos := make([]ruleInfo, 0, len(all))
				for _, r := range all {
					infos = append(infos, ruleInfo{Name: r.Name(), Description: r.Description(), Enabled: !cfg.IsDisabled(r.Name())})
				}
				return writeJSON(cmd, infos)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(all, cfg))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&path, "path", ".", "Show which rules the config for this path disables")

	return cmd
}
