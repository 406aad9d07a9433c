package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/abdidvp/pystyle/internal/adapters/inbound/mcp"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the pystyle MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *rootOptions) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the pystyle MCP server (stdio)",
		Long: "Start the pystyle MCP server using stdio transport. This lets AI coding assistants " +
			"check and fix Python files and compare the findings with flake8.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				projectPath = "."
			}
			a, err := opts.newApp(cmd, projectPath)
			if err != nil {
				return err
			}
			s := mcpadapter.NewPystyleMCPServer(projectPath, mcpadapter.Services{
				Check:   a.check,
				Fix:     a.fix,
				Compare: a.compare,
				Config:  a.config,
			}, version)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")

	return cmd
}
