package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/pystyle/internal/domain"
	"github.com/abdidvp/pystyle/internal/domain/rules"
)

// registerTools registers all pystyle MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, svc Services) {
	// 1. pystyle_check
	s.AddTool(
		mcplib.NewTool("pystyle_check",
			mcplib.WithDescription("Check a Python file against the style rules and return the violations as JSON"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path of the .py file, relative to the project"),
			),
		),
		handleCheck(projectPath, svc),
	)

	// 2. pystyle_fix
	s.AddTool(
		mcplib.NewTool("pystyle_fix",
			mcplib.WithDescription("Fix the style violations that can be fixed safely and return the unified diff. Dry run unless dry_run is false"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path of the .py file, relative to the project"),
			),
			mcplib.WithBoolean("dry_run",
				mcplib.Description("Only return the diff (default true)"),
				mcplib.DefaultBool(true),
			),
			mcplib.WithString("backup",
				mcplib.Description("Backup policy when writing: auto, always or never"),
				mcplib.Enum("auto", "always", "never"),
			),
		),
		handleFix(projectPath, svc),
	)

	// 3. pystyle_compare
	s.AddTool(
		mcplib.NewTool("pystyle_compare",
			mcplib.WithDescription("Run the style rules and flake8 on a file and partition their findings"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path of the .py file, relative to the project"),
			),
		),
		handleCompare(projectPath, svc),
	)

	// 4. pystyle_rules
	s.AddTool(
		mcplib.NewTool("pystyle_rules",
			mcplib.WithDescription("List the style rules in the order they run and whether the project config enables them"),
		),
		handleRules(projectPath, svc),
	)
}

// resolve joins file to the project root and rejects paths that leave it.
func resolve(projectPath, file string) (string, error) {
	root, err := filepath.Abs(projectPath)
	if err != nil {
		return "", err
	}
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	path = filepath.Clean(path)
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the project", file)
	}
	return path, nil
}

func requireFile(projectPath string, request mcplib.CallToolRequest) (string, error) {
	file, err := request.RequireString("file")
	if err != nil {
		return "", err
	}
	return resolve(projectPath, file)
}

func handleCheck(projectPath string, svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := requireFile(projectPath, request)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, err := svc.Check.CheckFile(ctx, path)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleFix(projectPath string, svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := requireFile(projectPath, request)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		args := request.GetArguments()
		opts := domain.FixOptions{DryRun: true}
		if dryRun, ok := args["dry_run"].(bool); ok {
			opts.DryRun = dryRun
		}
		if backup, ok := args["backup"].(string); ok {
			opts.Backup = domain.BackupPolicy(backup)
		}

		res, err := svc.Fix.Fix(ctx, path, opts)
		if err != nil {
			return errorResult(fmt.Sprintf("fix failed: %v", err)), nil
		}
		return jsonResult(res)
	}
}

func handleCompare(projectPath string, svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := requireFile(projectPath, request)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		c, err := svc.Compare.Compare(ctx, path)
		if err != nil {
			return errorResult(fmt.Sprintf("compare failed: %v", err)), nil
		}
		return jsonResult(c)
	}
}

type ruleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

func handleRules(projectPath string, svc Services) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := svc.Config.Load(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		var infos []ruleInfo
		for _, r := range rules.All() {
			infos = append(infos, ruleInfo{Name: r.Name(), Description: r.Description(), Enabled: !cfg.IsDisabled(r.Name())})
		}
		return jsonResult(infos)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
