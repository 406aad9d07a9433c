package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/pystyle/internal/application"
	"github.com/abdidvp/pystyle/internal/domain"
)

// Services are the application services the MCP tools delegate to.
type Services struct {
	Check   *application.CheckService
	Fix     *application.FixService
	Compare *application.CompareService
	Config  domain.ConfigLoader
}

// NewPystyleMCPServer creates a new MCP server with all pystyle tools and
// resources registered. File arguments are resolved against projectPath and
// may not point outside it.
func NewPystyleMCPServer(projectPath string, svc Services, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"pystyle",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, svc)
	registerResources(s, projectPath, svc)

	return s
}
