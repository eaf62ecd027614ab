package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewDocMCPServer creates an MCP server with all 5 documentation tools
// registered.
func NewDocMCPServer(svc *DocService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "doctree",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert_project",
		Description: "Convert a project directory into a reflection graph. Parses every supported source file, merges multi-site declarations, resolves type references and heritage, and persists the result.",
	}, svc.ConvertProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_reflections",
		Description: "Search for documented entities (classes, interfaces, functions, etc.) by name substring match. Optionally filter by kind and limit results.",
	}, svc.QueryReflections)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_reflection",
		Description: "Fetch one reflection by id, including its direct children.",
	}, svc.GetReflection)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_hierarchy",
		Description: "Walk extends/implements relationships upward from a reflection. Returns heritage chains up to the specified depth.",
	}, svc.GetHierarchy)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "project_stats",
		Description: "Return reflection and relationship counts for the stored graph.",
	}, svc.ProjectStats)

	return server
}

// RunMCPServer starts an HTTP server exposing the documentation MCP tools.
func RunMCPServer(ctx context.Context, svc *DocService, addr string) error {
	server := NewDocMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
