package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"road-graph-server/roadgraph"
)

const (
	ServerName    = "road-graph"
	ServerVersion = "v0.1.0"
)

// Server exposes path queries over a road graph as MCP tools.
type Server struct {
	graph     *roadgraph.Graph
	mcpServer *mcp.Server
}

func New(graph *roadgraph.Graph) *Server {
	s := &Server{
		graph: graph,
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		}, nil),
	}
	s.registerTools()
	s.registerResources()
	return s
}

func (s *Server) MCPServer() *mcp.Server {
	return s.mcpServer
}

// Run serves MCP over stdin/stdout until the client disconnects or ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
