package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"road-graph-server/api"
	"road-graph-server/roadgraph"
)

// Arguments structs

type ShortestPathArgs struct {
	Strategy string  `json:"strategy,omitempty" jsonschema:"One of bfs, dijkstra or astar. Defaults to astar"`
	StartLat float64 `json:"start_lat" jsonschema:"Latitude of the start intersection"`
	StartLon float64 `json:"start_lon" jsonschema:"Longitude of the start intersection"`
	GoalLat  float64 `json:"goal_lat" jsonschema:"Latitude of the goal intersection"`
	GoalLon  float64 `json:"goal_lon" jsonschema:"Longitude of the goal intersection"`
	Snap     bool    `json:"snap,omitempty" jsonschema:"If true, start and goal are moved to their nearest intersections"`
}

type GraphStatsArgs struct{}

type FindRoadArgs struct {
	Prefix string `json:"prefix" jsonschema:"Case-insensitive prefix of the road name"`
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to encode result: %v", err))
	}
	return textResult(string(jsonBytes))
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "shortest_path",
		Description: "Finds a path between two intersections of the loaded road graph",
	}, s.shortestPath)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "graph_stats",
		Description: "Returns the number of intersections and road segments in the graph",
	}, s.graphStats)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "find_road",
		Description: "Lists the road segments whose name starts with a prefix",
	}, s.findRoad)
}

func (s *Server) shortestPath(ctx context.Context, req *mcp.CallToolRequest, args ShortestPathArgs) (*mcp.CallToolResult, any, error) {
	strategy := roadgraph.StrategyAStar
	if args.Strategy != "" {
		parsed, err := roadgraph.ParseStrategy(args.Strategy)
		if err != nil {
			return errorResult(err.Error()), nil, nil
		}
		strategy = parsed
	}

	start := roadgraph.NewPoint(args.StartLat, args.StartLon)
	goal := roadgraph.NewPoint(args.GoalLat, args.GoalLon)
	if args.Snap {
		start, _, _ = s.graph.Nearest(start)
		goal, _, _ = s.graph.Nearest(goal)
	}

	res, err := s.graph.ShortestPath(strategy, start, goal, nil)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	if !res.Found {
		return textResult(fmt.Sprintf("No %v path from %v to %v", strategy, start, goal)), nil, nil
	}
	return jsonResult(api.PrepareResponse(api.NewRequestID(), strategy, start, goal, res)), nil, nil
}

func (s *Server) graphStats(ctx context.Context, req *mcp.CallToolRequest, args GraphStatsArgs) (*mcp.CallToolResult, any, error) {
	return jsonResult(api.GraphStats{
		Vertices: s.graph.VertexCount(),
		Edges:    s.graph.EdgeCount(),
	}), nil, nil
}

func (s *Server) findRoad(ctx context.Context, req *mcp.CallToolRequest, args FindRoadArgs) (*mcp.CallToolResult, any, error) {
	if args.Prefix == "" {
		return errorResult("prefix must not be empty"), nil, nil
	}
	roads := s.graph.RoadsNamed(args.Prefix)
	if len(roads) == 0 {
		return textResult(fmt.Sprintf("No roads start with %q", args.Prefix)), nil, nil
	}
	return jsonResult(roads), nil, nil
}
