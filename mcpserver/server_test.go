package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"road-graph-server/api"
	"road-graph-server/roadgraph"
)

func squareGraph(t *testing.T) *roadgraph.Graph {
	t.Helper()
	g := roadgraph.NewGraph()
	a, b, c, d := roadgraph.NewPoint(0, 0), roadgraph.NewPoint(0, 1), roadgraph.NewPoint(1, 1), roadgraph.NewPoint(1, 0)
	for _, p := range []roadgraph.Point{a, b, c, d, roadgraph.NewPoint(5, 5)} {
		g.AddVertex(p)
	}
	for _, e := range []roadgraph.Edge{
		{From: a, To: b, Name: "North Rd", Length: 1},
		{From: b, To: c, Name: "East Rd", Length: 1},
		{From: a, To: d, Name: "East Rd", Length: 5},
		{From: d, To: c, Name: "North Rd", Length: 1},
	} {
		if err := g.AddEdge(e.From, e.To, e.Name, "residential", e.Length); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	return g
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("result has %d content items, should be 1", len(res.Content))
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, should be text", res.Content[0])
	}
	return text.Text
}

func TestShortestPathTool(t *testing.T) {
	s := New(squareGraph(t))
	ctx := context.Background()

	for _, strategy := range []string{"", "bfs", "dijkstra", "astar"} {
		res, _, err := s.shortestPath(ctx, nil, ShortestPathArgs{Strategy: strategy, GoalLat: 1, GoalLon: 1})
		if err != nil || res.IsError {
			t.Fatalf("strategy %q: %v / %s", strategy, err, resultText(t, res))
		}
		var resp api.RouteResponse
		if err := json.Unmarshal([]byte(resultText(t, res)), &resp); err != nil {
			t.Fatalf("strategy %q: %v", strategy, err)
		}
		if !resp.Found || resp.Hops != 2 || resp.Cost != 2 {
			t.Errorf("strategy %q: response is %+v", strategy, resp)
		}
	}
}

func TestShortestPathToolEdgeCases(t *testing.T) {
	s := New(squareGraph(t))
	ctx := context.Background()

	res, _, _ := s.shortestPath(ctx, nil, ShortestPathArgs{Strategy: "greedy"})
	if !res.IsError || !strings.Contains(resultText(t, res), "unknown search strategy") {
		t.Errorf("unknown strategy result is %q", resultText(t, res))
	}

	res, _, _ = s.shortestPath(ctx, nil, ShortestPathArgs{GoalLat: 5, GoalLon: 5})
	if res.IsError || !strings.HasPrefix(resultText(t, res), "No astar path") {
		t.Errorf("unreachable result is %q", resultText(t, res))
	}

	res, _, _ = s.shortestPath(ctx, nil, ShortestPathArgs{StartLat: 0.1, StartLon: -0.1, GoalLat: 0.9, GoalLon: 1.1, Snap: true})
	if res.IsError || !strings.Contains(resultText(t, res), `"found": true`) {
		t.Errorf("snapped result is %q", resultText(t, res))
	}
}

func TestGraphStatsAndFindRoad(t *testing.T) {
	s := New(squareGraph(t))
	ctx := context.Background()

	res, _, _ := s.graphStats(ctx, nil, GraphStatsArgs{})
	var stats api.GraphStats
	if err := json.Unmarshal([]byte(resultText(t, res)), &stats); err != nil {
		t.Fatal(err)
	}
	if stats != (api.GraphStats{Vertices: 5, Edges: 4}) {
		t.Errorf("stats are %+v", stats)
	}

	res, _, _ = s.findRoad(ctx, nil, FindRoadArgs{Prefix: "east"})
	var roads []roadgraph.Edge
	if err := json.Unmarshal([]byte(resultText(t, res)), &roads); err != nil {
		t.Fatal(err)
	}
	if len(roads) != 2 {
		t.Errorf("found %d East Rd segments, should be 2", len(roads))
	}

	if res, _, _ := s.findRoad(ctx, nil, FindRoadArgs{}); !res.IsError {
		t.Error("empty prefix was accepted")
	}
	if res, _, _ := s.findRoad(ctx, nil, FindRoadArgs{Prefix: "elm"}); !strings.HasPrefix(resultText(t, res), "No roads") {
		t.Errorf("unmatched prefix result is %q", resultText(t, res))
	}
}

func TestSchemaMapCoversTools(t *testing.T) {
	m := buildSchemaMap()
	for _, name := range []string{"shortest_path", "graph_stats", "find_road"} {
		if m[name] == "" {
			t.Errorf("no schema for %s", name)
		}
	}
	if !strings.Contains(m["shortest_path"], "start_lat") {
		t.Errorf("shortest_path schema is missing start_lat: %s", m["shortest_path"])
	}
}

func TestInMemorySession(t *testing.T) {
	ctx := context.Background()
	s := New(squareGraph(t))

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := s.MCPServer().Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server Connect: %v", err)
	}
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "road-graph-test", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client Connect: %v", err)
	}
	defer cs.Close()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name: "shortest_path",
		Arguments: map[string]any{
			"strategy":  "bfs",
			"start_lat": 0, "start_lon": 0,
			"goal_lat": 1, "goal_lon": 1,
		},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if res.IsError || !strings.Contains(resultText(t, res), `"hops": 2`) {
		t.Errorf("shortest_path result is %q", resultText(t, res))
	}

	read, err := cs.ReadResource(ctx, &mcp.ReadResourceParams{URI: summaryURI})
	if err != nil {
		t.Fatalf("ReadResource: %v", err)
	}
	if len(read.Contents) != 1 || !strings.HasPrefix(read.Contents[0].Text, "#Vertices: 5") {
		t.Errorf("summary resource is %+v", read.Contents)
	}
}
