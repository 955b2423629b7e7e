package main

import (
	"fmt"
	"strconv"
	"strings"

	"road-graph-server/preprocessing"
	"road-graph-server/roadgraph"
)

// explorer holds the graph being built and queried from the shell. Each
// command takes the shell arguments and returns the text to print.
type explorer struct {
	graph *roadgraph.Graph
}

func newExplorer() *explorer {
	return &explorer{graph: roadgraph.NewGraph()}
}

func parseFloats(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%q) is not a number", i+1, arg)
		}
		values[i] = v
	}
	return values, nil
}

func (e *explorer) load(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("syntax: load <file.map|file.json>")
	}
	stats, err := preprocessing.LoadFile(args[0], e.graph)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Loaded %d lines: %d new vertices, %d edges. Graph now has %d vertices and %d edges.",
		stats.Lines, stats.Vertices, stats.Edges, e.graph.VertexCount(), e.graph.EdgeCount()), nil
}

func (e *explorer) vertex(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("syntax: vertex <lat> <lon>")
	}
	v, err := parseFloats(args)
	if err != nil {
		return "", err
	}
	p := roadgraph.NewPoint(v[0], v[1])
	if !e.graph.AddVertex(p) {
		return fmt.Sprintf("%v not added (invalid or already present)", p), nil
	}
	return fmt.Sprintf("Added %v", p), nil
}

func (e *explorer) edge(args []string) (string, error) {
	if len(args) < 5 || len(args) > 7 {
		return "", fmt.Errorf("syntax: edge <lat1> <lon1> <lat2> <lon2> <length> [name] [category]")
	}
	v, err := parseFloats(args[:5])
	if err != nil {
		return "", err
	}
	var name, category string
	if len(args) > 5 {
		name = args[5]
	}
	if len(args) > 6 {
		category = args[6]
	}

	from, to := roadgraph.NewPoint(v[0], v[1]), roadgraph.NewPoint(v[2], v[3])
	if err := e.graph.AddEdge(from, to, name, category, v[4]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added %v -> %v (%g)", from, to, v[4]), nil
}

func (e *explorer) runSearch(args []string, onVisit roadgraph.Visitor) (roadgraph.Strategy, roadgraph.Result, error) {
	if len(args) != 5 {
		return 0, roadgraph.Result{}, fmt.Errorf("syntax: <bfs|dijkstra|astar> <lat1> <lon1> <lat2> <lon2>")
	}
	strategy, err := roadgraph.ParseStrategy(args[0])
	if err != nil {
		return 0, roadgraph.Result{}, err
	}
	v, err := parseFloats(args[1:])
	if err != nil {
		return 0, roadgraph.Result{}, err
	}
	start, goal := roadgraph.NewPoint(v[0], v[1]), roadgraph.NewPoint(v[2], v[3])
	res, err := e.graph.ShortestPath(strategy, start, goal, onVisit)
	return strategy, res, err
}

func formatResult(strategy roadgraph.Strategy, res roadgraph.Result) string {
	if !res.Found {
		return fmt.Sprintf("%v: no path (%d points visited)", strategy, res.Visited)
	}
	points := make([]string, len(res.Path))
	for i, p := range res.Path {
		points[i] = p.String()
	}
	return fmt.Sprintf("%v: %d hops, cost %g, %d points visited\n%s",
		strategy, res.Hops, res.Cost, res.Visited, strings.Join(points, " -> "))
}

func (e *explorer) route(args []string) (string, error) {
	strategy, res, err := e.runSearch(args, nil)
	if err != nil {
		return "", err
	}
	return formatResult(strategy, res), nil
}

// trace is route plus the list of visited points in discovery order.
func (e *explorer) trace(args []string) (string, error) {
	var visits []string
	strategy, res, err := e.runSearch(args, func(p roadgraph.Point) {
		visits = append(visits, p.String())
	})
	if err != nil {
		return "", err
	}
	return "visited: " + strings.Join(visits, " ") + "\n" + formatResult(strategy, res), nil
}

func (e *explorer) stats(args []string) (string, error) {
	return fmt.Sprintf("%d vertices, %d edges", e.graph.VertexCount(), e.graph.EdgeCount()), nil
}

func (e *explorer) roads(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("syntax: roads <name prefix>")
	}
	roads := e.graph.RoadsNamed(args[0])
	if len(roads) == 0 {
		return fmt.Sprintf("No roads start with %q", args[0]), nil
	}
	lines := make([]string, len(roads))
	for i, r := range roads {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n"), nil
}

func (e *explorer) nearest(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("syntax: nearest <lat> <lon>")
	}
	v, err := parseFloats(args)
	if err != nil {
		return "", err
	}
	p, dist, ok := e.graph.Nearest(roadgraph.NewPoint(v[0], v[1]))
	if !ok {
		return "Graph is empty", nil
	}
	return fmt.Sprintf("%v (%.3f km away)", p, dist), nil
}

func (e *explorer) dump(args []string) (string, error) {
	return strings.TrimRight(e.graph.String(), "\n"), nil
}
