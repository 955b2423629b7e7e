package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"road-graph-server/preprocessing"
	"road-graph-server/roadgraph"
)

type mapDump struct {
	Source  string                  `json:"source"`
	Summary map[string]int          `json:"summary"`
	Roads   map[string]int          `json:"roadsByCategory"`
	Route   *routeDump              `json:"route,omitempty"`
	Load    preprocessing.LoadStats `json:"load"`
}

type routeDump struct {
	Strategy roadgraph.Strategy `json:"strategy"`
	Start    roadgraph.Point    `json:"start"`
	Goal     roadgraph.Point    `json:"goal"`
	Result   roadgraph.Result   `json:"result"`
}

func parsePoint(s string) (roadgraph.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return roadgraph.Point{}, fmt.Errorf("point %q is not lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return roadgraph.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return roadgraph.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return roadgraph.NewPoint(lat, lon), nil
}

func main() {
	var mapFile, out, strategy, from, to string
	flag.StringVar(&mapFile, "map", "data/maps/ucsd.map", "Path to a road map (.map) or OSMnx node-link (.json) file")
	flag.StringVar(&out, "out", "preprocessing/cache/map_index.json", "Path to write JSON summary of the map")
	flag.StringVar(&strategy, "strategy", "astar", "Search strategy for -from/-to: bfs, dijkstra or astar")
	flag.StringVar(&from, "from", "", "Optional route start as lat,lon (snapped to the nearest vertex)")
	flag.StringVar(&to, "to", "", "Optional route goal as lat,lon (snapped to the nearest vertex)")
	flag.Parse()

	g := roadgraph.NewGraph()
	stats, err := preprocessing.LoadFile(mapFile, g)
	if err != nil {
		log.Fatalf("failed to load map: %v", err)
	}

	dump := mapDump{
		Source: mapFile,
		Summary: map[string]int{
			"vertices": g.VertexCount(),
			"edges":    g.EdgeCount(),
		},
		Roads: make(map[string]int),
		Load:  stats,
	}
	for _, p := range g.Vertices() {
		for _, e := range g.Neighbors(p) {
			dump.Roads[e.Category]++
		}
	}

	if from != "" && to != "" {
		s, err := roadgraph.ParseStrategy(strategy)
		if err != nil {
			log.Fatalf("invalid -strategy: %v", err)
		}
		route, err := planRoute(g, s, from, to)
		if err != nil {
			log.Fatalf("failed to plan route: %v", err)
		}
		dump.Route = route
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		log.Fatalf("failed to ensure cache dir: %v", err)
	}

	f, err := os.Create(out)
	if err != nil {
		log.Fatalf("failed to create output file %s: %v", out, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&dump); err != nil {
		log.Fatalf("failed to write JSON: %v", err)
	}

	fmt.Printf("Map index written to %s\n", out)
	fmt.Printf("Summary: vertices=%d edges=%d categories=%d\n",
		g.VertexCount(), g.EdgeCount(), len(dump.Roads))
	if dump.Route != nil {
		fmt.Printf("Route (%v): found=%v hops=%d cost=%.4f\n",
			dump.Route.Strategy, dump.Route.Result.Found, dump.Route.Result.Hops, dump.Route.Result.Cost)
	}
}

func planRoute(g *roadgraph.Graph, s roadgraph.Strategy, from, to string) (*routeDump, error) {
	startCoord, err := parsePoint(from)
	if err != nil {
		return nil, err
	}
	goalCoord, err := parsePoint(to)
	if err != nil {
		return nil, err
	}

	start, startDist, ok := g.Nearest(startCoord)
	if !ok {
		return nil, fmt.Errorf("map has no vertices")
	}
	goal, goalDist, _ := g.Nearest(goalCoord)
	log.Printf("Snapped start to %v (%.3f km away), goal to %v (%.3f km away)", start, startDist, goal, goalDist)

	var res roadgraph.Result
	if s == roadgraph.StrategyAStar {
		// Map lengths are kilometres, so use the matching heuristic.
		res = g.AStarWith(roadgraph.GreatCircleKm, start, goal, nil)
	} else {
		res, err = g.ShortestPath(s, start, goal, nil)
		if err != nil {
			return nil, err
		}
	}
	return &routeDump{Strategy: s, Start: start, Goal: goal, Result: res}, nil
}
