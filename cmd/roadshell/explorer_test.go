package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"road-graph-server/roadgraph"
)

func squareExplorer(t *testing.T) *explorer {
	t.Helper()
	e := newExplorer()
	commands := [][]string{
		{"0", "0"}, {"0", "1"}, {"1", "1"}, {"1", "0"}, {"5", "5"},
	}
	for _, args := range commands {
		if _, err := e.vertex(args); err != nil {
			t.Fatalf("vertex %v: %v", args, err)
		}
	}
	edges := [][]string{
		{"0", "0", "0", "1", "1", "North Rd", "residential"},
		{"0", "1", "1", "1", "1"},
		{"0", "0", "1", "0", "5", "East Rd"},
		{"1", "0", "1", "1", "1"},
	}
	for _, args := range edges {
		if _, err := e.edge(args); err != nil {
			t.Fatalf("edge %v: %v", args, err)
		}
	}
	return e
}

func TestExplorerRoute(t *testing.T) {
	e := squareExplorer(t)
	for _, s := range []string{"bfs", "dijkstra", "astar"} {
		out, err := e.route([]string{s, "0", "0", "1", "1"})
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if !strings.HasSuffix(out, "(0, 0) -> (0, 1) -> (1, 1)") {
			t.Errorf("%s: output is %q", s, out)
		}
	}

	out, err := e.route([]string{"astar", "0", "0", "5", "5"})
	if err != nil || !strings.HasPrefix(out, "astar: no path") {
		t.Errorf("unreachable route is %q/%v", out, err)
	}
}

func TestExplorerTrace(t *testing.T) {
	e := squareExplorer(t)
	out, err := e.trace([]string{"bfs", "0", "0", "1", "1"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "visited: (0, 1) (1, 0) (1, 1)\n") {
		t.Errorf("trace output is %q", out)
	}
}

func TestExplorerErrors(t *testing.T) {
	e := squareExplorer(t)

	if _, err := e.edge([]string{"0", "0", "9", "9", "1"}); !errors.Is(err, roadgraph.ErrUnknownVertex) {
		t.Errorf("edge to an unknown vertex: %v", err)
	}
	if _, err := e.edge([]string{"0", "0", "0", "1", "-2"}); !errors.Is(err, roadgraph.ErrNegativeLength) {
		t.Errorf("negative edge: %v", err)
	}
	if _, err := e.route([]string{"greedy", "0", "0", "1", "1"}); !errors.Is(err, roadgraph.ErrUnknownStrategy) {
		t.Errorf("unknown strategy: %v", err)
	}
	if _, err := e.route([]string{"bfs", "0", "x", "1", "1"}); err == nil {
		t.Error("non-numeric coordinate accepted")
	}
	if _, err := e.vertex([]string{"1"}); err == nil {
		t.Error("vertex with one coordinate accepted")
	}
	if out, _ := e.vertex([]string{"0", "0"}); !strings.Contains(out, "not added") {
		t.Errorf("duplicate vertex output is %q", out)
	}
}

func TestExplorerQueries(t *testing.T) {
	e := squareExplorer(t)

	if out, _ := e.stats(nil); out != "5 vertices, 4 edges" {
		t.Errorf("stats is %q", out)
	}
	if out, _ := e.roads([]string{"north"}); !strings.Contains(out, `"North Rd" [residential]`) {
		t.Errorf("roads is %q", out)
	}
	if out, _ := e.roads([]string{"elm"}); !strings.HasPrefix(out, "No roads") {
		t.Errorf("roads without match is %q", out)
	}
	if out, _ := e.nearest([]string{"0.9", "0.1"}); !strings.HasPrefix(out, "(1, 0)") {
		t.Errorf("nearest is %q", out)
	}
	if out, _ := e.dump(nil); !strings.HasPrefix(out, "#Vertices: 5 #Edges: 4") {
		t.Errorf("dump is %q", out)
	}
}

func TestExplorerLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.map")
	content := "0 0 0 0.001 \"Tiny St\" residential\n0 0.001 0 0.002 \"Tiny St\" residential\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	e := newExplorer()
	out, err := e.load([]string{path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.Contains(out, "3 vertices and 2 edges") {
		t.Errorf("load output is %q", out)
	}
	if _, err := e.load(nil); err == nil {
		t.Error("load without a file accepted")
	}
}
