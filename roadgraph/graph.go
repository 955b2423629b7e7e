package roadgraph

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

// vertex is an intersection together with its outgoing road segments.
// It carries no search bookkeeping.
type vertex struct {
	point Point
	edges []Edge
}

// Graph is a directed graph of intersections keyed by Point. Mutations take
// the write lock and searches take the read lock, so any number of searches
// may run over one graph at the same time.
type Graph struct {
	mu        sync.RWMutex
	vertices  map[Point]*vertex
	edgeCount int
	roads     map[string][]Edge // lower-cased road name -> segments
}

func NewGraph() *Graph {
	return &Graph{
		vertices: make(map[Point]*vertex),
		roads:    make(map[string][]Edge),
	}
}

// AddVertex inserts p as a vertex. It returns false if p is invalid or
// already present, in which case the graph is left unchanged.
func (g *Graph) AddVertex(p Point) bool {
	if !p.Valid() {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.vertices[p]; ok {
		return false
	}
	g.vertices[p] = &vertex{point: p}
	return true
}

// AddEdge adds a directed road segment from one existing vertex to another.
// Every failure wraps ErrInvalidArgument and leaves the graph unchanged.
func (g *Graph) AddEdge(from, to Point, name, category string, length float64) error {
	if !from.Valid() {
		return fmt.Errorf("add edge from %v: %w", from, ErrInvalidPoint)
	}
	if !to.Valid() {
		return fmt.Errorf("add edge to %v: %w", to, ErrInvalidPoint)
	}
	if length < 0 || math.IsNaN(length) {
		return fmt.Errorf("add edge %v -> %v with length %g: %w", from, to, length, ErrNegativeLength)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	src, ok := g.vertices[from]
	if !ok {
		return fmt.Errorf("add edge from %v: %w", from, ErrUnknownVertex)
	}
	if _, ok := g.vertices[to]; !ok {
		return fmt.Errorf("add edge to %v: %w", to, ErrUnknownVertex)
	}

	e := Edge{From: from, To: to, Name: name, Category: category, Length: length}
	src.edges = append(src.edges, e)
	g.edgeCount++
	if name != "" {
		key := strings.ToLower(name)
		g.roads[key] = append(g.roads[key], e)
	}
	return nil
}

// Neighbors returns a copy of the outgoing edges of p in insertion order.
// Unknown points have no neighbors.
func (g *Graph) Neighbors(p Point) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]Edge(nil), g.neighbors(p)...)
}

// neighbors must be called with the lock held. The slice must not be modified.
func (g *Graph) neighbors(p Point) []Edge {
	v, ok := g.vertices[p]
	if !ok {
		return nil
	}
	return v.edges
}

func (g *Graph) HasVertex(p Point) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.vertices[p]
	return ok
}

// Vertices returns every vertex, ordered by Point.Less.
func (g *Graph) Vertices() []Point {
	g.mu.RLock()
	defer g.mu.RUnlock()

	points := make([]Point, 0, len(g.vertices))
	for p := range g.vertices {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Less(points[j]) })
	return points
}

func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.vertices)
}

func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edgeCount
}

// RoadsNamed returns the segments whose road name starts with prefix,
// ignoring case. Results are grouped by road name in alphabetical order.
func (g *Graph) RoadsNamed(prefix string) []Edge {
	prefix = strings.ToLower(prefix)

	g.mu.RLock()
	defer g.mu.RUnlock()

	var names []string
	for name := range g.roads {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var edges []Edge
	for _, name := range names {
		edges = append(edges, g.roads[name]...)
	}
	return edges
}

// Nearest returns the vertex closest to p by great-circle distance, and that
// distance in kilometres. It returns false on an empty graph.
func (g *Graph) Nearest(p Point) (Point, float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var nearest Point
	minDistance := math.Inf(1)
	found := false
	for q := range g.vertices {
		dist := p.GreatCircle(q)
		if dist < minDistance || (dist == minDistance && q.Less(nearest)) {
			minDistance = dist
			nearest = q
			found = true
		}
	}
	return nearest, minDistance, found
}

// PathLength sums, for each consecutive pair in path, the shortest edge
// joining them. It returns false if some pair is not joined by an edge.
func (g *Graph) PathLength(path []Point) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	total := 0.0
	for i := 1; i < len(path); i++ {
		best := math.Inf(1)
		for _, e := range g.neighbors(path[i-1]) {
			if e.To == path[i] && e.Length < best {
				best = e.Length
			}
		}
		if math.IsInf(best, 1) {
			return 0, false
		}
		total += best
	}
	return total, true
}

// String dumps the adjacency lists, one vertex per line.
func (g *Graph) String() string {
	points := g.Vertices()

	g.mu.RLock()
	defer g.mu.RUnlock()

	var sb strings.Builder
	fmt.Fprintf(&sb, "#Vertices: %d #Edges: %d\n", len(g.vertices), g.edgeCount)
	for _, p := range points {
		fmt.Fprintf(&sb, "%v:", p)
		for _, e := range g.vertices[p].edges {
			fmt.Fprintf(&sb, " %v(%g)", e.To, e.Length)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
