package roadgraph

import (
	"fmt"
	"log"
)

// LogSearches enables a log line at the start and end of every search.
var LogSearches = false

func logf(format string, args ...interface{}) {
	if LogSearches {
		log.Printf(format, args...)
	}
}

// Visitor observes each point whose best known cost is (re)established
// during a search. Visits are replayed in order on the calling goroutine
// after the search has released the graph, so a visitor may block or
// mutate the graph. A nil Visitor does nothing.
type Visitor func(Point)

// Result is the outcome of a path query. Path is nil exactly when Found is
// false; otherwise it starts with the start point and ends with the goal.
type Result struct {
	Path    []Point `json:"path"`
	Found   bool    `json:"found"`
	Cost    float64 `json:"cost"`    // Summed length of the edges along Path
	Hops    int     `json:"hops"`    // Number of edges along Path
	Visited int     `json:"visited"` // Number of visitor notifications
}

func notFound(visited int) Result {
	return Result{Visited: visited}
}

// link is the best known way of reaching a point.
type link struct {
	prev   Point
	length float64
}

// searchState is the bookkeeping of a single search. It is created when the
// search starts and dropped when it returns.
type searchState struct {
	visited map[Point]bool
	parent  map[Point]link
	onVisit Visitor
	visits  int
	pending []Point
}

func newSearchState(onVisit Visitor) *searchState {
	return &searchState{
		visited: make(map[Point]bool),
		parent:  make(map[Point]link),
		onVisit: onVisit,
	}
}

// notify records a visit of p for later delivery.
func (s *searchState) notify(p Point) {
	s.visits++
	if s.onVisit != nil {
		s.pending = append(s.pending, p)
	}
}

// deliver hands the recorded visits to the visitor. It must be called
// without the graph lock held.
func (s *searchState) deliver() {
	for _, p := range s.pending {
		s.visit(p)
	}
	s.pending = nil
}

// visit calls the visitor once. A panicking visitor is logged and otherwise
// ignored, so observation can never change the outcome of a search.
func (s *searchState) visit(p Point) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("WARNING: visitor panicked at %v: %v", p, r)
		}
	}()
	s.onVisit(p)
}

// run executes one search under the read lock, then delivers its visits.
func (g *Graph) run(name string, start, goal Point, onVisit Visitor, search func(*searchState) Result) Result {
	state := newSearchState(onVisit)
	res := func() Result {
		g.mu.RLock()
		defer g.mu.RUnlock()

		logf("Starting %s from %v to %v, graph has %d vertices", name, start, goal, len(g.vertices))
		return search(state)
	}()
	state.deliver()
	logSummary(name, start, goal, res)
	return res
}

// found reconstructs the path to goal and packs it into a Result.
func (s *searchState) found(start, goal Point) Result {
	path, cost := reconstructPath(start, goal, s.parent)
	return Result{
		Path:    path,
		Found:   true,
		Cost:    cost,
		Hops:    len(path) - 1,
		Visited: s.visits,
	}
}

// reconstructPath walks the parent links back from goal to start and
// returns the path in forward order with its summed edge length. Every
// chain must end at start; a broken chain panics.
func reconstructPath(start, goal Point, parent map[Point]link) ([]Point, float64) {
	path := []Point{goal}
	cost := 0.0
	for current := goal; current != start; {
		l, ok := parent[current]
		if !ok {
			panic(fmt.Sprintf("roadgraph: parent chain from %v broken at %v", goal, current))
		}
		cost += l.length
		current = l.prev
		path = append(path, current)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, cost
}
