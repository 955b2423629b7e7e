package roadgraph

// StraightLine is the default A* heuristic: the straight-line distance from
// p to goal. It is admissible on any graph whose edges are at least as long
// as the coordinate distance between their endpoints.
func StraightLine(goal, p Point) float64 {
	return goal.Distance(p)
}

// GreatCircleKm is an admissible heuristic for graphs whose edge lengths
// are road distances in kilometres.
func GreatCircleKm(goal, p Point) float64 {
	return goal.GreatCircle(p)
}

// AStar finds a minimum-length path from start to goal, guided by the
// straight-line heuristic.
func (g *Graph) AStar(start, goal Point, onVisit Visitor) Result {
	return g.AStarWith(StraightLine, start, goal, onVisit)
}

// AStarWith runs A* with a caller supplied heuristic. A nil heuristic
// behaves like Dijkstra.
func (g *Graph) AStarWith(h Heuristic, start, goal Point, onVisit Visitor) Result {
	if h == nil {
		h = ZeroHeuristic
	}

	return g.run("A*", start, goal, onVisit, func(state *searchState) Result {
		return g.weightedSearch(start, goal, h, state)
	})
}
