package roadgraph

// BFS finds a path from start to goal with the fewest edges, ignoring edge
// lengths. Neighbors are explored in insertion order.
func (g *Graph) BFS(start, goal Point, onVisit Visitor) Result {
	return g.run("BFS", start, goal, onVisit, func(state *searchState) Result {
		return g.breadthFirst(start, goal, state)
	})
}

// breadthFirst must be called with the read lock held.
func (g *Graph) breadthFirst(start, goal Point, state *searchState) Result {
	if !g.endpointsKnown(start, goal) {
		return notFound(0)
	}

	queue := []Point{start}
	state.visited[start] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == goal {
			return state.found(start, goal)
		}

		for _, e := range g.neighbors(current) {
			next := e.To
			if state.visited[next] {
				continue
			}
			state.visited[next] = true
			state.notify(next)
			state.parent[next] = link{prev: current, length: e.Length}
			queue = append(queue, next)
		}
	}
	return notFound(state.visits)
}

// endpointsKnown must be called with the read lock held.
func (g *Graph) endpointsKnown(start, goal Point) bool {
	if _, ok := g.vertices[start]; !ok {
		logf("Start %v is not a vertex", start)
		return false
	}
	if _, ok := g.vertices[goal]; !ok {
		logf("Goal %v is not a vertex", goal)
		return false
	}
	return true
}

func logSummary(name string, start, goal Point, res Result) {
	if !res.Found {
		logf("%s: no path from %v to %v after %d visits", name, start, goal, res.Visited)
		return
	}
	logf("%s path found: %d points, %d hops, cost %.4f, %d visits",
		name, len(res.Path), res.Hops, res.Cost, res.Visited)
}
