package roadgraph

import (
	"container/heap"
	"math"
)

// Heuristic estimates the remaining cost from p to goal. To keep weighted
// searches optimal it must never overestimate that cost.
type Heuristic func(goal, p Point) float64

// ZeroHeuristic turns the weighted search into plain Dijkstra.
func ZeroHeuristic(goal, p Point) float64 { return 0 }

type PriorityQueueItem struct {
	Point    Point
	Priority float64 // distance + heuristic estimate
	GScore   float64 // distance when the item was queued
}

// PriorityQueue is a min-heap of items ordered by Priority, then by Point.
// Items are never updated in place; a better distance pushes a new item and
// the old one, whose GScore is now above the best distance, is skipped when
// popped.
type PriorityQueue []*PriorityQueueItem

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Priority != pq[j].Priority {
		return pq[i].Priority < pq[j].Priority
	}
	return pq[i].Point.Less(pq[j].Point)
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *PriorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*PriorityQueueItem))
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[0 : n-1]
	return item
}

// Dijkstra finds a path from start to goal with the smallest summed edge
// length.
func (g *Graph) Dijkstra(start, goal Point, onVisit Visitor) Result {
	return g.run("Dijkstra", start, goal, onVisit, func(state *searchState) Result {
		return g.weightedSearch(start, goal, ZeroHeuristic, state)
	})
}

// weightedSearch runs Dijkstra's algorithm with the queue ordered by
// distance plus h. It must be called with the read lock held.
func (g *Graph) weightedSearch(start, goal Point, h Heuristic, state *searchState) Result {
	if !g.endpointsKnown(start, goal) {
		return notFound(0)
	}

	dist := map[Point]float64{start: 0}
	distance := func(p Point) float64 {
		if d, ok := dist[p]; ok {
			return d
		}
		return math.Inf(1)
	}

	openSet := &PriorityQueue{}
	heap.Init(openSet)
	heap.Push(openSet, &PriorityQueueItem{Point: start, Priority: h(goal, start)})

	// scratch holds the current vertex's edges sorted by length.
	var scratch []Edge
	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*PriorityQueueItem)
		if state.visited[current.Point] || current.GScore > dist[current.Point] {
			continue
		}
		state.visited[current.Point] = true
		if current.Point == goal {
			return state.found(start, goal)
		}

		scratch = append(scratch[:0], g.neighbors(current.Point)...)
		SortByLength(scratch)

		base := dist[current.Point]
		for _, e := range scratch {
			next := e.To
			if state.visited[next] {
				continue
			}
			candidate := base + e.Length
			if candidate >= distance(next) {
				continue
			}
			dist[next] = candidate
			heap.Push(openSet, &PriorityQueueItem{
				Point:    next,
				Priority: candidate + h(goal, next),
				GScore:   candidate,
			})
			state.parent[next] = link{prev: current.Point, length: e.Length}
			state.notify(next)
		}
	}
	return notFound(state.visits)
}
