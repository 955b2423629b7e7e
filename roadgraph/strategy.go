package roadgraph

import (
	"fmt"
	"strings"
)

type Strategy int

const (
	StrategyBFS Strategy = iota
	StrategyDijkstra
	StrategyAStar
)

// Strategies lists every search strategy in a stable order.
var Strategies = []Strategy{StrategyBFS, StrategyDijkstra, StrategyAStar}

func (s Strategy) String() string {
	switch s {
	case StrategyBFS:
		return "bfs"
	case StrategyDijkstra:
		return "dijkstra"
	case StrategyAStar:
		return "astar"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

func ParseStrategy(input string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "bfs", "breadth-first", "breadthfirst":
		return StrategyBFS, nil
	case "dijkstra":
		return StrategyDijkstra, nil
	case "astar", "a*", "a-star":
		return StrategyAStar, nil
	default:
		return 0, fmt.Errorf("%q: %w", input, ErrUnknownStrategy)
	}
}

// ShortestPath runs the given strategy. It returns an error only for an
// unknown strategy; an unreachable goal is reported through Result.Found.
func (g *Graph) ShortestPath(s Strategy, start, goal Point, onVisit Visitor) (Result, error) {
	switch s {
	case StrategyBFS:
		return g.BFS(start, goal, onVisit), nil
	case StrategyDijkstra:
		return g.Dijkstra(start, goal, onVisit), nil
	case StrategyAStar:
		return g.AStar(start, goal, onVisit), nil
	default:
		return Result{}, fmt.Errorf("%v: %w", s, ErrUnknownStrategy)
	}
}

func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
