package roadgraph

import (
	"fmt"
	"sort"
)

// Edge represents a directed road segment between two intersections
type Edge struct {
	From     Point   `json:"from"`
	To       Point   `json:"to"`
	Name     string  `json:"name"`     // Road name, may be empty
	Category string  `json:"category"` // Road type, e.g. "residential"
	Length   float64 `json:"length"`   // Non-negative traversal cost
}

func (e Edge) String() string {
	return fmt.Sprintf("%v -> %v %q [%s] %g", e.From, e.To, e.Name, e.Category, e.Length)
}

// SortByLength orders edges by ascending length, keeping insertion order
// among edges of equal length.
func SortByLength(edges []Edge) {
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Length < edges[j].Length
	})
}
