package roadgraph

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

var (
	pointA = NewPoint(0, 0)
	pointB = NewPoint(0, 1)
	pointC = NewPoint(1, 1)
	pointD = NewPoint(1, 0)
	pointE = NewPoint(5, 5)
)

// squareGraph builds A->B->C (length 2) and A->D->C (length 6), plus an
// isolated vertex E.
func squareGraph(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()
	for _, p := range []Point{pointA, pointB, pointC, pointD, pointE} {
		if !g.AddVertex(p) {
			t.Fatalf("AddVertex(%v) = false", p)
		}
	}
	mustAddEdge(t, g, pointA, pointB, 1)
	mustAddEdge(t, g, pointB, pointC, 1)
	mustAddEdge(t, g, pointA, pointD, 5)
	mustAddEdge(t, g, pointD, pointC, 1)
	return g
}

func mustAddEdge(t *testing.T, g *Graph, from, to Point, length float64) {
	t.Helper()
	if err := g.AddEdge(from, to, "", "", length); err != nil {
		t.Fatalf("AddEdge(%v, %v, %g): %v", from, to, length, err)
	}
}

func TestAddVertexIdempotent(t *testing.T) {
	g := NewGraph()
	if !g.AddVertex(pointA) {
		t.Fatal("first AddVertex returned false")
	}
	if g.AddVertex(pointA) {
		t.Error("second AddVertex returned true")
	}
	if g.VertexCount() != 1 {
		t.Errorf("VertexCount is %d, should be 1", g.VertexCount())
	}

	nan := NewPoint(math.NaN(), 0)
	if g.AddVertex(nan) {
		t.Error("AddVertex accepted a NaN point")
	}
	if g.VertexCount() != 1 {
		t.Errorf("VertexCount is %d after invalid insert, should be 1", g.VertexCount())
	}
}

func TestAddEdgeRejectsInvalidArguments(t *testing.T) {
	tests := map[string]struct {
		from, to Point
		length   float64
		want     error
	}{
		"unknown source": {
			from: NewPoint(9, 9), to: pointA, length: 1, want: ErrUnknownVertex,
		},
		"unknown target": {
			from: pointA, to: NewPoint(9, 9), length: 1, want: ErrUnknownVertex,
		},
		"null source": {
			from: NewPoint(math.NaN(), 0), to: pointA, length: 1, want: ErrInvalidPoint,
		},
		"null target": {
			from: pointA, to: NewPoint(0, math.Inf(1)), length: 1, want: ErrInvalidPoint,
		},
		"negative length": {
			from: pointA, to: pointB, length: -0.5, want: ErrNegativeLength,
		},
		"NaN length": {
			from: pointA, to: pointB, length: math.NaN(), want: ErrNegativeLength,
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			g := NewGraph()
			g.AddVertex(pointA)
			g.AddVertex(pointB)

			err := g.AddEdge(tc.from, tc.to, "Main St", "residential", tc.length)
			if !errors.Is(err, tc.want) {
				t.Errorf("error is %v, should wrap %v", err, tc.want)
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error %v does not wrap ErrInvalidArgument", err)
			}
			if g.EdgeCount() != 0 {
				t.Errorf("EdgeCount is %d after a failed insert, should be 0", g.EdgeCount())
			}
			if len(g.RoadsNamed("main")) != 0 {
				t.Error("failed insert was indexed by name")
			}
		})
	}
}

func TestAddEdgeZeroLengthAndSelfLoop(t *testing.T) {
	g := NewGraph()
	g.AddVertex(pointA)
	g.AddVertex(pointB)
	mustAddEdge(t, g, pointA, pointB, 0)
	mustAddEdge(t, g, pointA, pointA, 2)
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount is %d, should be 2", g.EdgeCount())
	}
}

func TestNeighborsReturnsCopyInInsertionOrder(t *testing.T) {
	g := squareGraph(t)

	got := g.Neighbors(pointA)
	want := []Edge{
		{From: pointA, To: pointB, Length: 1},
		{From: pointA, To: pointD, Length: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Neighbors(A) is %v, should be %v", got, want)
	}

	got[0].Length = 100
	if g.Neighbors(pointA)[0].Length != 1 {
		t.Error("modifying the returned slice changed the graph")
	}

	if n := g.Neighbors(pointE); len(n) != 0 {
		t.Errorf("Neighbors(E) is %v, should be empty", n)
	}
	if n := g.Neighbors(NewPoint(42, 42)); len(n) != 0 {
		t.Errorf("Neighbors(unknown) is %v, should be empty", n)
	}
}

func TestVerticesSorted(t *testing.T) {
	g := squareGraph(t)
	want := []Point{pointA, pointB, pointD, pointC, pointE}
	if got := g.Vertices(); !reflect.DeepEqual(got, want) {
		t.Errorf("Vertices is %v, should be %v", got, want)
	}
	if g.EdgeCount() != 4 {
		t.Errorf("EdgeCount is %d, should be 4", g.EdgeCount())
	}
	if !g.HasVertex(pointE) || g.HasVertex(NewPoint(7, 7)) {
		t.Error("HasVertex disagrees with insertions")
	}
}

func TestRoadsNamed(t *testing.T) {
	g := NewGraph()
	g.AddVertex(pointA)
	g.AddVertex(pointB)
	g.AddVertex(pointC)
	if err := g.AddEdge(pointA, pointB, "Main Street", "primary", 1); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(pointB, pointC, "Maple Ave", "residential", 1); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(pointC, pointA, "Oak Road", "residential", 1); err != nil {
		t.Fatal(err)
	}

	tests := map[string]struct {
		prefix string
		want   []string
	}{
		"shared prefix":    {prefix: "ma", want: []string{"Main Street", "Maple Ave"}},
		"case insensitive": {prefix: "OAK", want: []string{"Oak Road"}},
		"no match":         {prefix: "elm", want: nil},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var got []string
			for _, e := range g.RoadsNamed(tc.prefix) {
				got = append(got, e.Name)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("RoadsNamed(%q) is %v, should be %v", tc.prefix, got, tc.want)
			}
		})
	}
}

func TestPathLength(t *testing.T) {
	g := squareGraph(t)
	mustAddEdge(t, g, pointA, pointB, 0.5)

	if got, ok := g.PathLength([]Point{pointA, pointB, pointC}); !ok || got != 1.5 {
		t.Errorf("PathLength(A,B,C) is %g/%v, should be 1.5/true", got, ok)
	}
	if _, ok := g.PathLength([]Point{pointA, pointC}); ok {
		t.Error("PathLength(A,C) succeeded without an edge")
	}
	if got, ok := g.PathLength([]Point{pointA}); !ok || got != 0 {
		t.Errorf("PathLength(A) is %g/%v, should be 0/true", got, ok)
	}
}

func TestNearest(t *testing.T) {
	g := squareGraph(t)
	got, _, ok := g.Nearest(NewPoint(0.9, 0.2))
	if !ok || got != pointD {
		t.Errorf("Nearest is %v/%v, should be %v/true", got, ok, pointD)
	}
	if _, _, ok := NewGraph().Nearest(pointA); ok {
		t.Error("Nearest on an empty graph reported a vertex")
	}
}

func TestGraphString(t *testing.T) {
	s := squareGraph(t).String()
	if !strings.HasPrefix(s, "#Vertices: 5 #Edges: 4\n") {
		t.Errorf("unexpected header in %q", s)
	}
	if !strings.Contains(s, "(0, 0): (0, 1)(1) (1, 0)(5)\n") {
		t.Errorf("adjacency of A missing from %q", s)
	}
}

func TestPointGreatCircle(t *testing.T) {
	// One degree of longitude on the equator.
	got := NewPoint(0, 0).GreatCircle(NewPoint(0, 1))
	if math.Abs(got-111.195) > 0.01 {
		t.Errorf("GreatCircle is %g km, should be about 111.195", got)
	}
	if half := NewPoint(0, 0).GreatCircle(NewPoint(0, 180)); math.Abs(half-math.Pi*earthRadiusKm) > 1e-6 {
		t.Errorf("half circumference is %g km, should be %g", half, math.Pi*earthRadiusKm)
	}
	if d := pointA.Distance(pointC); math.Abs(d-math.Sqrt2) > 1e-12 {
		t.Errorf("Distance(A,C) is %g, should be sqrt(2)", d)
	}
}
