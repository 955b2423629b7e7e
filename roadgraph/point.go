package roadgraph

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371.0

// Point is a geographic intersection. It is a comparable value and is used
// directly as a map key, so it must never be mutated after insertion.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewPoint(lat, lon float64) Point {
	return Point{Lat: lat, Lon: lon}
}

// Valid reports whether both coordinates are finite numbers.
func (p Point) Valid() bool {
	return !math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0) &&
		!math.IsNaN(p.Lon) && !math.IsInf(p.Lon, 0)
}

// Distance is the straight-line distance between two points in coordinate
// units. It never overestimates a path whose edges are at least as long as
// the segment they span, which makes it the A* heuristic.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(other.Lat-p.Lat, other.Lon-p.Lon)
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// GreatCircle returns the haversine distance between two points in kilometres.
func (p Point) GreatCircle(other Point) float64 {
	phi1 := toRadians(p.Lat)
	phi2 := toRadians(other.Lat)
	deltaPhi := toRadians(other.Lat - p.Lat)
	deltaLambda := toRadians(other.Lon - p.Lon)

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Less orders points by latitude, then longitude.
func (p Point) Less(other Point) bool {
	if p.Lat != other.Lat {
		return p.Lat < other.Lat
	}
	return p.Lon < other.Lon
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.Lat, p.Lon)
}
