package api

import (
	"road-graph-server/roadgraph"
)

type RouteRequest struct {
	Start *roadgraph.Point `json:"start"`
	Goal  *roadgraph.Point `json:"goal"`
	// Snap moves start and goal to their nearest vertices before searching.
	Snap bool `json:"snap,omitempty"`
}

type VertexRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lon *float64 `json:"lon" binding:"required"`
}

type EdgeRequest struct {
	From     *roadgraph.Point `json:"from"`
	To       *roadgraph.Point `json:"to"`
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Length   *float64         `json:"length" binding:"required"`
}

// Response for a single path query
type RouteResponse struct {
	RequestID string             `json:"requestId"`
	Strategy  roadgraph.Strategy `json:"strategy"`
	Start     roadgraph.Point    `json:"start"`
	Goal      roadgraph.Point    `json:"goal"`
	Found     bool               `json:"found"`
	Path      []roadgraph.Point  `json:"path"`
	Cost      float64            `json:"cost"`
	Hops      int                `json:"hops"`
	Visited   int                `json:"visited"`
	// Great-circle length of the path, independent of the edge weights
	DistanceKm float64 `json:"distanceKm"`
}

type GraphStats struct {
	Vertices int `json:"vertices"`
	Edges    int `json:"edges"`
}

// StreamMessage is one frame of a websocket route stream: a "visit" per
// visitor notification, then a single "result".
type StreamMessage struct {
	Type   string           `json:"type"`
	Seq    int              `json:"seq,omitempty"`
	Point  *roadgraph.Point `json:"point,omitempty"`
	Result *RouteResponse   `json:"result,omitempty"`
}

const (
	MessageVisit  = "visit"
	MessageResult = "result"
)

func PrepareResponse(requestID string, s roadgraph.Strategy, start, goal roadgraph.Point, res roadgraph.Result) RouteResponse {
	resp := RouteResponse{
		RequestID: requestID,
		Strategy:  s,
		Start:     start,
		Goal:      goal,
		Found:     res.Found,
		Path:      res.Path,
		Cost:      res.Cost,
		Hops:      res.Hops,
		Visited:   res.Visited,
	}
	if resp.Path == nil {
		resp.Path = []roadgraph.Point{}
	}

	for i := 1; i < len(res.Path); i++ {
		resp.DistanceKm += res.Path[i-1].GreatCircle(res.Path[i])
	}
	return resp
}
