package preprocessing

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"road-graph-server/roadgraph"
)

type nodeLinkGraph struct {
	Graph struct {
		Nodes []struct {
			ID interface{} `json:"id"`
			X  float64     `json:"x"`
			Y  float64     `json:"y"`
		} `json:"nodes"`
		Links []struct {
			Source  interface{} `json:"source"`
			Target  interface{} `json:"target"`
			Length  *float64    `json:"length"` // metres
			Name    interface{} `json:"name"`
			Highway interface{} `json:"highway"`
		} `json:"links"`
	} `json:"graph"`
}

// nodeKey normalises node IDs, which may be numbers or strings.
func nodeKey(id interface{}) string {
	switch v := id.(type) {
	case json.Number:
		return v.String()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// parseTag flattens OSM tags that may be a string or a list of strings.
func parseTag(tag interface{}) string {
	switch v := tag.(type) {
	case string:
		return v
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s := parseTag(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}

// LoadNodeLinkJSON reads an OSMnx node-link export. Node x/y are longitude
// and latitude; link lengths are metres and are stored in kilometres. A
// link without a length gets the great-circle distance of its endpoints.
func LoadNodeLinkJSON(r io.Reader, g *roadgraph.Graph) (LoadStats, error) {
	var stats LoadStats
	var wrapped nodeLinkGraph

	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&wrapped); err != nil {
		return stats, fmt.Errorf("failed to parse graph JSON: %w", err)
	}

	points := make(map[string]roadgraph.Point, len(wrapped.Graph.Nodes))
	for _, n := range wrapped.Graph.Nodes {
		p := roadgraph.NewPoint(n.Y, n.X)
		points[nodeKey(n.ID)] = p
		if g.AddVertex(p) {
			stats.Vertices++
		}
	}

	for i, l := range wrapped.Graph.Links {
		from, ok := points[nodeKey(l.Source)]
		if !ok {
			return stats, fmt.Errorf("link %d: unknown source node %q", i, nodeKey(l.Source))
		}
		to, ok := points[nodeKey(l.Target)]
		if !ok {
			return stats, fmt.Errorf("link %d: unknown target node %q", i, nodeKey(l.Target))
		}

		length := from.GreatCircle(to)
		if l.Length != nil {
			length = *l.Length / 1000
		}
		seg := RoadSegment{From: from, To: to, Name: parseTag(l.Name), Category: parseTag(l.Highway)}
		if err := addSegment(g, seg, length, &stats); err != nil {
			return stats, fmt.Errorf("link %d: %w", i, err)
		}
	}
	return stats, nil
}

func LoadNodeLinkFile(path string, g *roadgraph.Graph) (LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return LoadStats{}, fmt.Errorf("could not open graph file: %w", err)
	}
	defer f.Close()

	stats, err := LoadNodeLinkJSON(f, g)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", path, err)
	}
	return stats, nil
}
