package preprocessing

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"road-graph-server/roadgraph"
)

// LoadStats summarises what a loader added to a graph.
type LoadStats struct {
	Lines    int `json:"lines"`
	Vertices int `json:"vertices"` // Newly added vertices
	Edges    int `json:"edges"`
}

// RoadSegment is one parsed line of a road map file.
type RoadSegment struct {
	From     roadgraph.Point
	To       roadgraph.Point
	Name     string
	Category string
}

// ParseRoadSegment parses a line of the form
//
//	lat1 lon1 lat2 lon2 "road name" category
//
// The category may be omitted.
func ParseRoadSegment(line string) (RoadSegment, error) {
	var seg RoadSegment

	open := strings.IndexByte(line, '"')
	if open < 0 {
		return seg, fmt.Errorf("missing quoted road name")
	}
	closing := strings.LastIndexByte(line, '"')
	if closing == open {
		return seg, fmt.Errorf("unterminated road name")
	}

	coords := strings.Fields(line[:open])
	if len(coords) != 4 {
		return seg, fmt.Errorf("expected 4 coordinates, got %d", len(coords))
	}
	var values [4]float64
	for i, field := range coords {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return seg, fmt.Errorf("coordinate %d: %w", i+1, err)
		}
		values[i] = v
	}

	seg.From = roadgraph.NewPoint(values[0], values[1])
	seg.To = roadgraph.NewPoint(values[2], values[3])
	seg.Name = line[open+1 : closing]
	seg.Category = strings.TrimSpace(line[closing+1:])
	return seg, nil
}

// LoadRoadMap reads road segments from r into g. Each segment becomes one
// directed edge whose length is the great-circle distance in kilometres
// between its endpoints. Blank lines and lines starting with '#' are
// skipped.
func LoadRoadMap(r io.Reader, g *roadgraph.Graph) (LoadStats, error) {
	var stats LoadStats

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		stats.Lines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		seg, err := ParseRoadSegment(line)
		if err != nil {
			return stats, fmt.Errorf("line %d: %w", stats.Lines, err)
		}
		if err := addSegment(g, seg, seg.From.GreatCircle(seg.To), &stats); err != nil {
			return stats, fmt.Errorf("line %d: %w", stats.Lines, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read road map: %w", err)
	}
	return stats, nil
}

func addSegment(g *roadgraph.Graph, seg RoadSegment, length float64, stats *LoadStats) error {
	if g.AddVertex(seg.From) {
		stats.Vertices++
	}
	if g.AddVertex(seg.To) {
		stats.Vertices++
	}
	if err := g.AddEdge(seg.From, seg.To, seg.Name, seg.Category, length); err != nil {
		return err
	}
	stats.Edges++
	return nil
}

func LoadRoadMapFile(path string, g *roadgraph.Graph) (LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return LoadStats{}, fmt.Errorf("could not open road map: %w", err)
	}
	defer f.Close()

	stats, err := LoadRoadMap(f, g)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", path, err)
	}
	return stats, nil
}

// LoadFile loads a node-link JSON graph for ".json" files and a road map
// file for anything else.
func LoadFile(path string, g *roadgraph.Graph) (LoadStats, error) {
	log.Printf("Loading graph from: %s", path)

	var (
		stats LoadStats
		err   error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		stats, err = LoadNodeLinkFile(path, g)
	} else {
		stats, err = LoadRoadMapFile(path, g)
	}
	if err != nil {
		return stats, err
	}

	log.Printf("Loaded %s: %d new vertices, %d edges", filepath.Base(path), stats.Vertices, stats.Edges)
	return stats, nil
}
