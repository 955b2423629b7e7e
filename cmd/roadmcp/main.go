package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"road-graph-server/config"
	"road-graph-server/mcpserver"
	"road-graph-server/preprocessing"
	"road-graph-server/roadgraph"
)

func main() {
	configFile := flag.String("config", "roadgraph.yaml", "Path to the YAML configuration file")
	mapFile := flag.String("map", "", "Road map to serve; overrides graph.mapFile from the configuration")
	flag.Parse()

	// stdout carries the MCP protocol.
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *mapFile != "" {
		cfg.Graph.MapFile = *mapFile
	}

	graph := roadgraph.NewGraph()
	if _, err := preprocessing.LoadFile(cfg.Graph.MapFile, graph); err != nil {
		log.Fatalf("Failed to load required graph data: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Serving %d vertices over MCP stdio", graph.VertexCount())
	if err := mcpserver.New(graph).Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("MCP server stopped: %v", err)
	}
}
