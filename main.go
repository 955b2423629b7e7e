package main

import (
	"flag"
	"log"

	"github.com/gin-gonic/gin"

	"road-graph-server/api"
	"road-graph-server/config"
	"road-graph-server/preprocessing"
	"road-graph-server/roadgraph"
)

func main() {
	configFile := flag.String("config", "roadgraph.yaml", "Path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}
	roadgraph.LogSearches = cfg.Graph.LogSearches

	log.Println("Loading road graph...")
	graph := roadgraph.NewGraph()
	if _, err := preprocessing.LoadFile(cfg.Graph.MapFile, graph); err != nil {
		log.Fatalf("Failed to load required graph data: %v", err)
	}
	log.Printf("Road graph ready: %d vertices, %d edges", graph.VertexCount(), graph.EdgeCount())

	handler := api.NewHandler(graph, api.Options{
		DefaultStrategy:     cfg.Strategy(),
		MessageSendQueueLen: cfg.Stream.MessageSendQueueLen,
		AllowOrigins:        cfg.Server.AllowOrigins,
	})
	r := api.NewRouter(handler, cfg.Server.AllowOrigins)

	log.Printf("Road Graph Server starting on %s (default strategy: %v)", cfg.Server.ListenAddr, cfg.Strategy())
	if err := r.Run(cfg.Server.ListenAddr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
