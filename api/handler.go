package api

import (
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"road-graph-server/roadgraph"
)

const (
	DefaultMessageSendQueueLen = 15
	DefaultWriteWait           = 10 * time.Second
)

type Options struct {
	DefaultStrategy     roadgraph.Strategy
	MessageSendQueueLen int
	WriteWait           time.Duration // time allowed to write one stream message
	AllowOrigins        []string      // empty allows every origin
}

type Handler struct {
	graph               *roadgraph.Graph
	defaultStrategy     roadgraph.Strategy
	messageSendQueueLen int
	writeWait           time.Duration
	upgrader            *websocket.Upgrader
}

func NewHandler(graph *roadgraph.Graph, opts Options) *Handler {
	if opts.MessageSendQueueLen <= 0 {
		opts.MessageSendQueueLen = DefaultMessageSendQueueLen
	}
	if opts.WriteWait <= 0 {
		opts.WriteWait = DefaultWriteWait
	}
	return &Handler{
		graph:               graph,
		defaultStrategy:     opts.DefaultStrategy,
		messageSendQueueLen: opts.MessageSendQueueLen,
		writeWait:           opts.WriteWait,
		upgrader: &websocket.Upgrader{
			CheckOrigin: originChecker(opts.AllowOrigins),
		},
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if len(allowed) == 0 || origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == origin {
				return true
			}
		}
		return false
	}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.Health)
	r.GET("/strategies", h.GetStrategies)

	r.GET("/graph", h.GetGraphStats)
	r.GET("/graph/neighbors", h.GetNeighbors)
	r.POST("/graph/vertices", h.AddVertex)
	r.POST("/graph/edges", h.AddEdge)
	r.GET("/roads", h.FindRoads)

	r.POST("/route", h.Route)
	r.POST("/route/:strategy", h.Route)
	r.GET("/route/:strategy/stream", h.StreamRoute)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *Handler) GetStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"strategies": roadgraph.Strategies,
		"default":    h.defaultStrategy,
	})
}

func (h *Handler) GetGraphStats(c *gin.Context) {
	c.JSON(http.StatusOK, GraphStats{
		Vertices: h.graph.VertexCount(),
		Edges:    h.graph.EdgeCount(),
	})
}

func (h *Handler) GetNeighbors(c *gin.Context) {
	p, err := queryPoint(c, "lat", "lon")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.graph.HasVertex(p) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not a vertex: " + p.String()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"point": p, "edges": h.graph.Neighbors(p)})
}

func (h *Handler) AddVertex(c *gin.Context) {
	var req VertexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := roadgraph.NewPoint(*req.Lat, *req.Lon)
	added := h.graph.AddVertex(p)
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"point": p, "added": added})
}

// orNull maps a missing endpoint to a point the graph rejects as invalid.
func orNull(p *roadgraph.Point) roadgraph.Point {
	if p == nil {
		return roadgraph.NewPoint(math.NaN(), math.NaN())
	}
	return *p
}

func (h *Handler) AddEdge(c *gin.Context) {
	var req EdgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.graph.AddEdge(orNull(req.From), orNull(req.To), req.Name, req.Category, *req.Length)
	switch {
	case errors.Is(err, roadgraph.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		log.Printf("ERROR: AddEdge: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, GraphStats{
		Vertices: h.graph.VertexCount(),
		Edges:    h.graph.EdgeCount(),
	})
}

func (h *Handler) FindRoads(c *gin.Context) {
	prefix := c.Query("prefix")
	if prefix == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prefix is required"})
		return
	}
	roads := h.graph.RoadsNamed(prefix)
	if roads == nil {
		roads = []roadgraph.Edge{}
	}
	c.JSON(http.StatusOK, gin.H{"roads": roads, "count": len(roads)})
}

// strategy resolves the :strategy path parameter, falling back to the
// configured default when it is absent.
func (h *Handler) strategy(c *gin.Context) (roadgraph.Strategy, error) {
	name := c.Param("strategy")
	if name == "" {
		return h.defaultStrategy, nil
	}
	return roadgraph.ParseStrategy(name)
}

// snap replaces p with the nearest vertex when requested.
func (h *Handler) snap(p roadgraph.Point, enabled bool) roadgraph.Point {
	if !enabled {
		return p
	}
	if nearest, _, ok := h.graph.Nearest(p); ok {
		return nearest
	}
	return p
}

func (h *Handler) Route(c *gin.Context) {
	strategy, err := h.strategy(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("ERROR: Failed to parse request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Start == nil || req.Goal == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and goal are required"})
		return
	}

	start := h.snap(*req.Start, req.Snap)
	goal := h.snap(*req.Goal, req.Snap)
	res, err := h.graph.ShortestPath(strategy, start, goal, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := PrepareResponse(requestID(c), strategy, start, goal, res)
	if !resp.Found {
		log.Printf("No %v path from %v to %v", strategy, start, goal)
		c.JSON(http.StatusNotFound, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
