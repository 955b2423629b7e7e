package api

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"road-graph-server/roadgraph"
)

func queryPoint(c *gin.Context, latKey, lonKey string) (roadgraph.Point, error) {
	lat, err := strconv.ParseFloat(c.Query(latKey), 64)
	if err != nil {
		return roadgraph.Point{}, fmt.Errorf("invalid %s: %q", latKey, c.Query(latKey))
	}
	lon, err := strconv.ParseFloat(c.Query(lonKey), 64)
	if err != nil {
		return roadgraph.Point{}, fmt.Errorf("invalid %s: %q", lonKey, c.Query(lonKey))
	}
	return roadgraph.NewPoint(lat, lon), nil
}

// StreamRoute runs a search and streams every visited point over a
// websocket, followed by the route itself.
func (h *Handler) StreamRoute(c *gin.Context) {
	strategy, err := h.strategy(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := queryPoint(c, "startLat", "startLon")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	goal, err := queryPoint(c, "goalLat", "goalLon")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snap, _ := strconv.ParseBool(c.Query("snap"))
	start, goal = h.snap(start, snap), h.snap(goal, snap)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		log.Printf("ERROR: websocket.Upgrader.Upgrade(): %s", err)
		return
	}

	sess := &streamSession{
		conn:      conn,
		writeWait: h.writeWait,
		sendChan:  make(chan StreamMessage, h.messageSendQueueLen),
		stopChan:  make(chan struct{}),
	}
	go sess.receiveLoop()
	go sess.search(h.graph, strategy, start, goal, requestID(c))
	sess.sendLoop()
}

// streamSession couples one search to one websocket connection. The search
// goroutine is the only sender on sendChan; the handler goroutine is the
// only writer on conn.
type streamSession struct {
	conn      *websocket.Conn
	writeWait time.Duration
	sendChan  chan StreamMessage
	stopChan  chan struct{}
	stopOnce  sync.Once
	seq       int
}

func (s *streamSession) stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		_ = s.conn.Close()
	})
}

// enqueue blocks while the send queue is full, so a slow client slows the
// delivery of visits down. Once the session stops, messages are dropped.
func (s *streamSession) enqueue(msg StreamMessage) {
	select {
	case s.sendChan <- msg:
	case <-s.stopChan:
	}
}

func (s *streamSession) visit(p roadgraph.Point) {
	s.seq++
	s.enqueue(StreamMessage{Type: MessageVisit, Seq: s.seq, Point: &p})
}

func (s *streamSession) search(g *roadgraph.Graph, strategy roadgraph.Strategy, start, goal roadgraph.Point, requestID string) {
	defer close(s.sendChan)

	res, err := g.ShortestPath(strategy, start, goal, s.visit)
	if err != nil {
		log.Printf("ERROR: stream search: %v", err)
		return
	}
	resp := PrepareResponse(requestID, strategy, start, goal, res)
	s.enqueue(StreamMessage{Type: MessageResult, Seq: s.seq + 1, Result: &resp})
}

func (s *streamSession) sendLoop() {
	defer s.stop()
	for msg := range s.sendChan {
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeWait))
		if err := s.conn.WriteJSON(msg); err != nil {
			log.Printf("WARNING: websocket.Conn.WriteJSON(): %s", err)
			return
		}
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeWait))
	_ = s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "route complete"))
}

// receiveLoop discards client frames and stops the session when the client
// goes away.
func (s *streamSession) receiveLoop() {
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			s.stop()
			return
		}
	}
}
