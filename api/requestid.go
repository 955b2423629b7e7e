package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/satori/go.uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

func NewRequestID() string {
	id, err := uuid.NewV4()
	if err != nil {
		log.Printf("WARNING: uuid.NewV4(): %s", err)
		return uuid.Nil.String()
	}
	return id.String()
}

// RequestID tags every request with a v4 UUID, reusing a well-formed
// X-Request-ID sent by the client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.FromString(id); err != nil {
			id = NewRequestID()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	if id := c.GetString(requestIDKey); id != "" {
		return id
	}
	return NewRequestID()
}
