package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/lithammer/shortuuid/v4"
)

const (
	RequestIDHeader    = "X-Request-ID"
	ContextRequestID   = "request_id"
	maxRequestIDLength = 64
)

// RequestID reuses a sane incoming X-Request-ID or generates one, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = shortuuid.New()
		}
		c.Set(ContextRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
