package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodySize bounds document drafts submitted to the API
const DefaultMaxBodySize int64 = 1 << 20

// BodyLimit rejects oversized payloads and requires JSON on requests that carry a body
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Body == nil || c.Request.ContentLength == 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":         "Request body too large",
				"details":       fmt.Sprintf("maximum body size is %d bytes", maxBytes),
				"correlationID": GetCorrelationID(c),
			})
			return
		}
		if ct := c.GetHeader("Content-Type"); !strings.HasPrefix(ct, "application/json") {
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
				"error":         "Content-Type must be application/json",
				"correlationID": GetCorrelationID(c),
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
