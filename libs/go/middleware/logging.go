package middleware

import (
	"bytes"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerprint/ledgerprint-api/libs/go/logger"
	"go.uber.org/zap"
)

const maxLoggedBody = 4096

// bodyLogWriter captures JSON response bodies for development logging.
// Binary responses such as rendered PDFs are counted but never buffered.
type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyLogWriter) Write(b []byte) (int, error) {
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") && w.body.Len() < maxLoggedBody {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// EnhancedLoggingMiddleware logs request and response detail in development stages
func EnhancedLoggingMiddleware(isDevelopment bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isDevelopment {
			c.Next()
			return
		}

		start := time.Now()
		log := logger.Log.With(zap.String("correlation_id", GetCorrelationID(c)))

		headers := make(map[string]string, len(c.Request.Header))
		for key, values := range c.Request.Header {
			switch key {
			case "Authorization", "X-Api-Key", "Cookie":
				headers[key] = "[REDACTED]"
			default:
				headers[key] = values[0]
			}
		}
		log.Debug("Detailed request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Any("headers", headers),
			zap.Int64("content_length", c.Request.ContentLength),
		)

		blw := &bodyLogWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		log.Debug("Detailed response",
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("content_type", c.Writer.Header().Get("Content-Type")),
			zap.ByteString("body", blw.body.Bytes()),
			zap.Int("body_size", c.Writer.Size()),
		)

		for _, err := range c.Errors {
			log.Error("Request error", zap.Error(err.Err), zap.Any("meta", err.Meta))
		}
	}
}

// RequestLoggingMiddleware logs one line per completed request
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Log.Info("Request completed",
			zap.String("correlation_id", GetCorrelationID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		)
	}
}
