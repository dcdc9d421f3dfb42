package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ledgerprint/ledgerprint-api/libs/go/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })
	return logs
}

func TestRequestLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logs := observe(t)

	router := gin.New()
	router.Use(CorrelationIDMiddleware(), RequestLoggingMiddleware())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusAccepted) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(CorrelationIDHeader, "corr-9")
	router.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("Request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "corr-9", fields["correlation_id"])
	assert.Equal(t, int64(http.StatusAccepted), fields["status"])
}

func TestEnhancedLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("redacts sensitive headers and captures json", func(t *testing.T) {
		logs := observe(t)
		router := gin.New()
		router.Use(EnhancedLoggingMiddleware(true))
		router.GET("/test", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer secret")
		router.ServeHTTP(httptest.NewRecorder(), req)

		reqEntries := logs.FilterMessage("Detailed request").All()
		require.Len(t, reqEntries, 1)
		headers := reqEntries[0].ContextMap()["headers"].(map[string]string)
		assert.Equal(t, "[REDACTED]", headers["Authorization"])

		resEntries := logs.FilterMessage("Detailed response").All()
		require.Len(t, resEntries, 1)
		assert.Contains(t, resEntries[0].ContextMap()["body"], `"ok":true`)
	})

	t.Run("does not buffer binary bodies", func(t *testing.T) {
		logs := observe(t)
		router := gin.New()
		router.Use(EnhancedLoggingMiddleware(true))
		router.GET("/pdf", func(c *gin.Context) { c.Data(http.StatusOK, "application/pdf", []byte("%PDF-1.3")) })

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pdf", nil))

		entries := logs.FilterMessage("Detailed response").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "", entries[0].ContextMap()["body"])
	})

	t.Run("disabled outside development", func(t *testing.T) {
		logs := observe(t)
		router := gin.New()
		router.Use(EnhancedLoggingMiddleware(false))
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Zero(t, logs.Len())
	})
}
