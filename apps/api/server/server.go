package server

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/ledgerprint/ledgerprint-api/apps/api/handlers"
	"github.com/ledgerprint/ledgerprint-api/libs/go/bootstrap"
	"github.com/ledgerprint/ledgerprint-api/libs/go/config"
	"github.com/ledgerprint/ledgerprint-api/libs/go/helpers"
	"github.com/ledgerprint/ledgerprint-api/libs/go/interfaces"
	"github.com/ledgerprint/ledgerprint-api/libs/go/logger"
	"github.com/ledgerprint/ledgerprint-api/libs/go/middleware"
	"go.uber.org/zap"
)

var (
	appConfig       *config.Config
	appServices     *bootstrap.Services
	documentHandler *handlers.DocumentHandler
	healthHandler   *handlers.HealthHandler
	rateLimiter     *middleware.RateLimiter
)

// InitializeHandlers loads configuration and wires every handler. Startup failures are fatal.
func InitializeHandlers() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := config.Load()
	if !helpers.IsValidStage(cfg.Server.Stage) {
		log.Fatalf("Invalid STAGE environment variable: '%s'. Must be one of: %s, %s, %s",
			cfg.Server.Stage, helpers.StageProd, helpers.StageDev, helpers.StageLocal)
	}

	logger.InitLogger(cfg.Server.Stage)
	logger.Info("Initializing handlers for stage", zap.String("stage", cfg.Server.Stage))

	svc, err := bootstrap.NewServices(context.Background(), cfg, logger.Log)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	appConfig = cfg
	appServices = svc
	documentHandler = NewDocumentHandler(svc)
	healthHandler = handlers.NewHealthHandler()
	rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
}

// NewDocumentHandler adapts the wired services to the HTTP handler. Disabled
// side effects stay nil interfaces rather than typed nil pointers.
func NewDocumentHandler(svc *bootstrap.Services) *handlers.DocumentHandler {
	handlerConfig := handlers.DocumentHandlerConfig{
		Documents: svc.Documents,
		Money:     helpers.NewMoneyFormatter(svc.Config.Money.CurrencyCode, svc.Config.Money.NumberLocale),
		Location:  helpers.LoadLocation(svc.Config.Export.Timezone),
		Logger:    logger.Named("documents"),
	}
	var exports interfaces.ExportService
	if svc.Exports != nil {
		exports = svc.Exports
	}
	var email interfaces.EmailService
	if svc.Email != nil {
		email = svc.Email
	}
	handlerConfig.Exports = exports
	handlerConfig.Email = email
	return handlers.NewDocumentHandler(handlerConfig)
}

// InitializeRoutes registers middleware and routes on the router
func InitializeRoutes(router *gin.Engine) {
	RegisterRoutes(router, appConfig, documentHandler, healthHandler, rateLimiter)
}

// RegisterRoutes wires the API surface onto router
func RegisterRoutes(router *gin.Engine, cfg *config.Config, documents *handlers.DocumentHandler, health *handlers.HealthHandler, limiter *middleware.RateLimiter) {
	router.Use(configureCORS(cfg.Server))
	router.Use(middleware.CorrelationIDMiddleware())
	if limiter != nil {
		router.Use(limiter.Middleware())
	}

	isDevelopment := cfg.IsDevelopment()
	router.Use(middleware.EnhancedLoggingMiddleware(isDevelopment))
	if !isDevelopment {
		router.Use(middleware.RequestLoggingMiddleware())
	}

	// Health for raw lambda url check
	router.GET("/:stage/health", health.Health)
	router.GET("/health", health.Health)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	{
		docs := v1.Group("/documents")
		{
			docs.POST("/totals", documents.ComputeTotals)
			docs.POST("/layout", documents.Layout)
			docs.POST("/render", documents.Render)
			docs.POST("/export", documents.Export)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{
			Error:         "Route not found",
			CorrelationID: middleware.GetCorrelationID(c),
		})
	})
}

// configureCORS returns a configured CORS middleware
func configureCORS(cfg config.ServerConfig) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = cfg.AllowedMethods
	corsConfig.AllowHeaders = cfg.AllowedHeaders
	corsConfig.ExposeHeaders = []string{
		"Content-Disposition",
		"X-Document-ID",
		"X-Page-Count",
		handlers.ExportStatusHeader,
		handlers.EmailStatusHeader,
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"X-RateLimit-Reset",
		"Retry-After",
		middleware.CorrelationIDHeader,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true" && !corsConfig.AllowAllOrigins

	return cors.New(corsConfig)
}

// Shutdown releases background resources held by the router
func Shutdown() {
	if rateLimiter != nil {
		rateLimiter.Stop()
	}
	if appServices != nil {
		logger.Info("Server stopped", zap.Bool("export_enabled", appServices.Exports != nil))
	}
	_ = logger.Sync()
}
