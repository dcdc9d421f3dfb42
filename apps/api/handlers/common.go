package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerprint/ledgerprint-api/libs/go/logger"
	"github.com/ledgerprint/ledgerprint-api/libs/go/middleware"
	"github.com/ledgerprint/ledgerprint-api/libs/go/services"
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/api/responses"
	"go.uber.org/zap"
)

// Use types from the centralized packages
type (
	ErrorResponse           = responses.ErrorResponse
	ValidationErrorResponse = responses.ValidationErrorResponse
	HealthResponse          = responses.HealthResponse
)

// sendError logs the failure and sends a JSON error carrying the correlation ID
func sendError(c *gin.Context, statusCode int, message string, err error) {
	correlationID := middleware.GetCorrelationID(c)

	fields := []zap.Field{
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("correlation_id", correlationID),
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error(message, fields...)
	} else {
		logger.Warn(message, fields...)
	}

	c.JSON(statusCode, ErrorResponse{
		Error:         message,
		CorrelationID: correlationID,
	})
}

// sendValidationError reports every violation of a rejected draft with 422
func sendValidationError(c *gin.Context, err error) {
	violations := services.ValidationErrors(err)
	details := make([]responses.FieldError, 0, len(violations))
	for _, v := range violations {
		details = append(details, responses.FieldError{Field: v.Field, Message: v.Error()})
	}

	logger.Debug("Draft rejected",
		zap.Int("violations", len(details)),
		zap.String("correlation_id", middleware.GetCorrelationID(c)),
	)

	c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{
		Error:         "Document draft is invalid",
		CorrelationID: middleware.GetCorrelationID(c),
		Details:       details,
	})
}

// handleServiceError maps document service failures onto HTTP statuses
func handleServiceError(c *gin.Context, err error, message string) {
	if services.IsValidationError(err) {
		sendValidationError(c, err)
		return
	}
	sendError(c, http.StatusInternalServerError, message, err)
}

func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}
