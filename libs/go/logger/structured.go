package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogComponent represents different system components for filtering
type LogComponent string

const (
	ComponentAPI      LogComponent = "api"
	ComponentLedger   LogComponent = "ledger"
	ComponentLayout   LogComponent = "layout"
	ComponentDocument LogComponent = "document"
	ComponentExport   LogComponent = "export"
	ComponentEmail    LogComponent = "email"
	ComponentCLI      LogComponent = "cli"
)

// LogContext holds structured context information for logs
type LogContext struct {
	CorrelationID string
	DocumentID    string
	DocumentKind  string
	Component     LogComponent
	Operation     string
	Duration      time.Duration
	Fields        map[string]interface{}
}

// StructuredLogger wraps a zap logger with a component and a copy-on-write context
type StructuredLogger struct {
	logger  *zap.Logger
	context LogContext
}

// NewStructuredLogger creates a new structured logger for a specific component.
// A nil base falls back to the global logger.
func NewStructuredLogger(base *zap.Logger, component LogComponent) *StructuredLogger {
	if base == nil {
		base = Log
	}
	return &StructuredLogger{
		logger:  base,
		context: LogContext{Component: component, Fields: make(map[string]interface{})},
	}
}

// WithField adds a field to the log context
func (sl *StructuredLogger) WithField(key string, value interface{}) *StructuredLogger {
	next := sl.clone()
	next.context.Fields[key] = value
	return next
}

// WithCorrelationID adds correlation ID to the log context
func (sl *StructuredLogger) WithCorrelationID(correlationID string) *StructuredLogger {
	next := sl.clone()
	next.context.CorrelationID = correlationID
	return next
}

// WithDocument tags every entry with the document identifier and kind
func (sl *StructuredLogger) WithDocument(documentID, kind string) *StructuredLogger {
	next := sl.clone()
	next.context.DocumentID = documentID
	next.context.DocumentKind = kind
	return next
}

// WithOperation adds operation name to the log context
func (sl *StructuredLogger) WithOperation(operation string) *StructuredLogger {
	next := sl.clone()
	next.context.Operation = operation
	return next
}

// WithDuration adds duration to the log context
func (sl *StructuredLogger) WithDuration(duration time.Duration) *StructuredLogger {
	next := sl.clone()
	next.context.Duration = duration
	return next
}

func (sl *StructuredLogger) clone() *StructuredLogger {
	fields := make(map[string]interface{}, len(sl.context.Fields))
	for k, v := range sl.context.Fields {
		fields[k] = v
	}
	ctx := sl.context
	ctx.Fields = fields
	return &StructuredLogger{logger: sl.logger, context: ctx}
}

func (sl *StructuredLogger) buildFields() []zapcore.Field {
	fields := make([]zapcore.Field, 0, 6+len(sl.context.Fields))

	if sl.context.Component != "" {
		fields = append(fields, zap.String("component", string(sl.context.Component)))
	}
	if sl.context.CorrelationID != "" {
		fields = append(fields, zap.String("correlation_id", sl.context.CorrelationID))
	}
	if sl.context.DocumentID != "" {
		fields = append(fields, zap.String("document_id", sl.context.DocumentID))
	}
	if sl.context.DocumentKind != "" {
		fields = append(fields, zap.String("document_kind", sl.context.DocumentKind))
	}
	if sl.context.Operation != "" {
		fields = append(fields, zap.String("operation", sl.context.Operation))
	}
	if sl.context.Duration > 0 {
		fields = append(fields, zap.Duration("duration", sl.context.Duration))
	}
	for key, value := range sl.context.Fields {
		fields = append(fields, zap.Any(key, value))
	}
	return fields
}

// Debug logs a debug message with structured context
func (sl *StructuredLogger) Debug(msg string) {
	sl.logger.Debug(msg, sl.buildFields()...)
}

// Info logs an info message with structured context
func (sl *StructuredLogger) Info(msg string) {
	sl.logger.Info(msg, sl.buildFields()...)
}

// Warn logs a warning message with structured context
func (sl *StructuredLogger) Warn(msg string, err error) {
	fields := sl.buildFields()
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	sl.logger.Warn(msg, fields...)
}

// Error logs an error message with structured context
func (sl *StructuredLogger) Error(msg string, err error) {
	fields := sl.buildFields()
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	sl.logger.Error(msg, fields...)
}

// LogOperation logs the end of an operation with timing
func (sl *StructuredLogger) LogOperation(operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	done := sl.WithOperation(operation).WithDuration(time.Since(start))
	if err != nil {
		done.Error("Operation failed", err)
	} else {
		done.Debug("Operation completed")
	}
	return err
}

// LogExportEvent logs the outcome of one sink call. Failures are warnings; the caller
// reports the combined export error.
func (sl *StructuredLogger) LogExportEvent(sheet string, rows int, duration time.Duration, err error) {
	entry := sl.WithField("sheet", sheet).WithField("rows", rows).WithDuration(duration)
	if err != nil {
		entry.Warn("Row export failed", err)
		return
	}
	entry.Info("Row export delivered")
}
