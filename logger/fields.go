package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across Baton.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldProgramID = "program_id"
	FieldClientID  = "client_id"
	FieldRequestID = "request_id"

	// Components
	FieldComponent = "component"

	// Patch structure
	FieldPatch     = "patch"
	FieldNodeID    = "node_id"
	FieldNodeKind  = "node_kind"
	FieldRootID    = "root_id"
	FieldNodeCount = "node_count"

	// Compile results
	FieldStatements = "statements"
	FieldMacros     = "macros"
	FieldBytes      = "bytes"

	// Operations
	FieldOperation = "operation"
	FieldMethod    = "method"
	FieldPath      = "path"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Files and paths
	FieldFile = "file"

	// Network
	FieldAddress = "address"
	FieldPort    = "port"

	// Markers
	FieldSymbol = "symbol" // Baton subsystem glyph (𝄞, ⧉, ♬, etc.)
)

// Context keys for propagating logging context
type contextKey string

const (
	programIDKey contextKey = "logger_program_id"
	requestIDKey contextKey = "logger_request_id"
	componentKey contextKey = "logger_component"
)

// WithProgramID adds a program fingerprint to the context for logging
func WithProgramID(ctx context.Context, programID string) context.Context {
	return context.WithValue(ctx, programIDKey, programID)
}

// WithRequestID adds a request ID to the context for logging
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if programID, ok := ctx.Value(programIDKey).(string); ok && programID != "" {
		fields = append(fields, FieldProgramID, programID)
	}
	if requestID, ok := ctx.Value(requestIDKey).(string); ok && requestID != "" {
		fields = append(fields, FieldRequestID, requestID)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns a logger with fields extracted from context.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Watcher struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewWatcher() *Watcher {
//	    return &Watcher{
//	        logger: logger.ComponentLogger("patchio.watcher"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
// Use for sub-operations that need extra context fields.
//
// Example:
//
//	programLogger := logger.ChildLogger(baseLogger, "program_id", id)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
