package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across pyjava.
// Use these constants instead of raw strings.
const (
	// Run identity
	FieldRunID     = "run_id"
	FieldComponent = "component"

	// Input and output
	FieldFile   = "file"
	FieldOutput = "output"
	FieldFormat = "format"
	FieldLine   = "line"

	// Generator state
	FieldScope    = "scope"
	FieldNode     = "node"
	FieldName     = "name"
	FieldType     = "type"
	FieldKind     = "kind"
	FieldSeverity = "severity"

	// Timing
	FieldDurationMS = "duration_ms"

	// Counts
	FieldCount       = "count"
	FieldLines       = "lines"
	FieldDiagnostics = "diagnostics"

	// Errors
	FieldError = "error"

	// Frontend
	FieldCommand = "command"
)

type contextKey string

const (
	runIDKey     contextKey = "logger_run_id"
	componentKey contextKey = "logger_component"
)

// WithRunID adds a run correlation ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, FieldRunID, runID)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns a logger carrying the run_id and component
// stored in ctx.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}
