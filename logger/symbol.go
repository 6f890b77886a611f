package logger

import (
	"github.com/tactus/baton/sym"
	"go.uber.org/zap"
)

// Symbol-aware logging helpers.
// These functions log with the glyph as a structured field, not in the message.
//
// Usage:
//
//	// Instead of:
//	logger.Infow(sym.Baton + " Compile finished", "program_id", id)
//
//	// Use:
//	logger.BatonInfow("Compile finished", "program_id", id)
//
// This makes logs queryable by subsystem and keeps messages clean.

// BatonInfow logs an info message with the Baton glyph (𝄞)
func BatonInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Baton}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// BatonDebugw logs a debug message with the Baton glyph (𝄞)
func BatonDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Baton}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// BatonErrorw logs an error message with the Baton glyph (𝄞)
func BatonErrorw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Baton}, keysAndValues...)
		Logger.Errorw(msg, fields...)
	}
}

// PatchInfow logs an info message with the Patch glyph (⧉)
func PatchInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Patch}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// StoreInfow logs an info message with the Store glyph (⊟)
func StoreInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Store}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// StoreDebugw logs a debug message with the Store glyph (⊟)
func StoreDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Store}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// TuneUpInfow logs an info message with the TuneUp glyph (♯)
// Used for startup operations
func TuneUpInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.TuneUp}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// WindDownInfow logs an info message with the WindDown glyph (♭)
// Used for graceful shutdown operations
func WindDownInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.WindDown}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// WithSymbol returns a logger with the given glyph as a field.
// For ad-hoc usage not covered by the helpers above.
//
// Example:
//
//	watchLogger := logger.WithSymbol(sym.Watch)
//	watchLogger.Infow("Watching patch file", "file", path)
func WithSymbol(symbol string) *zap.SugaredLogger {
	return Logger.With(FieldSymbol, symbol)
}

// ============================================================================
// Instance logger wrappers
// ============================================================================
// These functions wrap any logger with a glyph field, useful when you have
// an instance logger (e.g., s.logger, w.logger) rather than the global Logger.

// AddBatonSymbol wraps a logger with the Baton glyph (𝄞)
func AddBatonSymbol(l *zap.SugaredLogger) *zap.SugaredLogger {
	return l.With(FieldSymbol, sym.Baton)
}

// AddLiveSymbol wraps a logger with the Live glyph (≋)
func AddLiveSymbol(l *zap.SugaredLogger) *zap.SugaredLogger {
	return l.With(FieldSymbol, sym.Live)
}

// AddWatchSymbol wraps a logger with the Watch glyph (◉)
func AddWatchSymbol(l *zap.SugaredLogger) *zap.SugaredLogger {
	return l.With(FieldSymbol, sym.Watch)
}

// AddStoreSymbol wraps a logger with the Store glyph (⊟)
func AddStoreSymbol(l *zap.SugaredLogger) *zap.SugaredLogger {
	return l.With(FieldSymbol, sym.Store)
}
