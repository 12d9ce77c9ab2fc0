package errors

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleError logs a SableError to stderr.
func (h *LogHandler) HandleError(err *SableError) {
	if err == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[sable error] %s [%s]", err.Op, err.Kind)
		if err.Window != "" {
			fmt.Fprintf(os.Stderr, " window=%s", err.Window)
		}
		fmt.Fprintf(os.Stderr, ": %v\n", err.Err)
		if err.StackTrace != "" {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(os.Stderr, "[sable error] %s: %v\n", err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError to stderr.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Op != "" {
		fmt.Fprintf(os.Stderr, "[sable panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(os.Stderr, "[sable panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// ZapHandler is an ErrorHandler that logs through a zap logger.
// It is the handler the CLI installs; libraries default to LogHandler.
type ZapHandler struct {
	Logger *zap.Logger
}

// HandleError logs a SableError through the zap logger.
func (h *ZapHandler) HandleError(err *SableError) {
	if err == nil || h.Logger == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
	}
	if err.Window != "" {
		fields = append(fields, zap.String("window", err.Window))
	}
	h.Logger.Error("runtime error", fields...)
}

// HandlePanic logs a PanicError through the zap logger.
func (h *ZapHandler) HandlePanic(err *PanicError) {
	if err == nil || h.Logger == nil {
		return
	}
	h.Logger.Error("recovered panic",
		zap.String("op", err.Op),
		zap.Any("value", err.Value),
		zap.String("stack", err.StackTrace),
	)
}
