package errors

import (
	"log/slog"
)

// LogHandler is a Handler that logs errors through slog.
type LogHandler struct {
	// Logger receives the records. Nil means slog.Default().
	Logger *slog.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// HandleError logs a PicoError. Input diagnostics are logged as warnings.
func (h *LogHandler) HandleError(err *PicoError) {
	if err == nil {
		return
	}
	attrs := []any{
		slog.String("op", err.Op),
		slog.String("kind", err.Kind.String()),
	}
	if err.Component != "" {
		attrs = append(attrs, slog.String("component", err.Component))
	}
	attrs = append(attrs, slog.Any("err", err.Err))
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	if err.Kind == KindInput {
		h.logger().Warn("pico diagnostic", attrs...)
		return
	}
	h.logger().Error("pico error", attrs...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{slog.Any("value", err.Value)}
	if err.Op != "" {
		attrs = append(attrs, slog.String("op", err.Op))
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger().Error("pico panic", attrs...)
}
