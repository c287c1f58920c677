package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

type handlerSlot struct{ h Handler }

var current atomic.Pointer[handlerSlot]

// Current returns the process-wide handler. Until SetHandler is called it
// is a LogHandler on slog.Default().
func Current() Handler {
	if slot := current.Load(); slot != nil {
		return slot.h
	}
	return &LogHandler{}
}

// SetHandler installs h as the process-wide handler and returns the one it
// replaces. Nil restores the default LogHandler.
func SetHandler(h Handler) Handler {
	if h == nil {
		h = &LogHandler{}
	}
	prev := current.Swap(&handlerSlot{h: h})
	if prev == nil {
		return &LogHandler{}
	}
	return prev.h
}

// Report sends err to the process-wide handler.
func Report(err *PicoError) { ReportTo(nil, err) }

// ReportTo sends err to h, falling back to Current when h is nil. A zero
// Timestamp is set to now.
func ReportTo(h Handler, err *PicoError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	orCurrent(h).HandleError(err)
}

// ReportPanic sends err to the process-wide handler.
func ReportPanic(err *PanicError) { ReportPanicTo(nil, err) }

// ReportPanicTo sends err to h, falling back to Current when h is nil.
func ReportPanicTo(h Handler, err *PanicError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	orCurrent(h).HandlePanic(err)
}

// Recover reports a panic in progress to the process-wide handler.
// Usage: defer errors.Recover("store.fire")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanicTo(nil, recovered(op, r))
	}
}

// RecoverTo is Recover with an explicit handler.
// Usage: defer errors.RecoverTo(h, "mount.Mount")
func RecoverTo(h Handler, op string) {
	if r := recover(); r != nil {
		ReportPanicTo(h, recovered(op, r))
	}
}

func recovered(op string, r any) *PanicError {
	return &PanicError{Op: op, Value: r, StackTrace: CaptureStack()}
}

func orCurrent(h Handler) Handler {
	if h != nil {
		return h
	}
	return Current()
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// CaptureStack formats the caller's stack, one "function\n\tfile:line"
// entry per frame, starting at the function that called CaptureStack's
// caller.
func CaptureStack() string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			return sb.String()
		}
	}
}
