// Package errors provides structured error handling for pico.
//
// Framework failures (registration, connect, disconnect, malformed input) are
// never thrown back into host teardown machinery. They are wrapped in a
// PicoError and sent to a Handler, which defaults to a slog-backed LogHandler.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// Sentinel causes carried in PicoError.Err.
var (
	// ErrInvalidName is returned when a component name is not a valid custom element name.
	ErrInvalidName = stderrors.New("invalid component name")
	// ErrDuplicate is returned when a component name is registered twice.
	ErrDuplicate = stderrors.New("component already defined")
	// ErrNilConnect is returned when a component is registered without a connect procedure.
	ErrNilConnect = stderrors.New("nil connect procedure")
	// ErrMalformedInput is returned when an API receives a missing or non-mapping argument.
	ErrMalformedInput = stderrors.New("malformed input")
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindRegistration indicates a duplicate or malformed component definition.
	KindRegistration
	// KindConnect indicates a connect procedure failed.
	KindConnect
	// KindDisconnect indicates a disconnect procedure or release function failed.
	KindDisconnect
	// KindInput indicates a malformed argument. Reported as a diagnostic only.
	KindInput
	// KindPanic indicates a recovered panic outside a component procedure.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindRegistration:
		return "registration"
	case KindConnect:
		return "connect"
	case KindDisconnect:
		return "disconnect"
	case KindInput:
		return "input"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// PicoError represents a structured error raised by the framework.
type PicoError struct {
	// Op is the operation that failed (e.g., "core.Define").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Component is the component name, if applicable.
	Component string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *PicoError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s [%s] component=%s: %v", e.Op, e.Kind, e.Component, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *PicoError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "core.connect").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// FromPanic converts a recovered value into an error. Errors pass through
// unchanged so callers can still match sentinels with errors.Is.
func FromPanic(op string, r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &PanicError{
		Op:        op,
		Value:     r,
		Timestamp: time.Now(),
	}
}

// Handler receives errors reported by the framework.
type Handler interface {
	// HandleError is called when an error occurs.
	HandleError(err *PicoError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
