package errors

import "sync"

// Recorder is a Handler that keeps every report in memory.
// It is useful in tests and in hosts that surface errors in their own UI.
type Recorder struct {
	mu     sync.Mutex
	errors []*PicoError
	panics []*PanicError
}

// HandleError records err.
func (r *Recorder) HandleError(err *PicoError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

// HandlePanic records err.
func (r *Recorder) HandlePanic(err *PanicError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panics = append(r.panics, err)
}

// Errors returns a copy of the recorded errors.
func (r *Recorder) Errors() []*PicoError {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*PicoError, len(r.errors))
	copy(out, r.errors)
	return out
}

// Panics returns a copy of the recorded panics.
func (r *Recorder) Panics() []*PanicError {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*PanicError, len(r.panics))
	copy(out, r.panics)
	return out
}

// Kinds returns the kind of every recorded error, in report order.
func (r *Recorder) Kinds() []ErrorKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ErrorKind, 0, len(r.errors))
	for _, err := range r.errors {
		out = append(out, err.Kind)
	}
	return out
}

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = nil
	r.panics = nil
}
