package core

import (
	"slices"

	"github.com/go-drift/pico/pkg/dom"
	"github.com/go-drift/pico/pkg/errors"
)

// Frame records the release functions captured while one element connects.
type Frame struct {
	element  *dom.Element
	releases []func()
	running  bool
}

// Element returns the element the frame belongs to.
func (f *Frame) Element() *dom.Element { return f.element }

// Len returns the number of captured release functions.
func (f *Frame) Len() int { return len(f.releases) }

// Running reports whether the frame still accepts captures.
func (f *Frame) Running() bool { return f.running }

// Stack tracks the frames of in-progress connections and the frames retained
// for teardown. Active frames form a LIFO; only the innermost one captures.
// Settled frames with captures are indexed by element until released.
type Stack struct {
	active   []*Frame
	retained map[*dom.Element]*Frame
	reporter errors.Handler
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{retained: make(map[*dom.Element]*Frame)}
}

// Push starts a running frame for el on top of the stack.
func (s *Stack) Push(el *dom.Element) *Frame {
	f := &Frame{element: el, running: true}
	s.active = append(s.active, f)
	return f
}

// Capture appends release to the innermost running frame. It returns false
// when no connection is in progress; the caller then owns release.
func (s *Stack) Capture(release func()) bool {
	if release == nil || len(s.active) == 0 {
		return false
	}
	top := s.active[len(s.active)-1]
	if !top.running {
		return false
	}
	top.releases = append(top.releases, release)
	return true
}

// Settle stops f from capturing and retains it when it holds releases.
// Frames pushed after f and never settled are settled first.
func (s *Stack) Settle(f *Frame) {
	i := slices.Index(s.active, f)
	if i < 0 {
		return
	}
	for len(s.active) > i {
		top := s.active[len(s.active)-1]
		s.active = s.active[:len(s.active)-1]
		s.retain(top)
	}
}

func (s *Stack) retain(f *Frame) {
	f.running = false
	if len(f.releases) == 0 {
		return
	}
	if prev, ok := s.retained[f.element]; ok {
		prev.releases = append(prev.releases, f.releases...)
		return
	}
	s.retained[f.element] = f
}

// Release detaches the frame retained for el and runs its release functions
// in registration order. A panicking release is reported and does not stop
// the others. It returns the number of functions run.
func (s *Stack) Release(el *dom.Element) int {
	f, ok := s.retained[el]
	if !ok {
		return 0
	}
	delete(s.retained, el)
	for _, release := range f.releases {
		s.run(release)
	}
	return len(f.releases)
}

func (s *Stack) run(release func()) {
	defer func() {
		if r := recover(); r != nil {
			errors.ReportTo(s.reporter, &errors.PicoError{
				Op:         "core.Stack.Release",
				Kind:       errors.KindDisconnect,
				Err:        errors.FromPanic("core.Stack.Release", r),
				StackTrace: errors.CaptureStack(),
			})
		}
	}()
	release()
}

// Depth returns the number of connections in progress.
func (s *Stack) Depth() int { return len(s.active) }

// Retained returns the frame kept for el, if any.
func (s *Stack) Retained(el *dom.Element) (*Frame, bool) {
	f, ok := s.retained[el]
	return f, ok
}

// RetainedLen returns the number of retained frames.
func (s *Stack) RetainedLen() int { return len(s.retained) }
