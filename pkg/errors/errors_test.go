package errors

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPicoErrorString(t *testing.T) {
	err := &PicoError{
		Op:   "core.Define",
		Kind: KindRegistration,
		Err:  ErrInvalidName,
	}
	assert.Equal(t, "core.Define [registration]: invalid component name", err.Error())
}

func TestPicoErrorWithComponent(t *testing.T) {
	err := &PicoError{
		Op:        "core.connect",
		Kind:      KindConnect,
		Component: "x-counter",
		Err:       stderrors.New("boom"),
	}
	assert.Contains(t, err.Error(), "component=x-counter")
	assert.Contains(t, err.Error(), "boom")
}

func TestPicoErrorUnwrap(t *testing.T) {
	err := &PicoError{Op: "core.Define", Kind: KindRegistration, Err: ErrDuplicate}
	assert.True(t, Is(err, ErrDuplicate))

	var target *PicoError
	require.True(t, As(err, &target))
	assert.Equal(t, "core.Define", target.Op)
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindRegistration, "registration"},
		{KindConnect, "connect"},
		{KindDisconnect, "disconnect"},
		{KindInput, "input"},
		{KindPanic, "panic"},
		{ErrorKind(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String(), "ErrorKind(%d)", tt.kind)
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	assert.Equal(t, "panic: test panic", err.Error())

	err.Op = "core.connect"
	assert.Equal(t, "panic in core.connect: test panic", err.Error())
}

func TestFromPanic(t *testing.T) {
	cause := stderrors.New("wrapped")
	assert.Same(t, cause, FromPanic("op", cause))

	err := FromPanic("core.connect", 42)
	var pe *PanicError
	require.True(t, As(err, &pe))
	assert.Equal(t, 42, pe.Value)
	assert.Equal(t, "core.connect", pe.Op)
}

func TestReport(t *testing.T) {
	rec := &Recorder{}
	defer SetHandler(SetHandler(rec))

	Report(&PicoError{Op: "test.op", Kind: KindInput, Err: ErrMalformedInput})

	errs := rec.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "test.op", errs[0].Op)
	assert.False(t, errs[0].Timestamp.IsZero())
	assert.Equal(t, []ErrorKind{KindInput}, rec.Kinds())
}

func TestReportNil(t *testing.T) {
	rec := &Recorder{}
	ReportTo(rec, nil)
	ReportPanicTo(rec, nil)
	assert.Empty(t, rec.Errors())
	assert.Empty(t, rec.Panics())
}

func TestReportToPrefersExplicitHandler(t *testing.T) {
	global := &Recorder{}
	local := &Recorder{}
	defer SetHandler(SetHandler(global))

	ReportTo(local, &PicoError{Op: "x", Kind: KindConnect})

	assert.Len(t, local.Errors(), 1)
	assert.Empty(t, global.Errors())
}

func TestRecover(t *testing.T) {
	rec := &Recorder{}
	defer SetHandler(SetHandler(rec))

	func() {
		defer Recover("test.recover")
		panic("boom")
	}()

	panics := rec.Panics()
	require.Len(t, panics, 1)
	assert.Equal(t, "test.recover", panics[0].Op)
	assert.Equal(t, "boom", panics[0].Value)
	assert.NotEmpty(t, panics[0].StackTrace)
}

func TestRecoverTo(t *testing.T) {
	rec := &Recorder{}
	func() {
		defer RecoverTo(rec, "test.recoverTo")
		panic(ErrDuplicate)
	}()

	panics := rec.Panics()
	require.Len(t, panics, 1)
	assert.Equal(t, "test.recoverTo", panics[0].Op)
	assert.False(t, panics[0].Timestamp.IsZero())
}

func TestSetHandlerNilRestoresDefault(t *testing.T) {
	defer SetHandler(SetHandler(&Recorder{}))

	prev := SetHandler(nil)
	_, wasRecorder := prev.(*Recorder)
	assert.True(t, wasRecorder)
	_, ok := Current().(*LogHandler)
	assert.True(t, ok)
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Logger: slog.New(slog.NewTextHandler(&buf, nil)), Verbose: true}

	h.HandleError(&PicoError{
		Op:         "core.connect",
		Kind:       KindConnect,
		Component:  "x-a",
		Err:        stderrors.New("boom"),
		StackTrace: "trace",
	})
	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "component=x-a")
	assert.Contains(t, out, "stack=trace")

	buf.Reset()
	h.HandleError(&PicoError{Op: "store.Set", Kind: KindInput, Err: ErrMalformedInput})
	assert.Contains(t, buf.String(), "level=WARN")

	buf.Reset()
	h.HandlePanic(&PanicError{Op: "core.release", Value: "bad"})
	assert.Contains(t, buf.String(), "pico panic")
	assert.Contains(t, buf.String(), "op=core.release")
}

func TestRecorderReset(t *testing.T) {
	rec := &Recorder{}
	rec.HandleError(&PicoError{})
	rec.HandlePanic(&PanicError{})
	rec.Reset()
	assert.Empty(t, rec.Errors())
	assert.Empty(t, rec.Panics())
}
