// Package assert provides the comparison predicates test bodies use to report
// failures. Every predicate returns nil on success and a *Failure otherwise;
// the suite engine classifies a *Failure as an assertion failure, any other
// error as a generic failure.
package assert

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Location identifies the source position an assertion was made from.
type Location struct {
	File string
	Line int
	Func string
}

// Empty reports whether no location information was recorded.
func (l Location) Empty() bool {
	return l.File == "" && l.Func == "" && l.Line == 0
}

// String formats the location as [file:line]:func.
func (l Location) String() string {
	return fmt.Sprintf("[%s:%d]:%s", l.File, l.Line, l.Func)
}

// At builds a caller-supplied location. Passed as the first message argument
// of a predicate it replaces the automatically captured one.
func At(file string, line int, fn string) Location {
	return Location{File: file, Line: line, Func: fn}
}

// Failure is a structured assertion failure.
type Failure struct {
	Message  string
	Location Location
	stack    errors.StackTrace
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func (f *Failure) Error() string {
	if f == nil {
		return ""
	}
	return f.Message
}

// Stack returns the call stack captured when the failure was created, one
// frame per entry in "function\n\tfile:line" form.
func (f *Failure) Stack() string {
	if f == nil || len(f.stack) == 0 {
		return ""
	}
	return strings.TrimPrefix(fmt.Sprintf("%+v", f.stack), "\n")
}

// Frames returns the number of captured stack frames.
func (f *Failure) Frames() int {
	if f == nil {
		return 0
	}
	return len(f.stack)
}

// NewFailure creates a failure located skip frames above its caller
// (skip=0 means the direct caller of NewFailure).
func NewFailure(message string, skip int) *Failure {
	return &Failure{
		Message:  message,
		Location: callerLocation(skip + 1),
		stack:    captureStack(skip + 1),
	}
}

func callerLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{}
	}
	loc := Location{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Func = fn.Name()
	}
	return loc
}

// captureStack drops the frames belonging to this package so the snapshot
// starts at the asserting caller.
func captureStack(skip int) errors.StackTrace {
	st, ok := errors.New("").(stackTracer)
	if !ok {
		return nil
	}
	frames := st.StackTrace()
	// frames[0] is captureStack itself.
	drop := skip + 1
	if drop >= len(frames) {
		return nil
	}
	return frames[drop:]
}
