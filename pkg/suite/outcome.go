package suite

import (
	"errors"
	"fmt"

	"github.com/dkoosis/ut/pkg/assert"
)

// Status classifies how a test or hook finished.
type Status int

const (
	StatusPassed Status = iota
	StatusStubbed
	StatusAssertionFailed
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "pass"
	case StatusStubbed:
		return "stub"
	case StatusAssertionFailed, StatusFailed:
		return "fail"
	default:
		return "unknown"
	}
}

// Outcome is the classified result of running an action.
// Failure is set only for StatusAssertionFailed.
type Outcome struct {
	Status  Status
	Message string
	Failure *assert.Failure
}

// Failed reports whether the outcome is an assertion or generic failure.
func (o Outcome) Failed() bool {
	return o.Status == StatusAssertionFailed || o.Status == StatusFailed
}

// Location returns the failure location, empty for generic failures.
func (o Outcome) Location() assert.Location {
	if o.Failure == nil {
		return assert.Location{}
	}
	return o.Failure.Location
}

// Stack returns the captured stack, empty for generic failures.
func (o Outcome) Stack() string {
	if o.Failure == nil {
		return ""
	}
	return o.Failure.Stack()
}

func passed() Outcome  { return Outcome{Status: StatusPassed} }
func stubbed() Outcome { return Outcome{Status: StatusStubbed} }

// classify turns an action error into an Outcome.
func classify(err error) Outcome {
	if err == nil {
		return passed()
	}
	var f *assert.Failure
	if errors.As(err, &f) {
		// A body returning a nil *assert.Failure as error passed.
		if f == nil {
			return passed()
		}
		return Outcome{Status: StatusAssertionFailed, Message: f.Message, Failure: f}
	}
	return Outcome{Status: StatusFailed, Message: err.Error()}
}

// panicError wraps a recovered panic value so it can travel as an error.
type panicError struct {
	value any
}

func (p *panicError) Error() string {
	return fmt.Sprint(p.value)
}

// recoveredError converts a recover() value into an error, keeping error
// values intact so *assert.Failure panics still classify as assertions.
func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &panicError{value: r}
}
