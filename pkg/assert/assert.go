package assert

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	tassert "github.com/stretchr/testify/assert"
)

// Equal fails when expected and actual are not equal.
func Equal(expected, actual any, msgAndArgs ...any) error {
	if tassert.ObjectsAreEqual(expected, actual) {
		return nil
	}
	return newFailure(fmt.Sprintf("%v != %v", expected, actual), msgAndArgs)
}

// NotEqual fails when expected and actual are equal.
func NotEqual(expected, actual any, msgAndArgs ...any) error {
	if !tassert.ObjectsAreEqual(expected, actual) {
		return nil
	}
	return newFailure(fmt.Sprintf("%v == %v", expected, actual), msgAndArgs)
}

// Less fails unless a < b.
func Less[T cmp.Ordered](a, b T, msgAndArgs ...any) error {
	if a < b {
		return nil
	}
	return newFailure(fmt.Sprintf("%v !< %v", a, b), msgAndArgs)
}

// LessOrEqual fails unless a <= b.
func LessOrEqual[T cmp.Ordered](a, b T, msgAndArgs ...any) error {
	if a <= b {
		return nil
	}
	return newFailure(fmt.Sprintf("%v !<= %v", a, b), msgAndArgs)
}

// Greater fails unless a > b.
func Greater[T cmp.Ordered](a, b T, msgAndArgs ...any) error {
	if a > b {
		return nil
	}
	return newFailure(fmt.Sprintf("%v !> %v", a, b), msgAndArgs)
}

// GreaterOrEqual fails unless a >= b.
func GreaterOrEqual[T cmp.Ordered](a, b T, msgAndArgs ...any) error {
	if a >= b {
		return nil
	}
	return newFailure(fmt.Sprintf("%v !>= %v", a, b), msgAndArgs)
}

// True fails when cond is false. With no message the failure reads
// "condition failed".
func True(cond bool, msgAndArgs ...any) error {
	if cond {
		return nil
	}
	return newFailure("condition failed", msgAndArgs)
}

// False fails when cond is true.
func False(cond bool, msgAndArgs ...any) error {
	if !cond {
		return nil
	}
	return newFailure("condition failed", msgAndArgs)
}

// NoError fails when err is non-nil.
func NoError(err error, msgAndArgs ...any) error {
	if err == nil {
		return nil
	}
	return newFailure("unexpected error: "+err.Error(), msgAndArgs)
}

// Panics fails unless fn panics.
func Panics(fn func(), msgAndArgs ...any) error {
	panicked := func() (p bool) {
		defer func() {
			if recover() != nil {
				p = true
			}
		}()
		fn()
		return false
	}()
	if panicked {
		return nil
	}
	return newFailure("expected panic", msgAndArgs)
}

// PanicsWith fails unless fn panics with an error matching target under
// errors.Is.
func PanicsWith(fn func(), target error, msgAndArgs ...any) error {
	recovered, panicked := func() (r any, p bool) {
		defer func() {
			if r = recover(); r != nil {
				p = true
			}
		}()
		fn()
		return nil, false
	}()
	if !panicked {
		return newFailure(fmt.Sprintf("expected panic with %v", target), msgAndArgs)
	}
	if err, ok := recovered.(error); ok && errors.Is(err, target) {
		return nil
	}
	return newFailure(fmt.Sprintf("expected panic with %v, got %v", target, recovered), msgAndArgs)
}

// Fail always fails with the given message.
func Fail(message string, msgAndArgs ...any) error {
	return newFailure(message, msgAndArgs)
}

// Must panics with err when it is non-nil. Test bodies use it to stop at the
// first failing check; the engine recovers and classifies the panic.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// newFailure is only called from the exported predicates, which fixes the
// number of frames between it and the asserting caller.
func newFailure(base string, msgAndArgs []any) *Failure {
	f := NewFailure(base, 2)
	if len(msgAndArgs) > 0 {
		if loc, ok := msgAndArgs[0].(Location); ok {
			f.Location = loc
			msgAndArgs = msgAndArgs[1:]
		}
	}
	if extra := formatMessage(msgAndArgs); extra != "" {
		if base == "condition failed" {
			f.Message = extra
		} else {
			f.Message = base + ": " + extra
		}
	}
	return f
}

func formatMessage(msgAndArgs []any) string {
	switch len(msgAndArgs) {
	case 0:
		return ""
	case 1:
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprint(msgAndArgs[0])
	default:
		if format, ok := msgAndArgs[0].(string); ok && strings.Contains(format, "%") {
			return fmt.Sprintf(format, msgAndArgs[1:]...)
		}
		return strings.TrimSuffix(fmt.Sprintln(msgAndArgs...), "\n")
	}
}
