package assert

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var errClosed = errors.New("closed")

func TestPredicates_ReturnFailureMessage_When_ComparisonDoesNotHold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "error: equal ints", err: Equal(1, 2), wantMsg: "1 != 2"},
		{name: "error: equal strings", err: Equal("a", "b"), wantMsg: "a != b"},
		{name: "error: not equal", err: NotEqual(3, 3), wantMsg: "3 == 3"},
		{name: "error: less", err: Less(3, 2), wantMsg: "3 !< 2"},
		{name: "error: less or equal", err: LessOrEqual(3, 2), wantMsg: "3 !<= 2"},
		{name: "error: greater", err: Greater(1, 2), wantMsg: "1 !> 2"},
		{name: "error: greater or equal", err: GreaterOrEqual(1, 2), wantMsg: "1 !>= 2"},
		{name: "error: true", err: True(false), wantMsg: "condition failed"},
		{name: "error: true with message", err: True(1 == 2, "1 does not equal 2"), wantMsg: "1 does not equal 2"},
		{name: "error: false", err: False(true), wantMsg: "condition failed"},
		{name: "error: equal with formatted message", err: Equal(1, 2, "attempt %d", 3), wantMsg: "1 != 2: attempt 3"},
		{name: "error: no error", err: NoError(errors.New("disk full")), wantMsg: "unexpected error: disk full"},
		{name: "error: panics", err: Panics(func() {}), wantMsg: "expected panic"},
		{name: "error: panics with, no panic", err: PanicsWith(func() {}, errClosed), wantMsg: "expected panic with closed"},
		{name: "error: panics with, other value", err: PanicsWith(func() { panic("x") }, errClosed), wantMsg: "expected panic with closed, got x"},
		{name: "error: panics with, other error", err: PanicsWith(func() { panic(errors.New("open")) }, errClosed), wantMsg: "expected panic with closed, got open"},
		{name: "error: fail", err: Fail("nope"), wantMsg: "nope"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var f *Failure
			require.ErrorAs(t, tc.err, &f)
			require.Equal(t, tc.wantMsg, f.Message)
			require.Equal(t, tc.wantMsg, f.Error())
		})
	}
}

func TestPredicates_ReturnNil_When_ComparisonHolds(t *testing.T) {
	t.Parallel()

	require.NoError(t, Equal(2, 2))
	require.NoError(t, Equal([]int{1, 2}, []int{1, 2}))
	require.NoError(t, NotEqual("a", "b"))
	require.NoError(t, Less(1, 2))
	require.NoError(t, LessOrEqual(2, 2))
	require.NoError(t, Greater(2.5, 1.0))
	require.NoError(t, GreaterOrEqual("b", "a"))
	require.NoError(t, True(true))
	require.NoError(t, False(false))
	require.NoError(t, NoError(nil))
	require.NoError(t, Panics(func() { panic("x") }))
	require.NoError(t, PanicsWith(func() { panic(errClosed) }, errClosed))
	require.NoError(t, PanicsWith(func() { panic(fmt.Errorf("flush: %w", errClosed)) }, errClosed))
}

func TestFailure_RecordsCallerLocation_When_AssertionFails(t *testing.T) {
	t.Parallel()

	err := Equal(1, 2)

	var f *Failure
	require.ErrorAs(t, err, &f)
	require.False(t, f.Location.Empty())
	require.Equal(t, "assert_test.go", filepath.Base(f.Location.File))
	require.True(t, strings.HasSuffix(f.Location.Func, "TestFailure_RecordsCallerLocation_When_AssertionFails"),
		"unexpected func %q", f.Location.Func)
	require.Positive(t, f.Location.Line)
}

func TestFailure_CapturesStackStartingAtCaller(t *testing.T) {
	t.Parallel()

	err := Less(5, 1)

	var f *Failure
	require.ErrorAs(t, err, &f)
	require.Positive(t, f.Frames())
	stack := f.Stack()
	require.Contains(t, stack, "TestFailure_CapturesStackStartingAtCaller")
	require.NotContains(t, stack, "newFailure")
}

func TestFailure_UsesSuppliedLocation_When_AtIsGiven(t *testing.T) {
	t.Parallel()

	err := Equal(1, 2, At("widget.go", 42, "Widget.Spin"), "spin count")

	var f *Failure
	require.ErrorAs(t, err, &f)
	require.Equal(t, Location{File: "widget.go", Line: 42, Func: "Widget.Spin"}, f.Location)
	require.Equal(t, "1 != 2: spin count", f.Message)
	require.Equal(t, "[widget.go:42]:Widget.Spin", f.Location.String())
}

func TestMust_PanicsWithFailure_When_ErrorIsNonNil(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() { Must(nil) })

	defer func() {
		r := recover()
		var f *Failure
		err, ok := r.(error)
		require.True(t, ok)
		require.ErrorAs(t, err, &f)
		require.Equal(t, "1 != 2", f.Message)
	}()
	Must(Equal(1, 2))
}
