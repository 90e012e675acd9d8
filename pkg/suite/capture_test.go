package suite

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests swap the process-wide os.Stdout and os.Stderr, so none of
// them run in parallel.

func TestTailBuffer_KeepsLastBytes_When_LimitExceeded(t *testing.T) {
	b := newTailBuffer(4)
	_, _ = b.Write([]byte("abc"))
	_, _ = b.Write([]byte("defg"))

	assert.Equal(t, "defg", b.String())
	assert.True(t, b.Truncated())
}

func TestCapture_RestoresStreams_When_Stopped(t *testing.T) {
	origOut, origErr := os.Stdout, os.Stderr

	c, err := startCapture(0)
	require.NoError(t, err)
	fmt.Fprint(os.Stdout, "to stdout")
	fmt.Fprint(os.Stderr, "to stderr")
	stdout, stderr := c.stop()

	assert.Equal(t, "to stdout", stdout)
	assert.Equal(t, "to stderr", stderr)
	assert.Same(t, origOut, os.Stdout)
	assert.Same(t, origErr, os.Stderr)
}

func TestCapture_UnwindsInStackOrder_When_Nested(t *testing.T) {
	origOut := os.Stdout

	outer, err := startCapture(0)
	require.NoError(t, err)
	fmt.Print("outer-1 ")
	inner, err := startCapture(0)
	require.NoError(t, err)
	fmt.Print("inner")
	innerOut, _ := inner.stop()
	fmt.Print("outer-2")
	outerOut, _ := outer.stop()

	assert.Equal(t, "inner", innerOut)
	assert.Equal(t, "outer-1 outer-2", outerOut)
	assert.Same(t, origOut, os.Stdout)
}

func TestSuite_CapturesTestOutput_When_CaptureEnabled(t *testing.T) {
	origOut, origErr := os.Stdout, os.Stderr

	tree := NewTree(WithCapture(0))
	tree.Describe("S", func(b *Builder) {
		b.It("prints", func() error {
			fmt.Println("hello")
			fmt.Fprintln(os.Stderr, "warning")
			return nil
		})
		b.It("prints then fails", func() error {
			fmt.Print("partial")
			panic("boom")
		})
	})

	rec := &Recorder{}
	_, err := tree.Run(rec)
	require.NoError(t, err)

	var finished []TestInfo
	for _, e := range rec.Events() {
		if e.Kind == EventTestSucceeded || e.Kind == EventTestFailed {
			finished = append(finished, e.Test)
		}
	}
	require.Len(t, finished, 2)
	assert.Equal(t, "hello\n", finished[0].Stdout)
	assert.Equal(t, "warning\n", finished[0].Stderr)
	assert.Equal(t, "partial", finished[1].Stdout)
	assert.True(t, strings.Contains(finished[1].Outcome.Message, "boom"))
	assert.Same(t, origOut, os.Stdout)
	assert.Same(t, origErr, os.Stderr)
}

func TestSuite_FlagsTruncatedOutput_When_CaptureLimitExceeded(t *testing.T) {
	tree := NewTree(WithCapture(4))
	tree.Describe("S", func(b *Builder) {
		b.It("chatty", func() error {
			fmt.Print("0123456789")
			return nil
		})
		b.It("quiet", func() error {
			fmt.Print("ok")
			return nil
		})
	})

	_, err := tree.Run(nil)
	require.NoError(t, err)

	s, ok := tree.Lookup("root/S")
	require.True(t, ok)
	tests := s.Tests()
	assert.Equal(t, "6789", tests[0].Stdout)
	assert.True(t, tests[0].StdoutTruncated)
	assert.False(t, tests[0].StderrTruncated)
	assert.False(t, tests[1].StdoutTruncated)
}
