package suite

import (
	"errors"
	"fmt"
	"testing"

	"pgregory.net/rapid"

	ut "github.com/dkoosis/ut/pkg/assert"
)

type leafKind int

const (
	leafPass leafKind = iota
	leafAssert
	leafError
	leafStub
	leafAsyncPass
	leafAsyncFail
)

// drawSuite declares a random subtree under b and returns its test count.
func drawSuite(t *rapid.T, b *Builder, depth int, label string) int {
	leaves := 0
	n := rapid.IntRange(0, 4).Draw(t, label+"/tests")
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("t%d", i)
		switch rapid.SampledFrom([]leafKind{leafPass, leafAssert, leafError, leafStub, leafAsyncPass, leafAsyncFail}).Draw(t, label+"/"+name) {
		case leafPass:
			b.It(name, func() error { return nil })
		case leafAssert:
			b.It(name, func() error { return ut.Equal(1, 2) })
		case leafError:
			b.It(name, func() error { return errors.New("plain") })
		case leafStub:
			b.Stub(name)
		case leafAsyncPass:
			b.ItAsync(name, func(done Done) { done() })
		case leafAsyncFail:
			b.ItAsync(name, func(done Done) { done("boom") })
		}
		leaves++
	}
	if rapid.Bool().Draw(t, label+"/beforeFails") {
		b.Before(func() error { return errors.New("before") })
	}
	if depth < 3 {
		children := rapid.IntRange(0, 3).Draw(t, label+"/children")
		for c := 0; c < children; c++ {
			name := fmt.Sprintf("c%d", c)
			b.Describe(name, func(cb *Builder) {
				leaves += drawSuite(t, cb, depth+1, label+"/"+name)
			})
		}
	}
	return leaves
}

func TestTree_CountsEveryLeafOnce_When_TreeIsRandom(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tree := NewTree()
		leaves := 0
		tree.Describe("top", func(b *Builder) {
			leaves = drawSuite(rt, b, 0, "top")
		})

		info, err := tree.Run(nil)
		if err != nil {
			rt.Fatalf("run: %v", err)
		}
		if got := info.Successes + info.Failures + info.Stubs; got != leaves {
			rt.Fatalf("successes+failures+stubs = %d, want %d leaves", got, leaves)
		}
		if info.Tests != leaves {
			rt.Fatalf("Tests = %d, want %d", info.Tests, leaves)
		}
	})
}

func TestTree_ProducesSameCounts_When_ExecutedTwice(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tree := NewTree()
		tree.Describe("top", func(b *Builder) {
			drawSuite(rt, b, 0, "top")
		})

		first, err := tree.Run(nil)
		if err != nil {
			rt.Fatalf("first run: %v", err)
		}
		second, err := tree.Run(nil)
		if err != nil {
			rt.Fatalf("second run: %v", err)
		}
		if first.Successes != second.Successes || first.Failures != second.Failures ||
			first.Stubs != second.Stubs || first.HookFailures != second.HookFailures {
			rt.Fatalf("pass counts differ: first %+v, second %+v", first, second)
		}
	})
}
