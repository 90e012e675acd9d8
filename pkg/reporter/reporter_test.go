package reporter

import (
	"errors"

	"github.com/dkoosis/ut/pkg/assert"
	"github.com/dkoosis/ut/pkg/suite"
)

// sampleTree declares a small tree covering every outcome kind.
func sampleTree() *suite.Tree {
	tree := suite.NewTree()
	tree.Describe("math", func(b *suite.Builder) {
		b.Stub("divides")
		b.It("adds", func() error { return assert.Equal(2, 1+1) })
		b.Describe("broken", func(b *suite.Builder) {
			b.It("compares", func() error { return assert.Equal(1, 2) })
			b.It("errors", func() error { return errors.New("plain failure") })
		})
	})
	tree.Describe("io", func(b *suite.Builder) {
		b.After(func() error { return errors.New("cleanup failed") })
		b.It("reads", func() error { return nil })
	})
	return tree
}

func newTreeWithEmptySuite() *suite.Tree {
	tree := suite.NewTree()
	tree.Describe("empty", nil)
	return tree
}
