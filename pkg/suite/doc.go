// Package suite is the execution engine: a tree of named suites, each with
// ordered tests, four hook lists and child suites, executed depth-first in
// declaration order while a Reporter observes every lifecycle event.
//
// A typical program declares suites on a Tree and hands it to a runner:
//
//	tree := suite.NewTree()
//	tree.Describe("math", func(b *suite.Builder) {
//		b.It("adds", func() error { return assert.Equal(2, 1+1) })
//		b.Stub("divides")
//	})
//	info, err := tree.Run(reporter)
//
// Test and hook failures are recorded on the tree, never returned: a run
// always completes, with counters aggregated bottom-up on every suite.
package suite
