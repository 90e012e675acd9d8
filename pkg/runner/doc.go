// Package runner is the command-line entry point for a declared suite tree.
//
// A test binary declares its suites and hands the tree over:
//
//	func main() {
//		tree := suite.NewTree()
//		declare(tree)
//		runner.Main(tree)
//	}
//
// Exit codes: 0 when every test passed, 1 when any test or hook failed,
// 2 for usage, configuration or declaration errors.
package runner
