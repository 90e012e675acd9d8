package suite

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// HookRole names one of the four hook lists of a suite.
type HookRole string

const (
	RoleBefore     HookRole = "before"
	RoleBeforeEach HookRole = "beforeEach"
	RoleAfterEach  HookRole = "afterEach"
	RoleAfter      HookRole = "after"
)

// HookError records one failed hook invocation. Test is set for the
// per-test roles.
type HookError struct {
	Role    HookRole
	Index   int
	Test    string
	Outcome Outcome
}

func (h HookError) String() string {
	if h.Test != "" {
		return fmt.Sprintf("%s[%d] (%s): %s", h.Role, h.Index, h.Test, h.Outcome.Message)
	}
	return fmt.Sprintf("%s[%d]: %s", h.Role, h.Index, h.Outcome.Message)
}

// Suite is a named collection of tests, hooks and child suites.
//
// Counters hold the totals of the most recent Execute pass over the suite
// and all of its descendants.
type Suite struct {
	Name string
	Path string

	tree        *Tree
	parent      *Suite
	depth       int
	initializer Initializer

	before     []Action
	beforeEach []Action
	afterEach  []Action
	after      []Action
	tests      []Test
	children   []*Suite

	Successes    int
	Failures     int
	Stubs        int
	HookFailures int
	HookErrors   []HookError
	Duration     time.Duration
}

func newSuite(tree *Tree, parent *Suite, name, path string, init Initializer) *Suite {
	s := &Suite{Name: name, Path: path, tree: tree, parent: parent, initializer: init}
	if parent != nil {
		s.depth = parent.depth + 1
	}
	return s
}

// initialize links the suite into its parent and runs its initializer.
// Called exactly once per suite.
func (s *Suite) initialize() {
	if s.parent != nil {
		s.parent.children = append(s.parent.children, s)
	}
	s.initializeWith(s.initializer)
}

// initializeWith runs init against this suite. Registrations append.
func (s *Suite) initializeWith(init Initializer) {
	if init == nil {
		return
	}
	init(&Builder{tree: s.tree, suite: s})
}

// Parent returns the enclosing suite, nil for the root.
func (s *Suite) Parent() *Suite {
	return s.parent
}

// Depth is the distance from the root.
func (s *Suite) Depth() int {
	return s.depth
}

// Tests returns a copy of the suite's own tests with their last outcomes.
func (s *Suite) Tests() []Test {
	out := make([]Test, len(s.tests))
	copy(out, s.tests)
	return out
}

// Children returns the child suites in declaration order.
func (s *Suite) Children() []*Suite {
	out := make([]*Suite, len(s.children))
	copy(out, s.children)
	return out
}

// HookCount returns how many hooks of the given role are registered.
func (s *Suite) HookCount(role HookRole) int {
	switch role {
	case RoleBefore:
		return len(s.before)
	case RoleBeforeEach:
		return len(s.beforeEach)
	case RoleAfterEach:
		return len(s.afterEach)
	case RoleAfter:
		return len(s.after)
	}
	return 0
}

// TestCount returns the number of tests in the subtree.
func (s *Suite) TestCount() int {
	n := len(s.tests)
	for _, c := range s.children {
		n += c.TestCount()
	}
	return n
}

// Failed reports whether the last pass had test or hook failures.
func (s *Suite) Failed() bool {
	return s.Failures > 0 || s.HookFailures > 0
}

// Walk visits the suite and its descendants depth-first in declaration
// order.
func (s *Suite) Walk(fn func(*Suite)) {
	fn(s)
	for _, c := range s.children {
		c.Walk(fn)
	}
}

// Info snapshots the suite for reporters.
func (s *Suite) Info() SuiteInfo {
	var hookErrs []HookError
	if len(s.HookErrors) > 0 {
		hookErrs = make([]HookError, len(s.HookErrors))
		copy(hookErrs, s.HookErrors)
	}
	return SuiteInfo{
		Name:         s.Name,
		Path:         s.Path,
		Depth:        s.depth,
		Tests:        s.TestCount(),
		Successes:    s.Successes,
		Failures:     s.Failures,
		Stubs:        s.Stubs,
		HookFailures: s.HookFailures,
		HookErrors:   hookErrs,
		Duration:     s.Duration,
	}
}

func (s *Suite) testInfo(t *Test) TestInfo {
	return TestInfo{
		Name:      t.Name,
		SuitePath: s.Path,
		Depth:     s.depth + 1,
		Stub:      t.stub,
		Outcome:   t.Outcome,
		Duration:  t.Duration,
		Stdout:    t.Stdout,
		Stderr:    t.Stderr,

		StdoutTruncated: t.StdoutTruncated,
		StderrTruncated: t.StderrTruncated,
	}
}

func (s *Suite) reset() {
	s.Successes, s.Failures, s.Stubs, s.HookFailures = 0, 0, 0, 0
	s.HookErrors = nil
	s.Duration = 0
}

// Execute runs the suite and its descendants, notifying r of every
// lifecycle event. Counters are recomputed from scratch on each call.
// Test and hook failures are recorded, never returned.
func (s *Suite) Execute(r Reporter) {
	if r == nil {
		r = NopReporter{}
	}
	cfg := s.settings()
	rs := cfg.run()
	log := cfg.log.WithField("suite", s.Path)

	s.reset()
	log.Debug("suite started")
	r.SuiteStarted(s.Info())

	var blocked *Outcome
	if o, ok := s.runHooks(RoleBefore, s.before, "", rs, true); !ok {
		reason := notRun(RoleBefore, o)
		blocked = &reason
	}

	for i := range s.tests {
		s.executeTest(&s.tests[i], r, blocked, cfg)
	}

	s.runHooks(RoleAfter, s.after, "", rs, false)

	for _, c := range s.children {
		c.Execute(r)
		s.Successes += c.Successes
		s.Failures += c.Failures
		s.Stubs += c.Stubs
		s.HookFailures += c.HookFailures
		s.Duration += c.Duration
	}

	info := s.Info()
	log.WithField("duration", s.Duration).Debug("suite finished")
	if info.Failed() {
		r.SuiteFailed(info)
	} else {
		r.SuiteSucceeded(info)
	}
}

// executeTest runs one test with its per-test hooks. When blocked is set
// the once-before hooks failed and the test is reported without running.
func (s *Suite) executeTest(t *Test, r Reporter, blocked *Outcome, cfg settings) {
	rs := cfg.run()
	log := cfg.log.WithFields(logrus.Fields{"suite": s.Path, "test": t.Name})
	t.clear()

	if blocked != nil {
		r.TestStarted(s.testInfo(t))
		t.skip(*blocked)
		s.record(t, r)
		return
	}

	if o, ok := s.runHooks(RoleBeforeEach, s.beforeEach, t.Name, rs, true); !ok {
		r.TestStarted(s.testInfo(t))
		t.skip(notRun(RoleBeforeEach, o))
	} else {
		r.TestStarted(s.testInfo(t))
		s.runCaptured(t, cfg)
	}
	log.WithField("duration", t.Duration).Debugf("test %s", t.Outcome.Status)
	s.record(t, r)

	s.runHooks(RoleAfterEach, s.afterEach, t.Name, rs, false)
}

func (s *Suite) runCaptured(t *Test, cfg settings) {
	var c *capture
	if cfg.capture && !t.stub {
		var err error
		c, err = startCapture(cfg.captureBytes)
		if err != nil {
			cfg.log.WithError(err).Warn("output capture unavailable")
		}
	}
	func() {
		defer func() {
			t.Stdout, t.Stderr = c.stop()
			t.StdoutTruncated, t.StderrTruncated = c.truncated()
		}()
		t.run(cfg.run())
	}()
}

// record folds a finished test into the counters and notifies r.
func (s *Suite) record(t *Test, r Reporter) {
	s.Duration += t.Duration
	info := s.testInfo(t)
	switch {
	case t.Failed():
		s.Failures++
		r.TestFailed(info)
	case t.stub:
		s.Stubs++
		r.TestStubbed(info)
	default:
		s.Successes++
		r.TestSucceeded(info)
	}
}

// runHooks runs hooks in order, recording each failure. With stopOnFailure
// the first failure ends the list and is returned.
func (s *Suite) runHooks(role HookRole, hooks []Action, test string, rs runSettings, stopOnFailure bool) (Outcome, bool) {
	ok := true
	var first Outcome
	for i, h := range hooks {
		o := classify(h.run(rs))
		if !o.Failed() {
			continue
		}
		s.HookFailures++
		s.HookErrors = append(s.HookErrors, HookError{Role: role, Index: i, Test: test, Outcome: o})
		rs.log.WithFields(logrus.Fields{
			"suite": s.Path,
			"hook":  fmt.Sprintf("%s[%d]", role, i),
		}).Warn(o.Message)
		if ok {
			first = o
			ok = false
		}
		if stopOnFailure {
			break
		}
	}
	return first, ok
}

func notRun(role HookRole, cause Outcome) Outcome {
	return Outcome{Status: StatusFailed, Message: fmt.Sprintf("not run: %s hook failed: %s", role, cause.Message)}
}

func (s *Suite) settings() settings {
	if s.tree == nil {
		return defaultSettings()
	}
	return s.tree.cfg
}
