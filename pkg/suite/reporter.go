package suite

import (
	"fmt"
	"sync"
	"time"
)

// Reporter receives lifecycle notifications while a suite executes. Suite
// callbacks fire once per suite per pass, test callbacks once per test per
// pass. Arguments are snapshots; reporters cannot alter the run.
type Reporter interface {
	SuiteStarted(s SuiteInfo)
	SuiteFailed(s SuiteInfo)
	SuiteSucceeded(s SuiteInfo)
	TestStarted(t TestInfo)
	TestFailed(t TestInfo)
	TestSucceeded(t TestInfo)
	TestStubbed(t TestInfo)
}

// SuiteInfo is the read-only view of a suite handed to reporters. Counters
// are post-pass totals on SuiteFailed/SuiteSucceeded and zero on SuiteStarted.
type SuiteInfo struct {
	Name         string
	Path         string
	Depth        int
	Tests        int
	Successes    int
	Failures     int
	Stubs        int
	HookFailures int
	HookErrors   []HookError
	Duration     time.Duration
}

// IsRoot reports whether this is the tree root.
func (s SuiteInfo) IsRoot() bool {
	return s.Depth == 0
}

// Failed reports whether the subtree had test or hook failures.
func (s SuiteInfo) Failed() bool {
	return s.Failures > 0 || s.HookFailures > 0
}

// TestInfo is the read-only view of a test handed to reporters.
type TestInfo struct {
	Name      string
	SuitePath string
	Depth     int
	Stub      bool
	Outcome   Outcome
	Duration  time.Duration
	Stdout    string
	Stderr    string

	StdoutTruncated bool
	StderrTruncated bool
}

// Path returns the suite path joined with the test name.
func (t TestInfo) Path() string {
	return t.SuitePath + "/" + t.Name
}

// NopReporter ignores every notification.
type NopReporter struct{}

func (NopReporter) SuiteStarted(SuiteInfo)   {}
func (NopReporter) SuiteFailed(SuiteInfo)    {}
func (NopReporter) SuiteSucceeded(SuiteInfo) {}
func (NopReporter) TestStarted(TestInfo)     {}
func (NopReporter) TestFailed(TestInfo)      {}
func (NopReporter) TestSucceeded(TestInfo)   {}
func (NopReporter) TestStubbed(TestInfo)     {}

// Multi fans notifications out to every reporter in order.
func Multi(reporters ...Reporter) Reporter {
	flat := make(multi, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			flat = append(flat, r)
		}
	}
	return flat
}

type multi []Reporter

func (m multi) SuiteStarted(s SuiteInfo) {
	for _, r := range m {
		r.SuiteStarted(s)
	}
}

func (m multi) SuiteFailed(s SuiteInfo) {
	for _, r := range m {
		r.SuiteFailed(s)
	}
}

func (m multi) SuiteSucceeded(s SuiteInfo) {
	for _, r := range m {
		r.SuiteSucceeded(s)
	}
}

func (m multi) TestStarted(t TestInfo) {
	for _, r := range m {
		r.TestStarted(t)
	}
}

func (m multi) TestFailed(t TestInfo) {
	for _, r := range m {
		r.TestFailed(t)
	}
}

func (m multi) TestSucceeded(t TestInfo) {
	for _, r := range m {
		r.TestSucceeded(t)
	}
}

func (m multi) TestStubbed(t TestInfo) {
	for _, r := range m {
		r.TestStubbed(t)
	}
}

// EventKind names a reporter callback.
type EventKind string

const (
	EventSuiteStarted   EventKind = "suiteStarted"
	EventSuiteFailed    EventKind = "suiteFailed"
	EventSuiteSucceeded EventKind = "suiteSucceeded"
	EventTestStarted    EventKind = "testStarted"
	EventTestFailed     EventKind = "testFailed"
	EventTestSucceeded  EventKind = "testSucceeded"
	EventTestStubbed    EventKind = "testStubbed"
)

// Event is one recorded notification.
type Event struct {
	Kind  EventKind
	Suite SuiteInfo
	Test  TestInfo
}

// String renders the event as "kind path".
func (e Event) String() string {
	switch e.Kind {
	case EventSuiteStarted, EventSuiteFailed, EventSuiteSucceeded:
		return fmt.Sprintf("%s %s", e.Kind, e.Suite.Path)
	default:
		return fmt.Sprintf("%s %s", e.Kind, e.Test.Path())
	}
}

// Recorder keeps every notification in arrival order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Lines returns the recorded events rendered with Event.String.
func (r *Recorder) Lines() []string {
	events := r.Events()
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.String()
	}
	return out
}

// Reset discards all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder) SuiteStarted(s SuiteInfo)   { r.add(Event{Kind: EventSuiteStarted, Suite: s}) }
func (r *Recorder) SuiteFailed(s SuiteInfo)    { r.add(Event{Kind: EventSuiteFailed, Suite: s}) }
func (r *Recorder) SuiteSucceeded(s SuiteInfo) { r.add(Event{Kind: EventSuiteSucceeded, Suite: s}) }
func (r *Recorder) TestStarted(t TestInfo)     { r.add(Event{Kind: EventTestStarted, Test: t}) }
func (r *Recorder) TestFailed(t TestInfo)      { r.add(Event{Kind: EventTestFailed, Test: t}) }
func (r *Recorder) TestSucceeded(t TestInfo)   { r.add(Event{Kind: EventTestSucceeded, Test: t}) }
func (r *Recorder) TestStubbed(t TestInfo)     { r.add(Event{Kind: EventTestStubbed, Test: t}) }
