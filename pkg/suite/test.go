package suite

import "time"

// Test is a named action with a captured outcome. A test registered without
// a body is a stub: it never runs and never fails.
type Test struct {
	Name   string
	action Action
	stub   bool

	// Outcome fields are meaningful after run and overwritten on every pass.
	Outcome  Outcome
	Duration time.Duration
	Stdout   string
	Stderr   string

	// Set when the capture limit dropped older output.
	StdoutTruncated bool
	StderrTruncated bool
}

func newTest(name string, action Action) Test {
	return Test{Name: name, action: action, stub: action.empty()}
}

// IsStub reports whether the test was registered without a body.
func (t *Test) IsStub() bool {
	return t.stub
}

// Failed reports whether the last pass failed.
func (t *Test) Failed() bool {
	return t.Outcome.Failed()
}

// Micros returns the last duration in microseconds.
func (t *Test) Micros() int64 {
	return t.Duration.Microseconds()
}

// Seconds returns the last duration in fractional seconds.
func (t *Test) Seconds() float64 {
	return t.Duration.Seconds()
}

// run executes the body with timing and failure classification. Failures
// never escape.
func (t *Test) run(rs runSettings) {
	if t.stub {
		t.Outcome = stubbed()
		t.Duration = 0
		return
	}
	start := time.Now()
	err := t.action.run(rs)
	t.Duration = time.Since(start)
	t.Outcome = classify(err)
}

// clear drops the previous pass's results.
func (t *Test) clear() {
	t.Outcome = Outcome{}
	t.Duration = 0
	t.Stdout, t.Stderr = "", ""
	t.StdoutTruncated, t.StderrTruncated = false, false
}

// skip marks a test that could not run because a hook before it failed.
func (t *Test) skip(reason Outcome) {
	t.Duration = 0
	t.Stdout, t.Stderr = "", ""
	t.StdoutTruncated, t.StderrTruncated = false, false
	if t.stub {
		t.Outcome = stubbed()
		return
	}
	t.Outcome = reason
}
