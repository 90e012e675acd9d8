package reporter

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/dkoosis/ut/internal/version"
	"github.com/dkoosis/ut/pkg/suite"
)

// JSON collects a run and writes it as one document when the root suite
// finishes.
type JSON struct {
	out   io.Writer
	runID string
	now   func() time.Time

	started time.Time
	stack   []*jsonSuite
	err     error
}

// NewJSON creates a JSON reporter writing to out.
func NewJSON(out io.Writer) *JSON {
	return &JSON{out: out, runID: uuid.NewString(), now: time.Now}
}

// RunID identifies the run in the emitted document.
func (j *JSON) RunID() string {
	return j.runID
}

// Err returns the error from writing the document, if any.
func (j *JSON) Err() error {
	return j.err
}

type jsonReport struct {
	RunID      string     `json:"run_id"`
	Version    string     `json:"version"`
	StartedAt  time.Time  `json:"started_at"`
	Totals     jsonTotals `json:"totals"`
	Root       *jsonSuite `json:"root"`
	DurationUS int64      `json:"duration_us"`
}

type jsonTotals struct {
	Tests        int `json:"tests"`
	Successes    int `json:"successes"`
	Failures     int `json:"failures"`
	Stubs        int `json:"stubs"`
	HookFailures int `json:"hook_failures"`
}

type jsonSuite struct {
	Name       string          `json:"name"`
	Path       string          `json:"path"`
	Status     string          `json:"status"`
	DurationUS int64           `json:"duration_us"`
	Totals     jsonTotals      `json:"totals"`
	HookErrors []jsonHookError `json:"hook_errors,omitempty"`
	Tests      []jsonTest      `json:"tests"`
	Suites     []*jsonSuite    `json:"suites"`
}

type jsonHookError struct {
	Role     string `json:"role"`
	Index    int    `json:"index"`
	Test     string `json:"test,omitempty"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

type jsonTest struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	DurationUS int64  `json:"duration_us"`
	Message    string `json:"message,omitempty"`
	Location   string `json:"location,omitempty"`
	Stack      string `json:"stack,omitempty"`
	Stdout     string `json:"stdout,omitempty"`
	Stderr     string `json:"stderr,omitempty"`

	StdoutTruncated bool `json:"stdout_truncated,omitempty"`
	StderrTruncated bool `json:"stderr_truncated,omitempty"`
}

func (j *JSON) SuiteStarted(s suite.SuiteInfo) {
	node := &jsonSuite{Name: s.Name, Path: s.Path, Tests: []jsonTest{}, Suites: []*jsonSuite{}}
	if len(j.stack) == 0 {
		j.started = j.now()
	} else {
		top := j.stack[len(j.stack)-1]
		top.Suites = append(top.Suites, node)
	}
	j.stack = append(j.stack, node)
}

func (j *JSON) SuiteFailed(s suite.SuiteInfo)    { j.finish(s, "fail") }
func (j *JSON) SuiteSucceeded(s suite.SuiteInfo) { j.finish(s, "pass") }

func (j *JSON) TestStarted(suite.TestInfo) {}

func (j *JSON) TestFailed(t suite.TestInfo)    { j.addTest(t) }
func (j *JSON) TestSucceeded(t suite.TestInfo) { j.addTest(t) }
func (j *JSON) TestStubbed(t suite.TestInfo)   { j.addTest(t) }

func (j *JSON) addTest(t suite.TestInfo) {
	if len(j.stack) == 0 {
		return
	}
	top := j.stack[len(j.stack)-1]
	jt := jsonTest{
		Name:       t.Name,
		Status:     t.Outcome.Status.String(),
		DurationUS: t.Duration.Microseconds(),
		Message:    t.Outcome.Message,
		Stack:      t.Outcome.Stack(),
		Stdout:     t.Stdout,
		Stderr:     t.Stderr,

		StdoutTruncated: t.StdoutTruncated,
		StderrTruncated: t.StderrTruncated,
	}
	if loc := t.Outcome.Location(); !loc.Empty() {
		jt.Location = loc.String()
	}
	top.Tests = append(top.Tests, jt)
}

func (j *JSON) finish(s suite.SuiteInfo, status string) {
	if len(j.stack) == 0 {
		return
	}
	node := j.stack[len(j.stack)-1]
	j.stack = j.stack[:len(j.stack)-1]

	node.Status = status
	node.DurationUS = s.Duration.Microseconds()
	node.Totals = totalsOf(s)
	for _, h := range s.HookErrors {
		he := jsonHookError{Role: string(h.Role), Index: h.Index, Test: h.Test, Message: h.Outcome.Message}
		if loc := h.Outcome.Location(); !loc.Empty() {
			he.Location = loc.String()
		}
		node.HookErrors = append(node.HookErrors, he)
	}

	if len(j.stack) > 0 {
		return
	}
	doc := jsonReport{
		RunID:      j.runID,
		Version:    version.Version,
		StartedAt:  j.started,
		Totals:     node.Totals,
		Root:       node,
		DurationUS: s.Duration.Microseconds(),
	}
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	j.err = enc.Encode(doc)
}

func totalsOf(s suite.SuiteInfo) jsonTotals {
	return jsonTotals{
		Tests:        s.Tests,
		Successes:    s.Successes,
		Failures:     s.Failures,
		Stubs:        s.Stubs,
		HookFailures: s.HookFailures,
	}
}
