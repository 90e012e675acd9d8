package reporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/ut/pkg/suite"
)

const indentWidth = 2

// labelWidth aligns detail values under the widest label, "execution time:".
const labelWidth = 16

var titler = cases.Title(language.English, cases.NoLower)

// Terminal writes a human-readable, indented log of a run.
type Terminal struct {
	out        io.Writer
	theme      Theme
	printStack bool
}

// TerminalOption configures a Terminal reporter.
type TerminalOption func(*Terminal)

// WithStack prints assertion stack snapshots under failures.
func WithStack(on bool) TerminalOption {
	return func(t *Terminal) { t.printStack = on }
}

// WithTheme selects the color theme.
func WithTheme(theme Theme) TerminalOption {
	return func(t *Terminal) { t.theme = theme }
}

// NewTerminal creates a terminal reporter writing to out.
func NewTerminal(out io.Writer, opts ...TerminalOption) *Terminal {
	t := &Terminal{out: out, theme: DefaultTheme()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Terminal) SuiteStarted(s suite.SuiteInfo) {
	t.line(s.Depth, t.theme.Label.Render("Suite Started:")+" "+t.theme.Subject.Render(s.Name))
}

func (t *Terminal) SuiteFailed(s suite.SuiteInfo) {
	t.line(s.Depth, t.theme.Error.Render(t.theme.Icons.Fail+" Suite Failed:")+" "+t.theme.Subject.Render(s.Name))
	t.counters(s)
	t.blank(s)
}

func (t *Terminal) SuiteSucceeded(s suite.SuiteInfo) {
	t.line(s.Depth, t.theme.Success.Render(t.theme.Icons.Pass+" Suite Succeeded:")+" "+t.theme.Subject.Render(s.Name))
	t.counters(s)
	t.blank(s)
}

func (t *Terminal) TestStarted(ti suite.TestInfo) {
	t.line(ti.Depth, t.theme.Label.Render("Test started:")+" "+t.theme.Subject.Render(ti.Name))
}

func (t *Terminal) TestStubbed(ti suite.TestInfo) {
	t.line(ti.Depth, t.theme.Stub.Render(t.theme.Icons.Stub+" Test stubbed:")+" "+t.theme.Subject.Render(ti.Name))
}

func (t *Terminal) TestSucceeded(ti suite.TestInfo) {
	t.line(ti.Depth, t.theme.Success.Render(t.theme.Icons.Pass+" Success:")+" "+t.theme.Subject.Render(ti.Name))
	t.testDetails(ti)
}

func (t *Terminal) TestFailed(ti suite.TestInfo) {
	t.line(ti.Depth, t.theme.Error.Render(t.theme.Icons.Fail+" Failure:")+" "+t.theme.Subject.Render(ti.Name))
	t.testDetails(ti)

	depth := ti.Depth + 1
	o := ti.Outcome
	t.detail(depth, "failure:", t.theme.Error.Render(o.Message))
	if loc := o.Location(); !loc.Empty() {
		t.detail(depth, "location:", t.theme.Error.Render(loc.String()))
	}
	if t.printStack && o.Stack() != "" {
		t.detail(depth, "stack:", "")
		t.block(depth+1, o.Stack())
	}
}

func (t *Terminal) testDetails(ti suite.TestInfo) {
	depth := ti.Depth + 1
	t.detail(depth, "execution time:", FormatDuration(ti.Duration))
	t.stream(depth, "stdout", ti.Stdout, ti.StdoutTruncated)
	t.stream(depth, "stderr", ti.Stderr, ti.StderrTruncated)
}

func (t *Terminal) stream(depth int, name, text string, truncated bool) {
	if text == "" {
		return
	}
	label := name + ":"
	if truncated {
		label = name + " (truncated):"
	}
	t.detail(depth, label, "")
	t.block(depth+1, text)
}

func (t *Terminal) counters(s suite.SuiteInfo) {
	depth := s.Depth + 1
	if s.Failed() {
		t.detail(depth, "failures:", t.theme.Error.Render(fmt.Sprint(s.Failures)))
	}
	if s.Successes > 0 || !s.Failed() {
		t.detail(depth, "successes:", t.theme.Success.Render(fmt.Sprint(s.Successes)))
	}
	if s.Stubs > 0 {
		t.detail(depth, "stubs:", t.theme.Stub.Render(fmt.Sprint(s.Stubs)))
	}
	if s.HookFailures > 0 {
		t.detail(depth, "hook failures:", t.theme.Error.Render(fmt.Sprint(s.HookFailures)))
	}
	for _, h := range s.HookErrors {
		label := titler.String(string(h.Role)) + fmt.Sprintf("[%d]", h.Index)
		if h.Test != "" {
			label += " (" + h.Test + ")"
		}
		t.line(depth+1, t.theme.Muted.Render(label+":")+" "+t.theme.Error.Render(h.Outcome.Message))
	}
}

// blank separates suites, except after the root.
func (t *Terminal) blank(s suite.SuiteInfo) {
	if !s.IsRoot() {
		fmt.Fprintln(t.out)
	}
}

func (t *Terminal) line(depth int, text string) {
	fmt.Fprintln(t.out, strings.Repeat(" ", depth*indentWidth)+text)
}

func (t *Terminal) detail(depth int, label, value string) {
	if value == "" {
		t.line(depth, t.theme.Label.Render(label))
		return
	}
	t.line(depth, t.theme.Label.Render(runewidth.FillRight(label, labelWidth))+value)
}

func (t *Terminal) block(depth int, text string) {
	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		t.line(depth, t.theme.Muted.Render(l))
	}
}

// FormatDuration renders microseconds below one millisecond and seconds
// above it.
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%d (us)", d.Microseconds())
	}
	return fmt.Sprintf("%.3f (s)", d.Seconds())
}
