package reporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dkoosis/ut/pkg/suite"
)

// Summary renders a table of every suite when the root suite finishes.
// Rows follow declaration order; counters are subtree totals.
type Summary struct {
	out     io.Writer
	colored bool

	rows  []suite.SuiteInfo
	index map[string]int
}

// NewSummary creates a summary reporter. colored selects a status-colored
// table style.
func NewSummary(out io.Writer, colored bool) *Summary {
	return &Summary{out: out, colored: colored, index: make(map[string]int)}
}

func (s *Summary) SuiteStarted(info suite.SuiteInfo) {
	if info.IsRoot() {
		s.rows = s.rows[:0]
		s.index = make(map[string]int)
	}
	s.index[info.Path] = len(s.rows)
	s.rows = append(s.rows, info)
}

func (s *Summary) SuiteFailed(info suite.SuiteInfo)    { s.finish(info) }
func (s *Summary) SuiteSucceeded(info suite.SuiteInfo) { s.finish(info) }

func (*Summary) TestStarted(suite.TestInfo)   {}
func (*Summary) TestFailed(suite.TestInfo)    {}
func (*Summary) TestSucceeded(suite.TestInfo) {}
func (*Summary) TestStubbed(suite.TestInfo)   {}

func (s *Summary) finish(info suite.SuiteInfo) {
	if i, ok := s.index[info.Path]; ok {
		s.rows[i] = info
	}
	if info.IsRoot() {
		s.render(info)
	}
}

func (s *Summary) render(root suite.SuiteInfo) {
	t := table.NewWriter()
	t.SetOutputMirror(s.out)
	t.SetTitle("Test Summary")
	t.AppendHeader(table.Row{"Suite", "Tests", "Passed", "Failed", "Stubs", "Hook Failures", "Duration", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Suite", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Stubs", Align: text.AlignRight},
		{Name: "Hook Failures", Align: text.AlignRight},
		{Name: "Duration", Align: text.AlignRight},
	})

	for _, r := range s.rows {
		if r.IsRoot() {
			continue
		}
		name := strings.Repeat("  ", r.Depth-1) + r.Name
		t.AppendRow(table.Row{
			name,
			r.Tests,
			r.Successes,
			r.Failures,
			r.Stubs,
			r.HookFailures,
			shortDuration(r.Duration),
			statusText(r),
		})
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		root.Tests,
		root.Successes,
		root.Failures,
		root.Stubs,
		root.HookFailures,
		shortDuration(root.Duration),
		statusText(root),
	})

	switch {
	case !s.colored:
		t.SetStyle(table.StyleLight)
	case root.Failed():
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	case root.Stubs > 0:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	}
	t.Render()
}

func statusText(s suite.SuiteInfo) string {
	switch {
	case s.Failed():
		return "FAIL"
	case s.Tests == 0:
		return "EMPTY"
	default:
		return "PASS"
	}
}

func shortDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Truncate(time.Millisecond).String()
}
