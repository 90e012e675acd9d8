package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/ut/pkg/suite"
)

// maxLiveFailures bounds the failure list shown while running.
const maxLiveFailures = 8

// Live shows a spinner with the running test, live counters and recent
// failures. The program renders to the writer given at construction, so
// per-test output capture does not disturb it.
type Live struct {
	program *tea.Program
	done    chan struct{}
	err     error
}

// NewLive starts the live display on out.
func NewLive(out io.Writer, theme Theme, width int) *Live {
	l := &Live{done: make(chan struct{})}
	l.program = tea.NewProgram(newLiveModel(theme, width),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	go func() {
		defer close(l.done)
		_, l.err = l.program.Run()
	}()
	return l
}

// Wait blocks until the display has drawn its final frame.
func (l *Live) Wait() error {
	<-l.done
	return l.err
}

// Stop ends the display early, e.g. when the run aborts.
func (l *Live) Stop() {
	l.program.Quit()
	<-l.done
}

type (
	suiteStartedMsg suite.SuiteInfo
	testStartedMsg  suite.TestInfo
	testDoneMsg     suite.TestInfo
	suiteDoneMsg    suite.SuiteInfo
)

func (l *Live) SuiteStarted(s suite.SuiteInfo)   { l.program.Send(suiteStartedMsg(s)) }
func (l *Live) SuiteFailed(s suite.SuiteInfo)    { l.finish(s) }
func (l *Live) SuiteSucceeded(s suite.SuiteInfo) { l.finish(s) }
func (l *Live) TestStarted(t suite.TestInfo)     { l.program.Send(testStartedMsg(t)) }
func (l *Live) TestFailed(t suite.TestInfo)      { l.program.Send(testDoneMsg(t)) }
func (l *Live) TestSucceeded(t suite.TestInfo)   { l.program.Send(testDoneMsg(t)) }
func (l *Live) TestStubbed(t suite.TestInfo)     { l.program.Send(testDoneMsg(t)) }

func (l *Live) finish(s suite.SuiteInfo) {
	l.program.Send(suiteDoneMsg(s))
	if s.IsRoot() {
		<-l.done
	}
}

type liveModel struct {
	theme   Theme
	width   int
	spinner spinner.Model

	current  string
	passed   int
	failed   int
	stubs    int
	failures []string
	root     *suite.SuiteInfo
}

func newLiveModel(theme Theme, width int) liveModel {
	if width <= 0 {
		width = 80
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Subject))
	return liveModel{theme: theme, width: width, spinner: sp}
}

func (m liveModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case suiteStartedMsg:
		m.current = msg.Path
	case testStartedMsg:
		m.current = suite.TestInfo(msg).Path()
	case testDoneMsg:
		t := suite.TestInfo(msg)
		switch {
		case t.Outcome.Failed():
			m.failed++
			m.failures = append(m.failures, t.Path()+": "+t.Outcome.Message)
			if len(m.failures) > maxLiveFailures {
				m.failures = m.failures[len(m.failures)-maxLiveFailures:]
			}
		case t.Stub:
			m.stubs++
		default:
			m.passed++
		}
	case suiteDoneMsg:
		s := suite.SuiteInfo(msg)
		if s.IsRoot() {
			m.root = &s
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m liveModel) View() string {
	var sb strings.Builder
	if m.root != nil {
		icon, style := m.theme.Icons.Pass, m.theme.Success
		if m.root.Failed() {
			icon, style = m.theme.Icons.Fail, m.theme.Error
		}
		sb.WriteString(style.Render(fmt.Sprintf("%s %d tests in %s", icon, m.root.Tests, shortDuration(m.root.Duration))))
	} else {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		sb.WriteString(m.theme.Bold.Render(m.theme.Icons.Run + " " + runewidth.Truncate(m.current, m.width-6, "…")))
	}
	sb.WriteString("\n")
	sb.WriteString(m.counters())
	sb.WriteString("\n")
	for _, f := range m.failures {
		sb.WriteString(m.theme.Error.Render(m.theme.Icons.Fail + " " + runewidth.Truncate(f, m.width-2, "…")))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m liveModel) counters() string {
	parts := []string{
		m.theme.Success.Render(fmt.Sprintf("%d passed", m.passed)),
		m.theme.Error.Render(fmt.Sprintf("%d failed", m.failed)),
		m.theme.Stub.Render(fmt.Sprintf("%d stubbed", m.stubs)),
	}
	return strings.Join(parts, m.theme.Muted.Render(" · "))
}
