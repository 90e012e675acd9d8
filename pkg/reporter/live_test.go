package reporter

import (
	"bytes"
	"testing"
	"time"

	"github.com/acarl005/stripansi"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/ut/pkg/suite"
)

func TestLiveModel_TracksProgress_When_EventsArrive(t *testing.T) {
	t.Parallel()

	var m tea.Model = newLiveModel(MonoTheme(), 80)
	send := func(msg tea.Msg) tea.Cmd {
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		return cmd
	}

	send(suiteStartedMsg(suite.SuiteInfo{Name: "root", Path: "root"}))
	send(testStartedMsg(suite.TestInfo{Name: "adds", SuitePath: "root/math", Depth: 2}))
	assert.Contains(t, stripansi.Strip(m.View()), "* root/math/adds")

	send(testDoneMsg(suite.TestInfo{Name: "adds", SuitePath: "root/math", Outcome: suite.Outcome{Status: suite.StatusPassed}}))
	send(testDoneMsg(suite.TestInfo{Name: "todo", SuitePath: "root/math", Stub: true, Outcome: suite.Outcome{Status: suite.StatusStubbed}}))
	send(testDoneMsg(suite.TestInfo{Name: "bad", SuitePath: "root/math", Outcome: suite.Outcome{Status: suite.StatusFailed, Message: "boom"}}))

	view := stripansi.Strip(m.View())
	assert.Contains(t, view, "1 passed · 1 failed · 1 stubbed")
	assert.Contains(t, view, "x root/math/bad: boom")

	cmd := send(suiteDoneMsg(suite.SuiteInfo{Path: "root/math", Depth: 1, Failures: 1}))
	assert.Nil(t, cmd, "non-root suites keep the program running")

	cmd = send(suiteDoneMsg(suite.SuiteInfo{Path: "root", Tests: 3, Failures: 1, Duration: 2 * time.Millisecond}))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, stripansi.Strip(m.View()), "x 3 tests in 2ms")
}

func TestLiveModel_KeepsRecentFailures_When_ManyTestsFail(t *testing.T) {
	t.Parallel()

	var m tea.Model = newLiveModel(MonoTheme(), 80)
	for i := 0; i < maxLiveFailures+3; i++ {
		m, _ = m.Update(testDoneMsg(suite.TestInfo{Name: "t", SuitePath: "root", Outcome: suite.Outcome{Status: suite.StatusFailed}}))
	}
	assert.Len(t, m.(liveModel).failures, maxLiveFailures)
	assert.Equal(t, maxLiveFailures+3, m.(liveModel).failed)
}

func TestLive_FinishesWithRoot_When_RunCompletes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	live := NewLive(&buf, MonoTheme(), 80)
	_, err := sampleTree().Run(live)
	require.NoError(t, err)
	require.NoError(t, live.Wait())

	assert.Contains(t, stripansi.Strip(buf.String()), "5 tests in")
}
