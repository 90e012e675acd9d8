package reporter

import (
	"bytes"
	"testing"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary_RendersTableWithTotals_When_RootFinishes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := sampleTree().Run(NewSummary(&buf, false))
	require.NoError(t, err)
	out := stripansi.Strip(buf.String())

	assert.Contains(t, out, "Test Summary")
	assert.Contains(t, out, "math")
	assert.Contains(t, out, "  broken")
	assert.Contains(t, out, "io")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "FAIL")
	assert.NotContains(t, out, "root ", "root is folded into the footer")
}

func TestSummary_MarksEmptySuites(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tree := newTreeWithEmptySuite()
	_, err := tree.Run(NewSummary(&buf, true))
	require.NoError(t, err)

	out := stripansi.Strip(buf.String())
	assert.Contains(t, out, "EMPTY")
}

func TestShortDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "15us", shortDuration(15*time.Microsecond))
	assert.Equal(t, "12ms", shortDuration(12*time.Millisecond))
	assert.Equal(t, "2.5s", shortDuration(2500*time.Millisecond))
}
