package reporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsResults_When_TreeRuns(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	_, err := sampleTree().Run(m)
	require.NoError(t, err)

	assert.InDelta(t, 2, testutil.ToFloat64(m.testsTotal.WithLabelValues("pass")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.testsTotal.WithLabelValues("fail")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.testsTotal.WithLabelValues("stub")), 0)
	// root, math, broken and io all fail.
	assert.InDelta(t, 4, testutil.ToFloat64(m.suitesTotal.WithLabelValues("fail")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.hookFailuresTotal.WithLabelValues("after")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.testDuration))
}

func TestMetrics_WritesTextfile_When_PathGiven(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	_, err := sampleTree().Run(m)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ut.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `ut_tests_total{result="pass"} 2`)
	assert.Contains(t, string(data), "ut_test_duration_seconds_count 4")
}
