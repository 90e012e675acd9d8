package reporter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dkoosis/ut/pkg/suite"
)

const MetricsNamespace = "ut"

// Metrics records run results as Prometheus metrics on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	testsTotal        *prometheus.CounterVec
	suitesTotal       *prometheus.CounterVec
	hookFailuresTotal *prometheus.CounterVec
	testDuration      prometheus.Histogram
}

// NewMetrics creates a metrics reporter with a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		testsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "tests_total",
			Help:      "Count of finished tests by result",
		}, []string{"result"}),
		suitesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "suites_total",
			Help:      "Count of finished suites by result",
		}, []string{"result"}),
		hookFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "hook_failures_total",
			Help:      "Count of failed hook invocations by role",
		}, []string{"role"}),
		testDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "test_duration_seconds",
			Help:      "Duration of executed tests",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
}

// Registry exposes the registry for scraping or inspection.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the metrics in the text exposition format, suitable
// for the node exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) SuiteStarted(suite.SuiteInfo) {}

func (m *Metrics) SuiteFailed(s suite.SuiteInfo) {
	m.suitesTotal.WithLabelValues("fail").Inc()
	m.hookFailures(s)
}

func (m *Metrics) SuiteSucceeded(s suite.SuiteInfo) {
	m.suitesTotal.WithLabelValues("pass").Inc()
	m.hookFailures(s)
}

func (m *Metrics) hookFailures(s suite.SuiteInfo) {
	for _, h := range s.HookErrors {
		m.hookFailuresTotal.WithLabelValues(string(h.Role)).Inc()
	}
}

func (m *Metrics) TestStarted(suite.TestInfo) {}

func (m *Metrics) TestFailed(t suite.TestInfo) {
	m.testsTotal.WithLabelValues("fail").Inc()
	m.testDuration.Observe(t.Duration.Seconds())
}

func (m *Metrics) TestSucceeded(t suite.TestInfo) {
	m.testsTotal.WithLabelValues("pass").Inc()
	m.testDuration.Observe(t.Duration.Seconds())
}

func (m *Metrics) TestStubbed(suite.TestInfo) {
	m.testsTotal.WithLabelValues("stub").Inc()
}
