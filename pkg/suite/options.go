package suite

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Option configures a Tree.
type Option func(*settings)

type settings struct {
	log          logrus.FieldLogger
	asyncTimeout time.Duration
	capture      bool
	captureBytes int
}

func defaultSettings() settings {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return settings{log: l}
}

func (s settings) run() runSettings {
	return runSettings{asyncTimeout: s.asyncTimeout, log: s.log}
}

// WithLogger sets the logger used for lifecycle and hook diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// WithAsyncTimeout bounds how long an async action may take to signal.
// Zero, the default, waits forever.
//
// A timed-out body is abandoned, not stopped: its goroutine keeps running
// and anything it later writes to os.Stdout or os.Stderr lands wherever
// those point at the time, including a later test's capture.
func WithAsyncTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.asyncTimeout = d
	}
}

// WithCapture redirects os.Stdout and os.Stderr into per-test buffers while
// each test body runs, keeping at most maxBytes of each stream (0 = 1MB).
func WithCapture(maxBytes int) Option {
	return func(s *settings) {
		s.capture = true
		s.captureBytes = maxBytes
	}
}
