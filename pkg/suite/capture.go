package suite

import (
	"io"
	"os"
	"sync"
)

const defaultCaptureBytes = 1024 * 1024 // 1MB kept per stream per test

// tailBuffer keeps only the last maxBytes written to it.
type tailBuffer struct {
	maxBytes int

	mu       sync.Mutex
	total    int64
	contents []byte
}

func newTailBuffer(maxBytes int) *tailBuffer {
	if maxBytes <= 0 {
		maxBytes = defaultCaptureBytes
	}
	return &tailBuffer{maxBytes: maxBytes}
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.total += int64(len(p))
	b.contents = append(b.contents, p...)
	if len(b.contents) > b.maxBytes {
		b.contents = b.contents[len(b.contents)-b.maxBytes:]
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.contents)
}

// Truncated reports whether older output was dropped.
func (b *tailBuffer) Truncated() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return int64(len(b.contents)) < b.total
}

// streamCapture redirects one *os.File variable into a tail buffer.
type streamCapture struct {
	target *(*os.File)
	prev   *os.File
	w      *os.File
	buf    *tailBuffer
	copied chan struct{}
}

func startStream(target *(*os.File), maxBytes int) (*streamCapture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	c := &streamCapture{
		target: target,
		prev:   *target,
		w:      w,
		buf:    newTailBuffer(maxBytes),
		copied: make(chan struct{}),
	}
	go func() {
		defer close(c.copied)
		_, _ = io.Copy(c.buf, r)
		_ = r.Close()
	}()
	*target = w
	return c, nil
}

// stop restores the previous destination and returns what was written.
func (c *streamCapture) stop() string {
	*c.target = c.prev
	_ = c.w.Close()
	<-c.copied
	return c.buf.String()
}

// capture is one pushed redirection of stdout and stderr. Each capture
// restores exactly the destinations that were active when it started, so
// nested captures unwind in stack order.
type capture struct {
	stdout *streamCapture
	stderr *streamCapture
}

// startCapture pushes a redirection of os.Stdout and os.Stderr.
func startCapture(maxBytes int) (*capture, error) {
	out, err := startStream(&os.Stdout, maxBytes)
	if err != nil {
		return nil, err
	}
	errStream, err := startStream(&os.Stderr, maxBytes)
	if err != nil {
		out.stop()
		return nil, err
	}
	return &capture{stdout: out, stderr: errStream}, nil
}

// stop pops the redirection. Safe to call on a nil capture.
func (c *capture) stop() (stdout, stderr string) {
	if c == nil {
		return "", ""
	}
	stderr = c.stderr.stop()
	stdout = c.stdout.stop()
	return stdout, stderr
}

// truncated reports, after stop, which streams dropped older output.
func (c *capture) truncated() (stdout, stderr bool) {
	if c == nil {
		return false, false
	}
	return c.stdout.buf.Truncated(), c.stderr.buf.Truncated()
}
