package suite

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dkoosis/ut/pkg/assert"
)

// Done is the completion signal handed to an async body. Calling it with no
// argument, nil or "" signals success; any other value signals failure with
// that value's text as the message. Only the first call counts.
type Done func(reason ...any)

// Kind distinguishes sync from async actions.
type Kind int

const (
	KindSync Kind = iota
	KindAsync
)

// ErrAsyncTimeout is returned when an async action does not signal in time.
var ErrAsyncTimeout = errors.New("async action did not complete")

// Action is a deferred unit of work. Exactly one of the bodies is set,
// according to kind.
type Action struct {
	kind      Kind
	syncBody  func() error
	asyncBody func(done Done)
}

// SyncAction wraps a body that runs to completion.
func SyncAction(body func() error) Action {
	return Action{kind: KindSync, syncBody: body}
}

// AsyncAction wraps a body that finishes by calling done exactly once.
func AsyncAction(body func(done Done)) Action {
	return Action{kind: KindAsync, asyncBody: body}
}

// Kind returns whether the action is sync or async.
func (a Action) Kind() Kind {
	return a.kind
}

// empty reports whether the action has no body (a stub).
func (a Action) empty() bool {
	return a.syncBody == nil && a.asyncBody == nil
}

// runSettings carries the tree-wide knobs an action needs.
type runSettings struct {
	asyncTimeout time.Duration
	log          logrus.FieldLogger
}

// run executes the action and returns its failure, if any. Panics never
// escape.
func (a Action) run(rs runSettings) error {
	switch {
	case a.empty():
		return nil
	case a.kind == KindAsync:
		return a.runAsync(rs)
	default:
		return a.runSync()
	}
}

func (a Action) runSync() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoveredError(r)
		}
	}()
	return a.syncBody()
}

// runAsync starts the body on its own goroutine and blocks until the body
// signals. The body's goroutine is the only concurrency the engine adds.
func (a Action) runAsync(rs runSettings) error {
	result := make(chan error, 1)
	var once sync.Once
	signal := func(err error) bool {
		sent := false
		once.Do(func() {
			result <- err
			sent = true
		})
		return sent
	}

	done := Done(func(reason ...any) {
		// skip=1 points the failure at the body that called done.
		err := doneError(reason, 1)
		if !signal(err) {
			rs.log.WithField("reason", fmt.Sprint(reason...)).Warn("async action signalled more than once; ignoring")
		}
	})

	go func() {
		defer func() {
			if r := recover(); r != nil {
				signal(recoveredError(r))
			}
		}()
		a.asyncBody(done)
	}()

	if rs.asyncTimeout <= 0 {
		return <-result
	}

	timer := time.NewTimer(rs.asyncTimeout)
	defer timer.Stop()
	select {
	case err := <-result:
		return err
	case <-timer.C:
		rs.log.WithField("timeout", rs.asyncTimeout).Warn("async action timed out; abandoning its goroutine")
		return fmt.Errorf("%w within %s", ErrAsyncTimeout, rs.asyncTimeout)
	}
}

// doneError converts the arguments of a done call into a failure. Error
// values that are already failures are passed through unchanged.
func doneError(reason []any, skip int) error {
	if len(reason) == 0 {
		return nil
	}
	var msg string
	switch v := reason[0].(type) {
	case nil:
		return nil
	case *assert.Failure:
		if v == nil {
			return nil
		}
		return v
	case error:
		msg = v.Error()
	case string:
		msg = v
	default:
		msg = fmt.Sprint(reason...)
	}
	if len(reason) > 1 {
		msg = fmt.Sprint(reason...)
	}
	if msg == "" {
		return nil
	}
	return assert.NewFailure(msg, skip+1)
}
