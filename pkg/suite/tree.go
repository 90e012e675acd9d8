package suite

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// RootPath is the path of the implicit root suite.
const RootPath = "root"

var (
	// ErrParentNotFound is returned when a suite names a parent path that
	// has not been declared.
	ErrParentNotFound = errors.New("parent suite not found")
	// ErrEmptyName is returned for a suite declared without a name.
	ErrEmptyName = errors.New("suite name is empty")
)

type declaration struct {
	parent string
	name   string
	init   Initializer
}

// Tree owns every suite declared for one run, keyed by path.
//
// Declarations are queued by Add and Describe and linked by Finalize, so
// parents must be queued before their children.
type Tree struct {
	cfg settings

	mu       sync.RWMutex
	suites   map[string]*Suite
	pending  []declaration
	linkErrs []error
}

// NewTree creates an empty tree.
func NewTree(opts ...Option) *Tree {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Tree{cfg: cfg, suites: make(map[string]*Suite)}
}

// Configure applies options to an existing tree, e.g. once a runner has
// resolved its configuration. Call it before Run.
func (t *Tree) Configure(opts ...Option) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, opt := range opts {
		opt(&t.cfg)
	}
}

// Add queues a suite named name under parentPath.
func (t *Tree) Add(parentPath, name string, init Initializer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = append(t.pending, declaration{parent: parentPath, name: name, init: init})
}

// Describe queues a top-level suite under the root.
func (t *Tree) Describe(name string, init Initializer) {
	t.Add(RootPath, name, init)
}

// Finalize links every queued declaration in order. Failed declarations
// do not stop the rest; all errors are returned joined.
func (t *Tree) Finalize() error {
	t.mu.Lock()
	t.linkErrs = nil
	t.mu.Unlock()

	for {
		d, ok := t.nextPending()
		if !ok {
			break
		}
		if err := t.add(d.parent, d.name, d.init); err != nil {
			t.recordLinkError(err)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	err := errors.Join(t.linkErrs...)
	t.linkErrs = nil
	return err
}

func (t *Tree) nextPending() (declaration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.pending) == 0 {
		return declaration{}, false
	}
	d := t.pending[0]
	t.pending = t.pending[1:]
	return d, true
}

func (t *Tree) recordLinkError(err error) {
	t.cfg.log.WithError(err).Warn("suite declaration rejected")
	t.mu.Lock()
	defer t.mu.Unlock()
	t.linkErrs = append(t.linkErrs, err)
}

// add upserts the suite at parent/name. Initializers run outside the lock
// so they may declare nested suites.
func (t *Tree) add(parent, name string, init Initializer) error {
	if name == "" {
		return fmt.Errorf("%w (parent %s)", ErrEmptyName, parent)
	}

	t.mu.Lock()
	if parent == RootPath {
		t.rootLocked()
	}
	p, ok := t.suites[parent]
	if !ok {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrParentNotFound, parent)
	}
	full := parent + "/" + name
	s, seen := t.suites[full]
	if !seen {
		s = newSuite(t, p, name, full, init)
		t.suites[full] = s
	}
	t.mu.Unlock()

	if seen {
		t.cfg.log.WithField("suite", full).Debug("suite re-declared; appending")
		s.initializeWith(init)
		return nil
	}
	s.initialize()
	return nil
}

func (t *Tree) rootLocked() *Suite {
	if r, ok := t.suites[RootPath]; ok {
		return r
	}
	r := newSuite(t, nil, RootPath, RootPath, nil)
	t.suites[RootPath] = r
	return r
}

// Root returns the root suite, creating it on first use.
func (t *Tree) Root() *Suite {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rootLocked()
}

// Lookup returns the suite declared at path.
func (t *Tree) Lookup(path string) (*Suite, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.suites[path]
	return s, ok
}

// Paths returns every linked suite path in sorted order.
func (t *Tree) Paths() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.suites))
	for p := range t.suites {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Run finalizes pending declarations and executes the whole tree.
// A declaration error aborts before anything runs.
func (t *Tree) Run(r Reporter) (SuiteInfo, error) {
	if err := t.Finalize(); err != nil {
		return SuiteInfo{}, err
	}
	root := t.Root()
	root.Execute(r)
	return root.Info(), nil
}
