package suite

// Initializer populates a suite through the builder handed to it. A path
// may be declared several times; each initializer appends to the suite.
type Initializer func(b *Builder)

// Builder is the registration handle bound to one suite while its
// initializer runs.
type Builder struct {
	tree  *Tree
	suite *Suite
}

// Path returns the fully-qualified path of the suite being declared.
func (b *Builder) Path() string {
	return b.suite.Path
}

// Before registers a hook run once before the suite's tests.
func (b *Builder) Before(fn func() error) {
	b.suite.before = append(b.suite.before, SyncAction(fn))
}

// BeforeAsync registers an async once-before hook.
func (b *Builder) BeforeAsync(fn func(done Done)) {
	b.suite.before = append(b.suite.before, AsyncAction(fn))
}

// BeforeEach registers a hook run before every test of the suite.
func (b *Builder) BeforeEach(fn func() error) {
	b.suite.beforeEach = append(b.suite.beforeEach, SyncAction(fn))
}

// BeforeEachAsync registers an async before-each hook.
func (b *Builder) BeforeEachAsync(fn func(done Done)) {
	b.suite.beforeEach = append(b.suite.beforeEach, AsyncAction(fn))
}

// After registers a hook run once after the suite's tests.
func (b *Builder) After(fn func() error) {
	b.suite.after = append(b.suite.after, SyncAction(fn))
}

// AfterAsync registers an async once-after hook.
func (b *Builder) AfterAsync(fn func(done Done)) {
	b.suite.after = append(b.suite.after, AsyncAction(fn))
}

// AfterEach registers a hook run after every test, whatever its outcome.
func (b *Builder) AfterEach(fn func() error) {
	b.suite.afterEach = append(b.suite.afterEach, SyncAction(fn))
}

// AfterEachAsync registers an async after-each hook.
func (b *Builder) AfterEachAsync(fn func(done Done)) {
	b.suite.afterEach = append(b.suite.afterEach, AsyncAction(fn))
}

// It registers a test. A nil body registers a stub.
func (b *Builder) It(name string, fn func() error) {
	var a Action
	if fn != nil {
		a = SyncAction(fn)
	}
	b.suite.tests = append(b.suite.tests, newTest(name, a))
}

// ItAsync registers an async test. A nil body registers a stub.
func (b *Builder) ItAsync(name string, fn func(done Done)) {
	var a Action
	if fn != nil {
		a = AsyncAction(fn)
	}
	b.suite.tests = append(b.suite.tests, newTest(name, a))
}

// Stub registers a placeholder test that never runs.
func (b *Builder) Stub(name string) {
	b.suite.tests = append(b.suite.tests, newTest(name, Action{}))
}

// Describe declares a child suite. The child is linked immediately; a
// failure to link is reported by the enclosing Finalize call.
func (b *Builder) Describe(name string, init Initializer) {
	if err := b.tree.add(b.suite.Path, name, init); err != nil {
		b.tree.recordLinkError(err)
	}
}
