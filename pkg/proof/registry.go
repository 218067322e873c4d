package proof

import "sync"

// Thunk is a suite registration function. During population it is invoked
// once and is expected to realize proofs via Ensure or EnsureWith, which
// read the registry's active-suite cursor.
type Thunk func(r *Registry)

// Case is one realized proof: a name, its owning suite, the fixture it owns
// for its entire lifetime and the body closure declared for it.
type Case struct {
	Suite string
	Name  string

	fixture Fixture
	body    func()
}

// invoke runs the proof wrapper: SetUp, body, TearDown. TearDown is
// deliberately not deferred: a fault escaping the body skips it and
// propagates to the execution loop.
func (c *Case) invoke() {
	c.fixture.SetUp()
	c.body()
	c.fixture.TearDown()
}

// Registry is the catalog of suites, realized proofs and run outcomes for a
// single invocation. Construct one per run and pass it through the
// population and execution phases; nothing is process-global.
//
// Registration and population are single-threaded by contract. The failure
// log has its own lock because proof bodies append to it from worker
// goroutines.
type Registry struct {
	suiteThunks map[string][]Thunk
	suiteOrder  []string
	cases       map[string][]*Case
	activeSuite string

	failMu   sync.Mutex
	failures []Failure
	passed   []string
	current  string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		suiteThunks: make(map[string][]Thunk),
		cases:       make(map[string][]*Case),
	}
}

// RegisterSuite appends thunk under name, creating the suite entry if
// absent. Multiple registrations may share a suite name; their proofs are
// concatenated during population. The returned token exists only so a
// declaration can bind the registration to a startup step:
//
//	var _ = reg.RegisterSuite("Barrier", barrierSuite)
func (r *Registry) RegisterSuite(name string, thunk Thunk) bool {
	r.suiteThunks[name] = append(r.suiteThunks[name], thunk)
	return true
}

// Populate invokes every registered thunk exactly once. For each suite it
// sets the active-suite cursor, then runs that suite's thunks in
// registration order. Suite iteration order is whatever the map yields this
// run; the order is captured so that execution and reporting replay it
// deterministically within the run.
//
// Populate must be called exactly once, before Run. Calling it again
// produces duplicate case lists; that is a usage fault, not guarded against.
func (r *Registry) Populate() {
	for name, thunks := range r.suiteThunks {
		r.activeSuite = name
		r.suiteOrder = append(r.suiteOrder, name)
		for _, thunk := range thunks {
			thunk(r)
		}
	}
}

// Ensure realizes a proof under the active suite with a fresh default
// fixture; the body receives its capability core. Proof names need not be
// unique within a suite: duplicates all run and report separately.
//
// TearDown (a no-op for the default fixture) is not run if the body raises
// a fault; there is no scoped-cleanup guarantee.
func (r *Registry) Ensure(name string, body func(b *Base)) {
	fx := &Base{}
	r.EnsureWith(name, fx, func() { body(fx) })
}

// EnsureWith realizes a proof bound to a caller-constructed fixture. The
// fixture is created during population and owned by the proof for the
// process's lifetime; the body typically closes over it:
//
//	fx := &dbFixture{}
//	r.EnsureWith("rows survive restart", fx, func() {
//	    fx.Assert(fx.db != nil, "fx.db != nil")
//	})
func (r *Registry) EnsureWith(name string, fx Fixture, body func()) {
	fx.base().bind(r.activeSuite, name, r)
	r.cases[r.activeSuite] = append(r.cases[r.activeSuite], &Case{
		Suite:   r.activeSuite,
		Name:    name,
		fixture: fx,
		body:    body,
	})
}

// Suites returns the populated suite names in this run's iteration order.
func (r *Registry) Suites() []string {
	out := make([]string, len(r.suiteOrder))
	copy(out, r.suiteOrder)
	return out
}

// Cases returns the realized proofs of a suite in declaration order.
func (r *Registry) Cases(suite string) []*Case {
	out := make([]*Case, len(r.cases[suite]))
	copy(out, r.cases[suite])
	return out
}

// Failures returns a snapshot of the failure log in detection order. Across
// goroutines within one proof, detection order is only as deterministic as
// their scheduling.
func (r *Registry) Failures() []Failure {
	r.failMu.Lock()
	defer r.failMu.Unlock()
	out := make([]Failure, len(r.failures))
	copy(out, r.failures)
	return out
}

// Passed returns the qualified "<suite>::<proof>" names of proofs that
// completed without appending failures, in execution order.
func (r *Registry) Passed() []string {
	out := make([]string, len(r.passed))
	copy(out, r.passed)
	return out
}

// CurrentProof returns the qualified name of the proof currently (or most
// recently) executing. Used for last-resort fault reporting.
func (r *Registry) CurrentProof() string {
	return r.current
}

func (r *Registry) addFailure(f Failure) {
	r.failMu.Lock()
	defer r.failMu.Unlock()
	r.failures = append(r.failures, f)
}

func (r *Registry) failureCount() int {
	r.failMu.Lock()
	defer r.failMu.Unlock()
	return len(r.failures)
}
