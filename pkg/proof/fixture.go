package proof

import (
	"math"
	"sync"
	"time"
)

// NeverMarked is the "effectively infinite" sentinel returned by
// TimeSinceMark and TimeBetweenMarks when a requested mark does not exist.
const NeverMarked int64 = math.MaxInt64

// Fixture is the per-proof state object. Custom fixtures embed Base, which
// supplies the full capability surface (assertions, synchronization, time
// marks) plus no-op SetUp/TearDown; the engine depends only on this
// interface, never on a concrete fixture type. The interface can only be
// satisfied by embedding Base, which keeps the capability set intact
// regardless of what a custom fixture adds.
type Fixture interface {
	// SetUp runs before the proof body.
	SetUp()
	// TearDown runs after the proof body returns normally. It is NOT run
	// when the body raises a fault; see Registry.Ensure.
	TearDown()
	// base exposes the embedded capability core to the engine.
	base() *Base
}

// failureSink receives failure records from a fixture's assertion surface.
// The Registry is the only implementation; appends happen under its lock.
type failureSink interface {
	addFailure(f Failure)
}

// barrierKey disambiguates repeated use of one logical rendezvous name with
// different expected arrival counts. Keying on the pair rather than a
// concatenated string avoids incidental collisions ("A1"/2 vs "A"/12).
type barrierKey struct {
	name  string
	count int
}

// Base is the capability core handed to every running proof. The zero value
// is usable once bound to a registry during population.
type Base struct {
	suite string
	proof string
	sink  failureSink

	barrierMu sync.Mutex
	barriers  map[barrierKey]*Barrier

	markMu sync.Mutex
	marks  map[string]time.Time
}

// SetUp is a no-op; custom fixtures override it.
func (b *Base) SetUp() {}

// TearDown is a no-op; custom fixtures override it.
func (b *Base) TearDown() {}

// base returns the capability core itself, satisfying Fixture for both the
// default fixture and anything embedding it.
func (b *Base) base() *Base { return b }

// SuiteName returns the owning suite's name, set once during population.
func (b *Base) SuiteName() string { return b.suite }

// ProofName returns the proof's name, set once during population.
func (b *Base) ProofName() string { return b.proof }

// bind attaches the fixture to its proof identity and failure sink. Called
// exactly once, during the single-threaded population phase.
func (b *Base) bind(suite, proof string, sink failureSink) {
	b.suite = suite
	b.proof = proof
	b.sink = sink
}

// SyncPoint rendezvous: lazily creates a barrier keyed by (name, count) and
// performs an arrive-and-wait on it. Goroutines sharing the fixture meet by
// calling SyncPoint with the same name and count; callers that disagree on
// count silently get distinct barriers.
//
// A timed-out rendezvous raises *TimeoutFault, which aborts the proof (and
// the run) unless the body recovers it.
func (b *Base) SyncPoint(name string, count int) {
	key := barrierKey{name: name, count: count}

	b.barrierMu.Lock()
	if b.barriers == nil {
		b.barriers = make(map[barrierKey]*Barrier)
	}
	barrier, ok := b.barriers[key]
	if !ok {
		barrier = NewBarrier(count)
		b.barriers[key] = barrier
	}
	b.barrierMu.Unlock()

	if err := barrier.ArriveAndWait(DefaultSyncTimeout); err != nil {
		panic(&TimeoutFault{Name: name, Count: count})
	}
}

// MarkTime records the current instant under name, replacing any earlier
// mark with the same name.
func (b *Base) MarkTime(name string) {
	b.markMu.Lock()
	defer b.markMu.Unlock()
	if b.marks == nil {
		b.marks = make(map[string]time.Time)
	}
	b.marks[name] = time.Now()
}

// TimeSinceMark returns elapsed milliseconds since the named mark, or
// NeverMarked if the name was never marked.
func (b *Base) TimeSinceMark(name string) int64 {
	b.markMu.Lock()
	defer b.markMu.Unlock()
	mark, ok := b.marks[name]
	if !ok {
		return NeverMarked
	}
	return time.Since(mark).Milliseconds()
}

// TimeBetweenMarks returns the signed millisecond delta from mark a to mark
// c, or NeverMarked if either is missing.
func (b *Base) TimeBetweenMarks(a, c string) int64 {
	b.markMu.Lock()
	defer b.markMu.Unlock()
	first, okA := b.marks[a]
	second, okC := b.marks[c]
	if !okA || !okC {
		return NeverMarked
	}
	return second.Sub(first).Milliseconds()
}
