package proof

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSinceMarkUnknownIsNeverMarked(t *testing.T) {
	b, _ := boundBase("S", "marks")

	assert.Equal(t, NeverMarked, b.TimeSinceMark("missing"))
}

func TestTimeSinceMarkIsSmallAndNonNegative(t *testing.T) {
	b, _ := boundBase("S", "marks")

	b.MarkTime("T1")
	since := b.TimeSinceMark("T1")
	assert.GreaterOrEqual(t, since, int64(0))
	assert.Less(t, since, int64(5000))
}

func TestTimeBetweenMarks(t *testing.T) {
	b, _ := boundBase("S", "marks")

	b.MarkTime("first")
	time.Sleep(10 * time.Millisecond)
	b.MarkTime("second")

	forward := b.TimeBetweenMarks("first", "second")
	assert.GreaterOrEqual(t, forward, int64(0))

	// The delta is signed.
	backward := b.TimeBetweenMarks("second", "first")
	assert.LessOrEqual(t, backward, int64(0))

	assert.Equal(t, NeverMarked, b.TimeBetweenMarks("first", "missing"))
	assert.Equal(t, NeverMarked, b.TimeBetweenMarks("missing", "second"))
}

func TestMarksAreSafeAcrossGoroutines(t *testing.T) {
	b, _ := boundBase("S", "marks")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.MarkTime("shared")
			_ = b.TimeSinceMark("shared")
		}()
	}
	wg.Wait()

	assert.NotEqual(t, NeverMarked, b.TimeSinceMark("shared"))
}

func TestSyncPointRendezvous(t *testing.T) {
	b, _ := boundBase("S", "sync")

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.SyncPoint("workers-ready", 3)
		}()
	}

	b.SyncPoint("workers-ready", 3)
	wg.Wait()
}

func TestSyncPointCountOneNeverBlocks(t *testing.T) {
	b, _ := boundBase("S", "sync")

	done := make(chan struct{})
	go func() {
		b.SyncPoint("solo", 1)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("count-1 sync point blocked")
	}
}

func TestSyncPointDistinctCountsAreDistinctBarriers(t *testing.T) {
	b, _ := boundBase("S", "sync")

	// Same logical name, different counts: the count-1 rendezvous must be
	// satisfied on its own even while a count-3 barrier under the same
	// name is still pending.
	pending := make(chan struct{})
	go func() {
		b.SyncPoint("shared-name", 3) // stays parked
		close(pending)
	}()

	b.SyncPoint("shared-name", 1)

	select {
	case <-pending:
		t.Fatal("count-3 barrier must not be satisfied by the count-1 rendezvous")
	case <-time.After(50 * time.Millisecond):
	}

	// Unpark the count-3 waiters so the goroutine can exit.
	go b.SyncPoint("shared-name", 3)
	go b.SyncPoint("shared-name", 3)
	<-pending
}

type lifecycleFixture struct {
	Base
	steps []string
}

func (f *lifecycleFixture) SetUp()    { f.steps = append(f.steps, "set-up") }
func (f *lifecycleFixture) TearDown() { f.steps = append(f.steps, "tear-down") }

func TestFixtureLifecycleOrder(t *testing.T) {
	reg := NewRegistry()
	fx := &lifecycleFixture{}
	reg.RegisterSuite("Lifecycle", func(r *Registry) {
		r.EnsureWith("ordered", fx, func() {
			fx.steps = append(fx.steps, "body")
		})
	})
	reg.Populate()

	require.NoError(t, reg.Run(Options{}, NopReporter{}))
	assert.Equal(t, []string{"set-up", "body", "tear-down"}, fx.steps)
	assert.Equal(t, "Lifecycle", fx.SuiteName())
	assert.Equal(t, "ordered", fx.ProofName())
}

func TestTearDownSkippedWhenBodyRaises(t *testing.T) {
	reg := NewRegistry()
	fx := &lifecycleFixture{}
	reg.RegisterSuite("Lifecycle", func(r *Registry) {
		r.EnsureWith("raising", fx, func() {
			fx.steps = append(fx.steps, "body")
			panic("boom")
		})
	})
	reg.Populate()

	err := reg.Run(Options{}, NopReporter{})
	require.Error(t, err)
	assert.Equal(t, []string{"set-up", "body"}, fx.steps,
		"tear-down must not run after an escaping fault")
}
