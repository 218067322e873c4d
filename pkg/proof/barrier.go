package proof

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrBarrierTimeout is returned by Wait and ArriveAndWait when the barrier
// is not satisfied before the timeout elapses.
var ErrBarrierTimeout = errors.New("barrier timeout")

// DefaultSyncTimeout is the wait timeout applied by SyncPoint. It mirrors
// the engine's stance that barriers sized incorrectly hang until a (very
// generous) timeout rather than deadlocking forever.
const DefaultSyncTimeout = 1000000 * time.Millisecond

// Barrier is a counting rendezvous with timeout-based waiting.
//
// The counter starts at the required arrival count and only ever decreases.
// Once it reaches zero, all blocked and future waiters proceed immediately.
// A barrier constructed with count zero is satisfied from the start and
// never blocks, regardless of timeout.
//
// A Barrier has no owner; any number of goroutines sharing it may arrive and
// wait concurrently. Its counter lock is distinct from any lock guarding the
// map it may be stored in.
type Barrier struct {
	mu       sync.Mutex
	count    int
	released bool
	done     chan struct{}
}

// NewBarrier returns a barrier requiring count arrivals.
func NewBarrier(count int) *Barrier {
	b := &Barrier{
		count: count,
		done:  make(chan struct{}),
	}
	if count <= 0 {
		b.released = true
		close(b.done)
	}
	return b
}

// Arrive decrements the counter and releases all waiters once it reaches
// zero. Arrivals beyond the required count push the counter negative and
// are harmless.
func (b *Barrier) Arrive() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.count--
	if b.count <= 0 && !b.released {
		b.released = true
		close(b.done)
	}
}

// Wait blocks until the barrier is satisfied or timeout elapses, in which
// case it returns an error wrapping ErrBarrierTimeout. A satisfied barrier
// never blocks, even with a zero timeout.
func (b *Barrier) Wait(timeout time.Duration) error {
	select {
	case <-b.done:
		return nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-b.done:
		return nil
	case <-timer.C:
		return fmt.Errorf("%w after %s", ErrBarrierTimeout, timeout)
	}
}

// ArriveAndWait arrives and then waits for the remaining parties. On a
// single goroutine it never blocks when the arrival itself satisfies the
// count.
func (b *Barrier) ArriveAndWait(timeout time.Duration) error {
	b.Arrive()
	return b.Wait(timeout)
}
