package proof

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarrierZeroCountNeverBlocks(t *testing.T) {
	b := NewBarrier(0)

	// Immediately satisfied, even with a zero timeout.
	assert.NoError(t, b.Wait(0))
	assert.NoError(t, b.Wait(time.Second))
}

func TestBarrierWaitTimesOut(t *testing.T) {
	b := NewBarrier(1)

	timeout := 50 * time.Millisecond
	start := time.Now()
	err := b.Wait(timeout)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBarrierTimeout)
	assert.GreaterOrEqual(t, elapsed, timeout, "must not time out before the timeout elapses")
}

func TestBarrierArriveAndWaitSingleGoroutine(t *testing.T) {
	b := NewBarrier(1)

	// The arrival itself satisfies the count, so even a zero timeout
	// cannot trip.
	assert.NoError(t, b.ArriveAndWait(0))
}

func TestBarrierReleasesAllWaiters(t *testing.T) {
	const parties = 4
	b := NewBarrier(parties)

	var wg sync.WaitGroup
	errs := make([]error, parties)
	for i := 0; i < parties; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = b.ArriveAndWait(5 * time.Second)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "waiter %d", i)
	}
}

func TestBarrierLateWaiterProceedsImmediately(t *testing.T) {
	b := NewBarrier(1)
	b.Arrive()

	// Once satisfied, future waiters never block.
	assert.NoError(t, b.Wait(0))
}

func TestBarrierExtraArrivalsAreHarmless(t *testing.T) {
	b := NewBarrier(1)
	b.Arrive()
	b.Arrive()
	b.Arrive()

	assert.NoError(t, b.Wait(0))
}
