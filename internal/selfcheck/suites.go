// Package selfcheck declares the built-in suites run by "proofrun run".
// They exercise the engine with itself: barriers, the assertion surface,
// time marks, custom fixtures and cross-goroutine synchronization.
package selfcheck

import (
	"sync/atomic"
	"time"

	"proofrun/pkg/proof"
)

// Register adds all built-in suites to the registry.
func Register(r *proof.Registry) {
	r.RegisterSuite("Barrier", barrierSuite)
	r.RegisterSuite("Fixture", fixtureSuite)
	r.RegisterSuite("Fixture", timingSuite)
	r.RegisterSuite("Rendezvous", rendezvousSuite)
}

func barrierSuite(r *proof.Registry) {
	r.Ensure("0-count barrier wait with no arrive causes no timeout", func(b *proof.Base) {
		barrier := proof.NewBarrier(0)
		b.AssertNoFault(func() {
			if err := barrier.Wait(0); err != nil {
				panic(err)
			}
		})
	})

	r.Ensure("1-count barrier wait with no arrive times out", func(b *proof.Base) {
		barrier := proof.NewBarrier(1)
		err := barrier.Wait(50 * time.Millisecond)
		b.Assert(err != nil, "err != nil")
	})

	r.Ensure("1-count barrier arrive-and-wait causes no timeout", func(b *proof.Base) {
		barrier := proof.NewBarrier(1)
		b.AssertNoFault(func() {
			if err := barrier.ArriveAndWait(time.Second); err != nil {
				panic(err)
			}
		})
	})
}

func fixtureSuite(r *proof.Registry) {
	r.Ensure("suite name is set in the proof's fixture", func(b *proof.Base) {
		b.AssertEqual(b.SuiteName(), "Fixture", "b.SuiteName()", `"Fixture"`)
	})

	r.Ensure("proof name is set in the proof's fixture", func(b *proof.Base) {
		b.AssertEqual(b.ProofName(), "proof name is set in the proof's fixture",
			"b.ProofName()", "proof name")
	})

	r.Ensure("equality tolerates float rounding noise", func(b *proof.Base) {
		b.AssertEqual(float32(1.0), float32(1.0)+1e-5, "1.0", "1.0 + 1e-5")
		b.AssertEqual(3.4, 3.4+1e-5, "3.4", "3.4 + 1e-5")
	})

	r.Ensure("equality compares strings and ints natively", func(b *proof.Base) {
		b.AssertEqual("test", "test", `"test"`, `"test"`)
		b.AssertEqual(3, 3, "3", "3")
	})
}

func timingSuite(r *proof.Registry) {
	r.Ensure("time since mark is non-negative", func(b *proof.Base) {
		b.MarkTime("T1")
		b.Assert(b.TimeSinceMark("T1") >= 0, `b.TimeSinceMark("T1") >= 0`)
	})

	r.Ensure("unknown mark reads as never marked", func(b *proof.Base) {
		b.AssertEqual(b.TimeSinceMark("missing"), proof.NeverMarked,
			`b.TimeSinceMark("missing")`, "proof.NeverMarked")
	})
}

func rendezvousSuite(r *proof.Registry) {
	r.Ensure("workers meet on a sync point before the main body proceeds", func(b *proof.Base) {
		var entered atomic.Int32
		for i := 0; i < 2; i++ {
			go func() {
				entered.Add(1)
				b.SyncPoint("workers-ready", 3)
			}()
		}
		b.SyncPoint("workers-ready", 3)
		b.AssertEqual(entered.Load(), int32(2), "entered.Load()", "2")
	})

	r.Ensure("try-assert absorbs a slow worker", func(b *proof.Base) {
		var done atomic.Bool
		go func() {
			time.Sleep(60 * time.Millisecond)
			done.Store(true)
		}()
		b.TryAssert(done.Load, "done.Load()", time.Second)
	})
}
