// Package proof implements the test orchestration engine of proofrun.
//
// Tests are organized into named suites of proofs. A proof is a single named
// unit of test logic bound to one fixture instance for its whole lifetime.
//
// # Lifecycle
//
// Execution moves through four phases, driven by an explicitly constructed
// Registry:
//
//  1. Registration: RegisterSuite appends a thunk under a suite name.
//     Single-threaded, happens before anything runs.
//  2. Population: Populate invokes every registered thunk exactly once.
//     Thunks realize proofs via Ensure/EnsureWith, which read the registry's
//     active-suite cursor. Also single-threaded.
//  3. Execution: Run iterates the populated suites, applies the substring
//     filters, and invokes each selected proof's wrapper (SetUp, body,
//     TearDown) sequentially.
//  4. Reporting: the caller reads Failures and Passed and derives the exit
//     status (see internal/reporting and cmd).
//
// # Fixtures
//
// Base is the capability object handed to a running proof: the assertion
// surface, named counting barriers (SyncPoint) and named time marks. Custom
// fixtures embed Base and override SetUp/TearDown; the engine only ever
// depends on the Fixture interface.
//
// # Concurrency
//
// Proofs run sequentially relative to one another, but a proof body may
// spawn any number of goroutines. Failure recording, the barrier map, the
// time-mark map and every barrier counter are guarded by separate locks, so
// worker goroutines can assert, rendezvous and mark time concurrently.
//
// # Faults
//
// Assertion failures are recorded and execution continues. A fault is a
// panic value: AssertFault expects one, SyncPoint raises *TimeoutFault on a
// timed-out rendezvous, and a fault escaping a proof body aborts the whole
// run, surfaced by Run as *UncaughtFault.
package proof
