package proof

import (
	"fmt"
	"reflect"
)

// TimeoutFault is raised (panicked) by SyncPoint when a rendezvous does not
// complete before its timeout. Proof bodies that want a recoverable timeout
// should use Barrier directly, which returns an error instead.
type TimeoutFault struct {
	Name  string
	Count int
}

func (f *TimeoutFault) Error() string {
	return fmt.Sprintf("sync point %q (count %d) timed out", f.Name, f.Count)
}

// UncaughtFault wraps a fault that escaped a proof body. It aborts the run:
// proofs after the offending one never execute.
type UncaughtFault struct {
	// Proof is the qualified "<suite>::<proof>" name of the offending proof.
	Proof string
	// Cause is the recovered panic value.
	Cause any
}

func (f *UncaughtFault) Error() string {
	return fmt.Sprintf("uncaught fault in '%s': %s", f.Proof, f.Message())
}

// Message renders the cause for reporting, preferring its own description
// when it has one.
func (f *UncaughtFault) Message() string {
	switch c := f.Cause.(type) {
	case error:
		return c.Error()
	case fmt.Stringer:
		return c.String()
	default:
		return fmt.Sprintf("%v", f.Cause)
	}
}

// faultName reports the concrete type of a recovered fault value, falling
// back to "<unknown>" when no identity is obtainable.
func faultName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<unknown>"
	}
	return t.String()
}
