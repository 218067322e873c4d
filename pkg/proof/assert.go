package proof

import (
	"fmt"
	"math"
	"reflect"
	"runtime"
	"time"
)

// floatTolerance is the absolute difference under which two floating-point
// values compare equal. Deliberately absolute, not relative: it absorbs
// rounding noise, nothing more.
const floatTolerance = 1e-4

// pollInterval is the retry cadence of the TryAssert* variants.
const pollInterval = 25 * time.Millisecond

// Assert records a failure iff pred is false. expr is the textual rendering
// of the checked condition, used for diagnostics. Returns pred, so callers
// can short-circuit dependent checks.
func (b *Base) Assert(pred bool, expr string) bool {
	file, line := callerLocation(1)
	return b.assert(pred, file, line, expr, true)
}

// AssertEqual checks actual against expected using the values' native
// equality, except that floating-point operands compare within an absolute
// tolerance of 1e-4. actualExpr and expectedExpr are the operands' textual
// renderings for diagnostics.
func (b *Base) AssertEqual(actual, expected any, actualExpr, expectedExpr string) bool {
	file, line := callerLocation(1)
	return b.assertEqual(actual, expected, file, line, actualExpr, expectedExpr, true)
}

// AssertFault runs op and succeeds only if it raises a fault whose concrete
// type exactly matches want's type. want is an exemplar value (typically a
// zero value) of the expected fault type; a raised fault of any other
// concrete type fails the check, even one satisfying the same interfaces.
func (b *Base) AssertFault(op func(), want any) bool {
	file, line := callerLocation(1)
	return b.assertFault(op, want, file, line, true)
}

// AssertNoFault runs op and succeeds iff it raises nothing.
func (b *Base) AssertNoFault(op func()) bool {
	file, line := callerLocation(1)
	return b.assertNoFault(op, file, line, true)
}

// TryAssert retries pred silently every 25 ms until it passes or timeout
// elapses, then performs one final recording check. It absorbs
// eventual-consistency races in concurrent proof bodies without a hard
// sleep.
func (b *Base) TryAssert(pred func() bool, expr string, timeout time.Duration) bool {
	file, line := callerLocation(1)
	for i := int64(0); i < int64(timeout/pollInterval); i++ {
		if b.assert(pred(), file, line, expr, false) {
			return true
		}
		time.Sleep(pollInterval)
	}
	return b.assert(pred(), file, line, expr, true)
}

// TryAssertEqual is the polling variant of AssertEqual. The actual operand
// is re-evaluated on every poll; the expected operand is a fixed value.
func (b *Base) TryAssertEqual(actual func() any, expected any, actualExpr, expectedExpr string, timeout time.Duration) bool {
	file, line := callerLocation(1)
	for i := int64(0); i < int64(timeout/pollInterval); i++ {
		if b.assertEqual(actual(), expected, file, line, actualExpr, expectedExpr, false) {
			return true
		}
		time.Sleep(pollInterval)
	}
	return b.assertEqual(actual(), expected, file, line, actualExpr, expectedExpr, true)
}

// TryAssertFault is the polling variant of AssertFault.
func (b *Base) TryAssertFault(op func(), want any, timeout time.Duration) bool {
	file, line := callerLocation(1)
	for i := int64(0); i < int64(timeout/pollInterval); i++ {
		if b.assertFault(op, want, file, line, false) {
			return true
		}
		time.Sleep(pollInterval)
	}
	return b.assertFault(op, want, file, line, true)
}

// TryAssertNoFault is the polling variant of AssertNoFault.
func (b *Base) TryAssertNoFault(op func(), timeout time.Duration) bool {
	file, line := callerLocation(1)
	for i := int64(0); i < int64(timeout/pollInterval); i++ {
		if b.assertNoFault(op, file, line, false) {
			return true
		}
		time.Sleep(pollInterval)
	}
	return b.assertNoFault(op, file, line, true)
}

func (b *Base) assert(pred bool, file string, line int, expr string, record bool) bool {
	if !pred && record {
		b.addFailure(file, line, expr, expr, "true", expr)
	}
	return pred
}

func (b *Base) assertEqual(actual, expected any, file string, line int, actualExpr, expectedExpr string, record bool) bool {
	if equalValues(actual, expected) {
		return true
	}
	if record {
		b.addFailure(file, line,
			actualExpr+" == "+expectedExpr,
			render(actual),
			render(expected),
			actualExpr)
	}
	return false
}

func (b *Base) assertFault(op func(), want any, file string, line int, record bool) bool {
	wantName := "<unknown>"
	if t := reflect.TypeOf(want); t != nil {
		wantName = t.String()
	}

	raised, got := capture(op)
	if !raised {
		if record {
			b.addFailure(file, line, "fault {...}", "<none>", wantName, "fault")
		}
		return false
	}
	if reflect.TypeOf(got) == reflect.TypeOf(want) {
		return true
	}
	// Wrong fault type. A fault merely assignable to the expected type's
	// interfaces does not count as a match.
	if record {
		b.addFailure(file, line, "fault {...}", faultName(got), wantName, "fault")
	}
	return false
}

func (b *Base) assertNoFault(op func(), file string, line int, record bool) bool {
	raised, _ := capture(op)
	if raised && record {
		b.addFailure(file, line, "fault {...}", "fault raised", "raised", "no fault")
	}
	return !raised
}

// capture runs op, recovering any fault it raises.
func capture(op func()) (raised bool, got any) {
	defer func() {
		if v := recover(); v != nil {
			raised = true
			got = v
		}
	}()
	op()
	return false, nil
}

func (b *Base) addFailure(file string, line int, test, actual, expected, actualStr string) {
	b.sink.addFailure(Failure{
		Suite:     b.suite,
		Proof:     b.proof,
		File:      file,
		Line:      line,
		Test:      test,
		Actual:    actual,
		Expected:  expected,
		ActualStr: actualStr,
	})
}

// equalValues applies the engine's equality: absolute 1e-4 tolerance when
// both operands are floating point, native (deep) equality otherwise.
func equalValues(actual, expected any) bool {
	if af, ok := toFloat(actual); ok {
		if ef, ok := toFloat(expected); ok {
			return math.Abs(ef-af) < floatTolerance
		}
	}
	if actual == nil || expected == nil {
		return actual == expected
	}
	return reflect.DeepEqual(actual, expected)
}

func toFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	}
	return 0, false
}

func render(v any) string {
	return fmt.Sprintf("%v", v)
}

func callerLocation(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "<unknown>", 0
	}
	return file, line
}
