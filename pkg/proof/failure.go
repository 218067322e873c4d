package proof

// Failure is an immutable snapshot of one failed assertion.
//
// ActualStr is the label under which the actual value should be reported; it
// differs from Actual when the checked expression reads better than the raw
// rendering (reporting composes "expected '<ActualStr>' to be <Expected>,
// actual = <Actual>").
type Failure struct {
	Suite     string
	Proof     string
	File      string
	Line      int
	Test      string
	Actual    string
	Expected  string
	ActualStr string
}

// Name returns the qualified "<suite>::<proof>" name of the failed proof.
func (f Failure) Name() string {
	return f.Suite + "::" + f.Proof
}
