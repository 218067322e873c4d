package proof

import "strings"

// Options selects which proofs a run executes. Filters are plain substring
// matches; an empty filter matches everything.
type Options struct {
	SuiteFilter string
	ProofFilter string
}

// Reporter receives execution announcements. Implementations decide how (or
// whether) to surface them; see internal/reporting for the console one.
type Reporter interface {
	SuiteStarted(name string)
	ProofStarted(name string)
}

// NopReporter discards all announcements.
type NopReporter struct{}

func (NopReporter) SuiteStarted(string) {}
func (NopReporter) ProofStarted(string) {}

// Run executes the populated proofs sequentially in this run's suite order,
// applying the filters. A proof passes when its wrapper completes without
// appending failures; passed proofs are recorded in the passed log.
//
// A fault escaping a proof body aborts the run: Run recovers it once, at
// the loop boundary, and returns it as *UncaughtFault naming the offending
// proof. Proofs after it never execute.
func (r *Registry) Run(opts Options, rep Reporter) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &UncaughtFault{Proof: r.current, Cause: v}
		}
	}()

	for _, suite := range r.suiteOrder {
		if !matchesFilter(suite, opts.SuiteFilter) {
			continue
		}
		// A registered suite whose thunks realized no proofs is skipped
		// entirely, header included.
		cases := r.cases[suite]
		if len(cases) == 0 {
			continue
		}
		rep.SuiteStarted(suite)

		for _, c := range cases {
			if !matchesFilter(c.Name, opts.ProofFilter) {
				continue
			}
			rep.ProofStarted(c.Name)

			before := r.failureCount()
			r.current = suite + "::" + c.Name
			c.invoke()
			if r.failureCount() == before {
				r.passed = append(r.passed, r.current)
			}
		}
	}
	return nil
}

// matchesFilter implements the whole filter semantic: any name containing
// the filter substring matches, and an absent filter matches everything.
func matchesFilter(name, filter string) bool {
	return filter == "" || strings.Contains(name, filter)
}
