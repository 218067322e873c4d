// Package reporting turns run outcomes into the console protocol and the
// structured results journal.
package reporting

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"proofrun/pkg/proof"
)

// ConsoleReporter prints suite/proof announcements, the overall result line
// and per-failure detail. Quiet mode suppresses the announcements but never
// failure detail or the summary.
type ConsoleReporter struct {
	out   io.Writer
	quiet bool

	okStyle   lipgloss.Style
	failStyle lipgloss.Style
}

// NewConsoleReporter writes to out. The result line is styled when out is a
// color-capable terminal and degrades to plain bytes everywhere else.
func NewConsoleReporter(out io.Writer, quiet bool) *ConsoleReporter {
	renderer := lipgloss.NewRenderer(out)
	return &ConsoleReporter{
		out:       out,
		quiet:     quiet,
		okStyle:   renderer.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		failStyle: renderer.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// SuiteStarted announces a suite header.
func (c *ConsoleReporter) SuiteStarted(name string) {
	if !c.quiet {
		fmt.Fprintf(c.out, "== %s ==\n", name)
	}
}

// ProofStarted announces a proof.
func (c *ConsoleReporter) ProofStarted(name string) {
	if !c.quiet {
		fmt.Fprintf(c.out, " * %s\n", name)
	}
}

// Summarize prints the overall OK/FAILED line to the reporter's writer and
// one detail block per failure to errOut.
func (c *ConsoleReporter) Summarize(errOut io.Writer, failures []proof.Failure) {
	if len(failures) == 0 {
		fmt.Fprintf(c.out, "Result: %s\n", c.okStyle.Render("OK"))
	} else {
		fmt.Fprintf(c.out, "Result: %s\n", c.failStyle.Render("FAILED"))
	}

	for _, f := range failures {
		fmt.Fprintf(errOut, " - %s @ %s:%d\n   \"%s\": %s (expected '%s' to be %s, actual = %s)\n",
			f.Suite, f.File, f.Line,
			f.Proof, f.Test, f.ActualStr, f.Expected, f.Actual)
	}
}

// ReportUncaught prints the fail-fast report for a fault that escaped a
// proof body and aborted the run.
func (c *ConsoleReporter) ReportUncaught(fault *proof.UncaughtFault) {
	fmt.Fprintf(c.out, "Result: %s\n", c.failStyle.Render("FAILED"))
	msg := fault.Message()
	if msg != "" {
		fmt.Fprintf(c.out, " - Uncaught fault in '%s': %s\n", fault.Proof, msg)
	} else {
		fmt.Fprintf(c.out, " - Uncaught fault in '%s'\n", fault.Proof)
	}
}

// ReportInternalFailure prints the reporting-failure marker, distinct from
// any test failure.
func (c *ConsoleReporter) ReportInternalFailure() {
	fmt.Fprintf(c.out, "\nINTERNAL FAILURE\n")
}
