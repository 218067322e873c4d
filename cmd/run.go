package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"proofrun/internal/config"
	"proofrun/internal/reporting"
	"proofrun/internal/selfcheck"
	"proofrun/pkg/logging"
	"proofrun/pkg/proof"
)

var (
	runSuiteFilter string
	runProofFilter string
	runQuiet       bool
	runResultsFile string
	runConfigPath  string
	runLogLevel    string
)

// errRunFailed signals a non-zero exit without extra output: everything the
// user needs was already written by the reporter.
var errRunFailed = errors.New("run failed")

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the built-in proof suites",
		Long: `Execute the built-in proof suites sequentially and report the
results.

Filters select by substring containment and can come from the environment
(SUITE, PROOF), an optional YAML config file, or the flags below; flags win
over the environment, which wins over the file. Q toggles quiet output and
RESULTS_FILE requests the structured results journal.`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Errors are printed here because SilenceErrors is set: after a
			// failed run everything was already reported on the console.
			level, err := logging.ParseLevel(runLogLevel)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return err
			}
			logging.Init(level, os.Stderr)

			opts, err := config.Load(runConfigPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return err
			}
			applyFlagOverrides(cmd, &opts)

			reg := proof.NewRegistry()
			selfcheck.Register(reg)
			reg.Populate()

			// Diagnostics go to stderr (logging.Init above) and stay clear
			// of the console protocol on stdout.
			runID := uuid.NewString()
			slog.Info("starting run",
				"run_id", runID,
				"suite_filter", opts.Suite,
				"proof_filter", opts.Proof,
				"quiet", opts.Quiet)

			code := executeRun(reg, opts, os.Stdout, os.Stderr)

			slog.Info("run finished",
				"run_id", runID,
				"passed", len(reg.Passed()),
				"failures", len(reg.Failures()),
				"exit_code", code)

			if code != 0 {
				return errRunFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&runSuiteFilter, "suite", "", "substring filter on suite names")
	cmd.Flags().StringVar(&runProofFilter, "proof", "", "substring filter on proof names")
	cmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "suppress per-suite/per-proof announcements")
	cmd.Flags().StringVar(&runResultsFile, "results-file", "", "write the structured results journal to this path")
	cmd.Flags().StringVar(&runConfigPath, "config", "", "optional YAML run-config file")
	cmd.Flags().StringVar(&runLogLevel, "log-level", "info", "diagnostics log level (debug, info, warn, error)")

	return cmd
}

// applyFlagOverrides lays flag values over the loaded options. Only flags
// the user actually set override; unset flags leave the file/env values
// alone, so precedence stays file < env < flags.
func applyFlagOverrides(cmd *cobra.Command, opts *config.Options) {
	if cmd.Flags().Changed("suite") {
		opts.Suite = runSuiteFilter
	}
	if cmd.Flags().Changed("proof") {
		opts.Proof = runProofFilter
	}
	if cmd.Flags().Changed("quiet") {
		opts.Quiet = runQuiet
	}
	if cmd.Flags().Changed("results-file") {
		opts.ResultsFile = runResultsFile
	}
}

// executeRun drives a populated registry through execution and reporting
// and derives the process exit status: 0 when every selected proof passed,
// 1 on any failure, an uncaught fault, or an internal reporting failure.
func executeRun(reg *proof.Registry, opts config.Options, out, errOut io.Writer) int {
	reporter := reporting.NewConsoleReporter(out, opts.Quiet)

	runErr := reg.Run(proof.Options{
		SuiteFilter: opts.Suite,
		ProofFilter: opts.Proof,
	}, reporter)
	if runErr != nil {
		var fault *proof.UncaughtFault
		if errors.As(runErr, &fault) {
			reporter.ReportUncaught(fault)
		} else {
			fmt.Fprintf(errOut, "error: %v\n", runErr)
		}
		return 1
	}

	reporter.Summarize(errOut, reg.Failures())

	if opts.ResultsFile != "" {
		if err := reporting.WriteJournal(out, opts.ResultsFile, reg.Passed(), reg.Failures()); err != nil {
			slog.Error("journal write failed", "path", opts.ResultsFile, "error", err)
			reporter.ReportInternalFailure()
			return 1
		}
	}

	if len(reg.Failures()) > 0 {
		return 1
	}
	return 0
}
