package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "proofrun",
	Short: "Run proofrun test suites",
	Long: `proofrun is a lightweight test-execution framework: suites of
proofs run sequentially against isolated per-proof fixtures, with
cross-goroutine synchronization primitives, substring filtering and a
structured results journal.`,
	// SilenceUsage prevents printing the usage message on errors handled
	// by us (failed runs already reported on the console)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "proofrun version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newVersionCmd())
}
