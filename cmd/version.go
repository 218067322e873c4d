package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of proofrun",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("proofrun version %s\n", rootCmd.Version)
		},
	}
}
