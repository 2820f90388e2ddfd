package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arjunsehgal/vitalis/internal/buildconfig"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vitalisctl %s (commit %s)\n", buildconfig.Version(), buildconfig.Commit())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
