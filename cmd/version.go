package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the current release version. Overridden at build time via
// -ldflags "-X github.com/arogya-ai/triage-server/cmd.Version=...".
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("triage-server v%s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
