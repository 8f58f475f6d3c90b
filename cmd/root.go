package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "triage-server",
	Short: "Conversational medical triage assistant",
	Long: `Triage server drives a symptom-intake chat over an LLM backend:
it asks one question at a time, gives brief first-aid guidance, then
asks for the user's location and returns nearby facilities.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".triage.yml", "config file path")
}
