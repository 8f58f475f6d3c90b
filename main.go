package main

import (
	"os"

	"github.com/arogya-ai/triage-server/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
