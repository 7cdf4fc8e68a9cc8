// main is the entry point for the taskpulse CLI.
package main

import (
	"os"

	"github.com/cosmodesk/taskpulse/cmd"
	"github.com/cosmodesk/taskpulse/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogWarn("Command failed", err)
		os.Exit(1)
	}
}
