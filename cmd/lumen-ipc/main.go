// Package main is the entry point for lumen-ipc.
package main

import (
	"fmt"
	"os"

	"github.com/lumenwm/lumen-ipc/cmd/lumen-ipc/cmd"
)

// Version information (set by ldflags during build)
var (
	Version   = "dev"
	GitCommit = "unknown"
	GitBranch = "unknown"
)

func main() {
	cmd.SetVersionInfo(Version, GitCommit, GitBranch)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
