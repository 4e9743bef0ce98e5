// Package cmd contains the CLI commands for lumen-ipc.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version info (set from main)
	version   = "dev"
	gitCommit = "unknown"
	gitBranch = "unknown"

	// Global flags
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lumen-ipc",
	Short: "Compositor control and introspection daemon",
	Long: `lumen-ipc exposes a compositor's views, outputs, workspace sets and
input devices over a WebSocket command protocol, and streams compositor
events to clients that subscribe to them.

In standalone mode the daemon serves an in-memory scene loaded from a
YAML file, which is useful for client development and testing without a
running compositor.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information from the main package.
func SetVersionInfo(v, commit, branch string) {
	version = v
	gitCommit = commit
	gitBranch = branch
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.lumen-ipc/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(listenCmd)
}

// versionCmd displays version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lumen-ipc %s\n", version)
		fmt.Printf("  Git commit: %s\n", gitCommit)
		fmt.Printf("  Git branch: %s\n", gitBranch)
	},
}
