// Package main is the entry point for the pagedlist CLI.
//
// pagedlist can be used either as a library (SDK) or as a standalone
// binary that browses any paged JSON HTTP API as a terminal list. This
// CLI provides the standalone binary approach.
//
// Usage:
//
//	pagedlist browse -c config.yaml             # Browse the first configured source
//	pagedlist browse -c config.yaml -s users    # Browse a source by name
//	pagedlist validate -c config.yaml           # Validate configuration
//	pagedlist version                           # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "pagedlist",
	Short: "Browse paged JSON APIs as a terminal list",
	Long: `pagedlist is a terminal browser for paged JSON HTTP APIs.

It pulls pages on demand, deduplicates records by identity, and renders
the accumulated list in an interactive TUI.

Quick start:
  1. Create a config file (pagedlist.yaml)
  2. Run: pagedlist browse -c pagedlist.yaml
  3. Press n to load the next page, q to quit

Example config:
  sources:
    - name: articles
      url: https://api.example.com/articles?page={page}
      items_path: data
      total_path: total
      display_field: title`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this pagedlist binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pagedlist %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
