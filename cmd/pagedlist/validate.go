package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jfenner/pagedlist/config"
)

// validateCmd validates a config file without opening the browser.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a pagedlist configuration file without opening the browser.

This command parses the YAML, expands environment variables, and
validates all fields, including that every configured source builds
into a usable SDK Source. It's useful for CI/CD pipelines or
pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  pagedlist validate -c config.yaml
  pagedlist validate --config /etc/pagedlist/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if _, err := config.BuildSources(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	cmd.Printf("Config is valid!\n")
	cmd.Printf("  Sources: %d\n", len(cfg.Sources))
	for _, sc := range cfg.Sources {
		cmd.Printf("    - %s: %s\n", sc.Name, sc.URL)
	}

	return nil
}
