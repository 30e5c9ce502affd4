// Package config provides YAML configuration parsing for the pagedlist
// CLI.
//
// This package enables browsing paged APIs from a standalone binary
// with a configuration file, as an alternative to the programmatic SDK
// approach.
//
// Example configuration:
//
//	title: Example feeds
//	sources:
//	  - name: articles
//	    url: https://api.example.com/articles?page={page}
//	    timeout: 5s
//	    items_path: data
//	    total_path: total
//	    id_field: id
//	    display_field: title
package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the pagedlist CLI.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title is the list title shown in the TUI header. Defaults to the
	// selected source's name if not set.
	Title string `yaml:"title"`

	// Sources defines the paged APIs available for browsing.
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig defines a single paged JSON API.
type SourceConfig struct {
	// Name identifies the source; the browse command selects by name.
	Name string `yaml:"name"`

	// URL is the page URL template. It must contain a {page}
	// placeholder and supports environment variable substitution:
	// ${VAR} or ${VAR:-default}.
	URL string `yaml:"url"`

	// Method is the HTTP method (GET or POST). Defaults to GET.
	Method string `yaml:"method"`

	// Timeout is the per-request timeout. Defaults to 10s.
	Timeout Duration `yaml:"timeout"`

	// Headers are custom HTTP headers sent with each page request.
	// Values support environment variable substitution.
	Headers map[string]string `yaml:"headers"`

	// ItemsPath is the dot-notation path of the item array in the
	// response. Defaults to "data". Use "." when the response body
	// itself is the array.
	ItemsPath string `yaml:"items_path"`

	// TotalPath is the dot-notation path of the reported collection
	// size. Empty means the response carries no total.
	TotalPath string `yaml:"total_path"`

	// IDField names the identity field inside each item. Defaults to "id".
	IDField string `yaml:"id_field"`

	// DisplayField names the item field rendered as the list line in
	// the TUI. Defaults to "title".
	DisplayField string `yaml:"display_field"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before validation.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in URL and header values, and
// per-source defaults are applied (GET, 10s timeout, "data"/"id"/"title"
// response layout).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables, applies defaults,
// and validates the config.
func (c *Config) expandAndValidate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}

	names := make(map[string]bool, len(c.Sources))
	for i := range c.Sources {
		sc := &c.Sources[i]

		if sc.Name == "" {
			return fmt.Errorf("sources[%d]: name is required", i)
		}
		if names[sc.Name] {
			return fmt.Errorf("sources[%d]: duplicate source name %q", i, sc.Name)
		}
		names[sc.Name] = true

		if sc.URL == "" {
			return fmt.Errorf("sources[%d] (%s): url is required", i, sc.Name)
		}
		expanded, err := expandEnvVars(sc.URL)
		if err != nil {
			return fmt.Errorf("sources[%d] (%s): url: %w", i, sc.Name, err)
		}
		sc.URL = expanded

		if !strings.Contains(sc.URL, "{page}") {
			return fmt.Errorf("sources[%d] (%s): url must contain a {page} placeholder", i, sc.Name)
		}
		parsedURL, err := url.Parse(strings.ReplaceAll(sc.URL, "{page}", "1"))
		if err != nil {
			return fmt.Errorf("sources[%d] (%s): invalid url: %w", i, sc.Name, err)
		}
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return fmt.Errorf("sources[%d] (%s): url scheme must be http or https, got %q", i, sc.Name, parsedURL.Scheme)
		}

		for k, v := range sc.Headers {
			expanded, err := expandEnvVars(v)
			if err != nil {
				return fmt.Errorf("sources[%d] (%s): headers[%s]: %w", i, sc.Name, k, err)
			}
			sc.Headers[k] = expanded
		}

		if sc.Method != "" && sc.Method != "GET" && sc.Method != "POST" {
			return fmt.Errorf("sources[%d] (%s): method must be GET or POST", i, sc.Name)
		}

		if sc.Timeout != 0 && sc.Timeout.Duration() < time.Second {
			return fmt.Errorf("sources[%d] (%s): timeout must be at least 1s if specified, got %s",
				i, sc.Name, sc.Timeout.Duration())
		}

		if sc.DisplayField == "" {
			sc.DisplayField = "title"
		}
	}

	return nil
}
