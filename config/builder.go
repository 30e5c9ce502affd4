package config

import (
	"fmt"
	"sort"

	"github.com/jfenner/pagedlist"
)

// BuildSources converts parsed configuration into SDK Source objects,
// keyed by source name.
func BuildSources(cfg *Config) (map[string]pagedlist.Source, error) {
	sources := make(map[string]pagedlist.Source, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		src, err := buildSource(sc)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", sc.Name, err)
		}
		sources[sc.Name] = src
	}
	return sources, nil
}

// buildSource converts a single SourceConfig to an SDK Source.
func buildSource(sc SourceConfig) (pagedlist.Source, error) {
	var opts []pagedlist.SourceOption

	if sc.Method != "" {
		opts = append(opts, pagedlist.WithMethod(sc.Method))
	}
	if sc.Timeout != 0 {
		opts = append(opts, pagedlist.WithTimeout(sc.Timeout.Duration()))
	}
	if len(sc.Headers) > 0 {
		opts = append(opts, pagedlist.WithHeaders(mapToKeyValuePairs(sc.Headers)...))
	}
	switch sc.ItemsPath {
	case "":
		// keep the SDK default ("data")
	case ".":
		// the response body itself is the array
		opts = append(opts, pagedlist.WithItemsPath(""))
	default:
		opts = append(opts, pagedlist.WithItemsPath(sc.ItemsPath))
	}
	// unlike items_path, an absent total_path means "no total reported",
	// so it is always applied
	opts = append(opts, pagedlist.WithTotalPath(sc.TotalPath))
	if sc.IDField != "" {
		opts = append(opts, pagedlist.WithIDField(sc.IDField))
	}

	return pagedlist.NewSource(sc.Name, sc.URL, opts...)
}

// mapToKeyValuePairs converts a map to a sorted slice of key-value pairs.
func mapToKeyValuePairs(m map[string]string) []string {
	// sort keys for deterministic ordering
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(m)*2)
	for _, k := range keys {
		pairs = append(pairs, k, m[k])
	}
	return pairs
}
