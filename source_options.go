package pagedlist

import (
	"errors"
	"net/http"
	"time"
)

// sourceConfig holds mutable state during source construction.
type sourceConfig struct {
	headers   map[string]string
	timeout   time.Duration
	method    string
	itemsPath string
	totalPath string
	idField   string
}

// SourceOption is a function that configures a [Source] during
// construction.
//
// SourceOption implements the functional options pattern, allowing
// optional configuration to be passed to [NewSource] in a type-safe,
// extensible way. Options return an error if validation fails.
//
// Built-in options: [WithHeaders], [WithTimeout], [WithMethod],
// [WithItemsPath], [WithTotalPath], [WithIDField].
type SourceOption func(*sourceConfig) error

// WithHeaders adds custom HTTP headers to every page request for this
// source.
//
// Use this for sources that require authentication or custom headers.
// Accepts variadic key-value pairs; the number of arguments must be
// even.
//
// Example:
//
//	src, err := pagedlist.NewSource("articles", urlTemplate,
//	    pagedlist.WithHeaders("Authorization", "Bearer token123"),
//	)
//
// Returns an error if an odd number of arguments is provided.
func WithHeaders(keyValues ...string) SourceOption {
	return func(cfg *sourceConfig) error {
		if len(keyValues)%2 != 0 {
			return errors.New("WithHeaders requires an even number of arguments (key-value pairs)")
		}
		for i := 0; i < len(keyValues); i += 2 {
			cfg.headers[keyValues[i]] = keyValues[i+1]
		}
		return nil
	}
}

// WithTimeout sets the HTTP request timeout for this source.
//
// If a page request does not complete within this duration, the fetch
// fails and [Store.Paginate] returns the error. Defaults to 10 seconds
// if not specified.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) SourceOption {
	return func(cfg *sourceConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithMethod sets the HTTP method for page requests.
//
// Supported methods are GET (default) and POST, for APIs that only
// expose paged queries as POST endpoints.
//
// Returns an error if the method is not GET or POST.
func WithMethod(method string) SourceOption {
	return func(cfg *sourceConfig) error {
		switch method {
		case http.MethodGet, http.MethodPost:
			cfg.method = method
			return nil
		default:
			return errors.New("method must be GET or POST")
		}
	}
}

// WithItemsPath sets the dot-notation path of the item array in the
// response body.
//
// An empty path means the response body itself is the array. Defaults
// to "data".
//
// Example:
//
//	// For responses shaped like {"result": {"items": [...]}}
//	pagedlist.WithItemsPath("result.items")
func WithItemsPath(path string) SourceOption {
	return func(cfg *sourceConfig) error {
		cfg.itemsPath = path
		return nil
	}
}

// WithTotalPath sets the dot-notation path of the reported collection
// size in the response body.
//
// An empty path means the response carries no total; the store's total
// then tracks the length of the most recently fetched page. Defaults to
// "total".
func WithTotalPath(path string) SourceOption {
	return func(cfg *sourceConfig) error {
		cfg.totalPath = path
		return nil
	}
}

// WithIDField sets the name of the identity field inside each item.
//
// The field's value becomes the item's deduplication key; string and
// numeric values are accepted. Defaults to "id".
//
// Returns an error if the field name is empty.
func WithIDField(field string) SourceOption {
	return func(cfg *sourceConfig) error {
		if field == "" {
			return errors.New("id field cannot be empty")
		}
		cfg.idField = field
		return nil
	}
}
