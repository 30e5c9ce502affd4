package pagedlist

import (
	"errors"
	"log/slog"
)

var (
	errNilFetch = errors.New("fetch function is required")
	errNilKey   = errors.New("key function is required")
)

// storeConfig holds mutable state during Store construction.
type storeConfig[K comparable, T any] struct {
	logger   *slog.Logger
	onChange func(Snapshot[K, T])
}

// Option is a function that configures a [Store] during construction.
//
// Option implements the functional options pattern. Options return an
// error if validation fails. Built-in options: [WithLogger],
// [WithOnChange].
type Option[K comparable, T any] func(*storeConfig[K, T]) error

// WithLogger sets the [slog.Logger] that receives the store's
// diagnostics: "not found" warnings from [Store.Remove], [Store.Update],
// and [Store.Get], and observer panic reports.
//
// If not specified, [slog.Default] is used. Injecting the logger keeps
// the store free of hidden global dependencies and lets tests assert on
// emitted diagnostics deterministically.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	store, err := pagedlist.New(fetch, key,
//	    pagedlist.WithLogger[string, User](logger),
//	)
//
// Returns an error if the logger is nil.
func WithLogger[K comparable, T any](logger *slog.Logger) Option[K, T] {
	return func(cfg *storeConfig[K, T]) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithOnChange registers the change observer at construction time.
//
// This closes the gap between the first mutating call and a later
// [Store.OnChange] registration: with the observer supplied up front,
// no notification can be lost. A later OnChange call still replaces the
// observer (last registration wins).
//
// Nil callbacks are silently ignored, matching the OnChange contract
// where an absent observer turns notification into a no-op.
func WithOnChange[K comparable, T any](fn func(Snapshot[K, T])) Option[K, T] {
	return func(cfg *storeConfig[K, T]) error {
		if fn == nil {
			return nil // no-op for nil callback (safe to call)
		}
		cfg.onChange = fn
		return nil
	}
}
