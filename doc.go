// Package pagedlist provides a client-side pagination state manager for
// incrementally loaded lists.
//
// A [Store] accumulates items fetched page-by-page from a paged data
// source, deduplicates them by identity, tracks per-page loading state,
// and exposes a stable, memoized read view suitable for rendering in a
// UI list. It is designed as an SDK-first library: the fetch capability
// is injected at construction, and a UI layer observes state transitions
// through a single change callback.
//
// # Quick Start
//
// Construct a store with a fetch function and a key extractor, then pull
// pages as the user scrolls:
//
//	store, _ := pagedlist.New(fetchArticles, func(a Article) int { return a.ID })
//	store.OnChange(func(snap pagedlist.Snapshot[int, Article]) {
//	    render(snap.Items())
//	})
//
//	if err := store.Paginate(ctx, 1); err != nil {
//	    slog.Error("page load failed", "error", err)
//	}
//
// # Fetch-Once Policy
//
// A page is fetched at most once for the lifetime of the store. The page
// number is recorded before the fetch resolves, so overlapping calls for
// the same page collapse into a single request. Failed pages are not
// retried automatically; call [Store.Forget] or [Store.Reset] to make a
// page eligible again.
//
// # Read Stability
//
// [Store.Items] returns a memoized slice that is reference-stable across
// reads until the next mutation. A rendering layer can therefore compare
// slice identity to skip re-rendering when nothing changed. The returned
// slice is a read-only projection; callers must not modify it in place.
//
// # Change Notification
//
// Every state-changing operation delivers a fresh [Snapshot] to the
// registered callback. Snapshots share the underlying item data with the
// store (cheap to produce) but carry independent copies of the
// page-tracking state. Operations that turn out to be no-ops, such as
// adding an item whose identity is already present, do not notify.
//
// Only one observer is registered at a time; fan-out to multiple
// observers belongs to the binding layer. The teabind subpackage adapts
// snapshots into Bubble Tea messages for terminal UIs.
//
// # Paged HTTP Sources
//
// For the common case of a paged JSON HTTP API, [Source] describes the
// remote list declaratively (URL template, response paths, identity
// field) and produces a ready-made [FetchFunc] over [Item] records:
//
//	src, _ := pagedlist.NewSource("articles", "https://api.example.com/articles?page={page}",
//	    pagedlist.WithItemsPath("data"),
//	    pagedlist.WithTotalPath("meta.total"),
//	)
//	store, _ := pagedlist.New(src.Fetcher(nil), pagedlist.ItemID)
package pagedlist
