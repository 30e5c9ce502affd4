package pagedlist

import "context"

// PageData is the result of fetching a single page from a data source.
//
// Items may be empty when the requested page is past the end of the
// collection; the page still counts as fetched. Total is the data
// source's latest report of the full collection size, independent of how
// many pages have been loaded so far.
type PageData[T any] struct {
	// Items contains the records of the fetched page, in source order.
	Items []T

	// Total is the total number of items in the collection as reported
	// by the data source alongside this page.
	Total int
}

// FetchFunc retrieves one page of items from a paged data source.
//
// FetchFunc is the injected fetch capability of a [Store], fixed at
// construction. The store guarantees it is never invoked twice for the
// same page number (see the fetch-once policy in the package docs), but
// it may be invoked concurrently for different pages. Timeouts and
// transport concerns are the fetch function's responsibility; cancel the
// context to abandon a slow source.
//
// An error return marks the whole page load as failed. The store
// propagates the error to the [Store.Paginate] caller without merging
// any items.
type FetchFunc[T any] func(ctx context.Context, page int) (PageData[T], error)

// KeyFunc extracts the identity of an item.
//
// Identity is the unique key by which the store deduplicates items: two
// items with equal keys occupy a single slot, with the most recently
// inserted value winning. The function must be pure and stable; an item
// whose extracted key changes between calls will corrupt the store's
// ordering.
//
// Any comparable key scheme works, including composite keys packed into
// a struct:
//
//	type revKey struct{ ID string; Rev int }
//	key := func(d Doc) revKey { return revKey{d.ID, d.Rev} }
type KeyFunc[K comparable, T any] func(T) K
