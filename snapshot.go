package pagedlist

// Snapshot is the view of store state delivered to the change observer.
//
// A Snapshot is immutable in spirit: it shares the item map, ordering,
// and memoized view with the store that produced it (so no item data is
// copied), while the seen-page set and loading flags are independent
// copies taken at notification time. Later page bookkeeping on the
// store therefore never shows through an already delivered snapshot,
// and each notification carries a distinct Snapshot value, which lets a
// UI state cell treat "new snapshot" as "state updated".
//
// The read surface mirrors the store's. Snapshot lookups are pure and
// emit no diagnostics.
type Snapshot[K comparable, T any] struct {
	byKey   map[K]T
	order   []K
	view    []T
	seen    map[int]struct{}
	loading map[int]bool
	total   int
}

// Items returns the items in insertion order.
//
// The slice is the same reference the originating store memoized at
// notification time; treat it as read-only.
func (s Snapshot[K, T]) Items() []T {
	return s.view
}

// Len returns the number of items in the snapshot.
func (s Snapshot[K, T]) Len() int {
	return len(s.view)
}

// Total returns the collection size reported by the data source at the
// time of the snapshot.
func (s Snapshot[K, T]) Total() int {
	return s.total
}

// Loading reports whether a fetch for the given page was in flight when
// the snapshot was taken.
func (s Snapshot[K, T]) Loading(page int) bool {
	return s.loading[page]
}

// Seen reports whether a fetch for the given page had been initiated
// when the snapshot was taken.
func (s Snapshot[K, T]) Seen(page int) bool {
	_, ok := s.seen[page]
	return ok
}

// Has reports whether an item with the given identity is present.
func (s Snapshot[K, T]) Has(id K) bool {
	_, ok := s.byKey[id]
	return ok
}

// Get returns the item with the given identity, with ok false when it
// is absent.
func (s Snapshot[K, T]) Get(id K) (item T, ok bool) {
	item, ok = s.byKey[id]
	return item, ok
}
