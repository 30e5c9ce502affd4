package pagedlist

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Store is a pagination state manager for a single logical list.
//
// A Store accumulates items from a [FetchFunc] page by page, keyed by
// the identity a [KeyFunc] extracts. Insertion order is preserved and
// duplicates are collapsed: inserting an item whose identity already
// exists replaces the prior value in place. The accumulated list is
// exposed through [Store.Items] as a memoized, reference-stable slice.
//
// One Store is created per logical list (for example, once per session
// for a given resource) and [Store.Reset] clears it in place, so
// external references to the instance stay valid across a logout/login
// cycle. All methods are safe for concurrent use; the fetch itself runs
// outside the store's lock so page loads for different pages overlap
// freely.
type Store[K comparable, T any] struct {
	mu       sync.Mutex
	fetch    FetchFunc[T]
	key      KeyFunc[K, T]
	logger   *slog.Logger
	onChange func(Snapshot[K, T])

	byKey   map[K]T
	order   []K
	view    []T // memoized projection; nil after any item mutation
	seen    map[int]struct{}
	loading map[int]bool
	total   int
}

// New creates a [Store] with the given fetch capability and key
// extractor.
//
// Both fetch and key are required. Options configure the diagnostics
// logger and may pre-register the change observer; see [WithLogger] and
// [WithOnChange].
//
// Example:
//
//	store, err := pagedlist.New(fetchUsers, func(u User) string { return u.ID },
//	    pagedlist.WithLogger(logger),
//	    pagedlist.WithOnChange(dispatch),
//	)
func New[K comparable, T any](fetch FetchFunc[T], key KeyFunc[K, T], opts ...Option[K, T]) (*Store[K, T], error) {
	if fetch == nil {
		return nil, errNilFetch
	}
	if key == nil {
		return nil, errNilKey
	}

	cfg := &storeConfig[K, T]{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store[K, T]{
		fetch:    fetch,
		key:      key,
		logger:   logger,
		onChange: cfg.onChange,
		byKey:    make(map[K]T),
		seen:     make(map[int]struct{}),
		loading:  make(map[int]bool),
	}, nil
}

// OnChange registers the observer invoked after every state-changing
// operation.
//
// Only one observer is registered at a time; the last registration wins.
// Passing nil unregisters the current observer, after which mutations
// simply skip notification. Fan-out to several observers is the binding
// layer's job, not the store's.
//
// The observer is called synchronously after the mutation commits, with
// a [Snapshot] of the new state. A panicking observer is recovered and
// logged; it never corrupts the store.
func (s *Store[K, T]) OnChange(fn func(Snapshot[K, T])) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Paginate loads the given page if it has never been requested before.
//
// The page number is recorded as seen before the fetch is issued, so a
// second call for the same page, including one made while the first is
// still in flight, returns immediately without invoking the fetch
// function. Paginate never re-requests a page: this holds even when the
// fetch failed or returned no items. To retry a failed page, call
// [Store.Forget] for that page (or [Store.Reset]) first.
//
// While the fetch is in flight, [Store.Loading] reports true for the
// page; the flag is cleared on completion and on failure alike. On
// success every returned item is merged in with overwrite semantics, the
// reported total replaces the stored one (last writer wins across
// concurrent completions), and the observer is notified even when the
// page carried zero items. On failure the wrapped fetch error is
// returned to the caller; nothing is merged and no notification fires.
//
// Page numbers are not validated; the data source defines what a
// nonsensical page returns.
func (s *Store[K, T]) Paginate(ctx context.Context, page int) error {
	s.mu.Lock()
	if _, ok := s.seen[page]; ok {
		s.mu.Unlock()
		return nil
	}
	s.seen[page] = struct{}{}
	s.loading[page] = true
	s.mu.Unlock()

	// The deferred clear guarantees the loading flag never sticks, even
	// if the fetch function panics.
	data, err := func() (PageData[T], error) {
		defer func() {
			s.mu.Lock()
			s.loading[page] = false
			s.mu.Unlock()
		}()
		return s.fetch(ctx, page)
	}()
	if err != nil {
		return fmt.Errorf("fetch page %d: %w", page, err)
	}

	s.mu.Lock()
	for _, item := range data.Items {
		s.insertLocked(item)
	}
	s.total = data.Total
	s.view = nil
	snap, fn := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(fn, snap)
	return nil
}

// Add inserts an item that is not yet present.
//
// If an item with the same identity already exists the call is a no-op:
// the existing value is retained, no notification fires, and Add returns
// false. Use [Store.Update] to replace an existing item.
func (s *Store[K, T]) Add(item T) bool {
	k := s.key(item)

	s.mu.Lock()
	if _, ok := s.byKey[k]; ok {
		s.mu.Unlock()
		return false
	}
	s.byKey[k] = item
	s.order = append(s.order, k)
	s.view = nil
	snap, fn := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(fn, snap)
	return true
}

// Remove deletes the item with the given identity.
//
// Removing an absent identity is non-fatal: a warning is logged, nothing
// changes, no notification fires, and Remove returns false.
func (s *Store[K, T]) Remove(id K) bool {
	s.mu.Lock()
	if _, ok := s.byKey[id]; !ok {
		s.mu.Unlock()
		s.logger.Warn("item not found", "op", "remove", "key", id)
		return false
	}
	delete(s.byKey, id)
	for i, k := range s.order {
		if k == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
	s.view = nil
	snap, fn := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(fn, snap)
	return true
}

// Update replaces the item with the same identity.
//
// Update never creates: if no item with that identity exists, a warning
// is logged, nothing changes, no notification fires, and Update returns
// false. The replaced item keeps its position in the list.
func (s *Store[K, T]) Update(item T) bool {
	k := s.key(item)

	s.mu.Lock()
	if _, ok := s.byKey[k]; !ok {
		s.mu.Unlock()
		s.logger.Warn("item not found", "op", "update", "key", k)
		return false
	}
	s.byKey[k] = item
	s.view = nil
	snap, fn := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(fn, snap)
	return true
}

// Reset clears all accumulated state: items, total, the seen-page set,
// and per-page loading flags.
//
// Reset always notifies, even when the store was already empty, and
// returns the store to support chaining:
//
//	store.Reset().Paginate(ctx, 1)
//
// After a reset, previously seen pages become eligible for fetching
// again.
func (s *Store[K, T]) Reset() *Store[K, T] {
	s.mu.Lock()
	s.byKey = make(map[K]T)
	s.order = nil
	s.view = nil
	s.seen = make(map[int]struct{})
	s.loading = make(map[int]bool)
	s.total = 0
	snap, fn := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(fn, snap)
	return s
}

// Forget removes a single page from the seen set so a later
// [Store.Paginate] call fetches it again.
//
// Items merged from the page are kept; re-fetching simply overwrites
// them by identity. Forget only touches page bookkeeping and does not
// notify the observer. It is the targeted alternative to [Store.Reset]
// when retrying one failed page.
func (s *Store[K, T]) Forget(page int) {
	s.mu.Lock()
	delete(s.seen, page)
	delete(s.loading, page)
	s.mu.Unlock()
}

// Has reports whether an item with the given identity is present.
func (s *Store[K, T]) Has(id K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byKey[id]
	return ok
}

// Get returns the item with the given identity.
//
// A missing identity is non-fatal: a warning is logged and Get returns
// the zero value with ok set to false.
func (s *Store[K, T]) Get(id K) (item T, ok bool) {
	s.mu.Lock()
	item, ok = s.byKey[id]
	s.mu.Unlock()
	if !ok {
		s.logger.Warn("item not found", "op", "get", "key", id)
	}
	return item, ok
}

// Items returns the accumulated items in insertion order.
//
// The slice is memoized: consecutive calls with no intervening mutation
// return the identical slice, so a rendering layer can compare slice
// identity to skip work. Any mutation invalidates the memo and the next
// call returns a fresh slice reflecting the change.
//
// The returned slice is a read-only projection shared with future
// snapshots; callers must not modify it in place.
func (s *Store[K, T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Len returns the number of accumulated items.
func (s *Store[K, T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Total returns the collection size most recently reported by the data
// source. It is zero until the first page completes.
func (s *Store[K, T]) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Loading reports whether a fetch for the given page is in flight.
func (s *Store[K, T]) Loading(page int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading[page]
}

// LoadingPages returns a copy of the per-page loading flags.
func (s *Store[K, T]) LoadingPages() map[int]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLoading(s.loading)
}

// Seen reports whether a fetch for the given page has ever been
// initiated, successfully or not.
func (s *Store[K, T]) Seen(page int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[page]
	return ok
}

// insertLocked merges one item in with overwrite semantics. Callers hold
// the lock.
func (s *Store[K, T]) insertLocked(item T) {
	k := s.key(item)
	if _, ok := s.byKey[k]; !ok {
		s.order = append(s.order, k)
	}
	s.byKey[k] = item
}

// viewLocked returns the memoized projection, rebuilding it after an
// invalidation. Callers hold the lock.
func (s *Store[K, T]) viewLocked() []T {
	if s.view == nil {
		view := make([]T, 0, len(s.order))
		for _, k := range s.order {
			view = append(view, s.byKey[k])
		}
		s.view = view
	}
	return s.view
}

// snapshotLocked builds the observer snapshot for the current state and
// returns it together with the registered callback. The snapshot shares
// the item map, ordering, and memoized view with the store but copies
// the page-tracking maps, so later page bookkeeping on the store cannot
// leak into an already delivered snapshot. Callers hold the lock.
func (s *Store[K, T]) snapshotLocked() (Snapshot[K, T], func(Snapshot[K, T])) {
	return Snapshot[K, T]{
		byKey:   s.byKey,
		order:   s.order,
		view:    s.viewLocked(),
		seen:    copySeen(s.seen),
		loading: copyLoading(s.loading),
		total:   s.total,
	}, s.onChange
}

// notify delivers a snapshot to the observer, if one is registered.
// Panics in the observer are recovered and logged with a correlation ID
// so a misbehaving UI callback cannot take the store down.
func (s *Store[K, T]) notify(fn func(Snapshot[K, T]), snap Snapshot[K, T]) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("change observer panicked",
				"panic", r,
				"correlation_id", uuid.New().String(),
			)
		}
	}()
	fn(snap)
}

func copySeen(m map[int]struct{}) map[int]struct{} {
	cp := make(map[int]struct{}, len(m))
	for k := range m {
		cp[k] = struct{}{}
	}
	return cp
}

func copyLoading(m map[int]bool) map[int]bool {
	cp := make(map[int]bool, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
