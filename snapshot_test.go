package pagedlist

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestSnapshot_PageTrackingIsolation(t *testing.T) {
	var calls atomic.Int32
	fetch := fixedPages(map[int]PageData[article]{
		1: {Items: []article{{ID: 1, Title: "A"}}, Total: 2},
		2: {Items: []article{{ID: 2, Title: "B"}}, Total: 2},
	}, &calls)

	var snaps []Snapshot[int, article]
	store := mustStore(t, fetch, WithOnChange[int, article](func(s Snapshot[int, article]) {
		snaps = append(snaps, s)
	}))

	ctx := context.Background()
	if err := store.Paginate(ctx, 1); err != nil {
		t.Fatalf("Paginate(1) error = %v", err)
	}
	first := snaps[0]

	// later page bookkeeping on the store must not show through the
	// already delivered snapshot
	if err := store.Paginate(ctx, 2); err != nil {
		t.Fatalf("Paginate(2) error = %v", err)
	}

	if first.Seen(2) {
		t.Error("first snapshot reports page 2 as seen after a later Paginate")
	}
	if !first.Seen(1) {
		t.Error("first snapshot lost page 1 from its seen set")
	}
	if !store.Seen(2) {
		t.Error("store should report page 2 as seen")
	}
}

func TestSnapshot_SharesMemoizedView(t *testing.T) {
	var snap Snapshot[int, article]
	store := mustStore(t, fixedPages(nil, &atomic.Int32{}),
		WithOnChange[int, article](func(s Snapshot[int, article]) { snap = s }))

	store.Add(article{ID: 1})

	fromStore := store.Items()
	fromSnap := snap.Items()
	if &fromStore[0] != &fromSnap[0] {
		t.Error("snapshot and store should share the memoized view at notification time")
	}
}

func TestSnapshot_DistinctPerNotification(t *testing.T) {
	var snaps []Snapshot[int, article]
	store := mustStore(t, fixedPages(nil, &atomic.Int32{}),
		WithOnChange[int, article](func(s Snapshot[int, article]) { snaps = append(snaps, s) }))

	store.Add(article{ID: 1})
	store.Add(article{ID: 2})

	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snaps))
	}
	if snaps[0].Len() != 1 || snaps[1].Len() != 2 {
		t.Errorf("snapshot lengths = %d, %d; want 1, 2", snaps[0].Len(), snaps[1].Len())
	}
}

func TestSnapshot_Reads(t *testing.T) {
	var snap Snapshot[int, article]
	store := mustStore(t, fixedPages(map[int]PageData[article]{
		1: {Items: []article{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}, Total: 9},
	}, &atomic.Int32{}),
		WithOnChange[int, article](func(s Snapshot[int, article]) { snap = s }))

	if err := store.Paginate(context.Background(), 1); err != nil {
		t.Fatalf("Paginate(1) error = %v", err)
	}

	if snap.Total() != 9 {
		t.Errorf("Total() = %d, want 9", snap.Total())
	}
	if snap.Len() != 2 {
		t.Errorf("Len() = %d, want 2", snap.Len())
	}
	if !snap.Has(1) || snap.Has(42) {
		t.Error("Has() gave wrong membership answers")
	}
	got, ok := snap.Get(2)
	if !ok || got.Title != "B" {
		t.Errorf("Get(2) = %#v, %v; want item B, true", got, ok)
	}
	if _, ok := snap.Get(42); ok {
		t.Error("Get(42) ok = true, want false")
	}
	if snap.Loading(1) {
		t.Error("Loading(1) = true in a post-completion snapshot, want false")
	}
}
