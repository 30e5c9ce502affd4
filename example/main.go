package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jfenner/pagedlist"
)

func main() {
	// start mock server (see mock_server.go)
	go StartMockListServer(":9910")
	time.Sleep(100 * time.Millisecond)

	src, err := pagedlist.NewSource("articles", "http://localhost:9910/articles?page={page}",
		pagedlist.WithTimeout(2*time.Second),
	)
	if err != nil {
		slog.Error("failed to create source", "error", err)
		os.Exit(1)
	}

	store, err := pagedlist.New(src.Fetcher(nil), pagedlist.ItemID,
		pagedlist.WithOnChange[string, pagedlist.Item](func(snap pagedlist.Snapshot[string, pagedlist.Item]) {
			fmt.Printf("-> %d of %d items loaded\n", snap.Len(), snap.Total())
		}),
	)
	if err != nil {
		slog.Error("failed to create store", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// pull the first three pages; the duplicate call is absorbed by the
	// fetch-once policy and hits neither the network nor the observer
	for _, page := range []int{1, 2, 2, 3} {
		if err := store.Paginate(ctx, page); err != nil {
			slog.Error("page load failed", "page", page, "error", err)
			os.Exit(1)
		}
	}

	fmt.Println()
	for i, item := range store.Items() {
		fmt.Printf("%2d. %s\n", i+1, item.String("title"))
	}
}
