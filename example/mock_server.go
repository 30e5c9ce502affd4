package main

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	mockTotalArticles = 57
	mockPageSize      = 10
)

// mockArticle is one record served by the mock paged API.
type mockArticle struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Views int    `json:"views"`
}

// StartMockListServer runs a mock paged JSON API serving a fixed set of
// articles at /articles?page=N, in the common {data, total} envelope.
// Call this in a goroutine before creating the store.
func StartMockListServer(addr string) {
	// fixed dataset so identities stay stable across pages and restarts
	// of the reader (not of the server)
	articles := make([]mockArticle, mockTotalArticles)
	for i := range articles {
		articles[i] = mockArticle{
			ID:    uuid.New().String(),
			Title: "Article #" + strconv.Itoa(i+1),
			Views: rand.Intn(5000),
		}
	}

	http.HandleFunc("/articles", func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}

		// simulate small latency variance
		time.Sleep(time.Duration(50+rand.Intn(150)) * time.Millisecond)

		start := (page - 1) * mockPageSize
		end := start + mockPageSize
		if start > len(articles) {
			start = len(articles)
		}
		if end > len(articles) {
			end = len(articles)
		}

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"data":  articles[start:end],
			"total": len(articles),
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("mock server error", "error", err)
	}
}
