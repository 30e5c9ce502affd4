// Standalone mock server for testing the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	go run ./cmd/pagedlist browse -c example/config.yaml
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	totalArticles = 57
	pageSize      = 10
)

type article struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Views int    `json:"views"`
}

func main() {
	fmt.Println("Mock paged API starting on :9910")
	fmt.Printf("Serving %d articles at /articles?page=N (%d per page)\n", totalArticles, pageSize)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	articles := make([]article, totalArticles)
	for i := range articles {
		articles[i] = article{
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

		time.Sleep(time.Duration(50+rand.Intn(150)) * time.Millisecond)

		start := (page - 1) * pageSize
		end := start + pageSize
		if start > len(articles) {
			start = len(articles)
		}
		if end > len(articles) {
			end = len(articles)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":  articles[start:end],
			"total": len(articles),
		})
	})

	if err := http.ListenAndServe(":9910", nil); err != nil {
		fmt.Fprintf(os.Stderr, "mock server error: %v\n", err)
		os.Exit(1)
	}
}
