package pagedlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewSource_Validation(t *testing.T) {
	tests := []struct {
		name        string
		sourceName  string
		urlTemplate string
		opts        []SourceOption
		wantErr     string
	}{
		{
			name:        "valid",
			sourceName:  "articles",
			urlTemplate: "https://api.example.com/articles?page={page}",
		},
		{
			name:        "empty name",
			sourceName:  "",
			urlTemplate: "https://api.example.com/articles?page={page}",
			wantErr:     "name cannot be empty",
		},
		{
			name:        "missing page placeholder",
			sourceName:  "articles",
			urlTemplate: "https://api.example.com/articles",
			wantErr:     "{page} placeholder",
		},
		{
			name:        "bad scheme",
			sourceName:  "articles",
			urlTemplate: "ftp://api.example.com/articles?page={page}",
			wantErr:     "scheme must be http or https",
		},
		{
			name:        "odd header pairs",
			sourceName:  "articles",
			urlTemplate: "https://api.example.com/articles?page={page}",
			opts:        []SourceOption{WithHeaders("Authorization")},
			wantErr:     "even number",
		},
		{
			name:        "zero timeout",
			sourceName:  "articles",
			urlTemplate: "https://api.example.com/articles?page={page}",
			opts:        []SourceOption{WithTimeout(0)},
			wantErr:     "timeout must be positive",
		},
		{
			name:        "bad method",
			sourceName:  "articles",
			urlTemplate: "https://api.example.com/articles?page={page}",
			opts:        []SourceOption{WithMethod("DELETE")},
			wantErr:     "method must be GET or POST",
		},
		{
			name:        "empty id field",
			sourceName:  "articles",
			urlTemplate: "https://api.example.com/articles?page={page}",
			opts:        []SourceOption{WithIDField("")},
			wantErr:     "id field cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSource(tt.sourceName, tt.urlTemplate, tt.opts...)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("NewSource() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("NewSource() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewSource_Defaults(t *testing.T) {
	src, err := NewSource("articles", "https://api.example.com/articles?page={page}")
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	if got := src.Timeout(); got != 10*time.Second {
		t.Errorf("Timeout() = %v, want 10s", got)
	}
	if got := src.ItemsPath(); got != "data" {
		t.Errorf("ItemsPath() = %q, want \"data\"", got)
	}
	if got := src.TotalPath(); got != "total" {
		t.Errorf("TotalPath() = %q, want \"total\"", got)
	}
	if got := src.IDField(); got != "id" {
		t.Errorf("IDField() = %q, want \"id\"", got)
	}
	if got := src.Method(); got != "" {
		t.Errorf("Method() = %q, want empty (GET)", got)
	}
	if got := src.Headers(); got != nil {
		t.Errorf("Headers() = %v, want nil", got)
	}
}

func TestSource_PageURL(t *testing.T) {
	src, err := NewSource("articles", "https://api.example.com/articles?page={page}&limit=10")
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	if got := src.PageURL(7); got != "https://api.example.com/articles?page=7&limit=10" {
		t.Errorf("PageURL(7) = %q", got)
	}
}

func TestSource_HeadersImmutable(t *testing.T) {
	src, err := NewSource("articles", "https://api.example.com/articles?page={page}",
		WithHeaders("Authorization", "Bearer x"))
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	headers := src.Headers()
	headers["Authorization"] = "tampered"
	if got := src.Headers()["Authorization"]; got != "Bearer x" {
		t.Errorf("Headers() = %q after caller mutation, want original", got)
	}
}

func TestSource_Fetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Token"); got != "secret" {
			t.Errorf("X-Token header = %q, want secret", got)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page query = %q, want 2", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": {"items": [{"key": "a", "title": "A"}, {"key": "b", "title": "B"}], "count": 12}}`))
	}))
	defer server.Close()

	src, err := NewSource("custom", server.URL+"?page={page}",
		WithHeaders("X-Token", "secret"),
		WithItemsPath("result.items"),
		WithTotalPath("result.count"),
		WithIDField("key"),
	)
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	data, err := src.Fetcher(nil)(context.Background(), 2)
	if err != nil {
		t.Fatalf("Fetcher() error = %v", err)
	}

	if len(data.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(data.Items))
	}
	if data.Items[0].ID != "a" || data.Items[1].ID != "b" {
		t.Errorf("item ids = %q, %q; want a, b", data.Items[0].ID, data.Items[1].ID)
	}
	if got := data.Items[1].String("title"); got != "B" {
		t.Errorf("item title = %q, want B", got)
	}
	if data.Total != 12 {
		t.Errorf("Total = %d, want 12", data.Total)
	}
}

func TestSource_FetcherErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: "unexpected status 500",
		},
		{
			name: "undecodable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
			wantErr: "invalid JSON",
		},
		{
			name: "missing items path",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"rows": []}`))
			},
			wantErr: `items path "data"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			src, err := NewSource("broken", server.URL+"?page={page}")
			if err != nil {
				t.Fatalf("NewSource() error = %v", err)
			}

			_, err = src.Fetcher(nil)(context.Background(), 1)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Fetcher() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSource_FetcherIntoStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		switch page {
		case "1":
			_, _ = w.Write([]byte(`{"data": [{"id": 1, "title": "A"}], "total": 2}`))
		default:
			_, _ = w.Write([]byte(`{"data": [{"id": 2, "title": "B"}], "total": 2}`))
		}
	}))
	defer server.Close()

	src, err := NewSource("articles", server.URL+"?page={page}")
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	store, err := New(src.Fetcher(nil), ItemID)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	if err := store.Paginate(ctx, 1); err != nil {
		t.Fatalf("Paginate(1) error = %v", err)
	}
	if err := store.Paginate(ctx, 2); err != nil {
		t.Fatalf("Paginate(2) error = %v", err)
	}

	items := store.Items()
	if len(items) != 2 || items[0].ID != "1" || items[1].ID != "2" {
		t.Fatalf("Items() = %#v, want numeric ids normalized to \"1\", \"2\"", items)
	}
	if got := store.Total(); got != 2 {
		t.Errorf("Total() = %d, want 2", got)
	}
}
