package pagedlist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jfenner/pagedlist/internal/fetch"
)

const defaultSourceTimeout = 10 * time.Second

// Item is a generic record fetched from a paged JSON HTTP source.
//
// ID is the normalized identity extracted from the source's configured
// identity field (default "id"); Fields holds every decoded field of
// the record, identity included. Items are treated as opaque by the
// store: they are replaced whole, never mutated field by field.
type Item struct {
	ID     string
	Fields map[string]any
}

// String returns the value of a named field when it is a string, or ""
// otherwise. Convenience for rendering layers picking a display field.
func (it Item) String(field string) string {
	s, _ := it.Fields[field].(string)
	return s
}

// ItemID is the [KeyFunc] for [Item] records.
func ItemID(it Item) string {
	return it.ID
}

// Source describes a paged JSON HTTP API as a list to browse.
//
// Source is immutable after creation via [NewSource]. All fields are
// private with getter methods that return copies of mutable data (maps),
// so a source cannot be modified after construction.
//
// Sources are configured using the functional options pattern with
// [SourceOption] functions such as [WithHeaders], [WithTimeout],
// [WithMethod], [WithItemsPath], [WithTotalPath], and [WithIDField].
type Source struct {
	name        string
	urlTemplate string
	headers     map[string]string
	timeout     time.Duration
	method      string
	itemsPath   string
	totalPath   string
	idField     string
}

// NewSource creates a [Source] with the given name, URL template, and
// options.
//
// The URL template must contain a "{page}" placeholder, replaced by the
// decimal page number on every request, and must parse to an http or
// https URL. Response layout defaults are the common envelope: items
// under "data", collection size under "total", identity under "id".
//
// Example:
//
//	src, err := pagedlist.NewSource("articles", "https://api.example.com/articles?page={page}",
//	    pagedlist.WithHeaders("Authorization", "Bearer token"),
//	    pagedlist.WithItemsPath("result.items"),
//	    pagedlist.WithTotalPath("result.count"),
//	)
func NewSource(name, urlTemplate string, opts ...SourceOption) (Source, error) {
	if name == "" {
		return Source{}, errors.New("source name cannot be empty")
	}
	if !strings.Contains(urlTemplate, "{page}") {
		return Source{}, errors.New("url template must contain a {page} placeholder")
	}

	parsed, err := url.Parse(strings.ReplaceAll(urlTemplate, "{page}", "1"))
	if err != nil {
		return Source{}, errors.New("invalid url template: " + err.Error())
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Source{}, errors.New("url template scheme must be http or https")
	}

	cfg := &sourceConfig{
		headers:   make(map[string]string),
		timeout:   defaultSourceTimeout,
		itemsPath: "data",
		totalPath: "total",
		idField:   "id",
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return Source{}, err
		}
	}

	return Source{
		name:        name,
		urlTemplate: urlTemplate,
		headers:     cfg.headers,
		timeout:     cfg.timeout,
		method:      cfg.method,
		itemsPath:   cfg.itemsPath,
		totalPath:   cfg.totalPath,
		idField:     cfg.idField,
	}, nil
}

// Name returns the source's display name.
func (s Source) Name() string {
	return s.name
}

// URLTemplate returns the source's URL template, with the "{page}"
// placeholder intact.
func (s Source) URLTemplate() string {
	return s.urlTemplate
}

// PageURL returns the concrete URL for one page.
func (s Source) PageURL(page int) string {
	return strings.ReplaceAll(s.urlTemplate, "{page}", strconv.Itoa(page))
}

// Headers returns a copy of the custom HTTP headers sent with every
// page request. Returns nil if no custom headers are set.
func (s Source) Headers() map[string]string {
	return copyMap(s.headers)
}

// Timeout returns the per-request timeout.
// Defaults to 10 seconds if not explicitly set via [WithTimeout].
func (s Source) Timeout() time.Duration {
	return s.timeout
}

// Method returns the HTTP method for page requests.
// Returns empty string if not explicitly set, which means GET.
func (s Source) Method() string {
	return s.method
}

// ItemsPath returns the dot-notation path of the item array in the
// response body.
func (s Source) ItemsPath() string {
	return s.itemsPath
}

// TotalPath returns the dot-notation path of the reported collection
// size in the response body. An empty path means the response carries
// no total and the page length stands in for it.
func (s Source) TotalPath() string {
	return s.totalPath
}

// IDField returns the name of the identity field inside each item.
func (s Source) IDField() string {
	return s.idField
}

// Fetcher returns a [FetchFunc] that pulls pages of this source over
// HTTP.
//
// Passing nil uses a client with connection pooling tuned for the many
// consecutive same-host requests pagination produces; pass your own
// [http.Client] to control transport behavior or to share a pool across
// sources. The returned function is what [New] expects; pair it with
// [ItemID]:
//
//	store, err := pagedlist.New(src.Fetcher(nil), pagedlist.ItemID)
//
// A non-2xx response or an undecodable body is reported as a fetch
// failure, which [Store.Paginate] propagates to its caller.
func (s Source) Fetcher(httpClient *http.Client) FetchFunc[Item] {
	client := fetch.NewClientWith(httpClient)
	return func(ctx context.Context, page int) (PageData[Item], error) {
		body, status, err := client.GetPage(ctx, s.method, s.PageURL(page), s.headers, s.timeout)
		if err != nil {
			return PageData[Item]{}, fmt.Errorf("source %q: %w", s.name, err)
		}
		if status < 200 || status >= 300 {
			return PageData[Item]{}, fmt.Errorf("source %q: unexpected status %d", s.name, status)
		}

		records, total, err := fetch.DecodePage(body, s.itemsPath, s.totalPath, s.idField)
		if err != nil {
			return PageData[Item]{}, fmt.Errorf("source %q: %w", s.name, err)
		}

		items := make([]Item, len(records))
		for i, r := range records {
			items[i] = Item{ID: r.ID, Fields: r.Fields}
		}
		return PageData[Item]{Items: items, Total: total}, nil
	}
}

// copyMap returns a shallow copy of the map, nil when empty.
func copyMap(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
