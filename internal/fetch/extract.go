package fetch

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one decoded item of a paged JSON response: its extracted
// identity plus the full set of decoded fields.
type Record struct {
	ID     string
	Fields map[string]any
}

// DecodePage interprets a paged JSON response body.
//
// itemsPath locates the item array using dot notation to navigate
// nested objects ("data", "result.items"). An empty itemsPath means the
// body itself is the array. totalPath locates the reported collection
// size the same way; an empty totalPath means the response carries no
// total and the page length is used instead. idField names the identity
// field inside each item.
//
// For example, for the response
//
//	{"result": {"items": [{"id": 1, "title": "A"}], "meta": {"total": 40}}}
//
// use itemsPath "result.items", totalPath "result.meta.total", and
// idField "id".
func DecodePage(body []byte, itemsPath, totalPath, idField string) ([]Record, int, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, 0, fmt.Errorf("invalid JSON: %w", err)
	}

	raw, ok := lookupPath(doc, itemsPath)
	if !ok {
		return nil, 0, fmt.Errorf("no value at items path %q", itemsPath)
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, 0, fmt.Errorf("value at items path %q is not an array", itemsPath)
	}

	records := make([]Record, 0, len(arr))
	for i, entry := range arr {
		fields, ok := entry.(map[string]any)
		if !ok {
			return nil, 0, fmt.Errorf("item %d is not an object", i)
		}
		id, ok := stringifyID(fields[idField])
		if !ok {
			return nil, 0, fmt.Errorf("item %d has no usable identity field %q", i, idField)
		}
		records = append(records, Record{ID: id, Fields: fields})
	}

	total := len(records)
	if totalPath != "" {
		raw, ok := lookupPath(doc, totalPath)
		if !ok {
			return nil, 0, fmt.Errorf("no value at total path %q", totalPath)
		}
		n, ok := raw.(float64)
		if !ok {
			return nil, 0, fmt.Errorf("value at total path %q is not a number", totalPath)
		}
		total = int(n)
	}

	return records, total, nil
}

// lookupPath walks a decoded JSON structure using dot notation parts.
func lookupPath(doc any, path string) (any, bool) {
	if path == "" {
		return doc, true
	}
	current := doc
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// stringifyID normalizes an identity value to a string key. Only string
// and numeric identities are accepted; numbers keep their JSON
// rendering so 7 and "7" collide deliberately.
func stringifyID(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		if id == "" {
			return "", false
		}
		return id, true
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	default:
		return "", false
	}
}
