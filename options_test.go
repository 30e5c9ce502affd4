package pagedlist

import (
	"bytes"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
)

func TestWithLogger_NilRejected(t *testing.T) {
	_, err := New(fixedPages(nil, &atomic.Int32{}), articleKey,
		WithLogger[int, article](nil))
	if err == nil {
		t.Error("New() with nil logger should return an error")
	}
}

func TestWithLogger_ReceivesDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	store := mustStore(t, fixedPages(nil, &atomic.Int32{}),
		WithLogger[int, article](slog.New(slog.NewTextHandler(&buf, nil))))

	store.Remove(1)

	out := buf.String()
	if !strings.Contains(out, "item not found") || !strings.Contains(out, "op=remove") {
		t.Errorf("log output = %q, want not-found diagnostic with op=remove", out)
	}
}

func TestWithOnChange_RegistersBeforeFirstMutation(t *testing.T) {
	var notified int
	store := mustStore(t, fixedPages(nil, &atomic.Int32{}),
		WithOnChange[int, article](func(Snapshot[int, article]) { notified++ }))

	// no OnChange call needed; the constructor-registered observer sees
	// the very first mutation
	store.Add(article{ID: 1})
	if notified != 1 {
		t.Errorf("observer notified %d times, want 1", notified)
	}
}

func TestWithOnChange_NilIgnored(t *testing.T) {
	store := mustStore(t, fixedPages(nil, &atomic.Int32{}),
		WithOnChange[int, article](nil))

	// must not panic notifying a nil observer
	store.Add(article{ID: 1})
}
