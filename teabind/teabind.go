// Package teabind adapts pagedlist change notifications into Bubble Tea
// messages.
//
// A Bubble Tea program re-renders by receiving messages; teabind turns
// each [pagedlist.Snapshot] delivered by a store into an [ItemsMsg] and
// hands it to the program's Send function, so every store mutation
// triggers exactly one Update/View cycle.
//
//	p := tea.NewProgram(model)
//	teabind.Bind(p, store)
//	_, err := p.Run()
package teabind

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jfenner/pagedlist"
)

// ItemsMsg carries a store snapshot into the Bubble Tea update loop.
type ItemsMsg[K comparable, T any] struct {
	Snapshot pagedlist.Snapshot[K, T]
}

// Dispatch returns a change callback that forwards each snapshot to
// send as an [ItemsMsg]. Pass a program's Send method, or any test
// double with the same shape.
func Dispatch[K comparable, T any](send func(tea.Msg)) func(pagedlist.Snapshot[K, T]) {
	return func(snap pagedlist.Snapshot[K, T]) {
		send(ItemsMsg[K, T]{Snapshot: snap})
	}
}

// Bind registers a [Dispatch] callback for the program on the store.
// The previous observer, if any, is replaced.
func Bind[K comparable, T any](p *tea.Program, store *pagedlist.Store[K, T]) {
	store.OnChange(Dispatch[K, T](p.Send))
}
