// Package ui implements the terminal list browser for the pagedlist CLI.
//
// The Bubble Tea model here is a plain consumer of the store's read
// surface: it renders whatever [pagedlist.Snapshot] last arrived through
// the teabind adapter and issues Paginate calls as commands when the
// user asks for more. All pagination bookkeeping (fetch-once, loading
// flags, dedup) stays in the store.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jfenner/pagedlist"
	"github.com/jfenner/pagedlist/teabind"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Options configure the list browser.
type Options struct {
	Store        *pagedlist.Store[string, pagedlist.Item]
	Title        string
	DisplayField string
}

// fetchDoneMsg reports the outcome of a Paginate command.
type fetchDoneMsg struct {
	page int
	err  error
}

// Model is the Bubble Tea model for browsing one paged source.
type Model struct {
	store        *pagedlist.Store[string, pagedlist.Item]
	title        string
	displayField string
	keys         keyMap
	spin         spinner.Model

	snap    pagedlist.Snapshot[string, pagedlist.Item]
	hasSnap bool

	nextPage   int
	pending    bool
	failedPage int
	err        error

	cursor int
	width  int
	height int
}

// NewModel creates the browser model. The first page is requested from
// Init, so pending starts true.
func NewModel(opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cursorStyle

	display := opts.DisplayField
	if display == "" {
		display = "title"
	}

	return Model{
		store:        opts.Store,
		title:        opts.Title,
		displayField: display,
		keys:         defaultKeyMap(),
		spin:         sp,
		nextPage:     1,
		pending:      true,
	}
}

// Init requests the first page.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, paginateCmd(m.store, 1))
}

// paginateCmd wraps a Paginate call as a Bubble Tea command.
func paginateCmd(store *pagedlist.Store[string, pagedlist.Item], page int) tea.Cmd {
	return func() tea.Msg {
		return fetchDoneMsg{page: page, err: store.Paginate(context.Background(), page)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case teabind.ItemsMsg[string, pagedlist.Item]:
		m.snap = msg.Snapshot
		m.hasSnap = true
		if n := m.snap.Len(); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case fetchDoneMsg:
		m.pending = false
		m.err = msg.err
		if msg.err != nil {
			m.failedPage = msg.page
		} else {
			m.failedPage = 0
			if msg.page >= m.nextPage {
				m.nextPage = msg.page + 1
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < m.snap.Len()-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.NextPage):
			if !m.pending && m.err == nil && !m.fullyLoaded() {
				m.pending = true
				return m, paginateCmd(m.store, m.nextPage)
			}
		case key.Matches(msg, m.keys.Retry):
			if !m.pending && m.failedPage > 0 {
				page := m.failedPage
				m.failedPage = 0
				m.err = nil
				m.pending = true
				m.store.Forget(page)
				return m, paginateCmd(m.store, page)
			}
		}
	}
	return m, nil
}

// fullyLoaded reports whether every known item has been accumulated.
func (m Model) fullyLoaded() bool {
	return m.hasSnap && m.snap.Total() > 0 && m.snap.Len() >= m.snap.Total()
}

// visibleRows returns how many item lines fit the terminal.
func (m Model) visibleRows() int {
	rows := m.height - 4 // header, blank line, footer, status
	if rows < 1 {
		rows = 10
	}
	return rows
}

// View renders the list.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	items := m.snap.Items()
	rows := m.visibleRows()
	top := 0
	if m.cursor >= rows {
		top = m.cursor - rows + 1
	}
	for i := top; i < len(items) && i < top+rows; i++ {
		label := items[i].String(m.displayField)
		if label == "" {
			label = items[i].ID
		}
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}
	if len(items) == 0 && !m.pending {
		b.WriteString(dimStyle.Render("  (no items)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(errStyle.Render(fmt.Sprintf("page %d failed: %v", m.failedPage, m.err)))
		b.WriteString(dimStyle.Render("  r retry · q quit"))
	case m.pending:
		b.WriteString(m.spin.View())
		b.WriteString(dimStyle.Render(" loading..."))
	case m.fullyLoaded():
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d of %d loaded · q quit", m.snap.Len(), m.snap.Total())))
	default:
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d of %d loaded · n next page · q quit", m.snap.Len(), m.snap.Total())))
	}
	b.WriteString("\n")

	return b.String()
}
