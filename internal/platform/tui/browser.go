package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/platform-jumper/internal/storage"
)

const maxListedReplays = 100

// ReplayStore is the part of the replay store the browser needs.
type ReplayStore interface {
	ListReplays(order storage.Order, limit int) ([]storage.ReplayEntry, error)
	DeleteReplay(id string) error
}

// BrowserKeyMap defines the key bindings for the replay browser.
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Watch  key.Binding
	Order  key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Watch, k.Order, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Watch},
		{k.Order, k.Delete, k.Quit},
	}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Watch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Order: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "recent/best"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BrowserModel is the Bubble Tea model listing stored replays.
type BrowserModel struct {
	store    ReplayStore
	entries  []storage.ReplayEntry
	order    storage.Order
	table    table.Model
	help     help.Model
	keys     BrowserKeyMap
	width    int
	height   int
	now      func() time.Time
	selected string
	err      error
	quitting bool
}

// NewBrowserModel creates a browser over store.
func NewBrowserModel(store ReplayStore, width, height int) BrowserModel {
	h := help.New()
	h.ShowAll = false

	m := BrowserModel{
		store:  store,
		keys:   DefaultBrowserKeyMap(),
		help:   h,
		width:  width,
		height: height,
		now:    time.Now,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *BrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Level", Width: 6},
		{Title: "Ticks", Width: 8},
		{Title: "Ended", Width: 10},
		{Title: "Recorded", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-6, 3)), // Leave room for title and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load refreshes the entries from the store.
func (m *BrowserModel) load() {
	if m.store == nil {
		m.entries = nil
		m.updateTableRows()
		return
	}

	entries, err := m.store.ListReplays(m.order, maxListedReplays)
	m.err = err
	if err != nil {
		entries = nil
	}
	m.entries = entries
	m.updateTableRows()
}

// updateTableRows updates the table with the current entries.
func (m *BrowserModel) updateTableRows() {
	now := m.now()
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			shortID(e.ID),
			humanize.Comma(int64(e.Score)),
			fmt.Sprintf("%d", e.Level),
			humanize.Comma(int64(e.Frames)),
			e.Phase,
			humanize.RelTime(e.CreatedAt, now, "ago", "from now"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the browser model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Watch):
			if e, ok := m.current(); ok {
				m.selected = e.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Order):
			if m.order == storage.OrderRecent {
				m.order = storage.OrderScore
			} else {
				m.order = storage.OrderRecent
			}
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if e, ok := m.current(); ok && m.store != nil {
				m.err = m.store.DeleteReplay(e.ID)
				if m.err == nil {
					m.load()
				}
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BrowserModel) current() (storage.ReplayEntry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return storage.ReplayEntry{}, false
	}
	return m.entries[i], true
}

// View renders the browser.
func (m BrowserModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "REPLAYS - recent"
	if m.order == storage.OrderScore {
		title = "REPLAYS - best"
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m BrowserModel) renderTableContent() string {
	if len(m.entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No replays recorded yet.\nRun `jumper play --record` to keep one.")
	}
	return m.table.View()
}

// Selected returns the id picked for watching, if any.
func (m BrowserModel) Selected() string {
	return m.selected
}

// RunBrowser runs the replay browser. It returns the id of the replay to
// watch, or "" when the user quit.
func RunBrowser(store ReplayStore, width, height int) (string, error) {
	p := tea.NewProgram(NewBrowserModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(BrowserModel)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
