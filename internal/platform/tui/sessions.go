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

	"github.com/vovakirdan/framehost/internal/registry"
	"github.com/vovakirdan/framehost/internal/storage"
)

// Sessions browser layout constants
const (
	maxSessions = 200 // Max sessions to load per tab
	allEngines  = ""  // Tab showing every engine
)

// SessionsKeyMap defines the key bindings for the sessions browser.
type SessionsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SessionsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k SessionsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultSessionsKeyMap returns default key bindings.
func DefaultSessionsKeyMap() SessionsKeyMap {
	return SessionsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next engine"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev engine"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SessionsModel is the Bubble Tea model for browsing recorded sessions.
type SessionsModel struct {
	tabs      []string // engine ids, allEngines first
	tab       int
	store     *storage.Store
	sessions  []storage.Session
	summary   *storage.EngineStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      SessionsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewSessionsModel creates a sessions browser opened on engineID, or on
// every engine when engineID is empty.
func NewSessionsModel(store *storage.Store, engineID string, width, height int) SessionsModel {
	tabs := []string{allEngines}
	for _, e := range registry.List() {
		tabs = append(tabs, e.ID)
	}

	m := SessionsModel{
		tabs:   tabs,
		store:  store,
		keys:   DefaultSessionsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	for i, id := range tabs {
		if id == engineID {
			m.tab = i
		}
	}

	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *SessionsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Started", Width: 14},
		{Title: "Engine", Width: 10},
		{Title: "User", Width: 10},
		{Title: "Time", Width: 8},
		{Title: "Frames", Width: 8},
		{Title: "Status", Width: 11},
		{Title: "Title", Width: 20},
	}

	// Give the title column whatever space is left
	used := 0
	for _, c := range columns[:len(columns)-1] {
		used += c.Width + 2
	}
	if rest := m.width - 6 - used; rest > 20 {
		columns[len(columns)-1].Width = min(rest, 48)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, summary and help
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

// load reads the sessions for the current tab.
func (m *SessionsModel) load() {
	m.sessions, m.summary, m.loadErr = nil, nil, nil
	if m.store != nil {
		engineID := m.tabs[m.tab]
		m.sessions, m.loadErr = m.store.RecentSessions(engineID, maxSessions)
		if m.loadErr == nil && engineID != allEngines {
			m.summary, m.loadErr = m.store.EngineSummary(engineID)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded sessions.
func (m *SessionsModel) updateTableRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		user := s.User
		if user == "" {
			user = "local"
		}
		rows[i] = table.Row{
			s.StartedAt.Format("Jan 02 15:04"),
			s.EngineID,
			user,
			formatDuration(s.Duration),
			fmt.Sprintf("%d", s.Frames),
			s.Status,
			s.LastTitle,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d >= time.Hour {
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the sessions model.
func (m SessionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the sessions browser.
func (m SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % len(m.tabs)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab - 1 + len(m.tabs)) % len(m.tabs)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the sessions browser.
func (m SessionsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder

	b.WriteString(centerText(titleStyle.Render("SESSIONS"), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.tabs))
	for i, id := range m.tabs {
		name := id
		if name == allEngines {
			name = "all"
		}
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = dimStyle.Render(" " + name + " ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	if m.summary != nil && m.summary.Sessions > 0 {
		line := fmt.Sprintf("%d sessions  |  %d ticks  |  %d frames  |  %s played  |  last %s",
			m.summary.Sessions, m.summary.TotalTicks, m.summary.TotalFrames,
			formatDuration(m.summary.TotalDuration), m.summary.LastPlayed.Format("Jan 02 15:04"))
		b.WriteString(centerText(dimStyle.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString(boxStyle.Render(m.renderTableContent()))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an explanatory message.
func (m SessionsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Session storage is unavailable.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load sessions:\n" + m.loadErr.Error())
	case len(m.sessions) == 0:
		return emptyStyle.Render("No sessions recorded yet.\nRun an engine to record one!")
	}
	return m.table.View()
}

// Tab returns the engine id of the current tab, empty for all engines.
func (m SessionsModel) Tab() string {
	return m.tabs[m.tab]
}

// IsGoingBack returns true if user wants to go back to the picker.
func (m SessionsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m SessionsModel) IsQuitting() bool {
	return m.quitting
}

// RunSessions runs the sessions browser.
// Returns true if user wants to go back to the picker, false if quitting.
func RunSessions(store *storage.Store, engineID string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewSessionsModel(store, engineID, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(SessionsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
