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

	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the outcome sidebar
	sidebarWidth       = 22  // Width of the outcome sidebar
	maxRows            = 100 // Max rows to load per view
)

// scoreboardView selects which table the scoreboard shows.
type scoreboardView int

const (
	viewTopScores scoreboardView = iota
	viewRecent
	viewCount
)

func (v scoreboardView) title() string {
	if v == viewRecent {
		return "RECENT SESSIONS"
	}
	return "HIGH SCORES"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	PrevView key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "switch view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab", "prev view"),
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

// ScoreboardModel shows the best scores and the latest finished sessions of
// one game.
type ScoreboardModel struct {
	gameID      string
	store       *storage.Store
	view        scoreboardView
	scores      []storage.ScoreEntry
	results     []storage.SessionResult
	outcomes    map[string]int
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard for gameID.
func NewScoreboardModel(store *storage.Store, gameID string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		gameID:      gameID,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// load reads both views and the outcome counts from the store.
func (m *ScoreboardModel) load() {
	m.scores, m.results, m.outcomes = nil, nil, nil
	if m.store == nil {
		return
	}
	if scores, err := m.store.TopScores(m.gameID, maxRows); err == nil {
		m.scores = scores
	}
	if results, err := m.store.RecentSessionResults(m.gameID, maxRows); err == nil {
		m.results = results
	}
	if counts, err := m.store.OutcomeCounts(m.gameID); err == nil {
		m.outcomes = counts
	}
}

// columns returns the table columns for the current view.
func (m *ScoreboardModel) columns() []table.Column {
	tableWidth := m.width - 6
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}

	if m.view == viewRecent {
		cols := []table.Column{
			{Title: "Date", Width: 13},
			{Title: "Player", Width: 10},
			{Title: "Outcome", Width: 8},
			{Title: "Bricks", Width: 7},
			{Title: "Time", Width: 7},
		}
		if spare := tableWidth - 55; spare > 0 {
			cols[1].Width += min(spare, 10)
		}
		return cols
	}

	cols := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: 13},
	}
	if tableWidth > 40 {
		cols[1].Width = 12
		cols[2].Width = min(tableWidth-22, 20)
	}
	return cols
}

// createTable creates a table sized for the terminal.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
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

// updateTableRows fills the table from the current view.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row
	if m.view == viewRecent {
		rows = make([]table.Row, len(m.results))
		for i, r := range m.results {
			rows[i] = table.Row{
				r.CreatedAt.Format("Jan 02 15:04"),
				r.Player,
				r.Outcome,
				fmt.Sprintf("%d/%d", r.BricksCleared, r.BricksTotal),
				formatTicks(r.Ticks),
			}
		}
	} else {
		rows = make([]table.Row, len(m.scores))
		for i, s := range m.scores {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s.Score),
				s.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	}

	// Columns must change before rows so that row widths match
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatTicks renders a frame count at 60 fps as m:ss.
func formatTicks(ticks int) string {
	d := time.Duration(ticks) * time.Second / 60
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextView):
			m.view = (m.view + 1) % viewCount
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.PrevView):
			m.view = (m.view + viewCount - 1) % viewCount
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString(headingStyle.Render(centerText(m.view.title(), m.width)))
	b.WriteString("\n\n")

	tableRendered := panelStyle.Render(m.renderTableContent())
	if m.showSidebar {
		sidebar := panelStyle.Width(sidebarWidth).Render(m.renderOutcomes())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", tableRendered))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(tableRendered)
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderOutcomes renders the won/lost totals.
func (m ScoreboardModel) renderOutcomes() string {
	var sb strings.Builder
	sb.WriteString("Sessions\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	won, lost := m.outcomes["won"], m.outcomes["lost"]
	fmt.Fprintf(&sb, "Won:   %d\n", won)
	fmt.Fprintf(&sb, "Lost:  %d\n", lost)
	if total := won + lost; total > 0 {
		fmt.Fprintf(&sb, "Rate:  %d%%\n", won*100/total)
	}
	return sb.String()
}

// renderTabs renders the view switcher for narrow terminals.
func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, viewCount)
	for v := range viewCount {
		if v == m.view {
			tabs[v] = activeTabStyle.Render(v.title())
		} else {
			tabs[v] = hintStyle.Render(" " + v.title() + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// renderTableContent renders the table or an empty-state message.
func (m ScoreboardModel) renderTableContent() string {
	empty := len(m.scores) == 0
	if m.view == viewRecent {
		empty = len(m.results) == 0
	}
	if !empty {
		return m.table.View()
	}

	msg := "No scores yet!\n\nClear some bricks to get on the board."
	if m.view == viewRecent {
		msg = "No sessions yet!\n\nFinished games show up here."
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Width(40).
		Align(lipgloss.Center).
		Render(msg)
}

// IsQuitting returns true if user requested to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// GoingBack returns true if user requested to go back.
func (m ScoreboardModel) GoingBack() bool {
	return m.goingBack
}
