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

	"github.com/vovakirdan/badski/internal/games/ski"
	"github.com/vovakirdan/badski/internal/registry"
	"github.com/vovakirdan/badski/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForPanel = 76  // Minimum width to show the stats panel
	panelWidth       = 26  // Width of the stats panel
	maxScores        = 100 // Max scores to load
	maxRuns          = 50  // Max history rows to load
)

// scoreSource is what the scoreboard reads from the store.
type scoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	RecentRuns(gameID string, limit int) ([]storage.RunRecord, error)
	Stats(gameID string) (storage.ModeStats, error)
	LoadProfile() (ski.Profile, error)
}

var _ scoreSource = (*storage.Store)(nil)

// boardView selects what the table lists.
type boardView int

const (
	viewScores boardView = iota
	viewRuns
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Toggle   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.Toggle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Toggle, k.Back, k.Quit},
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
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "scores/runs"),
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

// ScoreboardModel shows high scores, run history and per-mode statistics.
type ScoreboardModel struct {
	modes   []registry.GameInfo
	current int
	source  scoreSource
	view    boardView

	scores  []storage.ScoreEntry
	runs    []storage.RunRecord
	stats   storage.ModeStats
	profile ski.Profile

	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	showPanel bool
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard over store, which may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	var src scoreSource
	if store != nil {
		src = store
	}
	return newScoreboard(src, width, height)
}

func newScoreboard(src scoreSource, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:     registry.List(),
		source:    src,
		keys:      DefaultScoreboardKeyMap(),
		help:      help.New(),
		width:     width,
		height:    height,
		showPanel: width >= minWidthForPanel,
	}
	if src != nil {
		if p, err := src.LoadProfile(); err == nil {
			m.profile = p
		}
	}
	m.table = m.createTable()
	m.load()
	return m
}

// modeID returns the registry id of the selected mode.
func (m ScoreboardModel) modeID() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.current].ID
}

func (m *ScoreboardModel) createTable() table.Model {
	var columns []table.Column
	if m.view == viewRuns {
		columns = []table.Column{
			{Title: "Result", Width: 8},
			{Title: "Score", Width: 8},
			{Title: "Dist", Width: 7},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: 12},
		}
	} else {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Date", Width: 18},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Leave room for title, tabs and help
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

// load fetches scores, history and stats for the selected mode.
func (m *ScoreboardModel) load() {
	m.scores, m.runs, m.stats = nil, nil, storage.ModeStats{}
	id := m.modeID()
	if m.source != nil && id != "" {
		if scores, err := m.source.TopScores(id, maxScores); err == nil {
			m.scores = scores
		}
		if runs, err := m.source.RecentRuns(id, maxRuns); err == nil {
			m.runs = runs
		}
		if st, err := m.source.Stats(id); err == nil {
			m.stats = st
		}
	}
	m.updateRows()
}

// runResult labels how a run ended.
func runResult(r storage.RunRecord) string {
	switch {
	case r.Won:
		return "won"
	case r.Exited:
		return "left"
	default:
		return "crashed"
	}
}

func (m *ScoreboardModel) updateRows() {
	var rows []table.Row
	if m.view == viewRuns {
		rows = make([]table.Row, len(m.runs))
		for i, r := range m.runs {
			rows[i] = table.Row{
				runResult(r),
				fmt.Sprintf("%d", r.Score),
				fmt.Sprintf("%.0fm", r.Distance),
				r.Duration.Round(time.Second).String(),
				r.CreatedAt.Format("Jan 02 15:04"),
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
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycle(step int) {
	if len(m.modes) == 0 {
		return
	}
	m.current = (m.current + step + len(m.modes)) % len(m.modes)
	m.load()
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
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.cycle(-1)
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.table = m.createTable()
			m.updateRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showPanel = m.width >= minWidthForPanel
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).Padding(0, 1)
	boardBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if m.view == viewRuns {
		title = "RECENT RUNS"
	}
	b.WriteString(boardTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	body := boardBoxStyle.Render(m.renderTableContent())
	if m.showPanel {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", m.renderPanel())
	}
	b.WriteString(body)

	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.current {
			tabs[i] = boardActiveTab.Render(g.Title)
		} else {
			tabs[i] = boardTabStyle.Render(g.Title)
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 && len(m.modes) > 0 {
		line = fmt.Sprintf("< %s >", m.modes[m.current].Title)
	}
	return line
}

// renderPanel shows aggregate statistics for the mode and the profile.
func (m ScoreboardModel) renderPanel() string {
	st := m.stats
	lines := []string{
		boardTitleStyle.Render("Stats"),
		fmt.Sprintf("Runs         %d", st.Runs),
	}
	if m.modeID() == ski.ModeMission.GameID() {
		lines = append(lines, fmt.Sprintf("Won          %d", st.Wins))
	}
	lines = append(lines,
		fmt.Sprintf("Crashed      %d", st.Crashes),
		fmt.Sprintf("Left         %d", st.Abandoned),
		fmt.Sprintf("Best score   %d", st.BestScore),
		fmt.Sprintf("Best dist    %.0fm", st.BestDistance),
		fmt.Sprintf("Avg dist     %.0fm", st.AvgDistance()),
		fmt.Sprintf("On snow      %s", st.TotalTime.Round(time.Second)),
		fmt.Sprintf("Close calls  %d", st.CloseCalls),
		"",
		boardTitleStyle.Render("Profile"),
		fmt.Sprintf("Level        %d", m.profile.Level()),
		fmt.Sprintf("Points       %d", m.profile.Points),
	)
	if m.profile.BestFreeDistance > 0 {
		lines = append(lines, fmt.Sprintf("Free best    %.0fm", m.profile.BestFreeDistance))
	}
	return boardBoxStyle.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := boardDimStyle.Italic(true).Padding(2, 4)
	if m.view == viewRuns && len(m.runs) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nHit the slope first!")
	}
	if m.view == viewScores && len(m.scores) == 0 {
		return emptyStyle.Render("No scores recorded yet.\nFinish a run to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
