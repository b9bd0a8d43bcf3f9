package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/badski/internal/config"
	"github.com/vovakirdan/badski/internal/core"
)

// MissionSelection holds the user's choice from the mission menu.
type MissionSelection struct {
	ThemeID string // empty = random theme
}

// MissionModel lets users pick the scenario theme for a mission run.
type MissionModel struct {
	themes    []config.ScenarioTheme
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection MissionSelection
	choosing  bool
	quitting  bool
	back      bool
}

// NewMissionModel creates a mission selection model over themes.
func NewMissionModel(themes []config.ScenarioTheme, width, height int) MissionModel {
	return MissionModel{
		themes:    themes,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m MissionModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MissionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m MissionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		// Row 0 is the random pick, then one row per theme
		if m.cursor < len(m.themes) {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		if m.cursor > 0 {
			m.selection = MissionSelection{ThemeID: m.themes[m.cursor-1].ID}
		}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the theme list.
func (m MissionModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("M I S S I O N", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose a slope:", m.width))
	b.WriteString("\n\n")

	rows := make([]string, 0, len(m.themes)+1)
	rows = append(rows, "Surprise me")
	for _, t := range m.themes {
		rows = append(rows, fmt.Sprintf("%-18s %4.0f-%.0f m", t.Title, t.DistanceMinM, t.DistanceMaxM))
	}

	for i, row := range rows {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+row, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m MissionModel) Selected() *MissionSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m MissionModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m MissionModel) WantsBack() bool {
	return m.back
}

// RunMissionSelector runs the theme picker and returns the selection.
// A nil selection means the user backed out or quit.
func RunMissionSelector(themes []config.ScenarioTheme, cfg core.RuntimeConfig) (*MissionSelection, error) {
	model := NewMissionModel(themes, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(MissionModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
