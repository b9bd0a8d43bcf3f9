package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/badski/internal/config"
	"github.com/vovakirdan/badski/internal/core"
	"github.com/vovakirdan/badski/internal/games/ski"
	"github.com/vovakirdan/badski/internal/registry"
	"github.com/vovakirdan/badski/internal/storage"
)

// MenuItem represents a selectable mode in the menu.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	Best        int // best score, 0 when none
}

// menuChoice is how the menu was left.
type menuChoice int

const (
	choiceNone menuChoice = iota
	choicePlay
	choiceScoreboard
	choiceShop
	choiceQuit
)

// MenuModel is the Bubble Tea model for the mode picker menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	store     *storage.Store
	profile   *ski.Profile
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	choice    menuChoice
}

// NewMenuModel creates a new menu model. store may be nil, in which case
// the profile card and the shop are hidden.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	for _, g := range registry.List() {
		item := MenuItem{GameID: g.ID, Title: g.Title, Description: g.Description}
		if store != nil {
			if best, err := store.HighScore(g.ID); err == nil {
				item.Best = best
			}
		}
		m.items = append(m.items, item)
	}
	if store != nil {
		if p, err := store.LoadProfile(); err == nil {
			m.profile = &p
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.choice = choiceQuit
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
		return m, nil
	case MenuActionDown:
		m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
		return m, nil
	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		m.choice = choicePlay
	case MenuActionScoreboard:
		m.choice = choiceScoreboard
	case MenuActionShop:
		if m.store == nil {
			return m, nil
		}
		m.choice = choiceShop
	default:
		return m, nil
	}
	return m, tea.Quit
}

var (
	menuBannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("25")).Padding(0, 2)
	menuCardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// levelBar draws progress from the current level threshold to the next.
func levelBar(p ski.Profile, width int) string {
	level := p.Level()
	lo := config.TotalEarnedForLevel(level)
	hi := config.TotalEarnedForLevel(level + 1)
	filled := 0
	if hi > lo {
		filled = core.Clamp((p.TotalEarned-lo)*width/(hi-lo), 0, width)
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func (m MenuModel) renderProfile() string {
	p := *m.profile
	lines := []string{
		fmt.Sprintf("Level %d  %s  %d pts", p.Level(), levelBar(p, 16), p.Points),
		fmt.Sprintf("Rockets %d   Shields %d   Speed lv %d   Jump lv %d",
			p.Upgrades.Rockets, p.Upgrades.ExtraLives, p.Upgrades.SpeedLevel, p.Upgrades.JumpLevel),
	}
	return menuCardStyle.Render(strings.Join(lines, "\n"))
}

func (m MenuModel) renderItems() string {
	titleW := 0
	for _, it := range m.items {
		titleW = max(titleW, len(it.Title))
	}

	lines := make([]string, len(m.items))
	for i, it := range m.items {
		best := ""
		if it.Best > 0 {
			best = fmt.Sprintf("best %d", it.Best)
		}
		line := fmt.Sprintf("%-*s  %10s", titleW, it.Title, best)
		if i == m.cursor {
			lines[i] = menuCursorStyle.Render("> " + line)
		} else {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == choiceQuit {
		return ""
	}

	blocks := []string{"", menuBannerStyle.Render("B A D   S K I"), ""}
	if m.profile != nil {
		blocks = append(blocks, m.renderProfile(), "")
	}
	blocks = append(blocks, m.renderItems())
	if len(m.items) > 0 && m.items[m.cursor].Description != "" {
		blocks = append(blocks, "", menuDimStyle.Render(m.items[m.cursor].Description))
	}

	controls := "Up/Down: Navigate  |  Enter: Ski  |  Tab: Scores"
	if m.store != nil {
		controls += "  |  U: Upgrades"
	}
	blocks = append(blocks, "", menuDimStyle.Render(controls+"  |  Q: Quit"))

	body := lipgloss.JoinVertical(lipgloss.Center, blocks...)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	if m.choice != choicePlay || len(m.items) == 0 {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.choice == choiceQuit
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.choice == choiceScoreboard
}

// WantsShop returns true if user requested the upgrade shop.
func (m MenuModel) WantsShop() bool {
	return m.choice == choiceShop
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	WantsShop       bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch m.choice {
	case choiceScoreboard:
		result.WantsScoreboard = true
	case choiceShop:
		result.WantsShop = true
	case choicePlay:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}
