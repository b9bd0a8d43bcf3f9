package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/badski/internal/config"
	"github.com/vovakirdan/badski/internal/games/ski"
	"github.com/vovakirdan/badski/internal/storage"
)

// Purchaser is the part of the store the shop needs.
type Purchaser interface {
	LoadProfile() (ski.Profile, error)
	Purchase(kind string, cfg config.UpgradeConfig) (ski.Profile, error)
}

var _ Purchaser = (*storage.Store)(nil)

// ShopKeyMap defines the key bindings for the upgrade shop.
type ShopKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Buy  key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ShopKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Buy, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ShopKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Buy}, {k.Back, k.Quit}}
}

// DefaultShopKeyMap returns default key bindings.
func DefaultShopKeyMap() ShopKeyMap {
	return ShopKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Buy: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "buy"),
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

// upgradeLabels names the upgrade kinds for display.
var upgradeLabels = map[string]string{
	config.UpgradeSpeed:     "Top speed",
	config.UpgradeJump:      "Jump length",
	config.UpgradeGoodSpawn: "Good luck",
	config.UpgradeBadSpawn:  "Less bad luck",
	config.UpgradeRocket:    "Rocket",
	config.UpgradeExtraLife: "Shield",
	config.UpgradeGhost:     "Ghost start",
}

// ShopModel is the Bubble Tea model for buying upgrades with points.
type ShopModel struct {
	store     Purchaser
	cfg       config.UpgradeConfig
	profile   ski.Profile
	table     table.Model
	help      help.Model
	keys      ShopKeyMap
	message   string
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewShopModel creates a shop over store using cfg for prices and limits.
func NewShopModel(store Purchaser, cfg config.UpgradeConfig, width, height int) ShopModel {
	m := ShopModel{
		store:  store,
		cfg:    cfg,
		help:   help.New(),
		keys:   DefaultShopKeyMap(),
		width:  width,
		height: height,
	}
	if p, err := store.LoadProfile(); err != nil {
		m.message = err.Error()
	} else {
		m.profile = p
	}

	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "Upgrade", Width: 16},
			{Title: "Have", Width: 8},
			{Title: "Price", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(len(config.UpgradeKinds)+1),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	m.table.SetStyles(s)
	m.updateRows()
	return m
}

// UpgradeLabel returns the display name of an upgrade kind.
func UpgradeLabel(kind string) string {
	if l, ok := upgradeLabels[kind]; ok {
		return l
	}
	return kind
}

// UpgradeStatus describes the current level or stock of kind.
func UpgradeStatus(u config.Upgrades, cfg config.UpgradeConfig, kind string) string {
	switch kind {
	case config.UpgradeSpeed:
		return fmt.Sprintf("%d/%d", u.SpeedLevel, cfg.MaxSpeedLevel)
	case config.UpgradeJump:
		return fmt.Sprintf("%d/%d", u.JumpLevel, cfg.MaxJumpLevel)
	case config.UpgradeGoodSpawn:
		return fmt.Sprintf("%d/%d", u.GoodSpawnLevel, cfg.MaxGoodSpawnLevel)
	case config.UpgradeBadSpawn:
		return fmt.Sprintf("%d/%d", u.BadSpawnLevel, cfg.MaxBadSpawnLevel)
	case config.UpgradeRocket:
		return fmt.Sprintf("x%d", u.Rockets)
	case config.UpgradeExtraLife:
		return fmt.Sprintf("x%d", u.ExtraLives)
	case config.UpgradeGhost:
		if u.StartGhostSeconds > 0 {
			return fmt.Sprintf("%ds", u.StartGhostSeconds)
		}
		return "-"
	}
	return ""
}

func (m *ShopModel) updateRows() {
	rows := make([]table.Row, len(config.UpgradeKinds))
	for i, kind := range config.UpgradeKinds {
		price := "max"
		if cost, ok := m.profile.Upgrades.Cost(kind, m.cfg); ok {
			price = fmt.Sprintf("%d", cost)
		}
		rows[i] = table.Row{UpgradeLabel(kind), UpgradeStatus(m.profile.Upgrades, m.cfg, kind), price}
	}
	m.table.SetRows(rows)
}

// Init initializes the shop.
func (m ShopModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the shop.
func (m ShopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case key.Matches(msg, m.keys.Buy):
			m.buy(config.UpgradeKinds[m.table.Cursor()])
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ShopModel) buy(kind string) {
	p, err := m.store.Purchase(kind, m.cfg)
	switch {
	case errors.Is(err, storage.ErrNotEnoughPoints):
		m.message = "Not enough points."
	case errors.Is(err, storage.ErrMaxLevel):
		m.message = "Already maxed out."
	case err != nil:
		m.message = err.Error()
	default:
		m.profile = p
		m.message = fmt.Sprintf("Bought %s.", UpgradeLabel(kind))
		m.updateRows()
	}
}

// View renders the shop.
func (m ShopModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("UPGRADES", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Level %d  |  %d pts", m.profile.Level(), m.profile.Points), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n")

	if m.message != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(m.message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))

	return b.String()
}

// Profile returns the profile as last loaded or bought.
func (m ShopModel) Profile() ski.Profile {
	return m.profile
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ShopModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ShopModel) IsQuitting() bool {
	return m.quitting
}

// RunShop runs the upgrade shop.
// Returns true if user wants to go back to menu, false if quitting.
func RunShop(store *storage.Store, cfg config.UpgradeConfig, width, height int) (goBack bool, err error) {
	model := NewShopModel(store, cfg, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ShopModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
