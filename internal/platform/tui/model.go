package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/badski/internal/core"
	"github.com/vovakirdan/badski/internal/games/ski"
	"github.com/vovakirdan/badski/internal/registry"
	"github.com/vovakirdan/badski/internal/storage"
)

// storeBinder is implemented by modes that persist their own results.
type storeBinder interface {
	Bind(s ski.Store)
}

// resizer is implemented by modes whose live run depends on the viewport.
type resizer interface {
	Resize(cfg core.RuntimeConfig)
}

// exiter is implemented by modes that report abandoned runs.
type exiter interface {
	Exit()
}

// bindStore attaches s to game when both support it.
func bindStore(game registry.Game, s ski.Store) {
	if s == nil {
		return
	}
	if b, ok := game.(storeBinder); ok {
		b.Bind(s)
	}
}

// exitGame reports an unfinished run before the program leaves it.
func exitGame(game registry.Game) {
	if e, ok := game.(exiter); ok {
		e.Exit()
	}
}

// Model is the Bubble Tea model for running a ski mode.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	holds      *HoldTracker
	keyMapper  *KeyMapper
	gameState  core.GameState
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
// A nil store plays without persistence.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	cfg = cfg.Normalized()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if store != nil {
		bindStore(game, store)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		holds:      NewHoldTracker(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		exitGame(m.game)
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case Holdable(action):
		m.holds.Press(action, now, &m.inputFrame)
	case action == core.ActionPause, action == core.ActionBack:
		m.holds.Reset()
		m.inputFrame.Set(core.ActionPause)
	case action == core.ActionRocket:
		m.inputFrame.Set(action)
	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	}

	return m, nil
}

// handleResize processes window resize events. bubbletea sends one right
// after start, so a message that does not change the size is a no-op.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	next := m.config
	next.ScreenW = msg.Width
	next.ScreenH = msg.Height
	next = next.Normalized()
	if next == m.config {
		return m, nil
	}

	m.config = next
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	if r, ok := m.game.(resizer); ok {
		r.Resize(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.holds.Reset()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.inputFrame.Clear()
		return m, tickCmd(m.config)
	}

	m.holds.Tick(now, &m.inputFrame)
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	m.inputFrame.Clear()
	return m, tickCmd(m.config)
}

// screenshotDir is where Ctrl+S drops plain-text captures.
func screenshotDir() string {
	return filepath.Join(os.Getenv("HOME"), ".badski", "screenshots")
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := screenshotDir()
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
