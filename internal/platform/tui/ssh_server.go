package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/badski/internal/core"
	"github.com/vovakirdan/badski/internal/games/ski"
	"github.com/vovakirdan/badski/internal/registry"
	"github.com/vovakirdan/badski/internal/storage"
)

// shutdownGrace bounds how long open sessions get to finish on shutdown.
const shutdownGrace = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Address string // host:port, e.g. ":23234"

	// HostKeyPath defaults to ~/.badski/host_key, generated on first start.
	HostKeyPath string

	DBPath      string
	IdleTimeout time.Duration
	TickRate    int
}

// DefaultSSHServerConfig returns the settings `badski serve` starts with.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.badski/badski.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    core.DefaultTickRate,
	}
}

// SSHServer serves the badski session over SSH. Every connection gets a
// SessionModel; all of them share one store.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int32
}

// resolveHostKey returns the host key path and makes sure its directory
// exists. wish generates the key itself when the file is missing.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".badski", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("create host key directory: %w", err)
	}
	return path, nil
}

// NewSSHServer builds the server. A database that cannot be opened is
// logged and the server runs without persistence.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultTickRate
	}
	srv := &SSHServer{
		config: cfg,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "badski-ssh",
		}),
	}

	hostKey, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	if store, err := storage.Open(cfg.DBPath); err != nil {
		srv.logger.Warn("running without a database", "path", cfg.DBPath, "error", err)
	} else {
		srv.store = store
	}

	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKey),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionLog,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("create ssh server: %w", err)
	}
	return srv, nil
}

// teaHandler starts a SessionModel sized to the client's terminal.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}.Normalized()

	model := NewSessionModel(s.store, cfg, sess.User(), s.logger)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// sessionLog logs connects and disconnects with the session length.
func (s *SSHServer) sessionLog(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		logger := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("session started", "active", s.active.Add(1))
		defer func() {
			logger.Info("session ended",
				"duration", time.Since(start).Round(time.Second),
				"active", s.active.Add(-1))
		}()
		next(sess)
	}
}

// Serve accepts connections until ctx is done or the listener fails,
// then shuts down.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh server: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down", "active", s.active.Load())
		return s.Shutdown()
	}
}

// ListenAndServe serves until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Shutdown waits up to shutdownGrace for sessions to end, then closes
// the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the view a session is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenMission
	screenShop
	screenScores
	screenGame
)

// SessionModel manages the full session flow: menu -> game -> menu,
// with the mission picker, shop and scoreboard reachable from the menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	reporter ski.Store
	config   core.RuntimeConfig
	username string
	screen   sessionScreen

	menu    MenuModel
	mission MissionModel
	shop    ShopModel
	scores  ScoreboardModel
	game    *GameModel

	quitting bool
}

// NewSessionModel creates a new session model. Runs are logged through
// logger and saved to store when it is not nil.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	var next ski.Store
	if store != nil {
		next = store
	}
	if logger == nil {
		logger = log.Default()
	}

	return SessionModel{
		store:    store,
		reporter: NewSessionReporter(next, logger, username),
		config:   cfg,
		username: username,
		menu:     NewMenuModel(store, cfg),
	}
}

// NewSessionReporter logs a session's runs with the user attached.
func NewSessionReporter(next ski.Store, logger *log.Logger, username string) *storage.LogReporter {
	return storage.NewLogReporter(next, logger.With("user", username))
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenMission:
		return m.updateMission(msg)
	case screenShop:
		return m.updateShop(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// toMenu returns to a fresh menu so profile changes show up.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.game = nil
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}
	m.config = m.menu.Config()

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()

	case m.menu.WantsShop():
		m.screen = screenShop
		cfg, _, _ := ski.LoadConfig()
		m.shop = NewShopModel(m.store, cfg.Upgrades, m.config.ScreenW, m.config.ScreenH)
		return m, m.shop.Init()

	case m.menu.Selected() != nil:
		id := m.menu.Selected().GameID
		if id == ski.ModeMission.GameID() {
			m.screen = screenMission
			m.mission = NewMissionModel(ski.Themes(), m.config.ScreenW, m.config.ScreenH)
			return m, m.mission.Init()
		}
		return m.startGame(id, "")
	}

	return m, cmd
}

func (m SessionModel) updateMission(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.mission.Update(msg)
	if mm, ok := newModel.(MissionModel); ok {
		m.mission = mm
	}

	switch {
	case m.mission.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.mission.WantsBack():
		return m.toMenu()
	case m.mission.Selected() != nil:
		return m.startGame(ski.ModeMission.GameID(), m.mission.Selected().ThemeID)
	}
	return m, cmd
}

func (m SessionModel) updateShop(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.shop.Update(msg)
	if sm, ok := newModel.(ShopModel); ok {
		m.shop = sm
	}

	switch {
	case m.shop.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.shop.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sm, ok := newModel.(ScoreboardModel); ok {
		m.scores = sm
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// startGame creates the mode and switches the session into it.
func (m SessionModel) startGame(id, themeID string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		// Shouldn't happen since menu only shows registered modes
		return m.toMenu()
	}
	if sg, ok := game.(*ski.Game); ok {
		sg.SetTheme(themeID)
	}
	bindStore(game, m.reporter)

	m.config.Seed = time.Now().UnixNano()
	gameModel := NewGameModel(game, m.config)
	m.game = &gameModel
	m.screen = screenGame
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		return m.toMenu()
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		if m.game != nil {
			return m.game.View()
		}
	case screenMission:
		return m.mission.View()
	case screenShop:
		return m.shop.View()
	case screenScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// GameModel wraps a run with back-to-menu capability.
type GameModel struct {
	Model
	backToMenu bool
}

// NewGameModel creates a new game model. Persistence is bound by the
// caller.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig) GameModel {
	return GameModel{Model: NewModel(game, nil, cfg)}
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		// B or Esc leave once the run is over or paused
		if m.keyMapper.MapKeyToMenuAction(km) == MenuActionBack &&
			(m.gameState.GameOver || m.gameState.Paused) {
			exitGame(m.game)
			m.backToMenu = true
			return m, nil
		}
	}

	newModel, cmd := m.Model.Update(msg)
	if inner, ok := newModel.(Model); ok {
		m.Model = inner
	}
	return m, cmd
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
