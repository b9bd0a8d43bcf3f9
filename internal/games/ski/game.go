package ski

import (
	"github.com/vovakirdan/badski/internal/config"
	"github.com/vovakirdan/badski/internal/core"
	"github.com/vovakirdan/badski/internal/registry"
)

// Profile is the persisted player state a run starts from.
type Profile struct {
	Upgrades         config.Upgrades
	TotalEarned      int
	Points           int
	BestFreeDistance float64
}

// Level returns the player level derived from lifetime points.
func (p Profile) Level() int {
	return config.PlayerLevel(p.TotalEarned)
}

// Store loads the profile and persists run results.
type Store interface {
	Reporter
	LoadProfile() (Profile, error)
}

// PixelsPerColumn is the lateral world width of one terminal column.
const PixelsPerColumn = 8.0

// MetersPerRow is the along-track length of one terminal row.
const MetersPerRow = 2.5

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// missionTheme pins mission generation to one theme; empty picks randomly.
var missionTheme string

// SetMissionTheme selects the scenario theme for games created afterwards.
func SetMissionTheme(id string) {
	missionTheme = id
}

// Themes returns the scenario themes available for missions.
func Themes() []config.ScenarioTheme {
	_, _, sc := LoadConfig()
	return sc.Themes
}

// LoadConfig loads tuning, catalog and themes, falling back to the
// embedded defaults for anything that fails to load.
func LoadConfig() (config.SkiConfig, config.Catalog, config.Scenarios) {
	cfg, err := config.LoadSki(configPath)
	if err != nil {
		cfg = config.DefaultSkiConfig()
	}
	cat, err := config.LoadCatalog("")
	if err != nil {
		cat = config.DefaultCatalog()
	}
	themes, err := config.LoadScenarios("")
	if err != nil {
		themes = config.DefaultScenarios()
	}
	return cfg, cat, themes
}

// Game adapts a Run to the registry.Game interface.
type Game struct {
	id          string
	title       string
	description string
	mode        Mode
	theme       string

	run     *Run
	store   Store
	profile Profile
	runtime core.RuntimeConfig
	paused  bool
	err     error
}

// New creates a game for the given mode.
func New(mode Mode) *Game {
	g := &Game{mode: mode, id: mode.GameID(), theme: missionTheme}
	switch mode {
	case ModeFree:
		g.title = "Free Ski"
		g.description = "Endless procedural slope, chase your best distance"
	case ModeRoadTest:
		g.title = "Road Test"
		g.description = "Endless slope where crashes only knock you down"
	default:
		g.title = "Ski Mission"
		g.description = "Reach the mission distance before you fall"
	}
	return g
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string { return g.id }

// Title returns the display name for this mode.
func (g *Game) Title() string { return g.title }

// Description returns a one-line summary.
func (g *Game) Description() string { return g.description }

// SetTheme pins this game's missions to one scenario theme.
func (g *Game) SetTheme(id string) { g.theme = id }

// Bind attaches a store used for the profile and for run results.
func (g *Game) Bind(s Store) {
	g.store = s
	if g.run != nil {
		g.run.SetReporter(s)
	}
}

// Reset starts a fresh run, reporting any run still in progress.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if g.run != nil {
		g.run.Exit()
	}
	g.runtime = runtime
	g.paused = false

	g.profile = Profile{}
	if g.store != nil {
		p, err := g.store.LoadProfile()
		if err != nil {
			g.err = err
		} else {
			g.profile = p
		}
	}

	cfg, cat, themes := LoadConfig()
	var rep Reporter
	if g.store != nil {
		rep = g.store
	}
	g.run = NewRun(cfg, cat, themes.Themes, rep)
	g.run.Start(Setup{
		Mode:           g.mode,
		Upgrades:       g.profile.Upgrades,
		PlayerLevel:    g.profile.Level(),
		ThemeID:        g.theme,
		Seed:           runtime.Seed,
		TickRate:       runtime.TickRate,
		ViewportHalfPx: viewportHalf(runtime),
	})
}

// viewportHalf is half the screen width in world pixels.
func viewportHalf(runtime core.RuntimeConfig) float64 {
	return float64(runtime.ScreenW) / 2 * PixelsPerColumn
}

// Resize follows a terminal resize without restarting the run.
func (g *Game) Resize(runtime core.RuntimeConfig) {
	g.runtime.ScreenW = runtime.ScreenW
	g.runtime.ScreenH = runtime.ScreenH
	if g.run != nil {
		g.run.SetViewport(viewportHalf(runtime))
	}
}

// Step advances the run by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.run == nil {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && g.run.Phase() == PhaseRunning {
		g.paused = !g.paused
		if g.paused {
			g.run.ReleaseControls()
		}
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}
	g.run.Step(in)
	return core.StepResult{State: g.State()}
}

// Exit reports the current run as abandoned.
func (g *Game) Exit() {
	if g.run != nil {
		g.run.Exit()
	}
}

// Run returns the underlying run controller.
func (g *Game) Run() *Run { return g.run }

// Profile returns the profile the current run started from.
func (g *Game) Profile() Profile { return g.profile }

// Err returns the first profile or reporting error seen, if any.
func (g *Game) Err() error {
	if g.err != nil {
		return g.err
	}
	if g.run != nil {
		return g.run.Err()
	}
	return nil
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.run == nil {
		return core.GameState{Paused: g.paused}
	}
	st := g.run.GameState()
	st.Paused = g.paused
	return st
}

// Register the modes with the registry
func init() {
	for _, mode := range []Mode{ModeMission, ModeFree, ModeRoadTest} {
		mode := mode
		registry.Register(mode.GameID(), func() registry.Game {
			return New(mode)
		})
	}
}
