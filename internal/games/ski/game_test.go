package ski

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/badski/internal/config"
	"github.com/vovakirdan/badski/internal/core"
	"github.com/vovakirdan/badski/internal/registry"
)

type fakeStore struct {
	recorder
	profile Profile
	err     error
}

func (f *fakeStore) LoadProfile() (Profile, error) {
	return f.profile, f.err
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{"ski", "ski_free", "ski_roadtest"} {
		if !registry.Exists(id) {
			t.Errorf("mode %q not registered", id)
			continue
		}
		info, _ := registry.Info(id)
		if info.Title == "" || info.Description == "" {
			t.Errorf("mode %q missing metadata: %+v", id, info)
		}
	}
}

func TestGameUsesProfile(t *testing.T) {
	store := &fakeStore{profile: Profile{
		Upgrades:    config.Upgrades{SpeedLevel: 2, Rockets: 2},
		TotalEarned: config.TotalEarnedForLevel(3),
	}}
	g := New(ModeFree)
	g.Bind(store)
	g.Reset(testRuntime())

	s := g.Run().State()
	cfg := g.Run().Config()
	if want := cfg.Upgrades.BaseMaxSpeed + 2*cfg.Upgrades.SpeedPerLevel; s.MaxSpeed != want {
		t.Errorf("MaxSpeed = %v, want %v", s.MaxSpeed, want)
	}
	if s.Rockets != 2 {
		t.Errorf("Rockets = %d, want 2", s.Rockets)
	}
	if got := g.Run().Setup().PlayerLevel; got != 3 {
		t.Errorf("PlayerLevel = %d, want 3", got)
	}

	// 80 columns of 8px leave a 320px half viewport, minus the margin.
	if got, want := g.Run().HalfWidth(), 250.0; got != want {
		t.Errorf("HalfWidth() = %v, want %v", got, want)
	}
}

func TestGameProfileErrorFallsBack(t *testing.T) {
	store := &fakeStore{err: errors.New("db locked")}
	g := New(ModeMission)
	g.Bind(store)
	g.Reset(testRuntime())

	if g.Err() == nil {
		t.Error("Err() should surface the profile error")
	}
	if g.Run() == nil || g.Run().Phase() != PhaseRunning {
		t.Error("run should start with an empty profile")
	}
}

func TestGamePause(t *testing.T) {
	g := New(ModeFree)
	g.Reset(testRuntime())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	now := g.Run().State().Now
	g.Step(core.NewInputFrame())
	if g.Run().State().Now != now {
		t.Error("clock advanced while paused")
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("game should be unpaused")
	}
}

func TestGameResetReportsAbandonedRun(t *testing.T) {
	store := &fakeStore{}
	g := New(ModeFree)
	g.Bind(store)
	g.Reset(testRuntime())
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	g.Reset(testRuntime())

	if len(store.ends) != 1 || !store.ends[0].Exited {
		t.Errorf("ends = %+v, want one exited run", store.ends)
	}
}

func TestGameRender(t *testing.T) {
	g := New(ModeMission)
	g.Reset(testRuntime())
	for i := 0; i < 5; i++ {
		g.Step(core.NewInputFrame())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, "Score:") {
		t.Error("HUD should show the score")
	}
	if !strings.ContainsRune(out, SkierChar) {
		t.Error("skier should be drawn")
	}
	if !strings.ContainsRune(out, EdgeChar) {
		t.Error("slope edges should be drawn")
	}

	g.Run().lose()
	g.Render(screen)
	if !strings.Contains(screen.String(), "WIPEOUT") {
		t.Error("lost run should show the wipeout overlay")
	}
}

func TestShearCols(t *testing.T) {
	tests := []struct {
		deg  float64
		rows int
		want int
	}{
		{0, 10, 0},
		{5, 0, 0},
		{2.5, 10, 1},
		{-5, 10, -2},
		{20, 3, 2},
	}
	for _, tt := range tests {
		if got := shearCols(tt.deg, tt.rows); got != tt.want {
			t.Errorf("shearCols(%v, %d) = %d, want %d", tt.deg, tt.rows, got, tt.want)
		}
	}
}

func firstEdge(screen *core.Screen, y int) int {
	for x := 0; x < screen.Width(); x++ {
		if screen.Get(x, y) == EdgeChar {
			return x
		}
	}
	return -1
}

func TestRenderLeansWithRotation(t *testing.T) {
	g := New(ModeMission)
	g.Reset(testRuntime())
	top, sy := hudRows, hudRows+skierRow

	g.run.state.Camera.Rotation = 0
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	flatTop, flatSkier := firstEdge(screen, top), firstEdge(screen, sy)

	g.run.state.Camera.Rotation = 20
	g.Render(screen)
	if got := firstEdge(screen, top); got != flatTop+2 {
		t.Errorf("top edge at %d, want %d", got, flatTop+2)
	}
	if got := firstEdge(screen, sy); got != flatSkier {
		t.Errorf("skier row edge moved to %d, want %d", got, flatSkier)
	}
}

func TestRenderMinimap(t *testing.T) {
	g := New(ModeMission)
	g.Reset(testRuntime())
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	x0, y0 := 80-mapCols-1, hudRows
	if got := screen.Get(x0, y0); got != '┌' {
		t.Fatalf("minimap corner = %q, want frame", got)
	}
	var path, skier int
	for y := y0; y < y0+mapMaxRows; y++ {
		for x := x0; x < x0+mapCols; x++ {
			switch screen.Get(x, y) {
			case MapPathChar:
				path++
			case MapSkierChar:
				skier++
			}
		}
	}
	if path < 3 || skier != 1 {
		t.Errorf("minimap has %d path cells and %d skier marks", path, skier)
	}

	narrow := core.NewScreen(40, 24)
	g.Render(narrow)
	if narrow.Get(40-mapCols-1, hudRows) == '┌' {
		t.Error("narrow screens should skip the minimap")
	}
}

func TestMinimapFlashesOffPath(t *testing.T) {
	g := New(ModeFree)
	g.Reset(testRuntime())
	screen := core.NewScreen(80, 24)
	bottom := screen.Height() - footerRow
	x0 := 80 - mapCols - 1

	tests := []struct {
		name    string
		offPath bool
		now     time.Duration
		want    core.Color
	}{
		{"on path", false, 0, core.ColorPanel},
		{"off path lit", true, 0, core.ColorBad},
		{"off path dark", true, mapFlash, core.ColorPanel},
		{"off path lit again", true, 2 * mapFlash, core.ColorBad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := g.run.State()
			s.Now = tt.now
			g.drawMinimap(screen, s, Signals{OffPath: tt.offPath}, hudRows, bottom)
			if got := screen.GetCell(x0, hudRows).Color; got != tt.want {
				t.Errorf("frame color = %v, want %v", got, tt.want)
			}
		})
	}
}
