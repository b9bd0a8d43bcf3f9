package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/badski/internal/config"
	"github.com/vovakirdan/badski/internal/core"
	"github.com/vovakirdan/badski/internal/games/ski"
	"github.com/vovakirdan/badski/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 11}
}

// tick drives a model through n ticks spaced one frame apart.
func tick(m tea.Model, start time.Time, n int) tea.Model {
	for i := 0; i < n; i++ {
		m, _ = m.Update(TickMsg(start.Add(time.Duration(i) * time.Second / 60)))
	}
	return m
}

func TestModelQuitReportsAbandonedRun(t *testing.T) {
	store := openStore(t)
	game := ski.New(ski.ModeFree)
	m := NewModel(game, store, testConfig())
	m.Init()

	var tm tea.Model = m
	tm = tick(tm, time.Unix(0, 0), 30)
	tm, cmd := tm.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return tea.Quit")
	}
	if !tm.(Model).quitting {
		t.Error("model should be quitting")
	}

	runs, err := store.RecentRuns("ski_free", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || !runs[0].Exited {
		t.Errorf("runs = %+v, want one abandoned run", runs)
	}
}

func TestModelStartupResizeKeepsRun(t *testing.T) {
	store := openStore(t)
	if err := store.SaveUpgrades(config.Upgrades{StartGhostSeconds: 5}); err != nil {
		t.Fatalf("SaveUpgrades() failed: %v", err)
	}
	game := ski.New(ski.ModeFree)
	m := NewModel(game, store, testConfig())
	m.Init()
	run := game.Run()

	// bubbletea reports the current size right after start
	var tm tea.Model = m
	tm, _ = tm.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if game.Run() != run {
		t.Fatal("startup size message restarted the run")
	}
	if !game.Run().State().Buffs.Ghost(0) {
		t.Error("start ghost should still be active")
	}
	runs, err := store.RecentRuns("ski_free", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("runs = %+v, want none recorded before the first tick", runs)
	}

	// A real resize narrows the boundary of the same run
	tm, _ = tm.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	if game.Run() != run {
		t.Fatal("resize restarted the run")
	}
	if got := run.HalfWidth(); got != 116 {
		t.Errorf("HalfWidth() = %v after resize, want 116", got)
	}
	if got := tm.(Model).screen.Width(); got != 40 {
		t.Errorf("screen width = %d, want 40", got)
	}
	if runs, _ := store.RecentRuns("ski_free", 10); len(runs) != 0 {
		t.Errorf("resize recorded runs: %+v", runs)
	}
}

func TestModelAccelerateHold(t *testing.T) {
	game := ski.New(ski.ModeFree)
	m := NewModel(game, nil, testConfig())
	m.Init()

	start := time.Unix(0, 0)
	var tm tea.Model = m
	// Let the standing pose finish
	tm = tick(tm, start, 60)
	before := game.Run().State().Speed

	tm, _ = tm.Update(runeKey('w'))
	tick(tm, start.Add(time.Second), 30)
	if after := game.Run().State().Speed; after <= before {
		t.Errorf("speed %v -> %v, holding accelerate should speed up", before, after)
	}
}

func TestModelPauseReleasesHolds(t *testing.T) {
	game := ski.New(ski.ModeFree)
	m := NewModel(game, nil, testConfig())
	m.Init()

	var tm tea.Model = m
	tm, _ = tm.Update(runeKey('a'))
	if !tm.(Model).holds.Held(core.ActionLeft) {
		t.Fatal("left should be held")
	}
	tm, _ = tm.Update(runeKey('p'))
	tm = tick(tm, time.Unix(0, 0), 1)

	if tm.(Model).holds.Held(core.ActionLeft) {
		t.Error("pause should drop held keys")
	}
	if !game.State().Paused {
		t.Error("game should be paused")
	}
}

func TestModelView(t *testing.T) {
	game := ski.New(ski.ModeMission)
	m := NewModel(game, nil, testConfig())
	m.Init()

	view := tick(m, time.Unix(0, 0), 3).View()
	if !strings.Contains(view, "Score:") {
		t.Error("view should include the HUD")
	}
}

func TestGameModelBackOnlyWhenPaused(t *testing.T) {
	gm := NewGameModel(ski.New(ski.ModeFree), testConfig())
	gm.Init()

	var tm tea.Model = gm
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if tm.(GameModel).BackToMenu() {
		t.Fatal("esc while running should pause, not leave")
	}

	// The pause lands on the next tick, then esc leaves
	tm = tick(tm, time.Unix(0, 0), 1)
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !tm.(GameModel).BackToMenu() {
		t.Error("esc while paused should go back to menu")
	}
}

func TestSessionShopAndBack(t *testing.T) {
	store := openStore(t)
	if err := store.AddPoints(1000); err != nil {
		t.Fatalf("AddPoints() failed: %v", err)
	}

	var tm tea.Model = NewSessionModel(store, testConfig(), "alice", log.New(&strings.Builder{}))
	tm, _ = tm.Update(runeKey('u'))
	if tm.(SessionModel).screen != screenShop {
		t.Fatalf("screen = %v, want shop", tm.(SessionModel).screen)
	}

	// First row is the speed upgrade
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p, _ := store.LoadProfile()
	if p.Upgrades.SpeedLevel != 1 {
		t.Errorf("SpeedLevel = %d, want 1 after buying", p.Upgrades.SpeedLevel)
	}

	tm, cmd := tm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if tm.(SessionModel).screen != screenMenu {
		t.Errorf("screen = %v, want menu", tm.(SessionModel).screen)
	}
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Error("leaving the shop must not end the session")
		}
	}
	if !strings.Contains(tm.View(), "Level") {
		t.Error("menu should show the profile")
	}
}

func TestSessionMissionPicker(t *testing.T) {
	var tm tea.Model = NewSessionModel(nil, testConfig(), "bob", log.New(&strings.Builder{}))

	// Modes are listed by ID; "ski" comes first
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if tm.(SessionModel).screen != screenMission {
		t.Fatalf("screen = %v, want mission picker", tm.(SessionModel).screen)
	}

	tm, _ = tm.Update(runeKey('j'))
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s := tm.(SessionModel)
	if s.screen != screenGame || s.game == nil {
		t.Fatalf("screen = %v, want game", s.screen)
	}

	themes := ski.Themes()
	g := s.game.game.(*ski.Game)
	if got := g.Run().Mission().ScenarioID; got != themes[0].ID {
		t.Errorf("scenario = %q, want %q", got, themes[0].ID)
	}
}
