package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/badski/internal/games/ski"
)

func TestScoreboardViews(t *testing.T) {
	store := openStore(t)
	for _, end := range []ski.RunEnd{
		{Mode: ski.ModeMission, Won: true, FinalScore: 420, DistanceTraveled: 900, Duration: 30 * time.Second},
		{Mode: ski.ModeMission, FinalScore: 80, DistanceTraveled: 200, Duration: 9 * time.Second},
	} {
		if err := store.RunEnded(end); err != nil {
			t.Fatalf("RunEnded() failed: %v", err)
		}
	}

	var tm tea.Model = NewScoreboardModel(store, 100, 30)
	view := tm.View()
	if !strings.Contains(view, "HIGH SCORES") || !strings.Contains(view, "420") {
		t.Errorf("scores view missing data:\n%s", view)
	}
	if !strings.Contains(view, "Best dist    900m") {
		t.Errorf("stats panel missing best distance:\n%s", view)
	}

	tm, _ = tm.Update(runeKey('v'))
	view = tm.View()
	if !strings.Contains(view, "RECENT RUNS") || !strings.Contains(view, "crashed") {
		t.Errorf("runs view missing data:\n%s", view)
	}

	// Next mode has no history yet
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := tm.(ScoreboardModel).modeID(); got != "ski_free" {
		t.Fatalf("mode = %q, want ski_free", got)
	}
	if !strings.Contains(tm.View(), "No runs recorded yet") {
		t.Error("empty mode should say so")
	}

	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !tm.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("scoreboard without a store should render empty")
	}
}

func TestMenuChoices(t *testing.T) {
	store := openStore(t)
	if err := store.RunEnded(ski.RunEnd{Mode: ski.ModeFree, FinalScore: 1500}); err != nil {
		t.Fatalf("RunEnded() failed: %v", err)
	}

	tests := []struct {
		name  string
		keys  []tea.KeyMsg
		check func(MenuModel) bool
	}{
		{"select first", []tea.KeyMsg{{Type: tea.KeyEnter}}, func(m MenuModel) bool {
			return m.Selected() != nil && m.Selected().GameID == "ski"
		}},
		{"select second", []tea.KeyMsg{runeKey('j'), {Type: tea.KeyEnter}}, func(m MenuModel) bool {
			return m.Selected() != nil && m.Selected().GameID == "ski_free"
		}},
		{"cursor stops at top", []tea.KeyMsg{runeKey('k'), {Type: tea.KeyEnter}}, func(m MenuModel) bool {
			return m.Selected() != nil && m.Selected().GameID == "ski"
		}},
		{"scoreboard", []tea.KeyMsg{{Type: tea.KeyTab}}, MenuModel.WantsScoreboard},
		{"shop", []tea.KeyMsg{runeKey('u')}, MenuModel.WantsShop},
		{"quit", []tea.KeyMsg{runeKey('q')}, MenuModel.IsQuitting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tm tea.Model = NewMenuModel(store, testConfig())
			for _, k := range tt.keys {
				tm, _ = tm.Update(k)
			}
			if !tt.check(tm.(MenuModel)) {
				t.Errorf("menu state after %v is wrong", tt.keys)
			}
		})
	}
}

func TestMenuView(t *testing.T) {
	store := openStore(t)
	if err := store.RunEnded(ski.RunEnd{Mode: ski.ModeFree, FinalScore: 1500}); err != nil {
		t.Fatalf("RunEnded() failed: %v", err)
	}

	view := NewMenuModel(store, testConfig()).View()
	for _, want := range []string{"B A D   S K I", "Level 2", "best 1500", "U: Upgrades"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q:\n%s", want, view)
		}
	}

	// Without a store the shop is not offered
	m := NewMenuModel(nil, testConfig())
	if strings.Contains(m.View(), "Upgrades") {
		t.Error("menu without a store should hide the shop")
	}
	tm, _ := m.Update(runeKey('u'))
	if tm.(MenuModel).WantsShop() {
		t.Error("shop key should do nothing without a store")
	}
}
