package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/badski/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		want   core.Action
		isQuit bool
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{runeKey('a'), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{runeKey('d'), core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionAccelerate, false},
		{runeKey(' '), core.ActionJump, false},
		{runeKey('f'), core.ActionRocket, false},
		{runeKey('p'), core.ActionPause, false},
		{runeKey('r'), core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey('q'), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		got, quit := km.MapKey(tt.msg)
		if got != tt.want || quit != tt.isQuit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), got, quit, tt.want, tt.isQuit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('u'), MenuActionShop},
		{runeKey('b'), MenuActionBack},
		{runeKey('q'), MenuActionQuit},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestHoldTrackerReleasesAfterFirstRepeatTimeout(t *testing.T) {
	h := NewHoldTracker()
	start := time.Unix(0, 0)
	frame := core.NewInputFrame()

	h.Press(core.ActionAccelerate, start, &frame)
	if !frame.Has(core.ActionAccelerate) {
		t.Fatal("first press should set the action")
	}
	frame.Clear()

	h.Tick(start.Add(500*time.Millisecond), &frame)
	if frame.HasRelease(core.ActionAccelerate) {
		t.Fatal("released before the autorepeat delay")
	}

	h.Tick(start.Add(DefaultFirstRepeat+time.Millisecond), &frame)
	if !frame.HasRelease(core.ActionAccelerate) {
		t.Error("key should be released once it never repeated")
	}
	if h.Held(core.ActionAccelerate) {
		t.Error("tracker still holds the key")
	}
}

func TestHoldTrackerRepeatsKeepKeyHeld(t *testing.T) {
	h := NewHoldTracker()
	start := time.Unix(0, 0)
	frame := core.NewInputFrame()

	h.Press(core.ActionLeft, start, &frame)
	frame.Clear()

	// Autorepeat every 50ms for a second
	now := start.Add(500 * time.Millisecond)
	for i := 0; i < 10; i++ {
		h.Press(core.ActionLeft, now, &frame)
		h.Tick(now, &frame)
		now = now.Add(50 * time.Millisecond)
	}
	if frame.Has(core.ActionLeft) || frame.HasRelease(core.ActionLeft) {
		t.Fatalf("repeats should not produce edges: %+v", frame)
	}

	// Repeats stop; the shorter gap applies
	h.Tick(now.Add(DefaultRepeatGap+time.Millisecond), &frame)
	if !frame.HasRelease(core.ActionLeft) {
		t.Error("key should be released after repeats stop")
	}
}

func TestHoldTrackerOppositeSideReleases(t *testing.T) {
	h := NewHoldTracker()
	now := time.Unix(0, 0)
	frame := core.NewInputFrame()

	h.Press(core.ActionLeft, now, &frame)
	frame.Clear()
	h.Press(core.ActionRight, now.Add(100*time.Millisecond), &frame)

	if !frame.HasRelease(core.ActionLeft) || !frame.Has(core.ActionRight) {
		t.Errorf("frame = %+v, want left released and right pressed", frame)
	}
}

func TestHoldTrackerJumpDoubleTap(t *testing.T) {
	h := NewHoldTracker()
	now := time.Unix(0, 0)
	frame := core.NewInputFrame()

	h.Press(core.ActionJump, now, &frame)
	h.Tick(now, &frame)
	frame.Clear()

	// Second tap well before autorepeat would start
	now = now.Add(150 * time.Millisecond)
	h.Press(core.ActionJump, now, &frame)
	if !frame.HasRelease(core.ActionJump) || frame.Has(core.ActionJump) {
		t.Fatalf("frame = %+v, want only a release", frame)
	}

	// The new press must not land on the same tick as the release
	h.Tick(now, &frame)
	if frame.Has(core.ActionJump) {
		t.Fatal("re-press landed in the release tick")
	}
	frame.Clear()

	h.Tick(now.Add(16*time.Millisecond), &frame)
	if !frame.Has(core.ActionJump) {
		t.Error("second tap should press jump on the next tick")
	}
	if !h.Held(core.ActionJump) {
		t.Error("jump should be held again")
	}
}

func TestHoldTrackerReset(t *testing.T) {
	h := NewHoldTracker()
	now := time.Unix(0, 0)
	frame := core.NewInputFrame()

	h.Press(core.ActionRight, now, &frame)
	h.Reset()
	frame.Clear()

	h.Tick(now.Add(time.Second), &frame)
	if !frame.Empty() {
		t.Errorf("reset tracker emitted %+v", frame)
	}

	h.Press(core.ActionRight, now.Add(time.Second), &frame)
	if !frame.Has(core.ActionRight) {
		t.Error("press after reset should be a new press")
	}
}
