package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/badski/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "w", "up":
		return core.ActionAccelerate, false
	case " ":
		return core.ActionJump, false
	case "f":
		return core.ActionRocket, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// Holdable reports whether an action is a held control that needs a
// release edge.
func Holdable(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionAccelerate, core.ActionJump:
		return true
	}
	return false
}

// Terminals report key repeats but never key releases. These timeouts
// decide when a key that stopped repeating counts as released.
const (
	DefaultFirstRepeat = 550 * time.Millisecond // typical autorepeat delay plus slack
	DefaultRepeatGap   = 180 * time.Millisecond
	DefaultRetap       = 400 * time.Millisecond
)

type heldKey struct {
	last    time.Time
	since   time.Time
	repeats int
}

// HoldTracker turns a stream of key presses into press and release edges.
// The first press sets the action; repeats keep it held; a key that stops
// repeating is released on a later Tick.
type HoldTracker struct {
	FirstRepeat time.Duration
	RepeatGap   time.Duration
	// Retap is how soon a second jump press counts as a new tap rather
	// than an autorepeat.
	Retap time.Duration

	held    map[core.Action]*heldKey
	pending map[core.Action]int
	ticks   int
}

// NewHoldTracker returns a tracker with the default timeouts.
func NewHoldTracker() *HoldTracker {
	return &HoldTracker{
		FirstRepeat: DefaultFirstRepeat,
		RepeatGap:   DefaultRepeatGap,
		Retap:       DefaultRetap,
		held:        make(map[core.Action]*heldKey),
		pending:     make(map[core.Action]int),
	}
}

// Held reports whether the tracker considers a is held.
func (h *HoldTracker) Held(a core.Action) bool {
	_, ok := h.held[a]
	return ok
}

// Press records a key event for a holdable action.
func (h *HoldTracker) Press(a core.Action, now time.Time, frame *core.InputFrame) {
	switch a {
	case core.ActionLeft:
		h.release(core.ActionRight, frame)
	case core.ActionRight:
		h.release(core.ActionLeft, frame)
	}

	k, ok := h.held[a]
	if !ok {
		if _, queued := h.pending[a]; queued {
			return
		}
		frame.Set(a)
		h.held[a] = &heldKey{last: now, since: now}
		return
	}

	// A quick second jump before autorepeat kicks in is a double tap:
	// release now, press again on a later tick.
	if a == core.ActionJump && k.repeats == 0 && now.Sub(k.since) < h.Retap {
		h.release(a, frame)
		h.pending[a] = h.ticks
		return
	}

	k.repeats++
	k.last = now
}

// Tick emits pending presses and releases keys that stopped repeating.
// Call it once per simulation tick before stepping the game.
func (h *HoldTracker) Tick(now time.Time, frame *core.InputFrame) {
	for a, queuedAt := range h.pending {
		if queuedAt >= h.ticks {
			continue
		}
		delete(h.pending, a)
		frame.Set(a)
		h.held[a] = &heldKey{last: now, since: now}
	}

	for a, k := range h.held {
		timeout := h.RepeatGap
		if k.repeats == 0 {
			timeout = h.FirstRepeat
		}
		if now.Sub(k.last) > timeout {
			h.release(a, frame)
		}
	}
	h.ticks++
}

// Reset forgets every held and pending key without emitting releases.
func (h *HoldTracker) Reset() {
	clear(h.held)
	clear(h.pending)
}

func (h *HoldTracker) release(a core.Action, frame *core.InputFrame) {
	if _, ok := h.held[a]; !ok {
		return
	}
	delete(h.held, a)
	frame.Release(a)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionShop
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "u":
		return MenuActionShop
	}

	return MenuActionNone
}
