package ski

import (
	"time"

	"github.com/vovakirdan/badski/internal/core"
)

// hold is a held-since timestamp for one control.
type hold struct {
	held  bool
	since time.Duration
}

func (h *hold) press(now time.Duration) bool {
	if h.held {
		return false
	}
	h.held = true
	h.since = now
	return true
}

func (h *hold) release(now time.Duration) (time.Duration, bool) {
	if !h.held {
		return 0, false
	}
	h.held = false
	return now - h.since, true
}

// fraction returns how far through ramp the hold is, in [0, 1].
func (h *hold) fraction(now, ramp time.Duration) float64 {
	if !h.held {
		return 0
	}
	if ramp <= 0 {
		return 1
	}
	return core.Clamp(float64(now-h.since)/float64(ramp), 0, 1)
}

// Controls records which controls are held and since when. Input events
// only overwrite these timestamps; Step reads them.
type Controls struct {
	left, right hold
	accel       hold
	jump        hold

	lastSide  core.Action // most recently pressed steering side
	lastJump  time.Duration
	jumped    bool // lastJump is set
	jumpFired bool // the current jump press already fired a rocket
}

// Dir returns -1 for left, +1 for right, 0 when not steering.
// With both sides held the latest press wins.
func (c *Controls) Dir() int {
	switch {
	case c.left.held && c.right.held:
		if c.lastSide == core.ActionLeft {
			return -1
		}
		return 1
	case c.left.held:
		return -1
	case c.right.held:
		return 1
	default:
		return 0
	}
}

// Tilt returns the ramped steering amount for the active side.
func (c *Controls) Tilt(now, ramp time.Duration) float64 {
	switch c.Dir() {
	case -1:
		return c.left.fraction(now, ramp)
	case 1:
		return c.right.fraction(now, ramp)
	default:
		return 0
	}
}

// Accelerating reports whether the accelerate control is held.
func (c *Controls) Accelerating() bool { return c.accel.held }

// AccelFraction returns the accelerate hold ramp at the given instant.
func (c *Controls) AccelFraction(at, ramp time.Duration) float64 {
	return c.accel.fraction(at, ramp)
}

// Reset releases everything.
func (c *Controls) Reset() {
	*c = Controls{}
}
