package ski

import (
	"math"

	"github.com/vovakirdan/badski/internal/core"
	"github.com/vovakirdan/badski/internal/games/ski/spawn"
)

// Autopilot produces input for headless runs. It holds the throttle, keeps
// near the path center and steers around obstacles it sees ahead.
type Autopilot struct {
	Lookahead float64 // meters scanned ahead for obstacles
	Clearance float64 // lateral px kept from an obstacle's center
	Deadband  float64 // px of error tolerated before steering

	held map[core.Action]bool
}

// NewAutopilot returns an autopilot with workable defaults.
func NewAutopilot() *Autopilot {
	return &Autopilot{
		Lookahead: 60,
		Clearance: 60,
		Deadband:  12,
		held:      make(map[core.Action]bool),
	}
}

// Target returns the path-relative offset the autopilot steers toward.
func (a *Autopilot) Target(r *Run) float64 {
	s := r.State()
	c := r.Course()
	target := 0.0

	// Obstacles stay dangerous until they clear the back of the hit-box.
	behind := r.Config().Collision.SkierBehindM + 5
	for _, e := range r.Plan().Window(s.Distance-behind, s.Distance+a.Lookahead) {
		if e.Kind != spawn.KindObstacle || r.Plan().Consumed(e.ID) {
			continue
		}
		ox := e.LateralWorldOffset - c.OffsetAt(e.DistanceMeters)
		if math.Abs(ox-target) >= a.Clearance {
			continue
		}
		// Dodge to whichever side of the obstacle is closer to center.
		if ox > 0 {
			target = ox - a.Clearance
		} else {
			target = ox + a.Clearance
		}
		break
	}

	limit := max(r.HalfWidth()-a.Clearance/2, 0)
	return core.Clamp(target, -limit, limit)
}

// Next returns the input edges for the coming tick.
func (a *Autopilot) Next(r *Run) core.InputFrame {
	frame := core.NewInputFrame()
	if r.Phase() != PhaseRunning {
		return frame
	}

	a.set(&frame, core.ActionAccelerate, true)

	diff := a.Target(r) - r.State().Offset
	a.set(&frame, core.ActionRight, diff > a.Deadband)
	a.set(&frame, core.ActionLeft, diff < -a.Deadband)
	return frame
}

// Reset forgets held controls, for a new run.
func (a *Autopilot) Reset() {
	clear(a.held)
}

func (a *Autopilot) set(frame *core.InputFrame, act core.Action, on bool) {
	if a.held == nil {
		a.held = make(map[core.Action]bool)
	}
	switch {
	case on && !a.held[act]:
		frame.Set(act)
	case !on && a.held[act]:
		frame.Release(act)
	}
	a.held[act] = on
}
