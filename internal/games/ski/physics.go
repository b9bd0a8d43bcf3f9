package ski

import (
	"math"
	"time"

	"github.com/vovakirdan/badski/internal/config"
	"github.com/vovakirdan/badski/internal/core"
)

// accelIncrement picks the speed step for a hold fraction: the first
// increment below 1/n, the second below 2/n and so on.
func accelIncrement(incs []float64, frac float64) float64 {
	if len(incs) == 0 {
		return 0
	}
	i := int(frac * float64(len(incs)))
	if i >= len(incs) {
		i = len(incs) - 1
	}
	if i < 0 {
		i = 0
	}
	return incs[i]
}

// BoundaryHalfWidth returns the lateral clamp, narrowed for small viewports.
func BoundaryHalfWidth(track config.TrackConfig, viewportHalfPx float64) float64 {
	half := track.HalfWidthPx
	if viewportHalfPx > 0 {
		if v := viewportHalfPx - track.ViewportMarginPx; v > 0 && v < half {
			half = v
		}
	}
	return half
}

// EffectiveSpeed is base speed with super-speed and slow applied.
func (r *Run) EffectiveSpeed() float64 {
	return r.state.Speed * r.state.Buffs.Multiplier(r.state.Now, r.cfg.Effects.SuperSpeedMultiplier)
}

// integrate advances speed, lateral offset and distance by frames
// reference frames.
func (r *Run) integrate(frames float64) {
	s := &r.state
	p := r.cfg.Physics

	r.accelerate()

	dir := r.controls.Dir()
	s.Tilt = r.controls.Tilt(s.Now, p.TiltRamp.Duration())
	eff := r.EffectiveSpeed()

	if dir != 0 {
		drift := eff * p.DriftFactor * (1 + s.Tilt*p.TiltDriftBoost) * frames
		s.Offset += float64(dir) * drift
	}
	r.checkBoundary()
	if s.Paused() {
		return
	}

	// Boundary deceleration applies from the same tick.
	eff = r.EffectiveSpeed()
	scroll := eff * p.ScrollFactor * (1 - s.Tilt*p.TurnSlowdown) * frames
	if scroll > 0 {
		s.Distance += scroll * r.cfg.Track.ScrollToMeters
	}

	r.scoreTicks(eff)
	r.clampSpeed()
}

// accelerate applies every discrete speed step due by now.
func (r *Run) accelerate() {
	s := &r.state
	p := r.cfg.Physics
	step := p.AccelStep.Duration()
	if !r.controls.Accelerating() || step <= 0 {
		return
	}
	for s.nextAccelAt > 0 && s.Now >= s.nextAccelAt {
		frac := r.controls.AccelFraction(s.nextAccelAt, p.AccelRamp.Duration())
		s.Speed = math.Min(s.Speed+accelIncrement(p.AccelIncrements, frac), s.MaxSpeed)
		s.nextAccelAt += step
	}
}

// checkBoundary clamps the offset to the corridor and applies the boundary
// policy once per contact.
func (r *Run) checkBoundary() {
	s := &r.state
	if math.Abs(s.Offset) < r.half {
		s.atWall = false
		return
	}
	s.Offset = math.Copysign(r.half, s.Offset)

	if s.atWall && s.Now < s.wallRearmAt {
		return
	}
	s.atWall = true
	s.wallRearmAt = s.Now + r.cfg.Physics.BoundaryCooldown.Duration()

	if r.cfg.Policy.Boundary == config.BoundaryStumble {
		s.boundaryAt = s.Now
		s.boundaryHits++
		r.hazard()
		return
	}
	r.slowDown()
}

// slowDown halves speed down to the floor and raises the edge signal.
// Walls and snow banks share it.
func (r *Run) slowDown() {
	s := &r.state
	s.boundaryAt = s.Now
	s.boundaryHits++
	s.Speed = math.Max(s.Speed/2, r.cfg.Physics.MinSpeed)
}

// scoreTicks adds distance score for every interval elapsed.
func (r *Run) scoreTicks(eff float64) {
	s := &r.state
	interval := r.cfg.Scoring.Interval.Duration()
	if interval <= 0 {
		return
	}
	for s.Now >= s.nextScoreAt {
		s.Score += int(math.Floor(eff * r.cfg.Scoring.PerSpeed))
		s.nextScoreAt += interval
	}
}

// skipScoreTicks drops intervals that elapsed while the world was paused.
func (r *Run) skipScoreTicks() {
	interval := r.cfg.Scoring.Interval.Duration()
	if interval <= 0 {
		return
	}
	for r.state.Now >= r.state.nextScoreAt {
		r.state.nextScoreAt += interval
	}
}

func (r *Run) clampSpeed() {
	s := &r.state
	if math.IsNaN(s.Speed) || s.Speed < r.cfg.Physics.MinSpeed {
		s.Speed = r.cfg.Physics.MinSpeed
	}
	if s.Speed > s.MaxSpeed {
		s.Speed = s.MaxSpeed
	}
}

// refund takes an expired or cancelled boost back off base speed.
func (r *Run) refund(amount float64) {
	if amount <= 0 {
		return
	}
	r.state.Speed = math.Max(r.state.Speed-amount, r.cfg.Physics.MinSpeed)
}

// frames converts a tick length to reference frames.
func (r *Run) frames(dt time.Duration) float64 {
	fps := r.cfg.Physics.ReferenceFPS
	if fps <= 0 {
		fps = 60
	}
	return dt.Seconds() * float64(fps)
}

// steer updates the turning animation from the held direction.
func (r *Run) steer() {
	s := &r.state
	switch s.Anim {
	case AnimStanding, AnimAccelerating, AnimSkiing, AnimTurningLeft, AnimTurningRight:
	default:
		return
	}
	switch r.controls.Dir() {
	case -1:
		s.Anim, s.animUntil = AnimTurningLeft, 0
	case 1:
		s.Anim, s.animUntil = AnimTurningRight, 0
	default:
		if s.Anim == AnimTurningLeft || s.Anim == AnimTurningRight {
			s.Anim = AnimSkiing
		}
	}
}

// skierX returns the skier's absolute lateral world position.
func (r *Run) skierX() float64 {
	return r.course.OffsetAt(r.state.Distance) + r.state.Offset
}

// skierBox is the skier's hit-box, swept along the track from the previous
// tick so a fast tick cannot step over a spawn.
func (r *Run) skierBox() core.Box {
	c := r.cfg.Collision
	x := r.skierX()
	hw := c.SkierHalfWidthPx

	var xs core.Span
	switch r.state.Anim {
	case AnimTurningLeft:
		xs = core.Span{Lo: x - hw, Hi: x}
	case AnimTurningRight:
		xs = core.Span{Lo: x, Hi: x + hw}
	default:
		xs = core.SpanAround(x, hw/3)
	}
	return core.Box{
		X: xs,
		Y: core.Span{Lo: r.state.PrevDistance - c.SkierBehindM, Hi: r.state.Distance + c.SkierAheadM},
	}
}
