package ski

import (
	"math"
	"time"

	"github.com/vovakirdan/badski/internal/config"
	"github.com/vovakirdan/badski/internal/core"
	"github.com/vovakirdan/badski/internal/games/ski/spawn"
)

// closeCallShown is how long the close-call signal stays up.
const closeCallShown = time.Second

// lastItemShown is how long the last pickup stays in the signals.
const lastItemShown = 2 * time.Second

// ObstacleBox returns the hit-box of a planned obstacle. Trees only
// collide on the trunk.
func ObstacleBox(e spawn.Entry, def config.ObstacleDef, c config.CollisionConfig, scrollToMeters float64) core.Box {
	w := def.Width * e.Scale * c.VisualScale
	if def.Tree {
		w *= c.TreeHitShare
	}
	h := def.Height * e.Scale * c.VisualScale * scrollToMeters
	return core.Box{
		X: core.SpanAround(e.LateralWorldOffset, w/2),
		Y: core.Span{Lo: e.DistanceMeters, Hi: e.DistanceMeters + h},
	}
}

// resolveCollisions tests the spawns near the skier. The first entry that
// produces an effect wins; the rest wait for a later tick.
func (r *Run) resolveCollisions() {
	s := &r.state
	c := r.cfg.Collision
	box := r.skierBox()
	x := r.skierX()

	window := r.plan.Window(s.PrevDistance-c.WindowBehindM, s.Distance+c.WindowAheadM)
	for _, e := range window {
		if r.plan.Consumed(e.ID) {
			continue
		}
		switch e.Kind {
		case spawn.KindObstacle:
			if r.hitObstacle(e, box) {
				return
			}
		case spawn.KindGood:
			if !r.touchesItem(e, box, x) {
				continue
			}
			def, ok := r.cat.GoodByID(e.ItemID)
			if !ok || !r.plan.Consume(e.ID) {
				continue
			}
			r.applyGood(def)
			return
		case spawn.KindBad:
			if !r.touchesItem(e, box, x) {
				continue
			}
			def, ok := r.cat.BadByID(e.ItemID)
			if !ok || !r.plan.Consume(e.ID) {
				continue
			}
			r.applyBad(def)
			return
		}
	}
}

// hitObstacle resolves one obstacle and reports whether it was a match.
func (r *Run) hitObstacle(e spawn.Entry, skier core.Box) bool {
	s := &r.state
	def, ok := r.cat.ObstacleByID(e.ItemID)
	if !ok {
		return false
	}
	ob := ObstacleBox(e, def, r.cfg.Collision, r.cfg.Track.ScrollToMeters)

	if !skier.Overlaps(ob) {
		if skier.Y.Overlaps(ob.Y) && skier.X.Gap(ob.X) < r.cfg.Collision.CloseCallGapPx && !r.nearMiss[e.ID] {
			r.nearMiss[e.ID] = true
			s.closeCallAt = s.Now
			s.closeCalls++
		}
		return false
	}

	// Banks slow even a ghost or a jumper.
	if def.SlowOnly {
		if !r.plan.Consume(e.ID) {
			return false
		}
		r.slowDown()
		return true
	}
	if s.Buffs.Protected(s.Now) {
		return false
	}
	if s.Anim == AnimJumping && !def.Tree {
		return false
	}
	if !r.plan.Consume(e.ID) {
		return false
	}
	r.hazard()
	return true
}

// hazard spends a shield charge if there is one, otherwise the skier falls.
func (r *Run) hazard() {
	s := &r.state
	if s.ExtraLives > 0 {
		s.ExtraLives--
		s.Buffs.InvulnerableUntil = s.Now + r.cfg.Effects.ExtraLifeInvulnerable.Duration()
		r.inventory(InventoryDelta{ExtraLives: -1})
		return
	}
	s.Anim = AnimStumbling
	s.animUntil = s.Now + r.cfg.Physics.Stumble.Duration()
}

// touchesItem reports whether the skier is on a pickup. Pickups are points
// on the track, collected when the swept skier passes within a half-width.
func (r *Run) touchesItem(e spawn.Entry, skier core.Box, x float64) bool {
	if r.state.Anim == AnimJumping && r.cfg.Jump.SkipsPickups {
		return false
	}
	return skier.Y.Contains(e.DistanceMeters) &&
		math.Abs(e.LateralWorldOffset-x) < r.cfg.Collision.SkierHalfWidthPx
}

func (r *Run) applyGood(def config.GoodItemDef) {
	s := &r.state
	now := s.Now
	until := now + def.Duration.Duration()

	s.Score += def.Points
	s.lastItem, s.lastItemAt = def.ID, now

	switch def.Effect {
	case config.EffectGhost:
		s.Buffs.GhostUntil = max(s.Buffs.GhostUntil, until)
	case config.EffectSuperSpeed:
		s.Buffs.SuperUntil = max(s.Buffs.SuperUntil, until)
	case config.EffectSpeedBoost:
		add := math.Max(0, math.Min(r.cfg.Effects.SpeedBoostAdd, s.MaxSpeed-s.Speed))
		s.Speed += add
		s.Buffs.AddBoost(add, until)
	case config.EffectRocket:
		s.Rockets++
		r.inventory(InventoryDelta{Rockets: 1})
	case config.EffectShield:
		s.ExtraLives++
		r.inventory(InventoryDelta{ExtraLives: 1})
	case config.EffectScore:
	}
}

func (r *Run) applyBad(def config.BadItemDef) {
	s := &r.state
	s.lastItem, s.lastItemAt = def.ID, s.Now

	r.refund(s.Buffs.CancelGood())

	if def.SpeedMultiplier > 0 && def.SpeedMultiplier != 1 {
		if def.Duration > 0 {
			s.Buffs.BadMultiplier = def.SpeedMultiplier
			s.Buffs.BadUntil = s.Now + def.Duration.Duration()
		} else {
			s.Speed = math.Max(s.Speed*def.SpeedMultiplier, r.cfg.Physics.MinSpeed)
		}
	}
	s.Score = max(s.Score-def.ScorePenalty, 0)
}
