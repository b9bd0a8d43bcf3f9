package ski

import (
	"math"
	"time"
)

// Buffs tracks every timed modifier as a deadline on the run clock.
// A zero deadline is never active because the clock starts at 0.
type Buffs struct {
	GhostUntil        time.Duration
	SuperUntil        time.Duration
	BoostUntil        time.Duration
	BoostAmount       float64 // speed added by active boosts, refunded once
	BadUntil          time.Duration
	BadMultiplier     float64 // 1 when no slow is active
	InvulnerableUntil time.Duration
}

// NewBuffs returns a clean modifier set.
func NewBuffs() Buffs {
	return Buffs{BadMultiplier: 1}
}

// Ghost reports whether obstacle collisions are suppressed.
func (b Buffs) Ghost(now time.Duration) bool { return now < b.GhostUntil }

// Super reports whether super-speed is active.
func (b Buffs) Super(now time.Duration) bool { return now < b.SuperUntil }

// Boosted reports whether a speed boost is active.
func (b Buffs) Boosted(now time.Duration) bool { return b.BoostAmount > 0 && now < b.BoostUntil }

// Slowed reports whether a timed bad multiplier is active.
func (b Buffs) Slowed(now time.Duration) bool { return b.BadMultiplier != 1 && now < b.BadUntil }

// Invulnerable reports whether the post-extra-life window is open.
func (b Buffs) Invulnerable(now time.Duration) bool { return now < b.InvulnerableUntil }

// Protected reports whether an obstacle hit would be ignored.
func (b Buffs) Protected(now time.Duration) bool {
	return b.Ghost(now) || b.Invulnerable(now)
}

// Multiplier returns the combined factor applied to base speed.
func (b Buffs) Multiplier(now time.Duration, superFactor float64) float64 {
	m := 1.0
	if b.Super(now) {
		m *= superFactor
	}
	if b.Slowed(now) {
		m *= b.BadMultiplier
	}
	return m
}

// AddBoost records a boost of amount until the given deadline.
// Boosts stack in amount and share the latest deadline.
func (b *Buffs) AddBoost(amount float64, until time.Duration) {
	b.BoostAmount += amount
	if until > b.BoostUntil {
		b.BoostUntil = until
	}
}

// takeBoost clears the boost and returns the amount to refund.
func (b *Buffs) takeBoost() float64 {
	amount := b.BoostAmount
	b.BoostAmount = 0
	b.BoostUntil = 0
	return amount
}

// Expire drops modifiers whose deadline has passed and returns any boost
// amount that must now be taken off base speed.
func (b *Buffs) Expire(now time.Duration) (refund float64) {
	if b.BoostAmount > 0 && now >= b.BoostUntil {
		refund = b.takeBoost()
	}
	if b.BadMultiplier != 1 && now >= b.BadUntil {
		b.BadMultiplier = 1
		b.BadUntil = 0
	}
	return refund
}

// CancelGood ends ghost, super-speed and boost, returning the boost
// amount to refund. Post-extra-life invulnerability is left alone.
func (b *Buffs) CancelGood() (refund float64) {
	b.GhostUntil = 0
	b.SuperUntil = 0
	return b.takeBoost()
}

// Remaining reports whole seconds left on each modifier.
func (b Buffs) Remaining(now time.Duration) BuffSeconds {
	secs := func(until time.Duration, active bool) int {
		if !active {
			return 0
		}
		return int(math.Ceil((until - now).Seconds()))
	}
	return BuffSeconds{
		Ghost:        secs(b.GhostUntil, b.Ghost(now)),
		SuperSpeed:   secs(b.SuperUntil, b.Super(now)),
		SpeedBoost:   secs(b.BoostUntil, b.Boosted(now)),
		Slowed:       secs(b.BadUntil, b.Slowed(now)),
		Invulnerable: secs(b.InvulnerableUntil, b.Invulnerable(now)),
	}
}
