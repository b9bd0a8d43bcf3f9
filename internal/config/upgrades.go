package config

import (
	"math"
	"time"
)

// Upgrades is the numeric upgrade and inventory state a run starts from.
type Upgrades struct {
	SpeedLevel        int `yaml:"speed_level"`
	JumpLevel         int `yaml:"jump_level"`
	GoodSpawnLevel    int `yaml:"good_spawn_level"`
	BadSpawnLevel     int `yaml:"bad_spawn_level"`
	Rockets           int `yaml:"rockets"`
	ExtraLives        int `yaml:"extra_lives"`
	StartGhostSeconds int `yaml:"start_ghost_seconds"`
}

// Clamp forces every level into [0, max] and inventory counts to >= 0.
func (u Upgrades) Clamp(cfg UpgradeConfig) Upgrades {
	u.SpeedLevel = clampI(u.SpeedLevel, 0, cfg.MaxSpeedLevel)
	u.JumpLevel = clampI(u.JumpLevel, 0, cfg.MaxJumpLevel)
	u.GoodSpawnLevel = clampI(u.GoodSpawnLevel, 0, cfg.MaxGoodSpawnLevel)
	u.BadSpawnLevel = clampI(u.BadSpawnLevel, 0, cfg.MaxBadSpawnLevel)
	u.Rockets = max(u.Rockets, 0)
	u.ExtraLives = max(u.ExtraLives, 0)
	u.StartGhostSeconds = max(u.StartGhostSeconds, 0)
	return u
}

// MaxSpeed returns the top base speed unlocked by the speed level.
func (u Upgrades) MaxSpeed(cfg UpgradeConfig) float64 {
	return cfg.BaseMaxSpeed + float64(clampI(u.SpeedLevel, 0, cfg.MaxSpeedLevel))*cfg.SpeedPerLevel
}

// JumpDuration returns how long a jump lasts at the jump level.
func (u Upgrades) JumpDuration(cfg UpgradeConfig) time.Duration {
	ms := cfg.JumpBase + Millis(clampI(u.JumpLevel, 0, cfg.MaxJumpLevel))*cfg.JumpPerLevel
	if cfg.JumpCap > 0 && ms > cfg.JumpCap {
		ms = cfg.JumpCap
	}
	return ms.Duration()
}

// ReduceRareDrop reports whether rare pickups should spawn less often.
// A skier who starts with a rocket or ghost is already covered.
func (u Upgrades) ReduceRareDrop() bool {
	return u.Rockets > 0 || u.StartGhostSeconds > 0
}

// Upgrade kinds sold in the shop.
const (
	UpgradeSpeed     = "speed"
	UpgradeJump      = "jump"
	UpgradeGoodSpawn = "good_spawn"
	UpgradeBadSpawn  = "bad_spawn"
	UpgradeRocket    = "rocket"
	UpgradeExtraLife = "extra_life"
	UpgradeGhost     = "ghost_start"
)

// UpgradeKinds lists every purchasable upgrade in display order.
var UpgradeKinds = []string{
	UpgradeSpeed, UpgradeJump, UpgradeGoodSpawn, UpgradeBadSpawn,
	UpgradeRocket, UpgradeExtraLife, UpgradeGhost,
}

// Cost returns the price of the next purchase of kind, or false when the
// kind is unknown or already at its maximum level.
func (u Upgrades) Cost(kind string, cfg UpgradeConfig) (int, bool) {
	p := cfg.Prices
	switch kind {
	case UpgradeSpeed:
		if u.SpeedLevel >= cfg.MaxSpeedLevel {
			return 0, false
		}
		return p.SpeedBase + u.SpeedLevel*p.SpeedStep, true
	case UpgradeJump:
		if u.JumpLevel >= cfg.MaxJumpLevel {
			return 0, false
		}
		return p.JumpBase + u.JumpLevel*p.JumpStep, true
	case UpgradeGoodSpawn:
		if u.GoodSpawnLevel >= cfg.MaxGoodSpawnLevel {
			return 0, false
		}
		return p.SpawnBase + u.GoodSpawnLevel*p.SpawnStep, true
	case UpgradeBadSpawn:
		if u.BadSpawnLevel >= cfg.MaxBadSpawnLevel {
			return 0, false
		}
		return p.SpawnBase + u.BadSpawnLevel*p.SpawnStep, true
	case UpgradeRocket:
		return p.Rocket, true
	case UpgradeExtraLife:
		return p.ExtraLife, true
	case UpgradeGhost:
		return p.GhostStart, true
	}
	return 0, false
}

// Apply returns the upgrades after one purchase of kind.
func (u Upgrades) Apply(kind string, cfg UpgradeConfig) Upgrades {
	switch kind {
	case UpgradeSpeed:
		u.SpeedLevel++
	case UpgradeJump:
		u.JumpLevel++
	case UpgradeGoodSpawn:
		u.GoodSpawnLevel++
	case UpgradeBadSpawn:
		u.BadSpawnLevel++
	case UpgradeRocket:
		u.Rockets++
	case UpgradeExtraLife:
		u.ExtraLives++
	case UpgradeGhost:
		u.StartGhostSeconds = cfg.Prices.GhostStartSeconds
	}
	return u.Clamp(cfg)
}

// PlayerLevel derives the player level from lifetime earned points.
// Thresholds: Lv2 at 1000, then each level needs three times more.
func PlayerLevel(totalEarned int) int {
	level := 1
	threshold := 1000
	for totalEarned >= threshold {
		level++
		if threshold > math.MaxInt/3 {
			break
		}
		threshold *= 3
	}
	return level
}

// TotalEarnedForLevel returns the lifetime points needed to reach level.
func TotalEarnedForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return int(1000 * math.Pow(3, float64(level-2)))
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
