// Package ski implements the run simulation: skier physics and camera,
// spawn collision and pickups, timed buffs and the run lifecycle. It also
// registers the playable modes with the registry.
package ski

import (
	"time"

	"github.com/vovakirdan/badski/internal/games/ski/course"
)

// AnimState is the skier's discrete animation state.
type AnimState int

const (
	AnimStanding AnimState = iota
	AnimAccelerating
	AnimSkiing
	AnimTurningLeft
	AnimTurningRight
	AnimJumping
	AnimStumbling
	AnimFallen
)

func (a AnimState) String() string {
	switch a {
	case AnimStanding:
		return "standing"
	case AnimAccelerating:
		return "accelerating"
	case AnimSkiing:
		return "skiing"
	case AnimTurningLeft:
		return "turning-left"
	case AnimTurningRight:
		return "turning-right"
	case AnimJumping:
		return "jumping"
	case AnimStumbling:
		return "stumbling"
	case AnimFallen:
		return "fallen"
	default:
		return "unknown"
	}
}

// Grounded reports whether the skier can steer and take off.
func (a AnimState) Grounded() bool {
	return a != AnimJumping && a != AnimStumbling && a != AnimFallen
}

// Phase is the run lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Mode selects which rules a run plays by.
type Mode int

const (
	ModeMission  Mode = iota // bounded distance, crash ends the run
	ModeFree                 // endless procedural course, crash ends the run
	ModeRoadTest             // endless procedural course, crashes recover
)

func (m Mode) String() string {
	switch m {
	case ModeMission:
		return "mission"
	case ModeFree:
		return "free"
	case ModeRoadTest:
		return "roadtest"
	default:
		return "unknown"
	}
}

// GameID is the registry id the mode is played under.
func (m Mode) GameID() string {
	switch m {
	case ModeFree:
		return "ski_free"
	case ModeRoadTest:
		return "ski_roadtest"
	default:
		return "ski"
	}
}

// RunState is everything that changes during a run. It is owned by a Run
// and only mutated from Run.Step.
type RunState struct {
	Now          time.Duration // simulated clock since run start
	Distance     float64       // meters traveled
	PrevDistance float64       // distance at the start of the last tick
	Speed        float64       // base speed before multipliers
	MaxSpeed     float64
	Offset       float64 // lateral px from the path center, + is right
	Tilt         float64 // 0..1 steering ramp
	Score        int
	Bonus        int // completion bonus, once awarded
	Rockets      int
	ExtraLives   int

	Anim      AnimState
	animUntil time.Duration // 0 means no pending auto-transition

	Buffs  Buffs
	Camera Camera

	Won  bool
	Lost bool

	nextAccelAt time.Duration
	nextScoreAt time.Duration

	atWall       bool
	wallRearmAt  time.Duration
	boundaryAt   time.Duration
	boundaryHits int

	closeCallAt time.Duration
	closeCalls  int

	lastItem   string
	lastItemAt time.Duration
}

// Paused reports whether the world has stopped moving.
func (s RunState) Paused() bool {
	return s.Won || s.Lost || s.Anim == AnimStumbling || s.Anim == AnimFallen
}

// BuffSeconds are whole seconds left on each timed modifier, rounded up.
type BuffSeconds struct {
	Ghost        int
	SuperSpeed   int
	SpeedBoost   int
	Slowed       int
	Invulnerable int
}

// Signals are transient values derived each tick for display.
type Signals struct {
	Buffs       BuffSeconds
	LastItem    string
	BoundaryHit bool
	OffPath     bool
	Turn        course.Turn
	CloseCall   bool
}

// RunEnd is reported once when a run finishes.
// Distance is only set for endless runs, where it feeds the personal best.
type RunEnd struct {
	Mode             Mode
	MissionID        string
	Won              bool
	Exited           bool
	FinalScore       int
	Distance         *float64
	DistanceTraveled float64
	Duration         time.Duration
	CloseCalls       int
	BoundaryHits     int
}

// InventoryDelta is a change to persisted inventory.
type InventoryDelta struct {
	Rockets        int
	ExtraLives     int
	GhostStartUsed bool
}

// Reporter receives run results for persistence.
type Reporter interface {
	RunEnded(end RunEnd) error
	InventoryChanged(delta InventoryDelta) error
}
