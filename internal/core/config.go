package core

import "time"

// Smallest viewport a mode is asked to draw into.
const (
	MinScreenW = 20
	MinScreenH = 8
)

// DefaultTickRate is the fixed simulation rate when none is configured.
const DefaultTickRate = 60

// RuntimeConfig is what the platform hands a mode on every Reset: the
// viewport it draws into, the fixed tick rate and the run seed.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int   // ticks per simulated second
	Seed     int64 // 0 asks the platform for a time-based seed
}

// DefaultConfig returns an 80x24 terminal at the default tick rate.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
	}
}

// Normalized fills a missing tick rate and grows the viewport to the
// minimum size. The seed is left alone.
func (c RuntimeConfig) Normalized() RuntimeConfig {
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	c.ScreenW = max(c.ScreenW, MinScreenW)
	c.ScreenH = max(c.ScreenH, MinScreenH)
	return c
}

// TickInterval returns the simulated time covered by one Step.
func (c RuntimeConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Normalized().TickRate)
}

// GameState is the platform-facing summary of a run.
type GameState struct {
	Score    int
	GameOver bool // the run ended, won or lost
	Won      bool // the run ended by reaching the goal
	Paused   bool
}

// StepResult is returned by every Step.
type StepResult struct {
	State GameState
}
