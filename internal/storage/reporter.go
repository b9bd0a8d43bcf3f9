package storage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/badski/internal/games/ski"
)

// LogReporter wraps a ski.Store and logs every run result and inventory
// change. A nil Next only logs.
type LogReporter struct {
	Next   ski.Store
	Logger *log.Logger
}

// NewLogReporter returns a reporter logging to logger before forwarding
// to next.
func NewLogReporter(next ski.Store, logger *log.Logger) *LogReporter {
	if logger == nil {
		logger = log.Default()
	}
	return &LogReporter{Next: next, Logger: logger}
}

// RunEnded logs the result, then persists it.
func (r *LogReporter) RunEnded(end ski.RunEnd) error {
	kv := []any{
		"mode", end.Mode,
		"score", end.FinalScore,
		"traveled", int(end.DistanceTraveled),
		"duration", end.Duration,
		"close_calls", end.CloseCalls,
		"boundary_hits", end.BoundaryHits,
	}
	if end.MissionID != "" {
		kv = append(kv, "mission", end.MissionID)
	}
	switch {
	case end.Won:
		r.Logger.Info("run won", kv...)
	case end.Exited:
		r.Logger.Info("run abandoned", kv...)
	default:
		r.Logger.Info("run lost", kv...)
	}

	if r.Next == nil {
		return nil
	}
	if err := r.Next.RunEnded(end); err != nil {
		r.Logger.Error("could not save run", "error", err)
		return err
	}
	return nil
}

// InventoryChanged logs the delta, then persists it.
func (r *LogReporter) InventoryChanged(d ski.InventoryDelta) error {
	r.Logger.Debug("inventory changed",
		"rockets", d.Rockets,
		"extra_lives", d.ExtraLives,
		"ghost_start_used", d.GhostStartUsed,
	)
	if r.Next == nil {
		return nil
	}
	if err := r.Next.InventoryChanged(d); err != nil {
		r.Logger.Error("could not save inventory", "error", err)
		return err
	}
	return nil
}

// LoadProfile forwards to the wrapped store.
func (r *LogReporter) LoadProfile() (ski.Profile, error) {
	if r.Next == nil {
		return ski.Profile{}, nil
	}
	p, err := r.Next.LoadProfile()
	if err != nil {
		r.Logger.Warn("could not load profile", "error", err)
	}
	return p, err
}

var _ ski.Store = (*LogReporter)(nil)
