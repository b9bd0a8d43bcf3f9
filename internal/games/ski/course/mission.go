package course

import (
	"fmt"
	"math"

	"github.com/vovakirdan/badski/internal/config"
)

// Mission is a bounded run: reach TargetDistanceMeters along Path.
type Mission struct {
	ID                   string   `yaml:"id"`
	ScenarioID           string   `yaml:"scenario"`
	Title                string   `yaml:"title"`
	TargetDistanceMeters float64  `yaml:"target_m"`
	CurveIntensity       float64  `yaml:"curve_intensity"`
	Path                 Polyline `yaml:"path,omitempty"`
}

// PickTheme draws a theme uniformly.
func PickTheme(themes []config.ScenarioTheme, rng RNG) config.ScenarioTheme {
	if len(themes) == 0 {
		return config.DefaultScenarios().Themes[0]
	}
	i := int(rng.Float64() * float64(len(themes)))
	if i >= len(themes) {
		i = len(themes) - 1
	}
	return themes[i]
}

// PickDistance draws a target distance from the theme's range, shifted up
// by perLevel meters for every player level above 1.
func PickDistance(theme config.ScenarioTheme, perLevel float64, level int, rng RNG) float64 {
	extra := float64(max(level-1, 0)) * perLevel
	lo := theme.DistanceMinM + extra
	hi := theme.DistanceMaxM + extra
	if hi <= lo {
		return math.Max(lo, 1)
	}
	return lo + math.Floor(rng.Float64()*(hi-lo))
}

// NewMission generates a mission for the player level from a theme.
func NewMission(theme config.ScenarioTheme, cfg config.CourseConfig, level int, rng RNG) Mission {
	target := PickDistance(theme, cfg.MetersPerLevel, level, rng)
	return Mission{
		ID:                   fmt.Sprintf("%s-%d", theme.ID, int64(rng.Float64()*1e9)),
		ScenarioID:           theme.ID,
		Title:                theme.Title,
		TargetDistanceMeters: target,
		CurveIntensity:       theme.CurveIntensity,
		Path:                 Generate(ParamsFor(theme, cfg), target, rng),
	}
}

// Course returns the mission's path, or fallback when the path is too short
// to interpolate.
func (m Mission) Course(fallback Course) Course {
	if m.Path.Usable() {
		return m.Path
	}
	return fallback
}
