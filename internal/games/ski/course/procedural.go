package course

import (
	"math"

	"github.com/vovakirdan/badski/internal/config"
)

// Procedural is the free-run course: the sum of two sinusoids evaluated in
// scroll pixels, so any distance is an O(1) lookup.
type Procedural struct {
	Amp1, Period1  float64
	Amp2, Period2  float64
	ScrollToMeters float64
}

// NewProcedural builds the free-run course from tuning.
func NewProcedural(cfg config.CourseConfig, scrollToMeters float64) Procedural {
	return Procedural{
		Amp1:           cfg.Amp1,
		Period1:        cfg.Period1,
		Amp2:           cfg.Amp2,
		Period2:        cfg.Period2,
		ScrollToMeters: scrollToMeters,
	}
}

// OffsetAt evaluates the closed form at a distance. Negative distances clamp to 0.
func (p Procedural) OffsetAt(d float64) float64 {
	if d <= 0 || p.ScrollToMeters <= 0 {
		return 0
	}
	s := d / p.ScrollToMeters
	var x float64
	if p.Period1 > 0 {
		x += p.Amp1 * math.Sin(s/p.Period1)
	}
	if p.Period2 > 0 {
		x += p.Amp2 * math.Sin(s/p.Period2)
	}
	return x
}

// Sample resamples the course into points every step meters from 0 to
// toMeters, for display and minimap use.
func (p Procedural) Sample(toMeters, step float64) Polyline {
	return sample(p, toMeters, step)
}

func sample(c Course, toMeters, step float64) Polyline {
	if step <= 0 {
		step = 10
	}
	pts := Polyline{{DistanceMeters: 0, LateralOffsetPx: c.OffsetAt(0)}}
	for d := step; d < toMeters; d += step {
		pts = append(pts, PathPoint{DistanceMeters: d, LateralOffsetPx: c.OffsetAt(d)})
	}
	if toMeters > 0 {
		pts = append(pts, PathPoint{DistanceMeters: toMeters, LateralOffsetPx: c.OffsetAt(toMeters)})
	}
	return pts
}

// Window resamples any course between two distances. The first point keeps
// its real distance; callers use it for minimaps.
func Window(c Course, fromMeters, toMeters, step float64) Polyline {
	if step <= 0 {
		step = 10
	}
	var pts Polyline
	for d := math.Max(fromMeters, 0); d <= toMeters; d += step {
		pts = append(pts, PathPoint{DistanceMeters: d, LateralOffsetPx: c.OffsetAt(d)})
	}
	return pts
}
