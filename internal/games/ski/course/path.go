// Package course generates the lateral shape of a ski course: a polyline for
// missions and a closed-form sinusoid course for free runs.
package course

import (
	"math"
	"sort"

	"github.com/vovakirdan/badski/internal/config"
)

// RNG is the random source used by generators. *rand.Rand satisfies it.
type RNG interface {
	Float64() float64
}

// Course maps distance traveled to the lateral offset of the track center.
type Course interface {
	OffsetAt(distanceMeters float64) float64
}

// PathPoint is one vertex of a course polyline.
type PathPoint struct {
	DistanceMeters  float64 `yaml:"distance_m"`
	LateralOffsetPx float64 `yaml:"offset_px"`
}

// Polyline is a distance-ordered list of path points.
// Distances are strictly increasing and the first point is (0, 0).
type Polyline []PathPoint

// Params controls mission path generation.
type Params struct {
	SegmentMin     float64 // meters
	SegmentMax     float64 // meters
	CurveIntensity float64
	DriftPerMeter  float64 // px of drift per meter at curve 1
	StraightChance float64
}

// ParamsFor builds generation params from a mission theme.
func ParamsFor(theme config.ScenarioTheme, cfg config.CourseConfig) Params {
	return Params{
		SegmentMin:     theme.SegmentMinM,
		SegmentMax:     theme.SegmentMaxM,
		CurveIntensity: theme.CurveIntensity,
		DriftPerMeter:  cfg.DriftPerMeter,
		StraightChance: cfg.StraightChance,
	}
}

// Generate builds a mission path of exactly targetMeters.
// Each segment draws a length in [min, max) and a curvature that is zero
// with StraightChance, otherwise uniform in [-intensity, intensity].
func Generate(p Params, targetMeters float64, rng RNG) Polyline {
	path := Polyline{{DistanceMeters: 0, LateralOffsetPx: 0}}
	if targetMeters <= 0 {
		return path
	}

	minLen := math.Max(p.SegmentMin, 1)
	maxLen := math.Max(p.SegmentMax, minLen)

	var dist, offset float64
	for dist < targetMeters {
		length := minLen + math.Floor(rng.Float64()*(maxLen-minLen))
		remaining := targetMeters - dist
		clipped := length >= remaining
		if clipped {
			length = remaining
		}

		curve := 0.0
		if rng.Float64() >= p.StraightChance {
			curve = (rng.Float64() - 0.5) * 2 * p.CurveIntensity
		}

		offset += curve * length * p.DriftPerMeter
		if clipped {
			dist = targetMeters
		} else {
			dist += length
		}
		path = append(path, PathPoint{DistanceMeters: dist, LateralOffsetPx: offset})
	}
	return path
}

// OffsetAt linearly interpolates the center offset at a distance.
// Distances outside the path clamp to its first or last point.
func (p Polyline) OffsetAt(d float64) float64 {
	switch len(p) {
	case 0:
		return 0
	case 1:
		return p[0].LateralOffsetPx
	}
	if d <= p[0].DistanceMeters {
		return p[0].LateralOffsetPx
	}
	last := p[len(p)-1]
	if d >= last.DistanceMeters {
		return last.LateralOffsetPx
	}

	i := sort.Search(len(p), func(i int) bool { return p[i].DistanceMeters >= d })
	a, b := p[i-1], p[i]
	span := b.DistanceMeters - a.DistanceMeters
	if span <= 0 {
		return b.LateralOffsetPx
	}
	t := (d - a.DistanceMeters) / span
	return a.LateralOffsetPx + t*(b.LateralOffsetPx-a.LateralOffsetPx)
}

// Length returns the distance of the last point.
func (p Polyline) Length() float64 {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1].DistanceMeters
}

// Usable reports whether the polyline can drive a course on its own.
func (p Polyline) Usable() bool {
	return len(p) >= 2
}
