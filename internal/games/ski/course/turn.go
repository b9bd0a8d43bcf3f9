package course

import (
	"math"

	"github.com/vovakirdan/badski/internal/core"
)

// Turn is the direction the course bends toward ahead of the skier.
type Turn int

const (
	TurnStraight Turn = iota
	TurnLeft
	TurnRight
)

func (t Turn) String() string {
	switch t {
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	default:
		return "straight"
	}
}

// TurnAhead compares the center offset now and lookahead meters ahead.
// Moves larger than thresholdPx count as a turn.
func TurnAhead(c Course, d, lookahead, thresholdPx float64) Turn {
	if p, ok := c.(Polyline); ok && !p.Usable() {
		return TurnStraight
	}
	delta := c.OffsetAt(d+lookahead) - c.OffsetAt(d)
	switch {
	case delta > thresholdPx:
		return TurnRight
	case delta < -thresholdPx:
		return TurnLeft
	default:
		return TurnStraight
	}
}

// Bend returns the local curvature around d as a value in [-1, 1].
// It is the second difference over two spans divided by normPx;
// positive bends right.
func Bend(c Course, d, spanMeters, normPx float64) float64 {
	if spanMeters <= 0 || normPx <= 0 {
		return 0
	}
	x0 := c.OffsetAt(d)
	x1 := c.OffsetAt(d + spanMeters)
	x2 := c.OffsetAt(d + 2*spanMeters)
	return core.Clamp((x2-2*x1+x0)/normPx, -1, 1)
}

// OffPath reports whether a skier this far from the center has left the line.
func OffPath(offsetFromCenterPx, thresholdPx float64) bool {
	return math.Abs(offsetFromCenterPx) > thresholdPx
}
