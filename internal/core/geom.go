// Package core provides fundamental types and utilities for the ski arcade.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"cmp"
	"math"
)

// Rect represents an axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Span is an interval [Lo, Hi] on one world axis.
type Span struct {
	Lo, Hi float64
}

// SpanAround returns the span of the given half-width centered on c.
func SpanAround(c, half float64) Span {
	return Span{Lo: c - half, Hi: c + half}
}

// Overlaps reports whether the open interiors of two spans intersect.
// Touching edges do not count.
func (s Span) Overlaps(o Span) bool {
	return s.Lo < o.Hi && o.Lo < s.Hi
}

// Contains reports whether v lies within the closed span.
func (s Span) Contains(v float64) bool {
	return v >= s.Lo && v <= s.Hi
}

// Gap returns the distance between two spans, or 0 if they touch or overlap.
func (s Span) Gap(o Span) float64 {
	switch {
	case o.Lo >= s.Hi:
		return o.Lo - s.Hi
	case s.Lo >= o.Hi:
		return s.Lo - o.Hi
	default:
		return 0
	}
}

// Box is an axis-aligned box in world space.
// X is the lateral axis in pixels, Y is distance along the track in meters.
type Box struct {
	X, Y Span
}

// Overlaps returns true if this box intersects another.
func (b Box) Overlaps(o Box) bool {
	return b.X.Overlaps(o.X) && b.Y.Overlaps(o.Y)
}

// Ease moves current toward target by an exponential factor applied
// frames times. A factor in (0, 1] never overshoots.
func Ease(current, target, factor, frames float64) float64 {
	if factor <= 0 || frames <= 0 {
		return current
	}
	if factor >= 1 {
		return target
	}
	k := 1 - math.Pow(1-factor, frames)
	return current + (target-current)*k
}

// Clamp restricts v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
