package ski

import (
	"github.com/vovakirdan/badski/internal/config"
	"github.com/vovakirdan/badski/internal/core"
	"github.com/vovakirdan/badski/internal/games/ski/course"
)

// Camera is the eased view transform. Pan is a world lateral position in
// pixels, Rotation is in degrees.
type Camera struct {
	Pan      float64
	Rotation float64
}

// PanTarget is where the camera wants to be: the path center a little
// ahead of the skier, pulled toward the skier's own offset.
func PanTarget(c course.Course, cfg config.CameraConfig, distance, offset float64) float64 {
	return c.OffsetAt(distance+cfg.LookAheadMeters) + offset*cfg.PanOffsetShare
}

// RotationTarget follows local curvature with a cubic boost for sharp bends.
func RotationTarget(c course.Course, cfg config.CameraConfig, distance float64) float64 {
	b := course.Bend(c, distance, cfg.BendSpanMeters, cfg.BendNormPx)
	return b*cfg.RotationDeg + b*b*b*cfg.SharpBoostDeg
}

// Follow eases the camera toward its targets over frames reference frames.
func (cam *Camera) Follow(c course.Course, cfg config.CameraConfig, distance, offset, frames float64) {
	cam.Pan = core.Ease(cam.Pan, PanTarget(c, cfg, distance, offset), cfg.EaseFactor, frames)
	cam.Rotation = core.Ease(cam.Rotation, RotationTarget(c, cfg, distance), cfg.RotationEase, frames)
}

// Snap places the camera on its targets immediately.
func (cam *Camera) Snap(c course.Course, cfg config.CameraConfig, distance, offset float64) {
	cam.Pan = PanTarget(c, cfg, distance, offset)
	cam.Rotation = RotationTarget(c, cfg, distance)
}
