package ski

import (
	"math"
	"testing"

	"github.com/vovakirdan/badski/internal/config"
	"github.com/vovakirdan/badski/internal/games/ski/course"
)

func diagonal() course.Polyline {
	return course.Polyline{
		{DistanceMeters: 0, LateralOffsetPx: 0},
		{DistanceMeters: 1000, LateralOffsetPx: 1000},
	}
}

// elbow runs straight for 100m, then bends by slope right (or left when
// slope is negative).
func elbow(slope float64) course.Polyline {
	return course.Polyline{
		{DistanceMeters: 0, LateralOffsetPx: 0},
		{DistanceMeters: 100, LateralOffsetPx: 0},
		{DistanceMeters: 200, LateralOffsetPx: 100 * slope},
	}
}

func TestPanTarget(t *testing.T) {
	cfg := config.DefaultSkiConfig().Camera

	tests := []struct {
		name     string
		distance float64
		offset   float64
		want     float64
	}{
		{"looks ahead", 10, 0, 28},
		{"pulled by offset", 10, 50, 28 + 50*cfg.PanOffsetShare},
		{"pulled left", 10, -50, 28 - 50*cfg.PanOffsetShare},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PanTarget(diagonal(), cfg, tt.distance, tt.offset)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PanTarget = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotationTarget(t *testing.T) {
	cfg := config.DefaultSkiConfig().Camera
	full := cfg.RotationDeg + cfg.SharpBoostDeg

	tests := []struct {
		name     string
		path     course.Polyline
		distance float64
		want     float64
	}{
		{"straight", diagonal(), 50, 0},
		{"sharp right", elbow(1), 70, full},
		{"sharp left", elbow(-1), 70, -full},
		{"after the bend", elbow(1), 120, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RotationTarget(tt.path, cfg, tt.distance)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RotationTarget = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotationTargetCubicBoost(t *testing.T) {
	cfg := config.DefaultSkiConfig().Camera
	// At 70m the second difference is 30px; this norm makes the bend 0.5.
	cfg.BendNormPx = 60

	got := RotationTarget(elbow(1), cfg, 70)
	want := 0.5*cfg.RotationDeg + 0.125*cfg.SharpBoostDeg
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("RotationTarget = %v, want %v", got, want)
	}
	if got >= cfg.RotationDeg+cfg.SharpBoostDeg {
		t.Error("a mild bend should rotate less than a sharp one")
	}
}

func TestCameraFollowEases(t *testing.T) {
	cfg := config.DefaultSkiConfig().Camera
	path := elbow(1)
	target := PanTarget(path, cfg, 90, 0)
	rotTarget := RotationTarget(path, cfg, 90)

	var cam Camera
	prev := cam
	for i := 0; i < 300; i++ {
		cam.Follow(path, cfg, 90, 0, 1)
		if cam.Pan < prev.Pan || cam.Pan > target+1e-9 {
			t.Fatalf("frame %d: pan %v left [%v, %v]", i, cam.Pan, prev.Pan, target)
		}
		if cam.Rotation < prev.Rotation || cam.Rotation > rotTarget+1e-9 {
			t.Fatalf("frame %d: rotation %v left [%v, %v]", i, cam.Rotation, prev.Rotation, rotTarget)
		}
		prev = cam
	}
	if math.Abs(cam.Pan-target) > 1e-3 || math.Abs(cam.Rotation-rotTarget) > 1e-3 {
		t.Errorf("camera = %+v, want settled on (%v, %v)", cam, target, rotTarget)
	}
}

func TestCameraFollowFrameRateIndependent(t *testing.T) {
	cfg := config.DefaultSkiConfig().Camera
	path := elbow(1)

	var fine, coarse Camera
	fine.Follow(path, cfg, 70, 20, 1)
	fine.Follow(path, cfg, 70, 20, 1)
	coarse.Follow(path, cfg, 70, 20, 2)

	if math.Abs(fine.Pan-coarse.Pan) > 1e-9 || math.Abs(fine.Rotation-coarse.Rotation) > 1e-9 {
		t.Errorf("two single frames %+v differ from one double frame %+v", fine, coarse)
	}
}

func TestCameraSnap(t *testing.T) {
	cfg := config.DefaultSkiConfig().Camera
	path := elbow(-1)

	var cam Camera
	cam.Snap(path, cfg, 70, -30)
	if cam.Pan != PanTarget(path, cfg, 70, -30) || cam.Rotation != RotationTarget(path, cfg, 70) {
		t.Errorf("Snap = %+v, want targets", cam)
	}
}
