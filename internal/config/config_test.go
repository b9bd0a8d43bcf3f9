package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSkiEmbedded(t *testing.T) {
	cfg, err := LoadSki("")
	if err != nil {
		t.Fatalf("LoadSki() error = %v", err)
	}
	if cfg.Track.HalfWidthPx != 250 {
		t.Errorf("HalfWidthPx = %v, want 250", cfg.Track.HalfWidthPx)
	}
	if cfg.Physics.AccelRamp.Duration() != 260*time.Millisecond {
		t.Errorf("AccelRamp = %v, want 260ms", cfg.Physics.AccelRamp.Duration())
	}
	if cfg.Policy.Crash != CrashEndRun {
		t.Errorf("Crash policy = %q, want %q", cfg.Policy.Crash, CrashEndRun)
	}
}

func TestLoadSkiCustomPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ski.yaml")
	data := []byte("track:\n  half_width_px: 120\npolicy:\n  boundary: stumble\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSki(path)
	if err != nil {
		t.Fatalf("LoadSki() error = %v", err)
	}
	if cfg.Track.HalfWidthPx != 120 {
		t.Errorf("HalfWidthPx = %v, want 120", cfg.Track.HalfWidthPx)
	}
	if cfg.Policy.Boundary != BoundaryStumble {
		t.Errorf("Boundary = %q, want %q", cfg.Policy.Boundary, BoundaryStumble)
	}
	// Untouched sections keep their defaults.
	if cfg.Physics.MinSpeed != 5 {
		t.Errorf("MinSpeed = %v, want 5", cfg.Physics.MinSpeed)
	}
}

func TestLoadSkiMissingCustomPath(t *testing.T) {
	_, err := LoadSki(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
}

func TestLoadSkiBrokenCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ski.yaml")
	if err := os.WriteFile(path, []byte("track: [half_width_px"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSki(path); err == nil {
		t.Fatal("expected error for unparsable custom config")
	}
}

func TestDecodeIntoKeepsValueOnError(t *testing.T) {
	cfg := DefaultSkiConfig()
	// half_width_px decodes fine but min_speed is a type error
	data := []byte("track:\n  half_width_px: 120\nphysics:\n  min_speed: fast\n")
	if err := decodeInto(data, &cfg); err == nil {
		t.Fatal("decodeInto() should fail on a type error")
	}
	if cfg.Track.HalfWidthPx != DefaultSkiConfig().Track.HalfWidthPx {
		t.Errorf("HalfWidthPx = %v, a failed decode must not apply", cfg.Track.HalfWidthPx)
	}
}

func TestLoadCatalog(t *testing.T) {
	cat, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(cat.Good) != 9 || len(cat.Bad) != 7 {
		t.Errorf("got %d good / %d bad items, want 9 / 7", len(cat.Good), len(cat.Bad))
	}

	bomb, ok := cat.BadByID("bomb")
	if !ok {
		t.Fatal("bomb missing from catalog")
	}
	if bomb.ScorePenalty != 80 {
		t.Errorf("bomb penalty = %d, want 80", bomb.ScorePenalty)
	}

	tree, ok := cat.ObstacleByID("tree-big1")
	if !ok || !tree.Tree {
		t.Errorf("tree-big1 = %+v, ok=%v; want a tree", tree, ok)
	}

	for _, id := range []string{"snow-bank", "snow-pile"} {
		if def, ok := cat.ObstacleByID(id); !ok || !def.SlowOnly || def.Weight != 0 {
			t.Errorf("%s = %+v, ok=%v; want an unweighted slow-only obstacle", id, def, ok)
		}
	}
	if rock, _ := cat.ObstacleByID("rock-big1"); rock.SlowOnly {
		t.Error("rocks should knock the skier down")
	}

	if _, ok := cat.GoodByID("missing"); ok {
		t.Error("GoodByID(missing) should report false")
	}
}

func TestLoadScenarios(t *testing.T) {
	sc, err := LoadScenarios("")
	if err != nil {
		t.Fatalf("LoadScenarios() error = %v", err)
	}
	if len(sc.Themes) != 5 {
		t.Fatalf("got %d themes, want 5", len(sc.Themes))
	}
	for _, th := range sc.Themes {
		if th.DistanceMaxM <= th.DistanceMinM {
			t.Errorf("theme %s has empty distance range", th.ID)
		}
	}
}

func TestUpgradesClamp(t *testing.T) {
	cfg := DefaultSkiConfig().Upgrades
	u := Upgrades{SpeedLevel: 99, JumpLevel: -3, GoodSpawnLevel: 7, BadSpawnLevel: -1, Rockets: -2}.Clamp(cfg)

	if u.SpeedLevel != 30 || u.JumpLevel != 0 || u.GoodSpawnLevel != 5 || u.BadSpawnLevel != 0 || u.Rockets != 0 {
		t.Errorf("Clamp() = %+v", u)
	}
}

func TestUpgradesDerived(t *testing.T) {
	cfg := DefaultSkiConfig().Upgrades

	tests := []struct {
		name      string
		u         Upgrades
		wantSpeed float64
		wantJump  time.Duration
	}{
		{"base", Upgrades{}, 50, 700 * time.Millisecond},
		{"mid", Upgrades{SpeedLevel: 10, JumpLevel: 3}, 100, time.Second},
		{"max", Upgrades{SpeedLevel: 30, JumpLevel: 43}, 200, 5 * time.Second},
		{"over", Upgrades{SpeedLevel: 50, JumpLevel: 90}, 200, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.u.MaxSpeed(cfg); got != tt.wantSpeed {
				t.Errorf("MaxSpeed() = %v, want %v", got, tt.wantSpeed)
			}
			if got := tt.u.JumpDuration(cfg); got != tt.wantJump {
				t.Errorf("JumpDuration() = %v, want %v", got, tt.wantJump)
			}
		})
	}
}

func TestUpgradesCostAndApply(t *testing.T) {
	cfg := DefaultSkiConfig().Upgrades

	u := Upgrades{SpeedLevel: 2}
	cost, ok := u.Cost(UpgradeSpeed, cfg)
	if !ok || cost != 900 {
		t.Errorf("speed cost = %d, %v; want 900, true", cost, ok)
	}
	u = u.Apply(UpgradeSpeed, cfg)
	if u.SpeedLevel != 3 {
		t.Errorf("SpeedLevel = %d, want 3", u.SpeedLevel)
	}

	maxed := Upgrades{GoodSpawnLevel: 5}
	if _, ok := maxed.Cost(UpgradeGoodSpawn, cfg); ok {
		t.Error("maxed good spawn should not be purchasable")
	}

	g := Upgrades{}.Apply(UpgradeGhost, cfg)
	if g.StartGhostSeconds != 12 || !g.ReduceRareDrop() {
		t.Errorf("ghost start = %+v", g)
	}
}

func TestPlayerLevel(t *testing.T) {
	tests := []struct {
		earned int
		want   int
	}{
		{0, 1},
		{999, 1},
		{1000, 2},
		{2999, 2},
		{3000, 3},
		{9000, 4},
		{27000, 5},
	}
	for _, tt := range tests {
		if got := PlayerLevel(tt.earned); got != tt.want {
			t.Errorf("PlayerLevel(%d) = %d, want %d", tt.earned, got, tt.want)
		}
	}
	if got := TotalEarnedForLevel(4); got != 9000 {
		t.Errorf("TotalEarnedForLevel(4) = %d, want 9000", got)
	}
}

func TestDefaultYAMLNames(t *testing.T) {
	for _, name := range Names {
		if len(GetDefaultYAML(name)) == 0 {
			t.Errorf("GetDefaultYAML(%q) is empty", name)
		}
	}
	if GetDefaultYAML("weather") != nil {
		t.Error("unknown names should have no default")
	}
}
