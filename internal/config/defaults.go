package config

import (
	_ "embed"
)

//go:embed defaults/ski.yaml
var defaultSkiYAML []byte

//go:embed defaults/items.yaml
var defaultItemsYAML []byte

//go:embed defaults/scenarios.yaml
var defaultScenariosYAML []byte

// DefaultSkiConfig returns the default ski tuning.
func DefaultSkiConfig() SkiConfig {
	return SkiConfig{
		Track: TrackConfig{
			HalfWidthPx:      250,
			ViewportMarginPx: 44,
			OffPathPx:        90,
			ScrollToMeters:   0.1,
		},
		Physics: PhysicsConfig{
			ReferenceFPS:     60,
			MinSpeed:         5,
			ScrollFactor:     0.18,
			AccelRamp:        260,
			AccelStep:        120,
			AccelIncrements:  []float64{1, 2, 5},
			TiltRamp:         260,
			TurnSlowdown:     0.1,
			DriftFactor:      0.038,
			TiltDriftBoost:   0.9,
			Stand:            800,
			Accelerate:       400,
			Stumble:          500,
			RecoverAfter:     2000,
			BoundarySignal:   2000,
			BoundaryCooldown: 600,
		},
		Camera: CameraConfig{
			EaseFactor:      0.065,
			LookAheadMeters: 18,
			PanOffsetShare:  0.4,
			RotationDeg:     2.5,
			SharpBoostDeg:   1.2,
			RotationEase:    0.08,
			BendSpanMeters:  30,
			BendNormPx:      4,
		},
		Jump: JumpConfig{
			HoldThreshold: 200,
			DoubleTap:     400,
		},
		Collision: CollisionConfig{
			SkierHalfWidthPx: 16.7,
			SkierAheadM:      1.8,
			SkierBehindM:     6.8,
			VisualScale:      0.333,
			TreeHitShare:     0.333,
			CloseCallGapPx:   18,
			WindowBehindM:    20,
			WindowAheadM:     10,
		},
		Effects: EffectsConfig{
			SuperSpeedMultiplier:  2,
			SpeedBoostAdd:         40,
			ExtraLifeInvulnerable: 1800,
			Rocket:                5000,
		},
		Spawn: SpawnConfig{
			IntervalMeters:       58,
			JitterMeters:         3,
			SceneChance:          0.55,
			BaseObstacle:         52,
			BaseGood:             32,
			BaseBad:              16,
			PerLevelBonus:        2,
			ClusterTwoChance:     0.22,
			ClusterThreeChance:   0.06,
			ClusterSpacingMeters: 1.5,
			ClusterJitterMeters:  2,
			MarginFactor:         0.65,
			ClusterSpread:        1.6,
			RareDivisor:          3,
			RareItems:            []string{"ghost", "rocket"},
			ChunkMeters:          10000,
			LookaheadMeters:      500,
			TurnBankItem:         "snow-bank",
			TurnBankEveryMeters:  40,
			TurnBankAheadMeters:  12,
			TurnBankCount:        4,
			TurnBankStepMeters:   8,
			TurnBankStepPx:       100,
			TurnBankInsetPx:      50,
		},
		Course: CourseConfig{
			DriftPerMeter:       0.08,
			StraightChance:      0.2,
			Amp1:                95,
			Period1:             420,
			Amp2:                65,
			Period2:             280,
			TurnLookaheadMeters: 400,
			TurnThresholdPx:     18,
			MetersPerLevel:      1000,
			SampleStepMeters:    10,
		},
		Scoring: ScoringConfig{
			Interval:          200,
			PerSpeed:          0.04,
			BonusPer1000m:     50,
			BonusPerIntensity: 100,
		},
		Upgrades: UpgradeConfig{
			BaseMaxSpeed:      50,
			SpeedPerLevel:     5,
			MaxSpeedLevel:     30,
			JumpBase:          700,
			JumpPerLevel:      100,
			JumpCap:           5000,
			MaxJumpLevel:      43,
			MaxGoodSpawnLevel: 5,
			MaxBadSpawnLevel:  5,
			Prices: Prices{
				SpeedBase:         600,
				SpeedStep:         150,
				JumpBase:          800,
				JumpStep:          180,
				SpawnBase:         400,
				SpawnStep:         120,
				Rocket:            200,
				ExtraLife:         450,
				GhostStart:        150,
				GhostStartSeconds: 12,
			},
		},
		Policy: PolicyConfig{
			Boundary: BoundaryDecelerate,
			Crash:    CrashEndRun,
		},
	}
}

// DefaultCatalog returns a minimal built-in catalog used when the
// embedded YAML cannot be parsed.
func DefaultCatalog() Catalog {
	return Catalog{
		Good: []GoodItemDef{
			{ID: "star", Weight: 12, Points: 50, Effect: EffectScore, Glyph: "*"},
			{ID: "ghost", Weight: 5, Duration: 5000, Effect: EffectGhost, Glyph: "G"},
			{ID: "mushroom", Weight: 8, Duration: 10000, Effect: EffectSpeedBoost, Glyph: "m"},
		},
		Bad: []BadItemDef{
			{ID: "turtle", Weight: 10, SpeedMultiplier: 0.5, Glyph: "t"},
			{ID: "lemon", Weight: 8, Duration: 2000, SpeedMultiplier: 0.4, Glyph: "l"},
		},
		Obstacles: []ObstacleDef{
			{ID: "rock-small1", Weight: 10, Width: 44, Height: 44, ScaleMin: 2, ScaleMax: 3, Glyph: "o"},
			{ID: "tree-small1", Weight: 10, Width: 120, Height: 160, ScaleMin: 1, ScaleMax: 1.25, Tree: true, Glyph: "^"},
			{ID: "snow-bank", Width: 300, Height: 60, ScaleMin: 1, ScaleMax: 1, Glyph: "~", SlowOnly: true},
		},
	}
}

// DefaultScenarios returns a single built-in mission theme.
func DefaultScenarios() Scenarios {
	return Scenarios{Themes: []ScenarioTheme{{
		ID:             "reach",
		Type:           "reach",
		Title:          "Reach the valley before dark",
		DistanceMinM:   2500,
		DistanceMaxM:   4000,
		SegmentMinM:    200,
		SegmentMaxM:    500,
		CurveIntensity: 0.4,
	}}}
}

// Names lists the config files the loader looks up, without extension.
var Names = []string{"ski", "items", "scenarios"}

// GetDefaultYAML returns the embedded default YAML for a config name,
// or nil for an unknown name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "ski":
		return defaultSkiYAML
	case "items":
		return defaultItemsYAML
	case "scenarios":
		return defaultScenariosYAML
	default:
		return nil
	}
}
