// Package config provides YAML-based tuning, item catalogs, mission themes
// and upgrade maths for the ski run simulation.
package config

import "time"

// Millis is a duration expressed in milliseconds in YAML files.
type Millis int

// Duration converts the value to a time.Duration.
func (m Millis) Duration() time.Duration {
	return time.Duration(m) * time.Millisecond
}

// SkiConfig contains all tuning for the ski run simulation.
type SkiConfig struct {
	Track     TrackConfig     `yaml:"track"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Camera    CameraConfig    `yaml:"camera"`
	Jump      JumpConfig      `yaml:"jump"`
	Collision CollisionConfig `yaml:"collision"`
	Effects   EffectsConfig   `yaml:"effects"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Course    CourseConfig    `yaml:"course"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Upgrades  UpgradeConfig   `yaml:"upgrades"`
	Policy    PolicyConfig    `yaml:"policy"`
}

// TrackConfig defines the navigable corridor.
type TrackConfig struct {
	HalfWidthPx      float64 `yaml:"half_width_px"`
	ViewportMarginPx float64 `yaml:"viewport_margin_px"`
	OffPathPx        float64 `yaml:"off_path_px"`
	ScrollToMeters   float64 `yaml:"scroll_to_meters"`
}

// PhysicsConfig defines speed, steering and animation timing.
// Per-frame factors are expressed against ReferenceFPS and rescaled
// for other tick rates.
type PhysicsConfig struct {
	ReferenceFPS     int       `yaml:"reference_fps"`
	MinSpeed         float64   `yaml:"min_speed"`
	ScrollFactor     float64   `yaml:"scroll_factor"`
	AccelRamp        Millis    `yaml:"accel_ramp_ms"`
	AccelStep        Millis    `yaml:"accel_step_ms"`
	AccelIncrements  []float64 `yaml:"accel_increments"`
	TiltRamp         Millis    `yaml:"tilt_ramp_ms"`
	TurnSlowdown     float64   `yaml:"turn_slowdown"`
	DriftFactor      float64   `yaml:"drift_factor"`
	TiltDriftBoost   float64   `yaml:"tilt_drift_boost"`
	Stand            Millis    `yaml:"stand_ms"`
	Accelerate       Millis    `yaml:"accelerate_ms"`
	Stumble          Millis    `yaml:"stumble_ms"`
	RecoverAfter     Millis    `yaml:"recover_after_ms"`
	BoundarySignal   Millis    `yaml:"boundary_signal_ms"`
	BoundaryCooldown Millis    `yaml:"boundary_cooldown_ms"`
}

// CameraConfig defines pan and rotation easing.
type CameraConfig struct {
	EaseFactor      float64 `yaml:"ease_factor"`
	LookAheadMeters float64 `yaml:"look_ahead_m"`
	PanOffsetShare  float64 `yaml:"pan_offset_share"`
	RotationDeg     float64 `yaml:"rotation_deg"`
	SharpBoostDeg   float64 `yaml:"sharp_boost_deg"`
	RotationEase    float64 `yaml:"rotation_ease"`
	BendSpanMeters  float64 `yaml:"bend_span_m"`
	BendNormPx      float64 `yaml:"bend_norm_px"`
}

// JumpConfig defines the press-and-hold jump gesture.
type JumpConfig struct {
	HoldThreshold Millis `yaml:"hold_threshold_ms"`
	DoubleTap     Millis `yaml:"double_tap_ms"`
	SkipsPickups  bool   `yaml:"skips_pickups"`
}

// CollisionConfig defines hit-boxes and the candidate window.
type CollisionConfig struct {
	SkierHalfWidthPx float64 `yaml:"skier_half_width_px"`
	SkierAheadM      float64 `yaml:"skier_ahead_m"`
	SkierBehindM     float64 `yaml:"skier_behind_m"`
	VisualScale      float64 `yaml:"visual_scale"`
	TreeHitShare     float64 `yaml:"tree_hit_share"`
	CloseCallGapPx   float64 `yaml:"close_call_gap_px"`
	WindowBehindM    float64 `yaml:"window_behind_m"`
	WindowAheadM     float64 `yaml:"window_ahead_m"`
}

// EffectsConfig defines buff magnitudes and durations.
type EffectsConfig struct {
	SuperSpeedMultiplier  float64 `yaml:"super_speed_multiplier"`
	SpeedBoostAdd         float64 `yaml:"speed_boost_add"`
	ExtraLifeInvulnerable Millis  `yaml:"extra_life_invulnerable_ms"`
	Rocket                Millis  `yaml:"rocket_ms"`
}

// SpawnConfig defines the spawn planner's probability model and spacing.
type SpawnConfig struct {
	IntervalMeters       float64  `yaml:"interval_m"`
	JitterMeters         float64  `yaml:"jitter_m"`
	SceneChance          float64  `yaml:"scene_chance"`
	BaseObstacle         int      `yaml:"base_obstacle"`
	BaseGood             int      `yaml:"base_good"`
	BaseBad              int      `yaml:"base_bad"`
	PerLevelBonus        int      `yaml:"per_level_bonus"`
	ClusterTwoChance     float64  `yaml:"cluster_two_chance"`
	ClusterThreeChance   float64  `yaml:"cluster_three_chance"`
	ClusterSpacingMeters float64  `yaml:"cluster_spacing_m"`
	ClusterJitterMeters  float64  `yaml:"cluster_jitter_m"`
	MarginFactor         float64  `yaml:"margin_factor"`
	ClusterSpread        float64  `yaml:"cluster_spread"`
	RareDivisor          int      `yaml:"rare_divisor"`
	RareItems            []string `yaml:"rare_items"`
	ChunkMeters          float64  `yaml:"chunk_m"`
	LookaheadMeters      float64  `yaml:"lookahead_m"`

	// Turn banks line the edge of an upcoming turn, stepping inward.
	TurnBankItem        string  `yaml:"turn_bank_item"`
	TurnBankEveryMeters float64 `yaml:"turn_bank_every_m"`
	TurnBankAheadMeters float64 `yaml:"turn_bank_ahead_m"`
	TurnBankCount       int     `yaml:"turn_bank_count"`
	TurnBankStepMeters  float64 `yaml:"turn_bank_step_m"`
	TurnBankStepPx      float64 `yaml:"turn_bank_step_px"`
	TurnBankInsetPx     float64 `yaml:"turn_bank_inset_px"`
}

// CourseConfig defines path generation.
type CourseConfig struct {
	DriftPerMeter       float64 `yaml:"drift_per_meter"`
	StraightChance      float64 `yaml:"straight_chance"`
	Amp1                float64 `yaml:"amp1_px"`
	Period1             float64 `yaml:"period1_px"`
	Amp2                float64 `yaml:"amp2_px"`
	Period2             float64 `yaml:"period2_px"`
	TurnLookaheadMeters float64 `yaml:"turn_lookahead_m"`
	TurnThresholdPx     float64 `yaml:"turn_threshold_px"`
	MetersPerLevel      float64 `yaml:"meters_per_level"`
	SampleStepMeters    float64 `yaml:"sample_step_m"`
}

// ScoringConfig defines distance score and completion bonus.
type ScoringConfig struct {
	Interval          Millis  `yaml:"interval_ms"`
	PerSpeed          float64 `yaml:"per_speed"`
	BonusPer1000m     float64 `yaml:"bonus_per_1000m"`
	BonusPerIntensity float64 `yaml:"bonus_per_intensity"`
}

// UpgradeConfig defines upgrade limits, derived values and shop prices.
type UpgradeConfig struct {
	BaseMaxSpeed      float64 `yaml:"base_max_speed"`
	SpeedPerLevel     float64 `yaml:"speed_per_level"`
	MaxSpeedLevel     int     `yaml:"max_speed_level"`
	JumpBase          Millis  `yaml:"jump_base_ms"`
	JumpPerLevel      Millis  `yaml:"jump_per_level_ms"`
	JumpCap           Millis  `yaml:"jump_cap_ms"`
	MaxJumpLevel      int     `yaml:"max_jump_level"`
	MaxGoodSpawnLevel int     `yaml:"max_good_spawn_level"`
	MaxBadSpawnLevel  int     `yaml:"max_bad_spawn_level"`
	Prices            Prices  `yaml:"prices"`
}

// Prices defines shop costs. Level costs grow linearly: base + step*level.
type Prices struct {
	SpeedBase         int `yaml:"speed_base"`
	SpeedStep         int `yaml:"speed_step"`
	JumpBase          int `yaml:"jump_base"`
	JumpStep          int `yaml:"jump_step"`
	SpawnBase         int `yaml:"spawn_base"`
	SpawnStep         int `yaml:"spawn_step"`
	Rocket            int `yaml:"rocket"`
	ExtraLife         int `yaml:"extra_life"`
	GhostStart        int `yaml:"ghost_start"`
	GhostStartSeconds int `yaml:"ghost_start_seconds"`
}

// Boundary policies.
const (
	BoundaryDecelerate = "decelerate"
	BoundaryStumble    = "stumble"
)

// Crash policies.
const (
	CrashEndRun  = "end_run"
	CrashRecover = "recover"
)

// PolicyConfig selects boundary and crash behaviour.
type PolicyConfig struct {
	Boundary string `yaml:"boundary"`
	Crash    string `yaml:"crash"`
}

// GoodEffect names what a good item does besides adding points.
type GoodEffect string

// Good item effects.
const (
	EffectScore      GoodEffect = "score"
	EffectGhost      GoodEffect = "ghost"
	EffectSpeedBoost GoodEffect = "speed_boost"
	EffectRocket     GoodEffect = "inventory_rocket"
	EffectShield     GoodEffect = "inventory_shield"
	EffectSuperSpeed GoodEffect = "super_speed"
)

// GoodItemDef describes a pickup that helps the skier.
type GoodItemDef struct {
	ID       string     `yaml:"id"`
	Weight   int        `yaml:"weight"`
	Duration Millis     `yaml:"duration_ms"`
	Points   int        `yaml:"points"`
	Effect   GoodEffect `yaml:"effect"`
	Glyph    string     `yaml:"glyph"`
}

// BadItemDef describes a pickup that hurts the skier.
// A zero Duration applies SpeedMultiplier instantly to base speed.
type BadItemDef struct {
	ID              string  `yaml:"id"`
	Weight          int     `yaml:"weight"`
	Duration        Millis  `yaml:"duration_ms"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	ScorePenalty    int     `yaml:"score_penalty"`
	Glyph           string  `yaml:"glyph"`
}

// ObstacleDef describes a static obstacle. Sizes are in unscaled pixels.
type ObstacleDef struct {
	ID       string  `yaml:"id"`
	Weight   int     `yaml:"weight"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Tree     bool    `yaml:"tree"`
	ScaleMin float64 `yaml:"scale_min"`
	ScaleMax float64 `yaml:"scale_max"`
	Glyph    string  `yaml:"glyph"`
	// SlowOnly obstacles never knock the skier down; they cost speed
	// like the corridor wall.
	SlowOnly bool `yaml:"slow_only"`
}

// Catalog holds every item definition.
type Catalog struct {
	Good      []GoodItemDef `yaml:"good"`
	Bad       []BadItemDef  `yaml:"bad"`
	Obstacles []ObstacleDef `yaml:"obstacles"`
}

// GoodByID returns the good item with the given id.
func (c *Catalog) GoodByID(id string) (GoodItemDef, bool) {
	for _, it := range c.Good {
		if it.ID == id {
			return it, true
		}
	}
	return GoodItemDef{}, false
}

// BadByID returns the bad item with the given id.
func (c *Catalog) BadByID(id string) (BadItemDef, bool) {
	for _, it := range c.Bad {
		if it.ID == id {
			return it, true
		}
	}
	return BadItemDef{}, false
}

// ObstacleByID returns the obstacle with the given id.
func (c *Catalog) ObstacleByID(id string) (ObstacleDef, bool) {
	for _, it := range c.Obstacles {
		if it.ID == id {
			return it, true
		}
	}
	return ObstacleDef{}, false
}

// ScenarioTheme parameterises a generated mission.
type ScenarioTheme struct {
	ID             string  `yaml:"id"`
	Type           string  `yaml:"type"`
	Title          string  `yaml:"title"`
	DistanceMinM   float64 `yaml:"distance_min_m"`
	DistanceMaxM   float64 `yaml:"distance_max_m"`
	SegmentMinM    float64 `yaml:"segment_min_m"`
	SegmentMaxM    float64 `yaml:"segment_max_m"`
	CurveIntensity float64 `yaml:"curve_intensity"`
}

// Scenarios is the set of mission themes.
type Scenarios struct {
	Themes []ScenarioTheme `yaml:"scenarios"`
}
