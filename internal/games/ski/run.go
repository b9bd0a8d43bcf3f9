package ski

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/badski/internal/config"
	"github.com/vovakirdan/badski/internal/core"
	"github.com/vovakirdan/badski/internal/games/ski/course"
	"github.com/vovakirdan/badski/internal/games/ski/spawn"
)

// Setup is everything a run is started from.
type Setup struct {
	Mode        Mode
	Upgrades    config.Upgrades
	PlayerLevel int

	// Mission is used as-is in mission mode. When nil a mission is generated
	// from the scenario themes and Seed.
	Mission *course.Mission

	// ThemeID pins the generated mission to one scenario theme.
	ThemeID string

	// Entries replaces the generated spawn plan when FixedPlan is set.
	Entries   []spawn.Entry
	FixedPlan bool

	Seed           int64
	TickRate       int
	ViewportHalfPx float64
}

// Run owns one run's state and advances it one tick at a time.
// It is not safe for concurrent use.
type Run struct {
	cfg      config.SkiConfig
	cat      config.Catalog
	themes   []config.ScenarioTheme
	planner  *spawn.Planner
	reporter Reporter

	setup   Setup
	mission *course.Mission
	course  course.Course
	plan    *spawn.Plan
	opts    spawn.Options
	rng     *rand.Rand

	dt       time.Duration
	half     float64
	jumpTime time.Duration

	state    RunState
	controls Controls
	phase    Phase
	reported bool
	nearMiss map[int]bool
	err      error
}

// NewRun creates an idle run controller. reporter may be nil.
func NewRun(cfg config.SkiConfig, cat config.Catalog, themes []config.ScenarioTheme, reporter Reporter) *Run {
	return &Run{
		cfg:      cfg,
		cat:      cat,
		themes:   themes,
		planner:  spawn.NewPlanner(cfg, cat),
		reporter: reporter,
	}
}

// SetReporter replaces the reporter for subsequent events.
func (r *Run) SetReporter(rep Reporter) {
	r.reporter = rep
}

// Start begins a new run.
func (r *Run) Start(setup Setup) {
	setup.Upgrades = setup.Upgrades.Clamp(r.cfg.Upgrades)
	setup.PlayerLevel = max(setup.PlayerLevel, 1)
	r.setup = setup

	r.dt = core.RuntimeConfig{TickRate: setup.TickRate}.TickInterval()
	r.half = BoundaryHalfWidth(r.cfg.Track, setup.ViewportHalfPx)
	r.jumpTime = setup.Upgrades.JumpDuration(r.cfg.Upgrades)

	procedural := course.NewProcedural(r.cfg.Course, r.cfg.Track.ScrollToMeters)
	r.mission = nil
	r.course = procedural
	if setup.Mode == ModeMission {
		m := r.resolveMission()
		r.mission = &m
		r.course = m.Course(procedural)
	}

	r.opts = spawn.OptionsFor(setup.Upgrades, setup.PlayerLevel, r.half)
	r.opts.TurnBanks = setup.Mode != ModeRoadTest
	r.reset()
}

func (r *Run) resolveMission() course.Mission {
	if r.setup.Mission != nil && r.setup.Mission.TargetDistanceMeters > 0 {
		return *r.setup.Mission
	}
	rng := rand.New(rand.NewSource(r.setup.Seed))
	theme := course.PickTheme(r.themes, rng)
	for _, t := range r.themes {
		if r.setup.ThemeID != "" && t.ID == r.setup.ThemeID {
			theme = t
			break
		}
	}
	return course.NewMission(theme, r.cfg.Course, r.setup.PlayerLevel, rng)
}

// reset rebuilds run state and the spawn plan from r.setup.
func (r *Run) reset() {
	u := r.setup.Upgrades
	p := r.cfg.Physics

	r.state = RunState{
		Speed:       p.MinSpeed,
		MaxSpeed:    u.MaxSpeed(r.cfg.Upgrades),
		Rockets:     u.Rockets,
		ExtraLives:  u.ExtraLives,
		Anim:        AnimStanding,
		animUntil:   p.Stand.Duration(),
		Buffs:       NewBuffs(),
		nextScoreAt: r.cfg.Scoring.Interval.Duration(),
	}
	r.controls.Reset()
	r.nearMiss = make(map[int]bool)
	r.reported = false
	r.phase = PhaseRunning

	r.rng = rand.New(rand.NewSource(r.setup.Seed + 1))
	switch {
	case r.setup.FixedPlan:
		end := 0.0
		if r.mission != nil {
			end = r.mission.TargetDistanceMeters
		}
		for _, e := range r.setup.Entries {
			end = math.Max(end, e.DistanceMeters)
		}
		r.plan = spawn.NewPlan(append([]spawn.Entry(nil), r.setup.Entries...), end)
	case r.mission != nil:
		target := r.mission.TargetDistanceMeters
		r.plan = spawn.NewPlan(r.planner.Plan(r.course, 0, target, r.opts, r.rng, 1), target)
	default:
		chunk := r.cfg.Spawn.ChunkMeters
		r.plan = spawn.NewPlan(r.planner.Plan(r.course, 0, chunk, r.opts, r.rng, 1), chunk)
	}

	if secs := u.StartGhostSeconds; secs > 0 {
		r.state.Buffs.GhostUntil = time.Duration(secs) * time.Second
		r.setup.Upgrades.StartGhostSeconds = 0
		r.inventory(InventoryDelta{GhostStartUsed: true})
	}

	r.state.Camera.Snap(r.course, r.cfg.Camera, 0, 0)
}

// Restart abandons the current run and starts again from the same seed,
// carrying over whatever inventory is left. Front ends restart through
// Game.Reset instead, which draws a new seed and reloads the profile.
func (r *Run) Restart() {
	if r.phase == PhaseRunning {
		r.finish(true)
	}
	r.setup.Upgrades.Rockets = r.state.Rockets
	r.setup.Upgrades.ExtraLives = r.state.ExtraLives
	r.reset()
}

// Exit reports the run if it has not been reported yet and goes idle.
func (r *Run) Exit() {
	if r.phase == PhaseRunning {
		r.finish(true)
	}
	r.phase = PhaseIdle
}

// ReleaseControls drops every held control without firing release
// actions such as a pending jump.
func (r *Run) ReleaseControls() {
	r.controls.Reset()
}

// Step advances the run by one tick.
func (r *Run) Step(in core.InputFrame) core.StepResult {
	if r.phase != PhaseRunning {
		return core.StepResult{State: r.GameState()}
	}
	s := &r.state

	r.applyInput(in)
	s.Now += r.dt
	s.PrevDistance = s.Distance

	r.advanceAnim()
	r.refund(s.Buffs.Expire(s.Now))
	r.steer()

	frames := r.frames(r.dt)
	if s.Paused() {
		s.Tilt = 0
		r.skipScoreTicks()
	} else {
		r.integrate(frames)
		r.ensurePlanned()
		if !s.Paused() {
			r.resolveCollisions()
		}
	}

	s.Camera.Follow(r.course, r.cfg.Camera, s.Distance, s.Offset, frames)
	r.checkWin()

	return core.StepResult{State: r.GameState()}
}

func (r *Run) applyInput(in core.InputFrame) {
	s := &r.state
	c := &r.controls
	now := s.Now

	for _, side := range []core.Action{core.ActionLeft, core.ActionRight} {
		h := &c.left
		if side == core.ActionRight {
			h = &c.right
		}
		if in.Has(side) && h.press(now) {
			c.lastSide = side
		}
		if in.HasRelease(side) {
			h.release(now)
		}
	}

	if in.Has(core.ActionAccelerate) && c.accel.press(now) {
		s.nextAccelAt = now + r.cfg.Physics.AccelStep.Duration()
		if s.Anim == AnimStanding {
			s.Anim = AnimAccelerating
			s.animUntil = now + r.cfg.Physics.Accelerate.Duration()
		}
	}
	if in.HasRelease(core.ActionAccelerate) {
		c.accel.release(now)
	}

	if in.Has(core.ActionRocket) {
		r.fireRocket()
	}

	if in.Has(core.ActionJump) && c.jump.press(now) {
		c.jumpFired = false
		if c.jumped && now-c.lastJump <= r.cfg.Jump.DoubleTap.Duration() && r.fireRocket() {
			c.jumpFired = true
		}
		c.lastJump, c.jumped = now, true
	}
	if in.HasRelease(core.ActionJump) {
		held, ok := c.jump.release(now)
		if ok && !c.jumpFired && held >= r.cfg.Jump.HoldThreshold.Duration() {
			r.startJump()
		}
	}
}

func (r *Run) startJump() {
	s := &r.state
	if !s.Anim.Grounded() || s.Paused() {
		return
	}
	s.Anim = AnimJumping
	s.animUntil = s.Now + r.jumpTime
}

// fireRocket spends a rocket charge on super-speed.
func (r *Run) fireRocket() bool {
	s := &r.state
	if s.Rockets <= 0 || s.Paused() {
		return false
	}
	s.Rockets--
	s.Buffs.SuperUntil = max(s.Buffs.SuperUntil, s.Now+r.cfg.Effects.Rocket.Duration())
	r.inventory(InventoryDelta{Rockets: -1})
	return true
}

// advanceAnim fires the pending animation deadline, if due.
func (r *Run) advanceAnim() {
	s := &r.state
	if s.animUntil == 0 || s.Now < s.animUntil {
		return
	}
	s.animUntil = 0

	switch s.Anim {
	case AnimStanding, AnimAccelerating, AnimJumping:
		s.Anim = AnimSkiing
	case AnimStumbling:
		s.Anim = AnimFallen
		if r.crashPolicy() == config.CrashEndRun {
			r.lose()
			return
		}
		s.animUntil = s.Now + r.cfg.Physics.RecoverAfter.Duration()
	case AnimFallen:
		s.Anim = AnimSkiing
		s.Speed = r.cfg.Physics.MinSpeed
	}
}

func (r *Run) crashPolicy() string {
	if r.setup.Mode == ModeRoadTest {
		return config.CrashRecover
	}
	if r.cfg.Policy.Crash == config.CrashRecover {
		return config.CrashRecover
	}
	return config.CrashEndRun
}

// ensurePlanned extends an endless plan before the skier reaches its end.
func (r *Run) ensurePlanned() {
	if r.setup.FixedPlan || r.mission != nil {
		return
	}
	chunk := r.cfg.Spawn.ChunkMeters
	if chunk <= 0 {
		return
	}
	for r.state.Distance+r.cfg.Spawn.LookaheadMeters > r.plan.End() {
		from := r.plan.End()
		to := from + chunk
		r.plan.Extend(r.planner.Plan(r.course, from, to, r.opts, r.rng, r.plan.NextID()), to)
	}
}

func (r *Run) checkWin() {
	s := &r.state
	if r.mission == nil || s.Won || s.Lost || s.Distance < r.mission.TargetDistanceMeters {
		return
	}
	s.Won = true
	s.Bonus = CompletionBonus(r.cfg.Scoring, *r.mission)
	s.Score += s.Bonus
	r.phase = PhaseWon
	r.finish(false)
}

func (r *Run) lose() {
	r.state.Lost = true
	r.phase = PhaseLost
	r.finish(false)
}

// CompletionBonus is the one-time reward for finishing a mission.
func CompletionBonus(cfg config.ScoringConfig, m course.Mission) int {
	dist := math.Round(m.TargetDistanceMeters / 1000 * cfg.BonusPer1000m)
	curve := math.Round(m.CurveIntensity * cfg.BonusPerIntensity)
	return int(dist + curve)
}

// finish reports the run end once.
func (r *Run) finish(exited bool) {
	if r.reported {
		return
	}
	r.reported = true

	s := &r.state
	end := RunEnd{
		Mode:             r.setup.Mode,
		Won:              s.Won,
		Exited:           exited,
		FinalScore:       s.Score,
		DistanceTraveled: s.Distance,
		Duration:         s.Now,
		CloseCalls:       s.closeCalls,
		BoundaryHits:     s.boundaryHits,
	}
	if r.mission != nil {
		end.MissionID = r.mission.ID
	} else {
		d := s.Distance
		end.Distance = &d
	}
	if r.reporter != nil {
		if err := r.reporter.RunEnded(end); err != nil {
			r.err = err
		}
	}
}

func (r *Run) inventory(d InventoryDelta) {
	if r.reporter == nil {
		return
	}
	if err := r.reporter.InventoryChanged(d); err != nil {
		r.err = err
	}
}

// Err returns the last error the reporter returned, if any.
func (r *Run) Err() error { return r.err }

// State returns a copy of the run state.
func (r *Run) State() RunState { return r.state }

// Phase returns the lifecycle phase.
func (r *Run) Phase() Phase { return r.phase }

// Mission returns the active mission, or nil for endless modes.
func (r *Run) Mission() *course.Mission { return r.mission }

// Course returns the path the run follows.
func (r *Run) Course() course.Course { return r.course }

// Plan returns the spawn plan.
func (r *Run) Plan() *spawn.Plan { return r.plan }

// Chances returns the spawn category percentages for this run.
func (r *Run) Chances() spawn.Chances { return r.planner.Chances(r.opts) }

// Catalog returns the item definitions the run resolves against.
func (r *Run) Catalog() *config.Catalog { return &r.cat }

// Config returns the tuning the run uses.
func (r *Run) Config() config.SkiConfig { return r.cfg }

// SetViewport changes the visible half-width mid-run. The boundary follows
// at once; entries already planned keep their placement.
func (r *Run) SetViewport(halfPx float64) {
	r.setup.ViewportHalfPx = halfPx
	r.half = BoundaryHalfWidth(r.cfg.Track, halfPx)
	r.opts.TrackHalfWidthPx = r.half
	if math.Abs(r.state.Offset) > r.half {
		r.state.Offset = math.Copysign(r.half, r.state.Offset)
	}
}

// HalfWidth returns the lateral clamp in effect.
func (r *Run) HalfWidth() float64 { return r.half }

// Setup returns the setup the current run was started from.
func (r *Run) Setup() Setup { return r.setup }

// GameState summarizes the run for the platform layer.
func (r *Run) GameState() core.GameState {
	return core.GameState{
		Score:    r.state.Score,
		GameOver: r.state.Won || r.state.Lost,
		Won:      r.state.Won,
	}
}

// Signals derives the transient display values for the current tick.
func (r *Run) Signals() Signals {
	s := &r.state
	now := s.Now
	sig := Signals{
		Buffs:   s.Buffs.Remaining(now),
		OffPath: course.OffPath(s.Offset, r.cfg.Track.OffPathPx),
		Turn: course.TurnAhead(r.course, s.Distance,
			r.cfg.Course.TurnLookaheadMeters, r.cfg.Course.TurnThresholdPx),
	}
	if s.lastItem != "" && now-s.lastItemAt < lastItemShown {
		sig.LastItem = s.lastItem
	}
	if s.boundaryHits > 0 && now-s.boundaryAt < r.cfg.Physics.BoundarySignal.Duration() {
		sig.BoundaryHit = true
	}
	if s.closeCalls > 0 && now-s.closeCallAt < closeCallShown {
		sig.CloseCall = true
	}
	return sig
}
