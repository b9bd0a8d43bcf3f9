package spawn

import (
	"math"
	"sort"

	"github.com/vovakirdan/badski/internal/config"
	"github.com/vovakirdan/badski/internal/games/ski/course"
)

// Kind tags what a spawn entry carries.
type Kind int

const (
	KindObstacle Kind = iota
	KindGood
	KindBad
)

func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindGood:
		return "good"
	case KindBad:
		return "bad"
	default:
		return "unknown"
	}
}

// MarshalYAML writes the kind by name.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Entry is one planned placement. LateralWorldOffset is the absolute
// lateral position in world pixels, path center included.
type Entry struct {
	ID                 int     `yaml:"id"`
	DistanceMeters     float64 `yaml:"distance_m"`
	LateralWorldOffset float64 `yaml:"x_px"`
	Kind               Kind    `yaml:"kind"`
	ItemID             string  `yaml:"item"`
	Scale              float64 `yaml:"scale"`
}

// Options are the per-run inputs that shape a plan.
type Options struct {
	PlayerLevel      int
	GoodSpawnLevel   int
	BadSpawnLevel    int
	ReduceRareDrop   bool
	TrackHalfWidthPx float64
	TurnBanks        bool
}

// OptionsFor builds plan options from upgrades.
func OptionsFor(u config.Upgrades, playerLevel int, halfWidthPx float64) Options {
	return Options{
		PlayerLevel:      max(playerLevel, 1),
		GoodSpawnLevel:   u.GoodSpawnLevel,
		BadSpawnLevel:    u.BadSpawnLevel,
		ReduceRareDrop:   u.ReduceRareDrop(),
		TrackHalfWidthPx: halfWidthPx,
	}
}

type weighted struct {
	id     string
	weight int
}

// Planner turns a course and options into spawn entries.
// It holds only read-only tables and is safe to reuse across runs.
type Planner struct {
	cfg       config.SpawnConfig
	course    config.CourseConfig
	limits    config.UpgradeConfig
	catalog   config.Catalog
	obstacles []weighted
	rare      map[string]bool
}

// NewPlanner creates a planner over the item catalog.
func NewPlanner(cfg config.SkiConfig, cat config.Catalog) *Planner {
	p := &Planner{
		cfg:     cfg.Spawn,
		course:  cfg.Course,
		limits:  cfg.Upgrades,
		catalog: cat,
		rare:    make(map[string]bool, len(cfg.Spawn.RareItems)),
	}
	for _, id := range cfg.Spawn.RareItems {
		p.rare[id] = true
	}
	for _, o := range cat.Obstacles {
		if o.Weight > 0 {
			p.obstacles = append(p.obstacles, weighted{o.ID, o.Weight})
		}
	}
	return p
}

// Chances returns the category percentages the planner uses for opts.
func (p *Planner) Chances(opts Options) Chances {
	return ComputeChances(p.cfg, p.limits, opts.PlayerLevel, opts.GoodSpawnLevel, opts.BadSpawnLevel)
}

// Plan generates entries for slots in (from, to]. Slots sit every
// IntervalMeters from distance 0, so consecutive chunks never share a slot.
// IDs start at firstID and increase with distance. The result depends only
// on the inputs and the random source.
func (p *Planner) Plan(c course.Course, from, to float64, opts Options, rng course.RNG, firstID int) []Entry {
	interval := p.cfg.IntervalMeters
	if interval <= 0 || to <= from {
		return nil
	}

	chances := p.Chances(opts)
	good := p.goodTable(opts.ReduceRareDrop)
	bad := p.badTable()
	margin := opts.TrackHalfWidthPx * p.cfg.MarginFactor

	var out []Entry
	first := math.Floor(from/interval) + 1
	for k := first; k*interval <= to; k++ {
		slot := k * interval
		if rng.Float64() >= p.cfg.SceneChance {
			continue
		}
		base := slot + rng.Float64()*p.cfg.JitterMeters
		center := c.OffsetAt(base)

		roll := rng.Float64() * 100
		switch {
		case roll < float64(chances.Obstacle):
			out = p.appendCluster(out, c, base, margin, rng)
		case roll < float64(chances.Obstacle+chances.Good):
			if id := pick(good, rng); id != "" {
				out = append(out, Entry{
					DistanceMeters:     base,
					LateralWorldOffset: center + (rng.Float64()-0.5)*2*margin,
					Kind:               KindGood,
					ItemID:             id,
					Scale:              1,
				})
			}
		default:
			if id := pick(bad, rng); id != "" {
				out = append(out, Entry{
					DistanceMeters:     base,
					LateralWorldOffset: center + (rng.Float64()-0.5)*2*margin,
					Kind:               KindBad,
					ItemID:             id,
					Scale:              1,
				})
			}
		}
	}

	if opts.TurnBanks {
		out = p.appendBanks(out, c, from, to, opts.TrackHalfWidthPx)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceMeters < out[j].DistanceMeters
	})
	for i := range out {
		out[i].ID = firstID + i
	}
	return out
}

// appendCluster places one obstacle, or a barrier of two or three side by side.
func (p *Planner) appendCluster(out []Entry, c course.Course, base, margin float64, rng course.RNG) []Entry {
	count := 1
	r := rng.Float64()
	switch {
	case r < p.cfg.ClusterThreeChance:
		count = 3
	case r < p.cfg.ClusterThreeChance+p.cfg.ClusterTwoChance:
		count = 2
	}

	for i := 0; i < count; i++ {
		id := pick(p.obstacles, rng)
		if id == "" {
			return out
		}
		def, _ := p.catalog.ObstacleByID(id)

		d := base
		var x float64
		if count > 1 {
			d += float64(i)*p.cfg.ClusterSpacingMeters + rng.Float64()*p.cfg.ClusterJitterMeters
			x = c.OffsetAt(d) + (rng.Float64()-0.5)*margin*p.cfg.ClusterSpread
		} else {
			x = c.OffsetAt(d) + (rng.Float64()-0.5)*2*margin
		}

		scale := def.ScaleMin
		if def.ScaleMax > def.ScaleMin {
			scale += rng.Float64() * (def.ScaleMax - def.ScaleMin)
		}
		if scale <= 0 {
			scale = 1
		}

		out = append(out, Entry{
			DistanceMeters:     d,
			LateralWorldOffset: x,
			Kind:               KindObstacle,
			ItemID:             id,
			Scale:              scale,
		})
	}
	return out
}

// appendBanks checks the turn ahead every TurnBankEveryMeters in (from, to]
// and, when the course bends, lines that edge with a diagonal of banks
// stepping toward the center. Banks never cross to the other half.
func (p *Planner) appendBanks(out []Entry, c course.Course, from, to, half float64) []Entry {
	every := p.cfg.TurnBankEveryMeters
	def, ok := p.catalog.ObstacleByID(p.cfg.TurnBankItem)
	if every <= 0 || p.cfg.TurnBankCount <= 0 || !ok {
		return out
	}

	for k := math.Floor(from/every) + 1; k*every <= to; k++ {
		d := k * every
		var side float64
		switch course.TurnAhead(c, d, p.course.TurnLookaheadMeters, p.course.TurnThresholdPx) {
		case course.TurnRight:
			side = 1
		case course.TurnLeft:
			side = -1
		default:
			continue
		}
		for i := 0; i < p.cfg.TurnBankCount; i++ {
			bd := d + p.cfg.TurnBankAheadMeters + float64(i)*p.cfg.TurnBankStepMeters
			edge := math.Max(half-p.cfg.TurnBankInsetPx-float64(i)*p.cfg.TurnBankStepPx, 0)
			out = append(out, Entry{
				DistanceMeters:     bd,
				LateralWorldOffset: c.OffsetAt(bd) + side*edge,
				Kind:               KindObstacle,
				ItemID:             def.ID,
				Scale:              1,
			})
		}
	}
	return out
}

func (p *Planner) goodTable(reduceRare bool) []weighted {
	t := make([]weighted, 0, len(p.catalog.Good))
	for _, it := range p.catalog.Good {
		w := it.Weight
		if reduceRare && p.rare[it.ID] && p.cfg.RareDivisor > 1 {
			w = max(1, w/p.cfg.RareDivisor)
		}
		if w > 0 {
			t = append(t, weighted{it.ID, w})
		}
	}
	return t
}

func (p *Planner) badTable() []weighted {
	t := make([]weighted, 0, len(p.catalog.Bad))
	for _, it := range p.catalog.Bad {
		if it.Weight > 0 {
			t = append(t, weighted{it.ID, it.Weight})
		}
	}
	return t
}

// pick draws an id with probability weight / total.
// Returns "" when the table is empty.
func pick(table []weighted, rng course.RNG) string {
	total := 0
	for _, w := range table {
		total += w.weight
	}
	if total <= 0 {
		return ""
	}
	r := rng.Float64() * float64(total)
	for _, w := range table {
		r -= float64(w.weight)
		if r < 0 {
			return w.id
		}
	}
	return table[len(table)-1].id
}
