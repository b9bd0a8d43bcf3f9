// Package spawn pre-computes obstacle and pickup placements for a run and
// serves distance-windowed lookups over them.
package spawn

import (
	"math"

	"github.com/vovakirdan/badski/internal/config"
	"github.com/vovakirdan/badski/internal/core"
)

// Chances are the category percentages for one spawn slot.
// They always sum to 100 and none is negative.
type Chances struct {
	Obstacle int
	Good     int
	Bad      int
}

// Sum returns the total of all categories.
func (c Chances) Sum() int {
	return c.Obstacle + c.Good + c.Bad
}

// ComputeChances derives category percentages from the player level and
// the two spawn upgrade levels.
//
// Every level above 1 takes a point from both good and bad, so obstacles
// grow with level. Each good-spawn level adds PerLevelBonus to good and each
// bad-spawn level removes PerLevelBonus from bad. Obstacle takes the remainder.
func ComputeChances(cfg config.SpawnConfig, limits config.UpgradeConfig, playerLevel, goodLevel, badLevel int) Chances {
	penalty := max(playerLevel-1, 0)
	goodBonus := core.Clamp(goodLevel, 0, limits.MaxGoodSpawnLevel) * cfg.PerLevelBonus
	badBonus := core.Clamp(badLevel, 0, limits.MaxBadSpawnLevel) * cfg.PerLevelBonus

	good := core.Clamp(cfg.BaseGood-penalty+goodBonus, 0, 100)
	bad := core.Clamp(cfg.BaseBad-penalty-badBonus, 0, 100)
	obstacle := 100 - good - bad

	if obstacle < 0 {
		// Good and bad alone exceed 100: keep their ratio, drop obstacles.
		total := float64(good + bad)
		good = int(math.Round(float64(good) / total * 100))
		bad = 100 - good
		obstacle = 0
	}

	return Chances{Obstacle: obstacle, Good: good, Bad: bad}
}
