package ski

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/badski/internal/core"
	"github.com/vovakirdan/badski/internal/games/ski/course"
	"github.com/vovakirdan/badski/internal/games/ski/spawn"
)

// Visual characters for rendering
const (
	EdgeChar    = '│'
	CenterChar  = '·'
	SkierChar   = 'Y'
	SkierLeft   = '/'
	SkierRight  = '\\'
	SkierAir    = '^'
	SkierDown   = 'x'
	FallbackObs = '#'
)

const (
	hudRows   = 2 // rows above the slope
	skierRow  = 3 // slope rows above the skier, for what is just behind
	footerRow = 1

	// cellAspect is how many columns a row is tall.
	cellAspect = 2.0

	mapCols      = 11
	mapMaxRows   = 12
	mapMinScreen = 48 // narrower screens skip the minimap
	mapAheadM    = 600.0
	mapBehindM   = 100.0
	mapFlash     = 350 * time.Millisecond
	MapPathChar  = '.'
	MapSkierChar = 'o'
)

// shearCols is the horizontal shift of a row rowsAhead rows above the
// skier, so a rotated camera leans the slope around the skier.
func shearCols(rotationDeg float64, rowsAhead int) int {
	return int(math.Round(math.Tan(rotationDeg*math.Pi/180) * float64(rowsAhead) * cellAspect))
}

// Render draws the current run state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.run == nil {
		return
	}
	r := g.run
	s := r.State()

	top := hudRows
	bottom := dst.Height() - footerRow
	sy := top + skierRow

	colX := func(worldX float64, y int) int {
		return dst.Width()/2 + int(math.Round((worldX-s.Camera.Pan)/PixelsPerColumn)) +
			shearCols(s.Camera.Rotation, sy-y)
	}
	rowOf := func(d float64) int {
		return sy + int(math.Floor((d-s.Distance)/MetersPerRow))
	}
	rowDistance := func(y int) float64 {
		return s.Distance + float64(y-sy)*MetersPerRow
	}

	g.drawSlope(dst, r.Course(), r.HalfWidth(), top, bottom, colX, rowDistance)
	g.drawFinish(dst, top, bottom, rowOf)

	from := rowDistance(top)
	to := rowDistance(bottom)
	for _, e := range r.Plan().Window(from, to) {
		if r.Plan().Consumed(e.ID) {
			continue
		}
		y := rowOf(e.DistanceMeters)
		if y < top || y >= bottom {
			continue
		}
		g.drawEntry(dst, e, colX(e.LateralWorldOffset, y), y)
	}

	g.drawSkier(dst, s, colX(r.Course().OffsetAt(s.Distance)+s.Offset, sy), sy)
	sig := r.Signals()
	g.drawMinimap(dst, s, sig, top, bottom)
	g.drawHUD(dst, s, sig)

	switch {
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case s.Won:
		g.drawCenteredMessage(dst, "MISSION COMPLETE",
			fmt.Sprintf("Score: %d (+%d bonus)  |  Press R to ski again", s.Score, s.Bonus))
	case s.Lost:
		g.drawCenteredMessage(dst, "WIPEOUT",
			fmt.Sprintf("Score: %d  %.0fm  |  Press R to restart", s.Score, s.Distance))
	}
}

func (g *Game) drawSlope(dst *core.Screen, c course.Course, half float64, top, bottom int,
	colX func(float64, int) int, rowDistance func(int) float64) {
	for y := top; y < bottom; y++ {
		center := c.OffsetAt(rowDistance(y))
		dst.SetColor(colX(center-half, y), y, EdgeChar, core.ColorEdge)
		dst.SetColor(colX(center+half, y), y, EdgeChar, core.ColorEdge)
		if y%2 == 0 {
			dst.SetColor(colX(center, y), y, CenterChar, core.ColorPathMark)
		}
	}
}

func (g *Game) drawFinish(dst *core.Screen, top, bottom int, rowOf func(float64) int) {
	m := g.run.Mission()
	if m == nil {
		return
	}
	y := rowOf(m.TargetDistanceMeters)
	if y >= top && y < bottom {
		dst.DrawHLine(0, y, dst.Width(), '=', core.ColorFinish)
	}
}

func (g *Game) drawEntry(dst *core.Screen, e spawn.Entry, x, y int) {
	cat := g.run.Catalog()
	switch e.Kind {
	case spawn.KindObstacle:
		def, ok := cat.ObstacleByID(e.ItemID)
		glyph, color := FallbackObs, core.ColorRock
		if ok && def.Glyph != "" {
			glyph = []rune(def.Glyph)[0]
		}
		if ok && def.Tree {
			color = core.ColorTree
		}
		width := 1
		if ok {
			width = max(1, int(math.Round(def.Width*e.Scale*g.run.Config().Collision.VisualScale/PixelsPerColumn)))
		}
		dst.DrawHLine(x-width/2, y, width, glyph, color)
	case spawn.KindGood:
		if def, ok := cat.GoodByID(e.ItemID); ok && def.Glyph != "" {
			dst.SetColor(x, y, []rune(def.Glyph)[0], core.ColorGood)
		}
	case spawn.KindBad:
		if def, ok := cat.BadByID(e.ItemID); ok && def.Glyph != "" {
			dst.SetColor(x, y, []rune(def.Glyph)[0], core.ColorBad)
		}
	}
}

// mapSpan is the stretch of course the minimap covers. A mission shows the
// whole line; a free run shows a window around the skier.
func (g *Game) mapSpan(distance float64) (from, to float64) {
	if m := g.run.Mission(); m != nil {
		return 0, m.TargetDistanceMeters
	}
	from = math.Max(0, distance-mapBehindM)
	return from, from + mapBehindM + mapAheadM
}

// drawMinimap draws the course line in a small box at the top right, start
// at the bottom. The frame flashes while the skier is off the path.
func (g *Game) drawMinimap(dst *core.Screen, s RunState, sig Signals, top, bottom int) {
	rows := min(mapMaxRows, bottom-top-1)
	if dst.Width() < mapMinScreen || rows < 4 {
		return
	}
	box := core.NewRect(dst.Width()-mapCols-1, top, mapCols, rows)
	frame := core.ColorPanel
	if sig.OffPath && (s.Now/mapFlash)%2 == 0 {
		frame = core.ColorBad
	}
	dst.DrawBox(box, frame)

	from, to := g.mapSpan(s.Distance)
	if to <= from {
		return
	}
	inner := rows - 2
	pts := course.Window(g.run.Course(), from, to, g.run.Config().Course.SampleStepMeters)
	maxAbs := g.run.HalfWidth()
	for _, p := range pts {
		maxAbs = math.Max(maxAbs, math.Abs(p.LateralOffsetPx))
	}
	half := float64(mapCols-3) / 2
	cx := box.X + mapCols/2
	at := func(d, x float64) (int, int) {
		t := core.Clamp((d-from)/(to-from), 0, 1)
		col := cx + int(math.Round(core.Clamp(x/maxAbs, -1, 1)*half))
		return col, box.Y + inner - int(math.Round(t*float64(inner-1)))
	}
	for _, p := range pts {
		x, y := at(p.DistanceMeters, p.LateralOffsetPx)
		dst.SetColor(x, y, MapPathChar, core.ColorPathMark)
	}
	x, y := at(s.Distance, g.run.Course().OffsetAt(s.Distance)+s.Offset)
	dst.SetColor(x, y, MapSkierChar, core.ColorSkier)
}

func (g *Game) drawSkier(dst *core.Screen, s RunState, x, y int) {
	glyph := SkierChar
	switch s.Anim {
	case AnimTurningLeft:
		glyph = SkierLeft
	case AnimTurningRight:
		glyph = SkierRight
	case AnimJumping:
		glyph = SkierAir
	case AnimStumbling, AnimFallen:
		glyph = SkierDown
	}
	color := core.ColorSkier
	now := s.Now
	switch {
	case s.Buffs.Ghost(now) || s.Buffs.Invulnerable(now):
		color = core.ColorShielded
	case s.Buffs.Super(now):
		color = core.ColorSuper
	case s.Buffs.Slowed(now):
		color = core.ColorSlowed
	}
	dst.SetColor(x, y, glyph, color)
}

func (g *Game) drawHUD(dst *core.Screen, s RunState, sig Signals) {
	left := fmt.Sprintf(" Score: %d  %.0fm", s.Score, s.Distance)
	if m := g.run.Mission(); m != nil {
		left = fmt.Sprintf(" Score: %d  %.0f/%.0fm", s.Score, s.Distance, m.TargetDistanceMeters)
	}
	dst.DrawTextColor(0, 0, left, core.ColorHUD)

	right := fmt.Sprintf("Spd %.0f/%.0f  R:%d L:%d ", g.run.EffectiveSpeed(), s.MaxSpeed, s.Rockets, s.ExtraLives)
	dst.DrawTextColor(dst.Width()-len(right), 0, right, core.ColorHUDDim)

	var buffs []string
	b := sig.Buffs
	for _, it := range []struct {
		name string
		secs int
	}{
		{"ghost", b.Ghost}, {"super", b.SuperSpeed}, {"boost", b.SpeedBoost},
		{"slow", b.Slowed}, {"safe", b.Invulnerable},
	} {
		if it.secs > 0 {
			buffs = append(buffs, fmt.Sprintf("%s %ds", it.name, it.secs))
		}
	}
	dst.DrawTextColor(1, 1, strings.Join(buffs, "  "), core.ColorBuffs)

	var notes []string
	switch sig.Turn {
	case course.TurnLeft:
		notes = append(notes, "<< turn")
	case course.TurnRight:
		notes = append(notes, "turn >>")
	}
	if sig.BoundaryHit {
		notes = append(notes, "EDGE!")
	}
	if sig.OffPath {
		notes = append(notes, "off path")
	}
	if sig.CloseCall {
		notes = append(notes, "close call!")
	}
	if sig.LastItem != "" {
		notes = append(notes, "+"+sig.LastItem)
	}
	dst.DrawTextColor(1, dst.Height()-1, strings.Join(notes, "  "), core.ColorNotice)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorPanel)
	dst.DrawTextCentered(boxY+1, title, core.ColorHUD)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorDefault)
}
