package core

// Color is the role a screen cell plays. Front ends map each role to a
// concrete terminal color, so the simulation never deals in ANSI codes.
type Color uint8

const (
	ColorDefault Color = iota // plain snow and text

	// Slope
	ColorEdge     // corridor walls
	ColorPathMark // dotted path center
	ColorFinish   // mission finish line

	// Spawns
	ColorRock
	ColorTree
	ColorGood
	ColorBad

	// Skier, by active modifier
	ColorSkier
	ColorShielded // ghost or post-shield invulnerability
	ColorSuper
	ColorSlowed

	// Overlay
	ColorHUD
	ColorHUDDim
	ColorBuffs
	ColorNotice
	ColorPanel

	colorCount
)

// NumColors is the number of defined roles.
const NumColors = int(colorCount)

// Emphasized reports whether a role should stand out from the slope.
func (c Color) Emphasized() bool {
	switch c {
	case ColorFinish, ColorGood, ColorBad, ColorSkier, ColorShielded, ColorSuper, ColorHUD:
		return true
	}
	return false
}
