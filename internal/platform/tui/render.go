package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/badski/internal/core"
)

// palette maps each cell role to an ANSI 256 code. The snow is the
// terminal default, so the few accent colors carry all of the signal.
var palette = [core.NumColors]string{
	core.ColorDefault:  "",
	core.ColorEdge:     "4",
	core.ColorPathMark: "245",
	core.ColorFinish:   "11",
	core.ColorRock:     "245",
	core.ColorTree:     "2",
	core.ColorGood:     "10",
	core.ColorBad:      "9",
	core.ColorSkier:    "15",
	core.ColorShielded: "14",
	core.ColorSuper:    "208",
	core.ColorSlowed:   "5",
	core.ColorHUD:      "15",
	core.ColorHUDDim:   "7",
	core.ColorBuffs:    "6",
	core.ColorNotice:   "3",
	core.ColorPanel:    "7",
}

var colorStyles = buildStyles()

func buildStyles() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(palette))
	for c, code := range palette {
		st := lipgloss.NewStyle()
		if code != "" {
			st = st.Foreground(lipgloss.Color(code))
		}
		if core.Color(c).Emphasized() {
			st = st.Bold(true)
		}
		styles[c] = st
	}
	return styles
}

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(colorStyles) {
		return colorStyles[c]
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}
