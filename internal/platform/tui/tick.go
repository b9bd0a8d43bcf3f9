// Package tui provides the Bubble Tea front end: the run loop, menus,
// the upgrade shop, the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/badski/internal/core"
)

// TickMsg drives one simulation step.
type TickMsg time.Time

// tickCmd schedules the next step one tick interval of cfg from now.
func tickCmd(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(cfg.TickInterval(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
