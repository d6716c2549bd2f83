// Package tui provides the Bubble Tea integration for the world viewer.
// It handles the terminal UI loop, input mapping, and scene orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFPS is the redraw rate when none is configured.
const DefaultFPS = 30

// TickMsg is sent to trigger a frame. It carries the wall-clock time the frame
// was scheduled for, which the model turns into elapsed simulation time.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = DefaultFPS
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
