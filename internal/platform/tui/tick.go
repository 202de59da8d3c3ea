// Package tui is the Bubble Tea viewer for battles: it drives the
// simulation once per frame, draws the board and forwards player input as
// commands.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation frame.
type TickMsg time.Time

// maxFrameMS caps the real time a single frame may advance, so a stalled
// terminal does not fast-forward the battle.
const maxFrameMS = 250

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the game milliseconds a frame covers.
func frameDelta(prev, now time.Time, speed, scale float64) float64 {
	if prev.IsZero() {
		return 0
	}
	ms := float64(now.Sub(prev)) / float64(time.Millisecond)
	if ms < 0 {
		ms = 0
	}
	if ms > maxFrameMS {
		ms = maxFrameMS
	}
	return ms * speed * scale
}
