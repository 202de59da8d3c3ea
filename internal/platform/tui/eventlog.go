package tui

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/lane-defense/internal/battle/sim"
)

// eventLog keeps the last few notable battle events as display lines.
type eventLog struct {
	mu    sync.Mutex
	lines []string
	max   int
}

func newEventLog(max int) *eventLog {
	return &eventLog{max: max}
}

// OnEvent implements sim.Listener.
func (l *eventLog) OnEvent(ev sim.Event) {
	var line string
	switch ev.Type {
	case sim.EventGameStart:
		line = "battle started"
	case sim.EventWave:
		line = fmt.Sprintf("wave %s: %d %s", ev.Wave, int(ev.Amount), ev.Template)
	case sim.EventLeak:
		line = ev.Template + " broke through"
	case sim.EventOperatorDeath:
		line = ev.Template + " fell"
	case sim.EventDeploy:
		line = ev.Template + " deployed"
	case sim.EventRetreat:
		line = ev.Template + " retreated"
	case sim.EventSkillActivated:
		line = ev.Template + " skill on"
	case sim.EventStatusTriggered:
		line = fmt.Sprintf("%s triggered on %s", ev.Status, ev.Template)
	case sim.EventGameOver:
		line = "defeat"
	case sim.EventGameWon:
		line = "victory"
	default:
		return
	}
	l.push(clock(ev.Time) + " " + line)
}

func (l *eventLog) push(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
	if len(l.lines) > l.max {
		l.lines = l.lines[len(l.lines)-l.max:]
	}
}

// Lines returns the retained lines, oldest first.
func (l *eventLog) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
