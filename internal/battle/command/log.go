package command

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-defense/internal/battle/sim"
)

// LogListener writes simulation events to a logger. Lifecycle events log
// at info, everything else at debug.
type LogListener struct {
	logger *log.Logger
}

// NewLogListener creates a listener writing to logger.
func NewLogListener(logger *log.Logger) *LogListener {
	return &LogListener{logger: logger}
}

// OnEvent implements sim.Listener.
func (l *LogListener) OnEvent(ev sim.Event) {
	kv := []any{"t", int(ev.Time)}
	switch ev.Type {
	case sim.EventGameStart:
		l.logger.Info("battle started", "level", ev.Template)
		return
	case sim.EventGameOver:
		l.logger.Info("battle lost", append(kv, "level", ev.Template)...)
		return
	case sim.EventGameWon:
		l.logger.Info("battle won", append(kv, "level", ev.Template)...)
		return
	case sim.EventWave:
		kv = append(kv, "wave", ev.Wave, "enemy", ev.Template, "count", int(ev.Amount))
	case sim.EventSpawn, sim.EventLeak, sim.EventEnemyDeath:
		kv = append(kv, "enemy", ev.EnemyID, "template", ev.Template)
	case sim.EventHit:
		kv = append(kv, "enemy", ev.EnemyID, "source", ev.OperatorID, "amount", ev.Amount)
	case sim.EventStatusTriggered:
		kv = append(kv, "enemy", ev.EnemyID, "status", ev.Status)
	case sim.EventDeploy, sim.EventRetreat, sim.EventOperatorDeath,
		sim.EventSkillActivated, sim.EventSkillEnd:
		kv = append(kv, "operator", ev.OperatorID, "template", ev.Template)
	case sim.EventAttack, sim.EventHeal:
		kv = append(kv, "operator", ev.OperatorID, "enemy", ev.EnemyID, "amount", ev.Amount)
	}
	l.logger.Debug(ev.Type.String(), kv...)
}
