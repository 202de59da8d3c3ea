package sim

import (
	"github.com/vovakirdan/lane-defense/internal/battle/anomaly"
	"github.com/vovakirdan/lane-defense/internal/battle/combat"
)

// EventType identifies a discrete simulation event.
type EventType int

const (
	EventGameStart EventType = iota
	EventWave
	EventSpawn
	EventLeak
	EventEnemyDeath
	EventOperatorDeath
	EventAttack
	EventHit
	EventHeal
	EventSkillActivated
	EventSkillEnd
	EventStatusTriggered
	EventDeploy
	EventRetreat
	EventGameOver
	EventGameWon
)

var eventNames = [...]string{
	EventGameStart:       "game_start",
	EventWave:            "wave",
	EventSpawn:           "spawn",
	EventLeak:            "leak",
	EventEnemyDeath:      "enemy_death",
	EventOperatorDeath:   "operator_death",
	EventAttack:          "attack",
	EventHit:             "hit",
	EventHeal:            "heal",
	EventSkillActivated:  "skill_activated",
	EventSkillEnd:        "skill_end",
	EventStatusTriggered: "status_triggered",
	EventDeploy:          "deploy",
	EventRetreat:         "retreat",
	EventGameOver:        "game_over",
	EventGameWon:         "game_won",
}

// String returns the string representation of an event type.
func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[t]
}

// HitCause tells what dealt the damage of an EventHit.
type HitCause int

const (
	CauseAttack   HitCause = iota // Operator attack or projectile
	CauseStatus                   // Burn, corrosion or apoptosis ticking
	CauseSkill                    // Scripted skill damage
	CauseDetonate                 // Remaining burn settled by a detonation
)

// Event is one discrete occurrence inside a tick.
// Only the fields relevant to the event type are set.
type Event struct {
	Type       EventType
	Time       float64 // game time in ms
	EnemyID    int
	OperatorID int
	Template   string // template id of the primary entity
	Wave       string
	Status     anomaly.Type
	Cause      HitCause
	Amount     float64 // damage, heal or resource amount
	Pos        combat.Vec2
}

// Listener receives simulation events.
type Listener interface {
	OnEvent(ev Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ev Event)

// OnEvent calls f(ev).
func (f ListenerFunc) OnEvent(ev Event) {
	f(ev)
}

// Dispatcher fans events out to subscribers, in subscription order.
type Dispatcher struct {
	all    []Listener
	byType map[EventType][]Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{byType: make(map[EventType][]Listener)}
}

// Subscribe registers a listener for every event.
func (d *Dispatcher) Subscribe(l Listener) {
	d.all = append(d.all, l)
}

// SubscribeType registers a listener for a single event type.
func (d *Dispatcher) SubscribeType(t EventType, l Listener) {
	d.byType[t] = append(d.byType[t], l)
}

// Dispatch sends an event to every matching listener.
func (d *Dispatcher) Dispatch(ev Event) {
	for _, l := range d.all {
		l.OnEvent(ev)
	}
	for _, l := range d.byType[ev.Type] {
		l.OnEvent(ev)
	}
}
