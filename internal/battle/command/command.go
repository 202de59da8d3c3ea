// Package command translates player and scripted intents into simulation
// mutations. Commands are queued by the caller and applied between ticks so
// they never interleave with an Update.
package command

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/lane-defense/internal/battle/combat"
	"github.com/vovakirdan/lane-defense/internal/battle/grid"
	"github.com/vovakirdan/lane-defense/internal/battle/sim"
)

// Engine is the mutation surface of a running battle.
// *sim.Simulation satisfies it.
type Engine interface {
	State() sim.GameState
	Time() float64
	Paused() bool
	SetPaused(p bool)
	BeginDeploy(templateID string, tile grid.Coord) error
	ConfirmDeploy(f combat.Facing) (*sim.Operator, error)
	CancelDeploy()
	Pending() (sim.PendingDeploy, bool)
	Deploy(templateID string, tile grid.Coord, f combat.Facing) (*sim.Operator, error)
	ActivateSkill(operatorID int) error
	Retreat(operatorID int) error
	OperatorAt(tile grid.Coord) (*sim.Operator, bool)
}

var _ Engine = (*sim.Simulation)(nil)

// Kind identifies a command.
type Kind int

const (
	KindDeploy Kind = iota
	KindSkill
	KindRetreat
	KindPause
	KindResume
)

func (k Kind) String() string {
	switch k {
	case KindDeploy:
		return "deploy"
	case KindSkill:
		return "skill"
	case KindRetreat:
		return "retreat"
	case KindPause:
		return "pause"
	case KindResume:
		return "resume"
	default:
		return "unknown"
	}
}

// Command is one queued intent.
// Skill and retreat target OperatorID when set, otherwise the operator
// deployed on Tile.
type Command struct {
	Kind       Kind
	Operator   string // template id for deploys
	Tile       grid.Coord
	Facing     combat.Facing
	OperatorID int
}

func (c Command) String() string {
	switch c.Kind {
	case KindDeploy:
		return fmt.Sprintf("deploy %s at %v facing %v", c.Operator, c.Tile, c.Facing)
	case KindSkill, KindRetreat:
		if c.OperatorID != 0 {
			return fmt.Sprintf("%v operator #%d", c.Kind, c.OperatorID)
		}
		return fmt.Sprintf("%v at %v", c.Kind, c.Tile)
	default:
		return c.Kind.String()
	}
}

// Result reports how a flushed command went.
type Result struct {
	Command  Command
	Operator *sim.Operator // deployed operator, for deploys
	Err      error
}

// Queue buffers commands until the next Flush.
// Push may be called from any goroutine.
type Queue struct {
	mu       sync.Mutex
	commands []Command
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends a command.
func (q *Queue) Push(c Command) {
	q.mu.Lock()
	q.commands = append(q.commands, c)
	q.mu.Unlock()
}

// Len returns the number of queued commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.commands)
}

// Flush applies every queued command to e in push order and empties the
// queue. It must be called between ticks.
func (q *Queue) Flush(e Engine) []Result {
	q.mu.Lock()
	pending := q.commands
	q.commands = nil
	q.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}
	results := make([]Result, 0, len(pending))
	for _, c := range pending {
		results = append(results, Apply(e, c))
	}
	return results
}

// Apply executes a single command immediately.
func Apply(e Engine, c Command) Result {
	r := Result{Command: c}
	switch c.Kind {
	case KindDeploy:
		r.Operator, r.Err = e.Deploy(c.Operator, c.Tile, c.Facing)
	case KindSkill:
		id, err := resolve(e, c)
		if err != nil {
			r.Err = err
			break
		}
		r.Err = e.ActivateSkill(id)
	case KindRetreat:
		id, err := resolve(e, c)
		if err != nil {
			r.Err = err
			break
		}
		r.Err = e.Retreat(id)
	case KindPause:
		e.SetPaused(true)
	case KindResume:
		e.SetPaused(false)
	default:
		r.Err = fmt.Errorf("command: unknown kind %d", c.Kind)
	}
	return r
}

func resolve(e Engine, c Command) (int, error) {
	if c.OperatorID != 0 {
		return c.OperatorID, nil
	}
	op, ok := e.OperatorAt(c.Tile)
	if !ok {
		return 0, fmt.Errorf("command: %v: %w", c, sim.ErrOperatorNotFound)
	}
	return op.ID, nil
}
