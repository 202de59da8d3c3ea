// Package sim implements the lane-defense battle simulation.
// A Simulation is single-threaded: Update advances one tick through a fixed
// phase order and commands mutate state between ticks. It never logs and
// never blocks; observers subscribe to the event stream and read snapshots.
package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/lane-defense/internal/battle/combat"
	"github.com/vovakirdan/lane-defense/internal/battle/defs"
	"github.com/vovakirdan/lane-defense/internal/battle/grid"
	"github.com/vovakirdan/lane-defense/internal/config"
)

var (
	ErrNotPlaying       = errors.New("sim: run is not in progress")
	ErrSkillNotReady    = errors.New("sim: skill not ready")
	ErrNoPendingDeploy  = errors.New("sim: no deployment pending")
	ErrUnknownOperator  = errors.New("sim: unknown operator")
	ErrOperatorNotFound = errors.New("sim: operator not deployed")
)

// StepResult is returned by Update after each tick.
// Events holds everything emitted since the previous Update, including
// events raised by commands issued between ticks.
type StepResult struct {
	Tick   int
	Time   float64
	State  GameState
	Events []Event
}

// burst is a wave's pending spawns, drained over subsequent ticks.
type burst struct {
	wave      defs.Wave
	template  *defs.EnemyTemplate
	remaining int
	nextAt    float64
}

// PendingDeploy is a placement waiting for facing confirmation.
type PendingDeploy struct {
	Template *defs.OperatorTemplate
	Tile     grid.Coord
}

// Simulation owns every entity and timer of one run.
type Simulation struct {
	cfg     config.BattleConfig
	catalog *defs.Catalog
	seed    int64
	rng     *rand.Rand

	level *defs.Level
	grid  *grid.Grid
	paths *grid.PathTable

	state  GameState
	paused bool
	tick   int
	time   float64

	resourceAcc float64
	fallbackAcc float64
	firedWaves  map[string]bool
	bursts      []*burst
	pending     *PendingDeploy
	nextID      int

	stats       Stats
	enemies     []*Enemy
	operators   []*Operator
	projectiles []*Projectile
	tileEffects []*TileEffect

	dispatcher *Dispatcher
	events     []Event
}

// New creates an idle simulation using the given templates and tuning.
func New(cat *defs.Catalog, cfg config.BattleConfig, seed int64) *Simulation {
	return &Simulation{
		cfg:        cfg,
		catalog:    cat,
		seed:       seed,
		dispatcher: NewDispatcher(),
	}
}

// Subscribe registers a listener for every event.
func (s *Simulation) Subscribe(l Listener) {
	s.dispatcher.Subscribe(l)
}

// SubscribeType registers a listener for one event type.
func (s *Simulation) SubscribeType(t EventType, l Listener) {
	s.dispatcher.SubscribeType(t, l)
}

// Init discards any previous run and starts lvl.
// Unknown template references are rejected here, never during a tick.
func (s *Simulation) Init(lvl *defs.Level) error {
	for _, w := range lvl.Waves {
		if _, ok := s.catalog.Enemy(w.Enemy); !ok {
			return fmt.Errorf("sim: wave %s: unknown enemy %q", w.ID, w.Enemy)
		}
	}
	for _, id := range lvl.EnemyPool {
		if _, ok := s.catalog.Enemy(id); !ok {
			return fmt.Errorf("sim: enemy pool: unknown enemy %q", id)
		}
	}

	s.Reset()
	s.level = lvl
	s.grid = grid.New(lvl.Map)
	s.paths = grid.FindPaths(s.grid)
	s.firedWaves = make(map[string]bool)
	s.stats = Stats{
		Resource:     lvl.StartResource,
		Lives:        lvl.Lives + s.cfg.Rules.ExtraLives,
		TotalEnemies: lvl.PlannedEnemies(),
		WaveCount:    len(lvl.Waves),
		DeployCap:    lvl.DeployCap,
	}
	for _, te := range lvl.TileEffects {
		s.tileEffects = append(s.tileEffects, &TileEffect{
			Tile:      grid.C(te.X, te.Y),
			Status:    te.Status,
			Potency:   te.Potency,
			Remaining: te.Duration,
			Duration:  te.Duration,
		})
	}
	s.state = StatePlaying
	s.emit(Event{Type: EventGameStart, Template: lvl.ID})
	return nil
}

// Reset returns to IDLE, discarding all entity and timer state.
func (s *Simulation) Reset() {
	s.rng = rand.New(rand.NewSource(s.seed))
	s.level = nil
	s.grid = nil
	s.paths = nil
	s.state = StateIdle
	s.paused = false
	s.tick = 0
	s.time = 0
	s.resourceAcc = 0
	s.fallbackAcc = 0
	s.firedWaves = nil
	s.bursts = nil
	s.pending = nil
	s.nextID = 0
	s.stats = Stats{}
	s.enemies = nil
	s.operators = nil
	s.projectiles = nil
	s.tileEffects = nil
	s.events = nil
}

// SetPaused freezes or resumes time without leaving PLAYING.
func (s *Simulation) SetPaused(p bool) {
	s.paused = p
}

// Paused reports whether the run is paused.
func (s *Simulation) Paused() bool {
	return s.paused
}

// State returns the current lifecycle state.
func (s *Simulation) State() GameState {
	return s.state
}

// Time returns elapsed game time in milliseconds.
func (s *Simulation) Time() float64 {
	return s.time
}

// Stats returns the run counters.
func (s *Simulation) Stats() Stats {
	return s.stats
}

// Level returns the running level, or nil when idle.
func (s *Simulation) Level() *defs.Level {
	return s.level
}

// Update advances the simulation by dt milliseconds.
// It is a no-op unless the run is PLAYING and not paused.
func (s *Simulation) Update(dt float64) StepResult {
	if s.state != StatePlaying || s.paused || dt <= 0 {
		return s.result()
	}

	s.tick++
	s.time += dt

	s.accrueResource(dt)
	s.spawn(dt)
	s.applyTileEffects(dt)
	s.moveEnemies(dt)
	if s.state == StatePlaying {
		s.updateBlocking()
		s.resolveAnomalies(dt)
		s.enemyCombat(dt)
		s.operatorCombat(dt)
		s.updateProjectiles(dt)
		s.decayEnchantments(dt)
	}
	s.cleanup()
	s.checkVictory()

	return s.result()
}

func (s *Simulation) result() StepResult {
	r := StepResult{Tick: s.tick, Time: s.time, State: s.state, Events: s.events}
	s.events = nil
	return r
}

func (s *Simulation) emit(ev Event) {
	ev.Time = s.time
	s.events = append(s.events, ev)
	s.dispatcher.Dispatch(ev)
}

func (s *Simulation) newID() int {
	s.nextID++
	return s.nextID
}

// Phase 1.
func (s *Simulation) accrueResource(dt float64) {
	period := s.cfg.Economy.Period
	if period <= 0 {
		return
	}
	s.resourceAcc += dt
	for s.resourceAcc >= period {
		s.resourceAcc -= period
		s.stats.Resource += s.cfg.Economy.ResourcePerPeriod
		if s.stats.Resource > s.cfg.Economy.ResourceCap {
			s.stats.Resource = s.cfg.Economy.ResourceCap
		}
	}
}

// Phase 4.
func (s *Simulation) moveEnemies(dt float64) {
	for _, e := range s.enemies {
		if !e.Alive() || e.Immobile() {
			continue
		}
		step := e.Speed * e.Status.SpeedModifier() * dt / 1000
		for step > 0 && e.PathIndex < len(e.Path) {
			target := combat.TileCenter(e.Path[e.PathIndex])
			dist := combat.Distance(e.Pos, target)
			if dist <= step {
				e.Pos = target
				step -= dist
				e.PathIndex++
				continue
			}
			e.Facing = facingOf(target.Sub(e.Pos))
			e.Pos, _ = combat.MoveToward(e.Pos, target, step)
			step = 0
		}
		if e.PathIndex >= len(e.Path) {
			s.leak(e)
			if s.state != StatePlaying {
				return
			}
		}
	}
}

// leakedHP marks a unit that walked off its path.
const leakedHP = math.MinInt32

func (s *Simulation) leak(e *Enemy) {
	e.Leaked = true
	e.HP = leakedHP
	s.stats.Leaks++
	if s.stats.Lives > 0 {
		s.stats.Lives--
	}
	s.emit(Event{Type: EventLeak, EnemyID: e.ID, Template: e.Template.ID, Pos: e.Pos})
	if s.stats.Lives <= 0 {
		s.state = StateGameOver
		s.emit(Event{Type: EventGameOver, Template: s.level.ID})
	}
}

// Phase 5.
func (s *Simulation) updateBlocking() {
	for _, e := range s.enemies {
		e.Blocked = false
		e.BlockedBy = 0
	}
	tol := s.cfg.Combat.BlockTolerance
	for _, op := range s.operators {
		if !op.Alive() || op.Template.Block <= 0 {
			continue
		}
		held := 0
		for _, e := range s.enemies {
			if held >= op.Template.Block {
				break
			}
			if !e.Alive() || e.Blocked {
				continue
			}
			if combat.Distance(e.Pos, op.Pos()) < tol {
				e.Blocked = true
				e.BlockedBy = op.ID
				held++
			}
		}
	}
}

// Phase 6.
func (s *Simulation) resolveAnomalies(dt float64) {
	for _, e := range s.enemies {
		if !e.Alive() {
			continue
		}
		if dmg := e.Status.Update(dt); dmg > 0 {
			e.HP -= dmg
			s.emit(Event{Type: EventHit, EnemyID: e.ID, Template: e.Template.ID, Cause: CauseStatus, Amount: dmg, Pos: e.Pos})
		}
		if dmg := e.Status.ConsumeApoptosis(e.HP); dmg > 0 {
			e.HP -= dmg
			s.emit(Event{Type: EventHit, EnemyID: e.ID, Template: e.Template.ID, Cause: CauseStatus, Amount: dmg, Pos: e.Pos})
		}
		e.Frozen = e.Status.Immobilized()
	}
}

// Phase 10.
func (s *Simulation) decayEnchantments(dt float64) {
	for _, op := range s.operators {
		if op.Enchant == nil {
			continue
		}
		op.Enchant.Remaining -= dt
		if op.Enchant.Remaining <= 0 {
			op.Enchant = nil
		}
	}
}

// Phase 11.
func (s *Simulation) cleanup() {
	enemies := s.enemies[:0]
	for _, e := range s.enemies {
		switch {
		case e.Leaked:
		case e.HP <= 0:
			s.stats.Kills++
			s.emit(Event{Type: EventEnemyDeath, EnemyID: e.ID, Template: e.Template.ID, Pos: e.Pos})
		default:
			enemies = append(enemies, e)
		}
	}
	clearTail(s.enemies, len(enemies))
	s.enemies = enemies

	projectiles := s.projectiles[:0]
	for _, p := range s.projectiles {
		if !p.Done {
			projectiles = append(projectiles, p)
		}
	}
	clearTail(s.projectiles, len(projectiles))
	s.projectiles = projectiles

	operators := s.operators[:0]
	for _, op := range s.operators {
		if op.Alive() {
			operators = append(operators, op)
			continue
		}
		s.emit(Event{Type: EventOperatorDeath, OperatorID: op.ID, Template: op.Template.ID, Pos: op.Pos()})
		if spec := op.Template.OnDeath; spec != nil {
			s.tileEffects = append(s.tileEffects, &TileEffect{
				Tile:      op.Tile,
				Status:    spec.Status,
				Potency:   spec.Potency,
				Remaining: spec.Duration,
				Duration:  spec.Duration,
			})
		}
	}
	clearTail(s.operators, len(operators))
	s.operators = operators
	s.stats.Deployed = len(s.operators)
}

// clearTail drops references past n so removed entities can be collected.
func clearTail[T any](xs []*T, n int) {
	for i := n; i < len(xs); i++ {
		xs[i] = nil
	}
}

// Phase 12.
func (s *Simulation) checkVictory() {
	if s.state != StatePlaying {
		return
	}
	if len(s.enemies) > 0 || len(s.bursts) > 0 {
		return
	}
	if len(s.firedWaves) < len(s.level.Waves) {
		return
	}
	if s.stats.Resolved() < s.stats.TotalEnemies {
		return
	}
	s.state = StateWon
	s.emit(Event{Type: EventGameWon, Template: s.level.ID})
}

// facingOf returns the dominant direction of a movement vector.
func facingOf(d combat.Vec2) combat.Facing {
	if math.Abs(d.X) >= math.Abs(d.Y) {
		if d.X < 0 {
			return combat.FacingLeft
		}
		return combat.FacingRight
	}
	if d.Y < 0 {
		return combat.FacingUp
	}
	return combat.FacingDown
}
