package sim

import (
	"github.com/vovakirdan/lane-defense/internal/battle/anomaly"
	"github.com/vovakirdan/lane-defense/internal/battle/combat"
	"github.com/vovakirdan/lane-defense/internal/battle/defs"
	"github.com/vovakirdan/lane-defense/internal/battle/grid"
)

// Phase 2.
func (s *Simulation) spawn(dt float64) {
	if len(s.level.Waves) == 0 {
		s.spawnFallback(dt)
		return
	}

	for _, w := range s.level.Waves {
		if s.firedWaves[w.ID] || s.time < w.Time {
			continue
		}
		s.firedWaves[w.ID] = true
		s.stats.Wave++
		tpl, _ := s.catalog.Enemy(w.Enemy)
		s.bursts = append(s.bursts, &burst{
			wave:      w,
			template:  tpl,
			remaining: w.Count,
			nextAt:    w.Time,
		})
		s.emit(Event{Type: EventWave, Wave: w.ID, Template: w.Enemy, Amount: float64(w.Count)})
	}

	kept := s.bursts[:0]
	for _, b := range s.bursts {
		for b.remaining > 0 && b.nextAt <= s.time {
			b.remaining--
			b.nextAt += b.wave.Interval
			s.spawnEnemy(b.template, s.wavePath(b.wave))
		}
		if b.remaining > 0 {
			kept = append(kept, b)
		}
	}
	s.bursts = kept
}

func (s *Simulation) wavePath(w defs.Wave) grid.Path {
	if w.Exit < 0 {
		return s.paths.AnyExit(w.Spawn)
	}
	return s.paths.Lookup(w.Spawn, w.Exit)
}

// spawnFallback is a rate-limited random-path spawner bounded by the
// level's enemy total.
func (s *Simulation) spawnFallback(dt float64) {
	interval := s.cfg.Spawn.FallbackInterval
	if interval <= 0 || len(s.level.EnemyPool) == 0 {
		return
	}
	s.fallbackAcc += dt
	for s.fallbackAcc >= interval && s.stats.Spawned < s.stats.TotalEnemies {
		s.fallbackAcc -= interval
		paths := s.paths.All()
		id := s.level.EnemyPool[s.rng.Intn(len(s.level.EnemyPool))]
		tpl, _ := s.catalog.Enemy(id)
		var p grid.Path
		if len(paths) > 0 {
			p = paths[s.rng.Intn(len(paths))]
		}
		s.spawnEnemy(tpl, p)
	}
}

// spawnEnemy places a new hostile at the start of p. A missing path makes
// the spawn a no-op and removes it from the planned total.
func (s *Simulation) spawnEnemy(tpl *defs.EnemyTemplate, p grid.Path) {
	if len(p) == 0 {
		s.stats.TotalEnemies--
		return
	}
	hp := tpl.HP * s.healthScale()
	e := &Enemy{
		ID:        s.newID(),
		Template:  tpl,
		Pos:       combat.TileCenter(p[0]),
		HP:        hp,
		MaxHP:     hp,
		Speed:     tpl.Speed,
		Defense:   tpl.Defense,
		Path:      p,
		PathIndex: 1,
	}
	if len(p) > 1 {
		e.Facing = facingOf(combat.TileCenter(p[1]).Sub(e.Pos))
	}
	s.enemies = append(s.enemies, e)
	s.stats.Spawned++
	s.emit(Event{Type: EventSpawn, EnemyID: e.ID, Template: tpl.ID, Pos: e.Pos})
}

func (s *Simulation) healthScale() float64 {
	if s.cfg.Rules.EnemyHealthScale <= 0 {
		return 1
	}
	return s.cfg.Rules.EnemyHealthScale
}

// Phase 3.
func (s *Simulation) applyTileEffects(dt float64) {
	kept := s.tileEffects[:0]
	for _, te := range s.tileEffects {
		te.Remaining -= dt
		if te.Remaining > 0 {
			kept = append(kept, te)
		}
	}
	clearTail(s.tileEffects, len(kept))
	s.tileEffects = kept
	if len(s.tileEffects) == 0 {
		return
	}

	for _, e := range s.enemies {
		if !e.Alive() {
			continue
		}
		tile := e.Pos.Round()
		var strongest [anomaly.Count]float64
		for _, te := range s.tileEffects {
			if te.Tile == tile && te.Potency > strongest[te.Status] {
				strongest[te.Status] = te.Potency
			}
		}
		for t := anomaly.Type(0); t < anomaly.Count; t++ {
			if strongest[t] <= 0 {
				continue
			}
			// Potency doubles as the attacker power for burn ticks.
			hit := anomaly.Hit{Type: t, Potency: strongest[t] * dt / 1000, AttackerPower: strongest[t]}
			if e.Status.ApplyBuildup(hit, e.Resistance(t), e.MaxHP) {
				s.emit(Event{Type: EventStatusTriggered, EnemyID: e.ID, Template: e.Template.ID, Status: t, Pos: e.Pos})
			}
		}
	}
}
