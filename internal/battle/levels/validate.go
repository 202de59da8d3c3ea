package levels

import (
	"fmt"

	"github.com/vovakirdan/lane-defense/internal/battle/defs"
	"github.com/vovakirdan/lane-defense/internal/battle/grid"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks a level against the catalog it will run with.
// Checks:
//   - Map is non-empty and uses known tile values
//   - Run parameters are positive
//   - Every wave, pool entry, roster entry and plan step names a known template
//   - Wave spawn and exit indices exist on the map
//
// Disconnected entry/exit pairs are not an error.
func Validate(lvl *defs.Level, cat *defs.Catalog) error {
	if lvl.ID == "" {
		return ValidationError{Code: "MISSING_ID", Message: "level has no id"}
	}
	if len(lvl.Map) == 0 {
		return ValidationError{Code: "EMPTY_MAP", Message: "level has no map rows"}
	}
	for y, row := range lvl.Map {
		for x, v := range row {
			if v < int(grid.TileElevated) || v > int(grid.TileExit) {
				return ValidationError{
					Code:    "INVALID_TILE",
					Message: fmt.Sprintf("tile (%d,%d) has unknown value %d", x, y, v),
				}
			}
		}
	}
	if lvl.Lives <= 0 {
		return ValidationError{Code: "INVALID_LIVES", Message: fmt.Sprintf("lives must be positive, got %d", lvl.Lives)}
	}
	if lvl.DeployCap <= 0 {
		return ValidationError{Code: "INVALID_CAP", Message: fmt.Sprintf("deploy cap must be positive, got %d", lvl.DeployCap)}
	}

	g := grid.New(lvl.Map)
	entries := len(g.Entries())
	exits := len(g.Exits())

	seen := make(map[string]bool, len(lvl.Waves))
	for _, w := range lvl.Waves {
		if w.ID == "" || seen[w.ID] {
			return ValidationError{Code: "DUPLICATE_WAVE", Message: fmt.Sprintf("wave id %q is empty or repeated", w.ID)}
		}
		seen[w.ID] = true
		if _, ok := cat.Enemy(w.Enemy); !ok {
			return ValidationError{Code: "UNKNOWN_ENEMY", Message: fmt.Sprintf("wave %s uses unknown enemy %q", w.ID, w.Enemy)}
		}
		if w.Count <= 0 {
			return ValidationError{Code: "INVALID_WAVE", Message: fmt.Sprintf("wave %s has count %d", w.ID, w.Count)}
		}
		if w.Spawn < 0 || w.Spawn >= entries {
			return ValidationError{Code: "INVALID_SPAWN", Message: fmt.Sprintf("wave %s uses spawn %d, map has %d", w.ID, w.Spawn, entries)}
		}
		if w.Exit >= exits {
			return ValidationError{Code: "INVALID_EXIT", Message: fmt.Sprintf("wave %s uses exit %d, map has %d", w.ID, w.Exit, exits)}
		}
	}
	if len(lvl.Waves) == 0 {
		if len(lvl.EnemyPool) == 0 {
			return ValidationError{Code: "NO_ENEMIES", Message: "level has neither waves nor an enemy pool"}
		}
		if lvl.TotalEnemies <= 0 {
			return ValidationError{Code: "NO_ENEMIES", Message: "level without waves needs total_enemies"}
		}
	}
	for _, id := range lvl.EnemyPool {
		if _, ok := cat.Enemy(id); !ok {
			return ValidationError{Code: "UNKNOWN_ENEMY", Message: fmt.Sprintf("enemy pool uses unknown enemy %q", id)}
		}
	}
	for _, id := range lvl.Operators {
		if _, ok := cat.Operator(id); !ok {
			return ValidationError{Code: "UNKNOWN_OPERATOR", Message: fmt.Sprintf("roster uses unknown operator %q", id)}
		}
	}
	for i, step := range lvl.Plan {
		if step.Action != defs.PlanDeploy {
			continue
		}
		if _, ok := cat.Operator(step.Operator); !ok {
			return ValidationError{Code: "UNKNOWN_OPERATOR", Message: fmt.Sprintf("plan step %d uses unknown operator %q", i, step.Operator)}
		}
	}
	return nil
}
