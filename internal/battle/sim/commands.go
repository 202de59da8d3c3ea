package sim

import (
	"math"

	"github.com/vovakirdan/lane-defense/internal/battle/combat"
	"github.com/vovakirdan/lane-defense/internal/battle/defs"
	"github.com/vovakirdan/lane-defense/internal/battle/grid"
	"github.com/vovakirdan/lane-defense/internal/battle/placement"
)

// Roster returns the operator templates the running level allows, in
// roster order. A level without a roster allows the whole catalog.
func (s *Simulation) Roster() []*defs.OperatorTemplate {
	var out []*defs.OperatorTemplate
	if s.level != nil && len(s.level.Operators) > 0 {
		for _, id := range s.level.Operators {
			if tpl, ok := s.catalog.Operator(id); ok {
				out = append(out, tpl)
			}
		}
		return out
	}
	for _, tpl := range s.catalog.Operators {
		out = append(out, tpl)
	}
	sortTemplates(out)
	return out
}

func (s *Simulation) rosterTemplate(id string) (*defs.OperatorTemplate, bool) {
	tpl, ok := s.catalog.Operator(id)
	if !ok {
		return nil, false
	}
	if s.level != nil && len(s.level.Operators) > 0 {
		for _, allowed := range s.level.Operators {
			if allowed == id {
				return tpl, true
			}
		}
		return nil, false
	}
	return tpl, true
}

// CanPlace validates a deployment without changing anything.
func (s *Simulation) CanPlace(templateID string, tile grid.Coord) placement.Verdict {
	tpl, ok := s.rosterTemplate(templateID)
	if !ok {
		return placement.Verdict{Reason: "unknown operator " + templateID}
	}
	return s.canPlace(tpl, tile)
}

func (s *Simulation) canPlace(tpl *defs.OperatorTemplate, tile grid.Coord) placement.Verdict {
	occupied := make([]grid.Coord, 0, len(s.operators))
	for _, op := range s.operators {
		occupied = append(occupied, op.Tile)
	}
	return placement.CanPlace(tpl, tile, s.grid, occupied, placement.Budget{
		Resource:  s.stats.Resource,
		Deployed:  s.stats.Deployed,
		DeployCap: s.stats.DeployCap,
	})
}

// BeginDeploy places an operator tentatively, pending facing confirmation.
// A failed placement check is returned as a placement.Verdict error.
func (s *Simulation) BeginDeploy(templateID string, tile grid.Coord) error {
	if s.state != StatePlaying {
		return ErrNotPlaying
	}
	tpl, ok := s.rosterTemplate(templateID)
	if !ok {
		return ErrUnknownOperator
	}
	if v := s.canPlace(tpl, tile); !v.OK {
		return v
	}
	s.pending = &PendingDeploy{Template: tpl, Tile: tile}
	return nil
}

// Pending returns the tentative deployment, if any.
func (s *Simulation) Pending() (PendingDeploy, bool) {
	if s.pending == nil {
		return PendingDeploy{}, false
	}
	return *s.pending, true
}

// CancelDeploy drops the tentative deployment.
func (s *Simulation) CancelDeploy() {
	s.pending = nil
}

// ConfirmDeploy commits the tentative deployment with the given facing.
// The placement is checked again since the run may have moved on.
func (s *Simulation) ConfirmDeploy(f combat.Facing) (*Operator, error) {
	if s.state != StatePlaying {
		return nil, ErrNotPlaying
	}
	if s.pending == nil {
		return nil, ErrNoPendingDeploy
	}
	p := s.pending
	s.pending = nil
	if v := s.canPlace(p.Template, p.Tile); !v.OK {
		return nil, v
	}

	tpl := p.Template
	s.stats.Resource -= tpl.Cost
	op := &Operator{
		ID:       s.newID(),
		Template: tpl,
		Tile:     p.Tile,
		Facing:   f,
		HP:       tpl.HP,
		MaxHP:    tpl.HP,
	}
	if tpl.Skill != nil {
		op.SPMax = tpl.Skill.SPMax
	}
	s.operators = append(s.operators, op)
	s.stats.Deployed = len(s.operators)
	s.emit(Event{Type: EventDeploy, OperatorID: op.ID, Template: tpl.ID, Pos: op.Pos()})
	return op, nil
}

// Deploy places and confirms an operator in one step.
func (s *Simulation) Deploy(templateID string, tile grid.Coord, f combat.Facing) (*Operator, error) {
	if err := s.BeginDeploy(templateID, tile); err != nil {
		return nil, err
	}
	return s.ConfirmDeploy(f)
}

// Retreat withdraws a deployed operator and refunds part of its cost.
func (s *Simulation) Retreat(operatorID int) error {
	if s.state != StatePlaying {
		return ErrNotPlaying
	}
	idx := -1
	for i, op := range s.operators {
		if op.ID == operatorID && op.Alive() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrOperatorNotFound
	}
	op := s.operators[idx]
	refund := int(math.Floor(float64(op.Template.Cost) * s.cfg.Economy.RetreatRefund))
	s.stats.Resource += refund
	if s.stats.Resource > s.cfg.Economy.ResourceCap {
		s.stats.Resource = s.cfg.Economy.ResourceCap
	}
	s.operators = append(s.operators[:idx], s.operators[idx+1:]...)
	s.stats.Deployed = len(s.operators)
	for _, e := range s.enemies {
		if e.BlockedBy == op.ID {
			e.Blocked = false
			e.BlockedBy = 0
		}
	}
	s.emit(Event{Type: EventRetreat, OperatorID: op.ID, Template: op.Template.ID, Amount: float64(refund), Pos: op.Pos()})
	return nil
}

// OperatorAt returns the operator deployed on tile.
func (s *Simulation) OperatorAt(tile grid.Coord) (*Operator, bool) {
	for _, op := range s.operators {
		if op.Tile == tile && op.Alive() {
			return op, true
		}
	}
	return nil, false
}
