package survivors

import (
	"math"

	"github.com/nvandermeer/suburbfall/internal/construction"
	"github.com/nvandermeer/suburbfall/internal/factions"
	"github.com/nvandermeer/suburbfall/internal/notify"
	"github.com/nvandermeer/suburbfall/internal/resources"
	"github.com/nvandermeer/suburbfall/internal/world"
)

// Update advances needs and the AI state machine for every survivor.
func (r *Roster) Update(deltaMs float64) {
	dt := deltaMs / 1000
	for _, id := range r.order {
		s, ok := r.survivors[id]
		if !ok {
			continue
		}
		r.updateNeeds(s)
		r.updateAI(s, dt)
	}
}

// updateNeeds runs the slow hunger/sanity decay. Changes are probabilistic
// per tick so decay stays gradual at any tick rate.
func (r *Roster) updateNeeds(s *Survivor) {
	if r.rng.Float() >= r.hungerRollChance {
		return
	}
	s.Hunger = math.Min(100, s.Hunger+1)

	if s.Hunger > 80 && !s.Starving {
		s.Starving = true
		r.bus.Publish(notify.Notification{
			Kind: notify.KindSurvivorStateChanged,
			Data: map[string]any{"survivor": s.ID, "state": "starving"},
		})
	} else if s.Hunger <= 80 && s.Starving {
		s.Starving = false
	}

	if s.Sanity < 20 && !s.Breaking {
		s.Breaking = true
		r.bus.Publish(notify.Notification{
			Kind: notify.KindSurvivorStateChanged,
			Data: map[string]any{"survivor": s.ID, "state": "breaking"},
		})
	} else if s.Sanity >= 20 && s.Breaking {
		s.Breaking = false
	}

	if s.Hunger > 80 {
		s.Sanity = math.Max(0, s.Sanity-1)
	}
	s.Mood = calculateMood(s.Health, s.Sanity, s.Hunger)
}

func (r *Roster) updateAI(s *Survivor, dt float64) {
	// Defense mode turns everyone on the nearest hostile in range.
	if r.shared.DefenseMode() {
		if hostile := r.findNearestHostile(s); hostile != nil {
			if s.Task == nil || s.Task.Type != TaskDefend || s.Task.EnemyUnitID != hostile.ID {
				r.AssignPriorityTask(s.ID, Task{
					Type:        TaskDefend,
					Phase:       PhaseToEnemy,
					EnemyUnitID: hostile.ID,
					Target:      hostile.Pos,
				})
			}
		}
	}

	if s.Task == nil {
		r.ensureTask(s)
	}
	if s.Task != nil {
		r.processTask(s, dt)
	} else {
		r.wander(s)
	}
}

// ensureTask picks the next job: haul to a needy construction site first,
// then gather from the nearest reservable node, otherwise idle.
func (r *Roster) ensureTask(s *Survivor) {
	// 1) Construction sites waiting on resources we have in stock.
	for _, b := range r.yard.Buildings() {
		if !r.yard.NeedsResources(b.ID) {
			continue
		}
		for _, resType := range r.yard.NeededResourceTypes(b.ID) {
			if r.ledger.Get(resType) > 0 {
				s.Task = &Task{
					Type:         TaskDeliverBuild,
					Phase:        PhaseToStockpile,
					BuildingID:   b.ID,
					ResourceType: resType,
					Amount:       r.haulAmount,
					Target:       r.ledger.Stockpile(),
				}
				return
			}
		}
	}

	// 2) Gather in fixed priority order, claiming the node.
	for _, resType := range resources.GatherPriority {
		node := r.ledger.FindNearest(resType, s.Pos, s.ID)
		if node == nil || !r.ledger.Reserve(node.ID, s.ID) {
			continue
		}
		s.Task = &Task{
			Type:         TaskGather,
			Phase:        PhaseToNode,
			NodeID:       node.ID,
			ResourceType: resType,
			Target:       node.Pos,
		}
		return
	}

	// 3) Nothing to do.
	s.Task = &Task{Type: TaskIdle, Phase: PhaseWander}
}

func (r *Roster) processTask(s *Survivor, dt float64) {
	switch s.Task.Type {
	case TaskGather:
		r.processGather(s, dt)
	case TaskDeliverBuild:
		r.processDeliverBuild(s, dt)
	case TaskBuildWork:
		r.processBuildWork(s, dt)
	case TaskDefend:
		r.processDefend(s, dt)
	case TaskIdle:
		r.wander(s)
	}
}

func (r *Roster) processGather(s *Survivor, dt float64) {
	task := s.Task
	switch task.Phase {
	case PhaseToNode:
		if r.moveTowards(s, task.Target, dt) {
			task.Phase = PhaseGathering
			task.TimerS = r.gatherSeconds
		}
	case PhaseGathering:
		task.TimerS -= dt
		if task.TimerS > 0 {
			return
		}
		extracted := r.ledger.Extract(task.NodeID, r.haulAmount, s.ID)
		r.ledger.Release(task.NodeID, s.ID)
		if extracted <= 0 {
			s.Task = nil
			return
		}
		s.Carrying = &Carry{ResourceType: task.ResourceType, Amount: extracted}
		task.Phase = PhaseToStockpile
		task.Target = r.ledger.Stockpile()
	case PhaseToStockpile:
		if r.moveTowards(s, task.Target, dt) {
			if s.Carrying != nil {
				r.ledger.Add(s.Carrying.ResourceType, s.Carrying.Amount)
				s.Carrying = nil
			}
			s.Task = nil
		}
	}
}

func (r *Roster) processDeliverBuild(s *Survivor, dt float64) {
	task := s.Task
	switch task.Phase {
	case PhaseToStockpile:
		if !r.moveTowards(s, task.Target, dt) {
			return
		}
		// Load up at the stockpile.
		if !r.ledger.Has(task.ResourceType, task.Amount) {
			s.Task = nil
			return
		}
		r.ledger.Remove(task.ResourceType, task.Amount)
		s.Carrying = &Carry{ResourceType: task.ResourceType, Amount: task.Amount}
		b, ok := r.yard.Building(task.BuildingID)
		if !ok {
			// Site vanished mid-haul: return the load.
			r.ledger.Add(task.ResourceType, task.Amount)
			s.Carrying = nil
			s.Task = nil
			return
		}
		task.Phase = PhaseToBuild
		task.Target = b.Pos
	case PhaseToBuild:
		if !r.moveTowards(s, task.Target, dt) {
			return
		}
		if s.Carrying == nil {
			s.Task = nil
			return
		}
		applied := r.yard.ContributeResources(task.BuildingID, s.Carrying.ResourceType, s.Carrying.Amount)
		if leftover := s.Carrying.Amount - applied; leftover > 0 {
			r.ledger.Add(s.Carrying.ResourceType, leftover)
		}
		s.Carrying = nil
		r.yard.WorkOnConstruction(task.BuildingID, s.ID)
		s.Task = &Task{
			Type:       TaskBuildWork,
			Phase:      PhaseWorking,
			BuildingID: task.BuildingID,
			Target:     task.Target,
		}
	}
}

func (r *Roster) processBuildWork(s *Survivor, dt float64) {
	task := s.Task
	b, ok := r.yard.Building(task.BuildingID)
	if !ok {
		s.Task = nil
		return
	}
	// Stay at the site while the yard ticks the work down.
	r.moveTowards(s, task.Target, dt)

	// More deliveries needed? Switch back to hauling.
	if r.yard.NeedsResources(b.ID) {
		for _, resType := range r.yard.NeededResourceTypes(b.ID) {
			if r.ledger.Get(resType) > 0 {
				s.Task = &Task{
					Type:         TaskDeliverBuild,
					Phase:        PhaseToStockpile,
					BuildingID:   b.ID,
					ResourceType: resType,
					Amount:       r.haulAmount,
					Target:       r.ledger.Stockpile(),
				}
				return
			}
		}
	}
	if b.Status == construction.StatusCompleted {
		s.Task = nil
	}
}

func (r *Roster) processDefend(s *Survivor, dt float64) {
	task := s.Task
	unit, ok := r.rivals.Unit(task.EnemyUnitID)
	if !ok {
		s.Task = nil
		return
	}
	task.Target = unit.Pos

	switch task.Phase {
	case PhaseToEnemy:
		if r.moveTowards(s, unit.Pos, dt) {
			task.Phase = PhaseAttacking
			task.TimerS = r.attackCooldown
		}
	case PhaseAttacking:
		task.TimerS -= dt
		r.moveTowards(s, unit.Pos, dt)
		if task.TimerS <= 0 {
			r.rivals.DamageUnit(unit.ID, r.attackDamage)
			task.TimerS = r.attackCooldown
		}
	}

	// Enemy down: stand down.
	if _, alive := r.rivals.Unit(task.EnemyUnitID); !alive {
		s.Task = nil
	}
}

// findNearestHostile scans faction units within the hostile radius. A unit
// is hostile when raiding or when its faction's relationship is negative.
func (r *Roster) findNearestHostile(s *Survivor) *factions.Unit {
	bestD2 := r.hostileRadius * r.hostileRadius
	var best *factions.Unit
	for _, u := range r.rivals.Units() {
		hostile := u.State == factions.StateRaiding || r.rivals.Relationship(u.FactionID) < 0
		if !hostile {
			continue
		}
		if d2 := u.Pos.Dist2(s.Pos); d2 < bestD2 {
			bestD2 = d2
			best = u
		}
	}
	return best
}

// moveTowards steps the survivor toward target, snapping on arrival.
// Returns true once arrived.
func (r *Roster) moveTowards(s *Survivor, target world.Position, dt float64) bool {
	dist := s.Pos.Dist(target)
	if dist <= math.Max(2, s.Speed*dt) {
		s.Pos = target
		return true
	}
	step := s.Speed * dt
	s.Pos.X += (target.X - s.Pos.X) / dist * step
	s.Pos.Y += (target.Y - s.Pos.Y) / dist * step
	return false
}

// wander drifts an idle survivor a short random step.
func (r *Roster) wander(s *Survivor) {
	if r.rng.Float() >= 0.1 {
		return
	}
	angle := r.rng.Float() * 2 * math.Pi
	s.Pos.X += math.Cos(angle) * 2
	s.Pos.Y += math.Sin(angle) * 2
	s.Pos = r.m.Clamp(s.Pos, 50)
}
