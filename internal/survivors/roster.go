package survivors

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/nvandermeer/suburbfall/internal/construction"
	"github.com/nvandermeer/suburbfall/internal/entropy"
	"github.com/nvandermeer/suburbfall/internal/factions"
	"github.com/nvandermeer/suburbfall/internal/notify"
	"github.com/nvandermeer/suburbfall/internal/resources"
	"github.com/nvandermeer/suburbfall/internal/state"
	"github.com/nvandermeer/suburbfall/internal/world"
)

// RecruitCost is charged from the stockpile when a wanderer joins.
var RecruitCost = map[string]int{resources.Nuggets: 20, resources.Sauce: 10}

// Roster manages colony survivors plus the pool of unrecruited wanderers.
type Roster struct {
	bus    *notify.Bus
	rng    entropy.Source
	m      *world.Map
	shared *state.State
	ledger *resources.Ledger
	yard   *construction.Yard
	rivals *factions.Manager

	survivors map[string]*Survivor
	order     []string
	wanderers map[string]*Survivor
	wandOrder []string

	bgs []Background

	speed            float64
	haulAmount       int
	gatherSeconds    float64
	attackCooldown   float64
	attackDamage     float64
	hungerRollChance float64
	hostileRadius    float64
	wandererCap      int
}

// NewRoster wires the roster to its collaborators.
func NewRoster(bus *notify.Bus, rng entropy.Source, m *world.Map, shared *state.State,
	ledger *resources.Ledger, yard *construction.Yard, rivals *factions.Manager) *Roster {
	return &Roster{
		bus:              bus,
		rng:              rng,
		m:                m,
		shared:           shared,
		ledger:           ledger,
		yard:             yard,
		rivals:           rivals,
		survivors:        make(map[string]*Survivor),
		wanderers:        make(map[string]*Survivor),
		bgs:              backgrounds(),
		speed:            50,
		haulAmount:       5,
		gatherSeconds:    1.2,
		attackCooldown:   0.8,
		attackDamage:     15,
		hungerRollChance: 0.01,
		hostileRadius:    120,
		wandererCap:      5,
	}
}

// SetTuning overrides the behavior knobs.
func (r *Roster) SetTuning(speed float64, haulAmount int, gatherSeconds, attackCooldown,
	attackDamage, hungerRollChance, hostileRadius float64, wandererCap int) {
	r.speed = speed
	r.haulAmount = haulAmount
	r.gatherSeconds = gatherSeconds
	r.attackCooldown = attackCooldown
	r.attackDamage = attackDamage
	r.hungerRollChance = hungerRollChance
	r.hostileRadius = hostileRadius
	r.wandererCap = wandererCap
}

// SpawnInitial creates the founding survivors near the colony's corner of
// the map.
func (r *Roster) SpawnInitial(count int) {
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("Survivor %d", i+1)
		if i < len(defaultNames) {
			name = defaultNames[i]
		}
		pos := world.Position{
			X: float64(r.rng.Between(100, 300)),
			Y: float64(r.rng.Between(100, 300)),
		}
		r.create(name, pos, true)
	}
	slog.Info("founding survivors spawned", "count", count)
}

// Add creates a survivor directly in the colony.
func (r *Roster) Add(name string, pos world.Position) *Survivor {
	return r.create(name, pos, true)
}

func (r *Roster) create(name string, pos world.Position, colony bool) *Survivor {
	bg := r.bgs[r.rng.IntN(len(r.bgs))]
	skills := make(map[string]int, len(bg.Skills))
	for k, v := range bg.Skills {
		skills[k] = v
	}
	s := &Survivor{
		ID:         uuid.NewString(),
		Name:       name,
		Background: bg,
		Pos:        pos,
		Health:     100,
		Sanity:     float64(r.rng.Between(60, 90)),
		Hunger:     float64(r.rng.Between(30, 70)),
		Speed:      r.speed,
		Skills:     skills,
		Quirks:     append([]string(nil), bg.Quirks...),
	}
	s.Mood = calculateMood(s.Health, s.Sanity, s.Hunger)
	if colony {
		r.survivors[s.ID] = s
		r.order = append(r.order, s.ID)
	}
	return s
}

// Survivor returns a colony member by id.
func (r *Roster) Survivor(id string) (*Survivor, bool) {
	s, ok := r.survivors[id]
	return s, ok
}

// Survivors returns colony members in join order.
func (r *Roster) Survivors() []*Survivor {
	out := make([]*Survivor, 0, len(r.order))
	for _, id := range r.order {
		if s, ok := r.survivors[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Count returns the colony head count.
func (r *Roster) Count() int {
	return len(r.survivors)
}

// Wanderers returns the unrecruited pool in arrival order.
func (r *Roster) Wanderers() []*Survivor {
	out := make([]*Survivor, 0, len(r.wandOrder))
	for _, id := range r.wandOrder {
		if s, ok := r.wanderers[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

// GenerateWanderer adds a prospective recruit to the pool, up to the cap.
func (r *Roster) GenerateWanderer() *Survivor {
	if len(r.wanderers) >= r.wandererCap {
		return nil
	}
	name := fmt.Sprintf("Wanderer %d", r.rng.Between(100, 999))
	w := r.create(name, world.Position{X: -100, Y: -100}, false)
	r.wanderers[w.ID] = w
	r.wandOrder = append(r.wandOrder, w.ID)
	slog.Info("wanderer sighted", "name", name, "background", w.Background.Name)
	return w
}

// RecruitWanderer charges the recruitment cost and moves a wanderer into the
// colony next to the stockpile.
func (r *Roster) RecruitWanderer(id string) error {
	w, ok := r.wanderers[id]
	if !ok {
		return fmt.Errorf("no such wanderer %s", id)
	}
	for res, amount := range RecruitCost {
		if !r.ledger.Has(res, amount) {
			return fmt.Errorf("recruiting needs %d %s", amount, res)
		}
	}
	for res, amount := range RecruitCost {
		r.ledger.Remove(res, amount)
	}

	delete(r.wanderers, id)
	stock := r.ledger.Stockpile()
	w.Pos = world.Position{
		X: stock.X + float64(r.rng.Between(-10, 10)),
		Y: stock.Y + float64(r.rng.Between(-10, 10)),
	}
	r.survivors[id] = w
	r.order = append(r.order, id)

	slog.Info("wanderer recruited", "name", w.Name)
	r.bus.Publish(notify.Notification{
		Kind:    notify.KindSurvivorRecruited,
		Message: fmt.Sprintf("%s joined the colony.", w.Name),
		Data:    map[string]any{"survivor": w.ID, "name": w.Name},
	})
	return nil
}

// Remove deletes a survivor from the colony.
func (r *Roster) Remove(id string) {
	if s, ok := r.survivors[id]; ok {
		r.releaseReservation(s)
		delete(r.survivors, id)
	}
}

// DamageSurvivor applies damage, removing the survivor at zero health.
// Implements the target interface raiding units use.
func (r *Roster) DamageSurvivor(id string, amount float64) {
	s, ok := r.survivors[id]
	if !ok {
		return
	}
	s.Health = math.Max(0, s.Health-amount)
	s.Mood = calculateMood(s.Health, s.Sanity, s.Hunger)
	r.bus.Publish(notify.Notification{
		Kind: notify.KindSurvivorDamaged,
		Data: map[string]any{"survivor": s.ID, "damage": amount, "health": s.Health},
	})
	if s.Health <= 0 {
		r.bus.Publish(notify.Notification{
			Kind:    notify.KindSurvivorDied,
			Message: fmt.Sprintf("%s has died.", s.Name),
			Data:    map[string]any{"survivor": s.ID, "name": s.Name},
		})
		r.Remove(id)
	}
}

// NearestSurvivor returns the closest colony member within maxDist of pos.
func (r *Roster) NearestSurvivor(pos world.Position, maxDist float64) (string, bool) {
	bestD2 := maxDist * maxDist
	var bestID string
	for _, id := range r.order {
		s, ok := r.survivors[id]
		if !ok {
			continue
		}
		if d2 := s.Pos.Dist2(pos); d2 < bestD2 {
			bestD2 = d2
			bestID = s.ID
		}
	}
	return bestID, bestID != ""
}

// FindNearestIdleWorker returns the closest survivor with no task.
// Implements the worker lookup construction uses for auto-assignment.
func (r *Roster) FindNearestIdleWorker(pos world.Position) (string, bool) {
	bestD2 := math.MaxFloat64
	var bestID string
	for _, id := range r.order {
		s, ok := r.survivors[id]
		if !ok || !s.Idle() {
			continue
		}
		if d2 := s.Pos.Dist2(pos); d2 < bestD2 {
			bestD2 = d2
			bestID = s.ID
		}
	}
	return bestID, bestID != ""
}

// AssignPriorityTask overrides a survivor's current task, releasing any node
// reservation the old task held.
func (r *Roster) AssignPriorityTask(id string, task Task) {
	s, ok := r.survivors[id]
	if !ok {
		return
	}
	r.releaseReservation(s)
	s.Task = &task
}

// AdjustStats applies an event effect to every colony member. Stat is one of
// health, sanity, or hunger.
func (r *Roster) AdjustStats(stat string, delta float64) {
	for _, id := range r.order {
		s, ok := r.survivors[id]
		if !ok {
			continue
		}
		switch stat {
		case "health":
			s.Health = clampStat(s.Health + delta)
		case "sanity":
			s.Sanity = clampStat(s.Sanity + delta)
		case "hunger":
			s.Hunger = clampStat(s.Hunger + delta)
		}
		s.Mood = calculateMood(s.Health, s.Sanity, s.Hunger)
	}
}

// RecomputeMoods refreshes every survivor's mood label.
func (r *Roster) RecomputeMoods() {
	for _, s := range r.survivors {
		s.Mood = calculateMood(s.Health, s.Sanity, s.Hunger)
	}
}

func (r *Roster) releaseReservation(s *Survivor) {
	if s.Task != nil && s.Task.Type == TaskGather {
		r.ledger.Release(s.Task.NodeID, s.ID)
	}
}

func clampStat(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
