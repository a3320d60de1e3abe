// Package factions models the rival suburban powers: their territories,
// relationship levels, roaming units, and raid behavior.
package factions

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/nvandermeer/suburbfall/internal/entropy"
	"github.com/nvandermeer/suburbfall/internal/notify"
	"github.com/nvandermeer/suburbfall/internal/world"
)

// AIState is a unit's current behavior mode.
type AIState string

const (
	StateIdle    AIState = "idle"
	StatePatrol  AIState = "patrol"
	StateRaiding AIState = "raiding"
)

// Territory is a circular claim on the map.
type Territory struct {
	Center world.Position `json:"center"`
	Radius float64        `json:"radius"`
}

// Faction is one rival power.
type Faction struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Relationship int            `json:"relationship"` // -100 to 100
	Territories  []Territory    `json:"territories"`
	Traits       []string       `json:"traits"`
	Resources    map[string]int `json:"resources"`
	UnitIDs      []string       `json:"unit_ids"`
}

// HasTrait reports whether the faction carries a trait.
func (f *Faction) HasTrait(trait string) bool {
	for _, t := range f.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// Unit is one roaming faction member.
type Unit struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Pos       world.Position `json:"pos"`
	Health    float64        `json:"health"`
	FactionID string         `json:"faction_id"`
	Equipment []string       `json:"equipment"`
	State     AIState        `json:"state"`

	orbitPhase float64 // per-unit offset for defensive patrol orbits
}

// SurvivorTargets lets raiding units find and harm colony survivors without
// this package importing the survivor roster.
type SurvivorTargets interface {
	NearestSurvivor(pos world.Position, maxDist float64) (string, bool)
	DamageSurvivor(id string, amount float64)
}

// Manager owns all factions and their units.
type Manager struct {
	bus *notify.Bus
	rng entropy.Source
	m   *world.Map

	factions  map[string]*Faction
	order     []string
	units     map[string]*Unit
	unitOrder []string

	stockpile func() world.Position
	survivors SurvivorTargets

	driftChance    float64
	raidFlipChance float64
	moveChance     float64
	raidSpeed      float64
	raidDamage     float64
	raidRadius     float64

	elapsedS float64
}

// NewManager creates the faction roster and spawns each faction's initial
// units inside its territory.
func NewManager(bus *notify.Bus, rng entropy.Source, m *world.Map) *Manager {
	mgr := &Manager{
		bus:            bus,
		rng:            rng,
		m:              m,
		factions:       make(map[string]*Faction),
		units:          make(map[string]*Unit),
		driftChance:    0.001,
		raidFlipChance: 0.001,
		moveChance:     0.02,
		raidSpeed:      1.2,
		raidDamage:     2,
		raidRadius:     30,
	}
	for _, f := range catalog() {
		faction := f
		mgr.factions[faction.ID] = &faction
		mgr.order = append(mgr.order, faction.ID)
	}
	for _, id := range mgr.order {
		mgr.SpawnUnits(id, rng.Between(2, 5))
	}
	return mgr
}

// SetTuning overrides the behavior chances and raid parameters.
func (mgr *Manager) SetTuning(drift, raidFlip, move, raidSpeed, raidDamage, raidRadius float64) {
	mgr.driftChance = drift
	mgr.raidFlipChance = raidFlip
	mgr.moveChance = move
	mgr.raidSpeed = raidSpeed
	mgr.raidDamage = raidDamage
	mgr.raidRadius = raidRadius
}

// SetStockpileLookup wires the raid destination.
func (mgr *Manager) SetStockpileLookup(fn func() world.Position) {
	mgr.stockpile = fn
}

// SetSurvivorTargets wires the survivor roster used by raiders.
func (mgr *Manager) SetSurvivorTargets(st SurvivorTargets) {
	mgr.survivors = st
}

// Faction returns a faction by id.
func (mgr *Manager) Faction(id string) (*Faction, bool) {
	f, ok := mgr.factions[id]
	return f, ok
}

// Factions returns the roster in declaration order.
func (mgr *Manager) Factions() []*Faction {
	out := make([]*Faction, 0, len(mgr.order))
	for _, id := range mgr.order {
		out = append(out, mgr.factions[id])
	}
	return out
}

// Unit returns a unit by id.
func (mgr *Manager) Unit(id string) (*Unit, bool) {
	u, ok := mgr.units[id]
	return u, ok
}

// Units returns all live units in spawn order.
func (mgr *Manager) Units() []*Unit {
	out := make([]*Unit, 0, len(mgr.unitOrder))
	for _, id := range mgr.unitOrder {
		if u, ok := mgr.units[id]; ok {
			out = append(out, u)
		}
	}
	return out
}

// Relationship returns a faction's standing toward the colony, 0 when the
// faction is unknown.
func (mgr *Manager) Relationship(factionID string) int {
	if f, ok := mgr.factions[factionID]; ok {
		return f.Relationship
	}
	return 0
}

// ModifyRelationship applies a signed change clamped to [-100, 100].
func (mgr *Manager) ModifyRelationship(factionID string, change int) {
	f, ok := mgr.factions[factionID]
	if !ok {
		return
	}
	f.Relationship = clampRel(f.Relationship + change)
}

// InTerritory reports whether a position lies inside any of a faction's
// territories.
func (mgr *Manager) InTerritory(pos world.Position, factionID string) bool {
	f, ok := mgr.factions[factionID]
	if !ok {
		return false
	}
	for _, t := range f.Territories {
		if pos.Dist(t.Center) <= t.Radius {
			return true
		}
	}
	return false
}

// SpawnUnits creates count units in random spots inside the faction's
// territory. Spawn points are sampled with uniform radius, which biases them
// toward the territory center.
func (mgr *Manager) SpawnUnits(factionID string, count int) {
	f, ok := mgr.factions[factionID]
	if !ok {
		return
	}
	for i := 0; i < count; i++ {
		t := f.Territories[mgr.rng.IntN(len(f.Territories))]
		angle := mgr.rng.Float() * 2 * math.Pi
		dist := mgr.rng.Float() * t.Radius
		pos := world.Position{
			X: t.Center.X + math.Cos(angle)*dist,
			Y: t.Center.Y + math.Sin(angle)*dist,
		}
		mgr.createUnit(f, pos)
	}
}

// SpawnRaid spawns units already committed to raiding the stockpile.
func (mgr *Manager) SpawnRaid(factionID string, count int) {
	f, ok := mgr.factions[factionID]
	if !ok {
		return
	}
	mgr.SpawnUnits(factionID, count)
	ids := f.UnitIDs
	for _, id := range ids[max(0, len(ids)-count):] {
		if u, exists := mgr.units[id]; exists {
			u.State = StateRaiding
		}
	}
	slog.Warn("raid incoming", "faction", factionID, "count", count)
}

func (mgr *Manager) createUnit(f *Faction, pos world.Position) *Unit {
	u := &Unit{
		ID:         uuid.NewString(),
		Name:       mgr.pickUnitName(f.ID),
		Pos:        pos,
		Health:     100,
		FactionID:  f.ID,
		Equipment:  mgr.pickUnitEquipment(f.ID),
		State:      StatePatrol,
		orbitPhase: mgr.rng.Float() * 2 * math.Pi,
	}
	mgr.units[u.ID] = u
	mgr.unitOrder = append(mgr.unitOrder, u.ID)
	f.UnitIDs = append(f.UnitIDs, u.ID)
	return u
}

// DamageUnit applies damage, removing the unit at zero health.
func (mgr *Manager) DamageUnit(unitID string, amount float64) {
	u, ok := mgr.units[unitID]
	if !ok {
		return
	}
	u.Health = math.Max(0, u.Health-amount)
	mgr.bus.Publish(notify.Notification{
		Kind: notify.KindUnitDamaged,
		Data: map[string]any{"unit": u.ID, "faction": u.FactionID, "damage": amount, "health": u.Health},
	})
	if u.Health > 0 {
		return
	}

	mgr.bus.Publish(notify.Notification{
		Kind:    notify.KindUnitDied,
		Message: fmt.Sprintf("%s of %s has fallen.", u.Name, u.FactionID),
		Data:    map[string]any{"unit": u.ID, "faction": u.FactionID},
	})
	delete(mgr.units, unitID)
	if f, exists := mgr.factions[u.FactionID]; exists {
		for i, id := range f.UnitIDs {
			if id == unitID {
				f.UnitIDs = append(f.UnitIDs[:i], f.UnitIDs[i+1:]...)
				break
			}
		}
	}
}

// Update advances relationship drift and unit behavior by one tick.
func (mgr *Manager) Update(deltaMs float64) {
	mgr.elapsedS += deltaMs / 1000

	if mgr.rng.Float() < mgr.driftChance {
		for _, id := range mgr.order {
			f := mgr.factions[id]
			f.Relationship = clampRel(f.Relationship + mgr.rng.Between(-1, 1))
		}
	}

	for _, id := range mgr.unitOrder {
		u, ok := mgr.units[id]
		if !ok {
			continue
		}
		mgr.updateUnit(u)
	}
}

func (mgr *Manager) updateUnit(u *Unit) {
	f, ok := mgr.factions[u.FactionID]
	if !ok {
		return
	}

	// Hostile factions occasionally commit units to raiding.
	if f.Relationship < -20 && mgr.rng.Float() < mgr.raidFlipChance {
		u.State = StateRaiding
	}

	if u.State == StateRaiding {
		if mgr.stockpile != nil {
			target := mgr.stockpile()
			mgr.moveTowards(u, target, mgr.raidSpeed)
			if mgr.survivors != nil {
				if victim, found := mgr.survivors.NearestSurvivor(u.Pos, mgr.raidRadius); found {
					mgr.survivors.DamageSurvivor(victim, mgr.raidDamage)
				}
			}
		} else {
			mgr.patrolTerritory(u, f)
		}
		return
	}

	if mgr.rng.Float() >= mgr.moveChance {
		return
	}
	switch {
	case f.HasTrait("Paranoid"):
		mgr.moveTowardsTerritory(u, f)
	case f.HasTrait("Chaotic"):
		mgr.randomMovement(u, 3)
	case f.HasTrait("Defensive"):
		mgr.patrolTerritory(u, f)
	default:
		mgr.randomMovement(u, 3)
	}
}

// moveTowardsTerritory walks a strayed unit back to its home territory.
func (mgr *Manager) moveTowardsTerritory(u *Unit, f *Faction) {
	if len(f.Territories) == 0 {
		return
	}
	t := f.Territories[0]
	dist := u.Pos.Dist(t.Center)
	if dist <= t.Radius {
		return
	}
	mgr.moveTowards(u, t.Center, 1)
}

// patrolTerritory walks the unit along an orbit at 80% of the territory
// radius. Each unit carries its own phase so patrols do not bunch up.
func (mgr *Manager) patrolTerritory(u *Unit, f *Faction) {
	if len(f.Territories) == 0 {
		return
	}
	t := f.Territories[0]
	angle := math.Mod(mgr.elapsedS+u.orbitPhase, 2*math.Pi)
	r := t.Radius * 0.8
	u.Pos = world.Position{
		X: t.Center.X + math.Cos(angle)*r,
		Y: t.Center.Y + math.Sin(angle)*r,
	}
}

func (mgr *Manager) randomMovement(u *Unit, dist float64) {
	angle := mgr.rng.Float() * 2 * math.Pi
	u.Pos.X += math.Cos(angle) * dist
	u.Pos.Y += math.Sin(angle) * dist
	u.Pos = mgr.m.Clamp(u.Pos, 50)
}

func (mgr *Manager) moveTowards(u *Unit, target world.Position, speed float64) {
	dist := u.Pos.Dist(target)
	if dist < 1 {
		return
	}
	u.Pos.X += (target.X - u.Pos.X) / dist * speed
	u.Pos.Y += (target.Y - u.Pos.Y) / dist * speed
}

func clampRel(v int) int {
	if v < -100 {
		return -100
	}
	if v > 100 {
		return 100
	}
	return v
}
