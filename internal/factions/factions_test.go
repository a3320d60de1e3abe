package factions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvandermeer/suburbfall/internal/entropy"
	"github.com/nvandermeer/suburbfall/internal/notify"
	"github.com/nvandermeer/suburbfall/internal/world"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(notify.NewBus(), entropy.NewSeeded(7), world.NewMap(60, 40, 32))
}

func TestInitialRoster(t *testing.T) {
	mgr := newTestManager(t)

	require.Len(t, mgr.Factions(), 5)
	assert.Equal(t, -20, mgr.Relationship(USDA))
	assert.Equal(t, 30, mgr.Relationship(NeonYouth))

	// Each faction starts with 2 to 5 units inside its territory.
	for _, f := range mgr.Factions() {
		assert.GreaterOrEqual(t, len(f.UnitIDs), 2, f.ID)
		assert.LessOrEqual(t, len(f.UnitIDs), 5, f.ID)
		for _, id := range f.UnitIDs {
			u, ok := mgr.Unit(id)
			require.True(t, ok)
			assert.True(t, mgr.InTerritory(u.Pos, f.ID), "%s unit spawned outside territory", f.ID)
			assert.Equal(t, StatePatrol, u.State)
			assert.EqualValues(t, 100, u.Health)
		}
	}
}

func TestModifyRelationshipClamps(t *testing.T) {
	mgr := newTestManager(t)

	mgr.ModifyRelationship(USDA, -500)
	assert.Equal(t, -100, mgr.Relationship(USDA))
	mgr.ModifyRelationship(USDA, 300)
	assert.Equal(t, 100, mgr.Relationship(USDA))
	// Unknown faction is a quiet no-op.
	mgr.ModifyRelationship("hoa_illuminati", 10)
	assert.Equal(t, 0, mgr.Relationship("hoa_illuminati"))
}

func TestDamageUnitRemovesAtZero(t *testing.T) {
	bus := notify.NewBus()
	var kinds []notify.Kind
	bus.Subscribe(func(n notify.Notification) { kinds = append(kinds, n.Kind) })
	mgr := NewManager(bus, entropy.NewSeeded(7), world.NewMap(60, 40, 32))

	f, _ := mgr.Faction(USDA)
	unitID := f.UnitIDs[0]
	before := len(f.UnitIDs)

	mgr.DamageUnit(unitID, 40)
	u, ok := mgr.Unit(unitID)
	require.True(t, ok)
	assert.EqualValues(t, 60, u.Health)
	assert.Contains(t, kinds, notify.KindUnitDamaged)

	mgr.DamageUnit(unitID, 60)
	_, ok = mgr.Unit(unitID)
	assert.False(t, ok)
	assert.Len(t, f.UnitIDs, before-1)
	assert.Contains(t, kinds, notify.KindUnitDied)
}

func TestSpawnRaidMarksNewUnitsRaiding(t *testing.T) {
	mgr := newTestManager(t)
	f, _ := mgr.Faction(GrimaceCult)
	before := len(f.UnitIDs)

	mgr.SpawnRaid(GrimaceCult, 3)
	require.Len(t, f.UnitIDs, before+3)
	for _, id := range f.UnitIDs[before:] {
		u, ok := mgr.Unit(id)
		require.True(t, ok)
		assert.Equal(t, StateRaiding, u.State)
	}
}

type fakeTargets struct {
	nearest string
	damaged map[string]float64
}

func (ft *fakeTargets) NearestSurvivor(world.Position, float64) (string, bool) {
	return ft.nearest, ft.nearest != ""
}

func (ft *fakeTargets) DamageSurvivor(id string, amount float64) {
	ft.damaged[id] += amount
}

func TestRaidersAdvanceOnStockpileAndChipSurvivors(t *testing.T) {
	mgr := newTestManager(t)
	stockpile := world.Position{X: 960, Y: 640}
	mgr.SetStockpileLookup(func() world.Position { return stockpile })
	targets := &fakeTargets{nearest: "karen", damaged: make(map[string]float64)}
	mgr.SetSurvivorTargets(targets)

	mgr.SpawnRaid(USDA, 1)
	f, _ := mgr.Faction(USDA)
	raider, _ := mgr.Unit(f.UnitIDs[len(f.UnitIDs)-1])
	distBefore := raider.Pos.Dist(stockpile)

	mgr.Update(50)

	assert.Less(t, raider.Pos.Dist(stockpile), distBefore)
	assert.InDelta(t, 2, targets.damaged["karen"], 0.001)
}

func TestInTerritory(t *testing.T) {
	mgr := newTestManager(t)

	assert.True(t, mgr.InTerritory(world.Position{X: 100, Y: 100}, USDA))
	assert.True(t, mgr.InTerritory(world.Position{X: 520, Y: 210}, USDA))
	assert.False(t, mgr.InTerritory(world.Position{X: 1900, Y: 1200}, USDA))
}
