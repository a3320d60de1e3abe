package survivors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvandermeer/suburbfall/internal/construction"
	"github.com/nvandermeer/suburbfall/internal/entropy"
	"github.com/nvandermeer/suburbfall/internal/factions"
	"github.com/nvandermeer/suburbfall/internal/notify"
	"github.com/nvandermeer/suburbfall/internal/resources"
	"github.com/nvandermeer/suburbfall/internal/state"
	"github.com/nvandermeer/suburbfall/internal/world"
)

type fixture struct {
	bus    *notify.Bus
	ledger *resources.Ledger
	yard   *construction.Yard
	rivals *factions.Manager
	shared *state.State
	roster *Roster
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	bus := notify.NewBus()
	rng := entropy.NewSeeded(3)
	m := world.NewMap(60, 40, 32)
	shared := state.New(bus)
	ledger := resources.NewLedger(bus, rng)
	ledger.SetStockpile(m.Center())
	yard := construction.NewYard(bus, ledger, shared)
	rivals := factions.NewManager(bus, rng, m)
	roster := NewRoster(bus, rng, m, shared, ledger, yard, rivals)
	yard.SetWorkerFinder(roster)
	rivals.SetSurvivorTargets(roster)
	rivals.SetStockpileLookup(ledger.Stockpile)
	return &fixture{bus: bus, ledger: ledger, yard: yard, rivals: rivals, shared: shared, roster: roster}
}

func TestMoodBuckets(t *testing.T) {
	assert.Equal(t, MoodContent, calculateMood(100, 90, 10))
	assert.Equal(t, MoodStable, calculateMood(80, 70, 50))
	assert.Equal(t, MoodStressed, calculateMood(60, 50, 70))
	assert.Equal(t, MoodUnstable, calculateMood(30, 30, 80))
	assert.Equal(t, MoodBreaking, calculateMood(10, 10, 95))
}

func TestSpawnInitialUsesDefaultNames(t *testing.T) {
	f := newFixture(t)
	f.roster.SpawnInitial(3)

	got := f.roster.Survivors()
	require.Len(t, got, 3)
	assert.Equal(t, "Karen", got[0].Name)
	assert.Equal(t, "Bob", got[1].Name)
	assert.Equal(t, "Dave", got[2].Name)
	for _, s := range got {
		assert.EqualValues(t, 100, s.Health)
		assert.GreaterOrEqual(t, s.Sanity, 60.0)
		assert.LessOrEqual(t, s.Sanity, 90.0)
		assert.GreaterOrEqual(t, s.Hunger, 30.0)
		assert.LessOrEqual(t, s.Hunger, 70.0)
	}
}

func TestDamageSurvivorRemovesAtZero(t *testing.T) {
	f := newFixture(t)
	var kinds []notify.Kind
	f.bus.Subscribe(func(n notify.Notification) { kinds = append(kinds, n.Kind) })

	s := f.roster.Add("Karen", world.Position{X: 100, Y: 100})
	f.roster.DamageSurvivor(s.ID, 30)
	assert.EqualValues(t, 70, s.Health)
	assert.Contains(t, kinds, notify.KindSurvivorDamaged)

	f.roster.DamageSurvivor(s.ID, 100)
	_, ok := f.roster.Survivor(s.ID)
	assert.False(t, ok)
	assert.Contains(t, kinds, notify.KindSurvivorDied)
}

func TestGatherTaskLifecycle(t *testing.T) {
	f := newFixture(t)
	s := f.roster.Add("Karen", world.Position{X: 100, Y: 100})
	node := f.ledger.CreateNode(resources.Wood, world.Position{X: 110, Y: 100}, 20)
	woodBefore := f.ledger.Get(resources.Wood)

	// First tick: pick the gather task and reserve the node.
	f.roster.Update(50)
	require.NotNil(t, s.Task)
	assert.Equal(t, TaskGather, s.Task.Type)
	assert.Equal(t, node.ID, s.Task.NodeID)
	assert.Equal(t, node.ReservedBy, s.ID)

	// Walk in, gather for the dwell time, then haul home.
	for i := 0; i < 2000 && s.Task != nil; i++ {
		f.roster.Update(50)
	}
	assert.Nil(t, s.Task)
	assert.Nil(t, s.Carrying)
	assert.Equal(t, woodBefore+5, f.ledger.Get(resources.Wood))
	assert.Equal(t, 15, node.Amount)
	assert.Empty(t, node.ReservedBy)
}

func TestHaulToConstructionSite(t *testing.T) {
	f := newFixture(t)
	f.ledger.Add(resources.Fabric, 10)
	s := f.roster.Add("Karen", world.Position{X: 900, Y: 620})

	b, err := f.yard.StartBuilding("conspiracy_board", world.Position{X: 1000, Y: 700}, "")
	require.NoError(t, err)
	assert.Equal(t, s.ID, b.AssignedWorker)

	// The site needs fabric/plastic/electronics which are all in stock, so
	// the first decision is a delivery run.
	f.roster.Update(50)
	require.NotNil(t, s.Task)
	assert.Equal(t, TaskDeliverBuild, s.Task.Type)
	assert.Equal(t, b.ID, s.Task.BuildingID)

	// Run until the building completes. The yard must also tick so labor
	// burns down.
	for i := 0; i < 5000 && b.Status != construction.StatusCompleted; i++ {
		f.roster.Update(50)
		f.yard.Update(50)
	}
	assert.Equal(t, construction.StatusCompleted, b.Status)
	assert.False(t, f.yard.NeedsResources(b.ID))
}

func TestDefenseModeOverridesTasks(t *testing.T) {
	f := newFixture(t)
	// Far corner of the map, outside every faction territory, so the raider
	// below is the only hostile in range.
	s := f.roster.Add("Karen", world.Position{X: 1500, Y: 1000})
	f.shared.SetDefenseMode(true)

	f.rivals.SpawnRaid(factions.USDA, 1)
	usda, _ := f.rivals.Faction(factions.USDA)
	raider, _ := f.rivals.Unit(usda.UnitIDs[len(usda.UnitIDs)-1])
	raider.Pos = world.Position{X: 1510, Y: 1000}

	f.roster.Update(50)
	require.NotNil(t, s.Task)
	assert.Equal(t, TaskDefend, s.Task.Type)
	assert.Equal(t, raider.ID, s.Task.EnemyUnitID)

	// Keep fighting until the raider is destroyed, then stand down.
	for i := 0; i < 1000; i++ {
		f.roster.Update(50)
		if _, alive := f.rivals.Unit(raider.ID); !alive {
			break
		}
	}
	_, alive := f.rivals.Unit(raider.ID)
	assert.False(t, alive)
	assert.Nil(t, s.Task)
}

func TestWandererPoolCapAndRecruit(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 10; i++ {
		f.roster.GenerateWanderer()
	}
	require.Len(t, f.roster.Wanderers(), 5)

	w := f.roster.Wanderers()[0]
	nuggetsBefore := f.ledger.Get(resources.Nuggets)
	sauceBefore := f.ledger.Get(resources.Sauce)

	require.NoError(t, f.roster.RecruitWanderer(w.ID))
	assert.Equal(t, nuggetsBefore-20, f.ledger.Get(resources.Nuggets))
	assert.Equal(t, sauceBefore-10, f.ledger.Get(resources.Sauce))

	_, ok := f.roster.Survivor(w.ID)
	assert.True(t, ok)
	assert.Len(t, f.roster.Wanderers(), 4)

	// Recruiting without the resources fails.
	f.ledger.Remove(resources.Nuggets, f.ledger.Get(resources.Nuggets))
	err := f.roster.RecruitWanderer(f.roster.Wanderers()[0].ID)
	assert.Error(t, err)
}

func TestAdjustStatsClamps(t *testing.T) {
	f := newFixture(t)
	s := f.roster.Add("Karen", world.Position{X: 100, Y: 100})

	f.roster.AdjustStats("sanity", -500)
	assert.EqualValues(t, 0, s.Sanity)
	f.roster.AdjustStats("hunger", 500)
	assert.EqualValues(t, 100, s.Hunger)
	assert.Equal(t, MoodBreaking, s.Mood)
}

func TestFindNearestIdleWorkerSkipsBusy(t *testing.T) {
	f := newFixture(t)
	busy := f.roster.Add("Karen", world.Position{X: 100, Y: 100})
	busy.Task = &Task{Type: TaskIdle, Phase: PhaseWander}
	idle := f.roster.Add("Bob", world.Position{X: 400, Y: 400})

	id, ok := f.roster.FindNearestIdleWorker(world.Position{X: 110, Y: 100})
	require.True(t, ok)
	assert.Equal(t, idle.ID, id)
}
