package construction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvandermeer/suburbfall/internal/entropy"
	"github.com/nvandermeer/suburbfall/internal/notify"
	"github.com/nvandermeer/suburbfall/internal/resources"
	"github.com/nvandermeer/suburbfall/internal/state"
	"github.com/nvandermeer/suburbfall/internal/world"
)

func newTestYard(t *testing.T) (*Yard, *resources.Ledger, *state.State) {
	t.Helper()
	bus := notify.NewBus()
	ledger := resources.NewLedger(bus, entropy.NewSeeded(1))
	shared := state.New(bus)
	return NewYard(bus, ledger, shared), ledger, shared
}

type staticFinder struct{ id string }

func (f staticFinder) FindNearestIdleWorker(world.Position) (string, bool) {
	return f.id, f.id != ""
}

func TestCanCraftChecksResourcesOnly(t *testing.T) {
	y, ledger, _ := newTestYard(t)

	// chain_link_fence is tech-gated but craftability only looks at the
	// stockpile: scrap 10, plastic 5 against starting 15/10.
	fence, ok := y.Recipe("chain_link_fence")
	require.True(t, ok)
	require.False(t, fence.Unlocked)
	assert.True(t, y.CanCraft("chain_link_fence"))

	require.True(t, ledger.Remove(resources.Scrap, ledger.Get(resources.Scrap)))
	assert.False(t, y.CanCraft("chain_link_fence"))
}

func TestStartBuildingDoesNotConsumeUpFront(t *testing.T) {
	y, ledger, _ := newTestYard(t)
	scrapBefore := ledger.Get(resources.Scrap)

	b, err := y.StartBuilding("chain_link_fence", world.Position{X: 200, Y: 200}, "")
	require.NoError(t, err)
	assert.Equal(t, StatusBlueprint, b.Status)
	assert.Equal(t, scrapBefore, ledger.Get(resources.Scrap))
	assert.Equal(t, 10, b.RequiredRemaining[resources.Scrap])
	assert.Equal(t, 5, b.RequiredRemaining[resources.Plastic])
}

func TestStartBuildingAutoAssignsWorker(t *testing.T) {
	y, _, _ := newTestYard(t)
	y.SetWorkerFinder(staticFinder{id: "karen"})

	b, err := y.StartBuilding("chain_link_fence", world.Position{X: 200, Y: 200}, "")
	require.NoError(t, err)
	assert.Equal(t, "karen", b.AssignedWorker)
}

func TestContributeResourcesClampsToNeed(t *testing.T) {
	y, _, _ := newTestYard(t)
	b, err := y.StartBuilding("chain_link_fence", world.Position{}, "karen")
	require.NoError(t, err)

	// Needs 10 scrap: deliver 6, then 6 again. The second delivery only
	// absorbs the remaining 4.
	assert.Equal(t, 6, y.ContributeResources(b.ID, resources.Scrap, 6))
	assert.Equal(t, 4, y.ContributeResources(b.ID, resources.Scrap, 6))
	assert.Equal(t, 0, y.ContributeResources(b.ID, resources.Scrap, 6))
	assert.Equal(t, 0, b.RequiredRemaining[resources.Scrap])
}

func TestBlueprintWaitsForResourcesAndWorker(t *testing.T) {
	y, _, _ := newTestYard(t)
	b, err := y.StartBuilding("chain_link_fence", world.Position{}, "")
	require.NoError(t, err)

	// No worker, resources outstanding: stays blueprint.
	y.Update(1000)
	assert.Equal(t, StatusBlueprint, b.Status)

	y.ContributeResources(b.ID, resources.Scrap, 10)
	y.ContributeResources(b.ID, resources.Plastic, 5)
	y.Update(1000)
	assert.Equal(t, StatusBlueprint, b.Status, "still needs a worker")

	require.True(t, y.AssignWorker(b.ID, "karen"))
	y.Update(1000)
	assert.Equal(t, StatusUnderConstruction, b.Status)
}

func TestConstructionProgressAndCompletion(t *testing.T) {
	y, _, _ := newTestYard(t)
	b, err := y.StartBuilding("chain_link_fence", world.Position{}, "karen")
	require.NoError(t, err)
	y.ContributeResources(b.ID, resources.Scrap, 10)
	y.ContributeResources(b.ID, resources.Plastic, 5)

	y.Update(1000) // blueprint -> under_construction
	require.Equal(t, StatusUnderConstruction, b.Status)

	y.Update(15_000)
	assert.InDelta(t, 0.5, b.Progress, 0.01)
	prev := b.Progress

	y.Update(5_000)
	assert.Greater(t, b.Progress, prev, "progress is monotonic")

	y.Update(60_000)
	assert.Equal(t, StatusCompleted, b.Status)
	assert.Equal(t, 1.0, b.Progress)
}

func TestCompletionAppliesConspiracyReduction(t *testing.T) {
	y, ledger, shared := newTestYard(t)
	shared.SetConspiracyHeat(50)
	ledger.Add(resources.Electronics, 100)

	b, err := y.StartBuilding("signal_jammer", world.Position{}, "karen")
	require.NoError(t, err)
	y.ContributeResources(b.ID, resources.Electronics, 25)
	y.ContributeResources(b.ID, resources.Scrap, 15)
	y.ContributeResources(b.ID, resources.Fuel, 10)

	y.Update(1000)
	y.Update(80_000)
	require.Equal(t, StatusCompleted, b.Status)
	assert.InDelta(t, 45, shared.ConspiracyHeat(), 0.001)
}

func TestProductionBuildingOutputs(t *testing.T) {
	y, ledger, _ := newTestYard(t)
	ledger.Add(resources.Scrap, 100)
	ledger.Add(resources.Electronics, 100)

	b, err := y.StartBuilding("scrap_processor", world.Position{}, "karen")
	require.NoError(t, err)
	y.ContributeResources(b.ID, resources.Scrap, 30)
	y.ContributeResources(b.ID, resources.Electronics, 15)
	y.ContributeResources(b.ID, resources.Concrete, 10)

	y.Update(1000)
	y.Update(100_000)
	require.Equal(t, StatusCompleted, b.Status)

	plasticBefore := ledger.Get(resources.Plastic)
	electronicsBefore := ledger.Get(resources.Electronics)
	// Production rate 5/min means one batch roughly every 12 seconds.
	y.Update(12_000)
	assert.Equal(t, plasticBefore+5, ledger.Get(resources.Plastic))
	assert.Equal(t, electronicsBefore+2, ledger.Get(resources.Electronics))
}

func TestProductionRateFollowsFirstDeclaredOutput(t *testing.T) {
	y, ledger, _ := newTestYard(t)
	ledger.Add(resources.Scrap, 2000)
	ledger.Add(resources.Electronics, 2000)
	ledger.Add(resources.Concrete, 2000)

	r, ok := y.Recipe("scrap_processor")
	require.True(t, ok)
	require.Equal(t, resources.Plastic, r.Produces[0].Resource)

	// Every placement of a multi-output recipe gets the same rate: the
	// first declared output's amount, 5/min here, never the 2/min of the
	// secondary electronics line.
	for i := 0; i < 40; i++ {
		b, err := y.StartBuilding("scrap_processor", world.Position{X: float64(i * 40), Y: 200}, "karen")
		require.NoError(t, err)
		assert.Equal(t, 5.0, b.productionRate)
	}
}

func TestNeededResourceTypes(t *testing.T) {
	y, _, _ := newTestYard(t)
	b, err := y.StartBuilding("chain_link_fence", world.Position{}, "karen")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{resources.Scrap, resources.Plastic}, y.NeededResourceTypes(b.ID))
	y.ContributeResources(b.ID, resources.Scrap, 10)
	assert.Equal(t, []string{resources.Plastic}, y.NeededResourceTypes(b.ID))
}

func TestUnlockRecipePublishes(t *testing.T) {
	bus := notify.NewBus()
	var kinds []notify.Kind
	bus.Subscribe(func(n notify.Notification) { kinds = append(kinds, n.Kind) })

	ledger := resources.NewLedger(bus, entropy.NewSeeded(1))
	y := NewYard(bus, ledger, state.New(bus))

	y.UnlockRecipe("chain_link_fence")
	assert.Contains(t, kinds, notify.KindRecipeUnlocked)

	// Second unlock is a no-op.
	kinds = nil
	y.UnlockRecipe("chain_link_fence")
	assert.NotContains(t, kinds, notify.KindRecipeUnlocked)

	fence, _ := y.Recipe("chain_link_fence")
	assert.True(t, fence.Unlocked)
}
