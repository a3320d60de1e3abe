package research

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvandermeer/suburbfall/internal/entropy"
	"github.com/nvandermeer/suburbfall/internal/notify"
	"github.com/nvandermeer/suburbfall/internal/resources"
)

func newTestLab(t *testing.T) (*Lab, *resources.Ledger) {
	t.Helper()
	ledger := resources.NewLedger(notify.NewBus(), entropy.NewSeeded(1))
	return NewLab(notify.NewBus(), ledger), ledger
}

func TestInitialAvailability(t *testing.T) {
	lab, _ := newTestLab(t)

	basic, ok := lab.Project("basic_defense")
	require.True(t, ok)
	assert.Equal(t, StatusAvailable, basic.Status)

	advanced, ok := lab.Project("advanced_defense")
	require.True(t, ok)
	assert.Equal(t, StatusLocked, advanced.Status)
}

func TestStartDeductsCost(t *testing.T) {
	lab, ledger := newTestLab(t)
	ledger.Add(resources.Scrap, 100)
	ledger.Add(resources.Wood, 100)

	scrapBefore := ledger.Get(resources.Scrap)
	woodBefore := ledger.Get(resources.Wood)

	require.NoError(t, lab.Start("basic_defense"))

	assert.Equal(t, scrapBefore-20, ledger.Get(resources.Scrap))
	assert.Equal(t, woodBefore-15, ledger.Get(resources.Wood))

	basic, _ := lab.Project("basic_defense")
	assert.Equal(t, StatusInProgress, basic.Status)
}

func TestStartRejectedWithoutResources(t *testing.T) {
	lab, ledger := newTestLab(t)
	// Drain scrap below the 20 basic_defense needs.
	require.True(t, ledger.Remove(resources.Scrap, ledger.Get(resources.Scrap)))

	assert.False(t, lab.CanStart("basic_defense"))
	assert.Error(t, lab.Start("basic_defense"))
}

func TestSingleActiveProject(t *testing.T) {
	lab, ledger := newTestLab(t)
	ledger.Add(resources.Scrap, 200)
	ledger.Add(resources.Wood, 200)
	ledger.Add(resources.Electronics, 200)
	ledger.Add(resources.Plastic, 200)

	require.NoError(t, lab.Start("basic_defense"))
	assert.False(t, lab.CanStart("tinkering_101"))
	assert.Error(t, lab.Start("tinkering_101"))
}

func TestCompletionUnlocksDependentsAndRecipe(t *testing.T) {
	lab, ledger := newTestLab(t)
	ledger.Add(resources.Scrap, 200)
	ledger.Add(resources.Wood, 200)

	var unlocked []string
	lab.SetUnlockHook(func(id string) { unlocked = append(unlocked, id) })

	require.NoError(t, lab.Start("basic_defense"))
	lab.Update(60_000)

	basic, _ := lab.Project("basic_defense")
	assert.Equal(t, StatusCompleted, basic.Status)
	assert.Equal(t, []string{"chain_link_fence"}, unlocked)

	advanced, _ := lab.Project("advanced_defense")
	assert.Equal(t, StatusAvailable, advanced.Status)
	assert.Nil(t, lab.Active())
}

func TestEveryUnlockInTheListFires(t *testing.T) {
	lab, ledger := newTestLab(t)
	ledger.Add(resources.Scrap, 200)
	ledger.Add(resources.Wood, 200)

	basic, _ := lab.Project("basic_defense")
	basic.Unlocks = append(basic.Unlocks, "security_camera")

	var unlocked []string
	lab.SetUnlockHook(func(id string) { unlocked = append(unlocked, id) })

	require.NoError(t, lab.Start("basic_defense"))
	lab.Update(60_000)
	assert.Equal(t, []string{"chain_link_fence", "security_camera"}, unlocked)
}

func TestTimeScaleSpeedsResearch(t *testing.T) {
	lab, ledger := newTestLab(t)
	ledger.Add(resources.Scrap, 200)
	ledger.Add(resources.Wood, 200)
	lab.SetTimeScale(2)

	require.NoError(t, lab.Start("basic_defense"))
	lab.Update(30_000)

	basic, _ := lab.Project("basic_defense")
	assert.Equal(t, StatusCompleted, basic.Status)
}
