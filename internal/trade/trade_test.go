package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvandermeer/suburbfall/internal/entropy"
	"github.com/nvandermeer/suburbfall/internal/notify"
	"github.com/nvandermeer/suburbfall/internal/resources"
)

// scripted replays fixed values so scam/bonus rolls are predictable.
type scripted struct {
	floats []float64
	fi     int
	ints   []int
	ii     int
}

func (s *scripted) Float() float64 {
	if s.fi >= len(s.floats) {
		return 0.99
	}
	v := s.floats[s.fi]
	s.fi++
	return v
}

func (s *scripted) IntN(n int) int {
	if s.ii >= len(s.ints) {
		return 0
	}
	v := s.ints[s.ii] % n
	s.ii++
	return v
}

func (s *scripted) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.IntN(hi-lo+1)
}

func newTestPost(t *testing.T, rng entropy.Source) (*Post, *resources.Ledger, *notify.Bus) {
	t.Helper()
	bus := notify.NewBus()
	ledger := resources.NewLedger(bus, rng)
	return NewPost(bus, rng, ledger), ledger, bus
}

func TestGenerateTraderStocksFiveStacks(t *testing.T) {
	post, _, _ := newTestPost(t, entropy.NewSeeded(5))

	tr := post.GenerateTrader()
	require.NotNil(t, tr)
	assert.Same(t, tr, post.Current())

	total := 0
	for _, lot := range tr.Inventory() {
		assert.GreaterOrEqual(t, lot.Amount, 20)
		total += lot.Amount
	}
	// Five stacks of 20..100 each; duplicates merge into one lot.
	assert.GreaterOrEqual(t, total, 100)
	assert.LessOrEqual(t, total, 500)
}

func TestTraderValueUsesModifiers(t *testing.T) {
	// IntN(3) == 0 picks the ShadyDealer archetype.
	rng := &scripted{ints: []int{0, 0, 1, 2, 3, 4, 0}}
	post, _, _ := newTestPost(t, rng)

	assert.InDelta(t, 1.0, post.TraderValue(resources.Electronics), 0.001, "no trader yet")
	tr := post.GenerateTrader()
	require.Equal(t, ShadyDealer, tr.Type)

	assert.InDelta(t, 1.5, post.TraderValue(resources.Electronics), 0.001)
	assert.InDelta(t, 0.5, post.TraderValue(resources.Nuggets), 0.001)
	assert.InDelta(t, 1.0, post.TraderValue(resources.Wood), 0.001, "unmodified resource")
}

func TestExecuteTradeMovesGoodsBothWays(t *testing.T) {
	post, ledger, _ := newTestPost(t, entropy.NewSeeded(5))
	tr := post.GenerateTrader()
	// Pin the rolls off so the exchange itself is all that happens.
	tr.ScamChance = 0
	tr.BonusChance = 0
	first := tr.Inventory()[0]
	require.GreaterOrEqual(t, first.Amount, 20)

	woodBefore := ledger.Get(resources.Wood)
	gotBefore := ledger.Get(first.Resource)
	traderWood := tr.Stock(resources.Wood)

	err := post.ExecuteTrade(
		[]Lot{{Resource: resources.Wood, Amount: 10}},
		[]Lot{{Resource: first.Resource, Amount: 10}},
	)
	require.NoError(t, err)

	assert.Equal(t, woodBefore-10, ledger.Get(resources.Wood))
	assert.Equal(t, gotBefore+10, ledger.Get(first.Resource))
	assert.Equal(t, traderWood+10, tr.Stock(resources.Wood))
	assert.Equal(t, first.Amount-10, tr.Stock(first.Resource))
}

func TestExecuteTradeRejectsUnaffordable(t *testing.T) {
	post, ledger, _ := newTestPost(t, entropy.NewSeeded(5))
	tr := post.GenerateTrader()
	first := tr.Inventory()[0]

	// Player cannot give what they lack.
	err := post.ExecuteTrade(
		[]Lot{{Resource: resources.Wood, Amount: 10_000}},
		[]Lot{{Resource: first.Resource, Amount: 1}},
	)
	assert.Error(t, err)

	// Trader cannot give what they lack.
	err = post.ExecuteTrade(
		[]Lot{{Resource: resources.Wood, Amount: 1}},
		[]Lot{{Resource: first.Resource, Amount: first.Amount + 1000}},
	)
	assert.Error(t, err)
	assert.Equal(t, 20, ledger.Get(resources.Wood), "failed trades leave the stockpile untouched")
}

func TestScamTakesBackHalfOfFirstLot(t *testing.T) {
	// Archetype pick 0 (ShadyDealer, scam 0.2), five inventory picks, then
	// Float 0.0 < 0.2 forces the scam on the trade.
	rng := &scripted{ints: []int{0, 0, 1, 2, 3, 4, 0}, floats: []float64{0.0}}
	post, ledger, bus := newTestPost(t, rng)
	var kinds []notify.Kind
	bus.Subscribe(func(n notify.Notification) { kinds = append(kinds, n.Kind) })

	tr := post.GenerateTrader()
	first := tr.Inventory()[0]
	gotBefore := ledger.Get(first.Resource)

	require.NoError(t, post.ExecuteTrade(
		[]Lot{{Resource: resources.Wood, Amount: 10}},
		[]Lot{{Resource: first.Resource, Amount: 10}},
	))

	// Received 10, then lost floor(10 * 0.5) to the scam.
	assert.Equal(t, gotBefore+5, ledger.Get(first.Resource))
	assert.Contains(t, kinds, notify.KindTradeScam)
}

func TestTraderLeavesAfterDwell(t *testing.T) {
	post, _, bus := newTestPost(t, entropy.NewSeeded(5))
	var kinds []notify.Kind
	bus.Subscribe(func(n notify.Notification) { kinds = append(kinds, n.Kind) })

	post.SetDwell(3)
	post.GenerateTrader()
	require.NotNil(t, post.Current())

	post.Update(2000)
	assert.NotNil(t, post.Current())
	post.Update(1500)
	assert.Nil(t, post.Current())
	assert.Contains(t, kinds, notify.KindTraderLeft)
}
