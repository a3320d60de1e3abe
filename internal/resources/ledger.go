package resources

import (
	"log/slog"

	"github.com/nvandermeer/suburbfall/internal/entropy"
	"github.com/nvandermeer/suburbfall/internal/notify"
	"github.com/nvandermeer/suburbfall/internal/world"
)

// Ledger tracks stockpiled quantities per resource type plus the resource
// nodes in world space. Quantities never go below zero.
type Ledger struct {
	bus *notify.Bus
	rng entropy.Source

	types     map[string]Type
	typeOrder []string
	stock     map[string]int
	nodes     map[string]*Node
	nodeOrder []string // insertion order, keeps nearest-node ties deterministic

	stockpile world.Position

	regenDelayMs       float64
	clickHarvestAmount int
	clickRegenDelayS   float64
	clickRegenAmount   int
}

// NewLedger creates a ledger holding the starting stock.
func NewLedger(bus *notify.Bus, rng entropy.Source) *Ledger {
	l := &Ledger{
		bus:                bus,
		rng:                rng,
		types:              make(map[string]Type),
		stock:              startingStock(),
		nodes:              make(map[string]*Node),
		regenDelayMs:       5000,
		clickHarvestAmount: 5,
		clickRegenDelayS:   30,
		clickRegenAmount:   10,
	}
	for _, t := range catalog() {
		l.types[t.ID] = t
		l.typeOrder = append(l.typeOrder, t.ID)
	}
	return l
}

// SetNodeTuning overrides the node timing knobs.
func (l *Ledger) SetNodeTuning(regenDelayMs int64, clickAmount int, clickDelayS float64, clickRegen int) {
	l.regenDelayMs = float64(regenDelayMs)
	l.clickHarvestAmount = clickAmount
	l.clickRegenDelayS = clickDelayS
	l.clickRegenAmount = clickRegen
}

// Add increases the stockpile. Negative or zero amounts are ignored.
func (l *Ledger) Add(resourceType string, amount int) {
	if amount <= 0 {
		return
	}
	l.stock[resourceType] += amount
	l.publishStock()
}

// Remove decreases the stockpile. Returns false and leaves the quantity
// unchanged when there is not enough.
func (l *Ledger) Remove(resourceType string, amount int) bool {
	if amount < 0 {
		return false
	}
	if l.stock[resourceType] < amount {
		return false
	}
	l.stock[resourceType] -= amount
	l.publishStock()
	return true
}

// Has reports whether at least amount of the type is stockpiled.
func (l *Ledger) Has(resourceType string, amount int) bool {
	return l.stock[resourceType] >= amount
}

// Get returns the stockpiled quantity for a type.
func (l *Ledger) Get(resourceType string) int {
	return l.stock[resourceType]
}

// All returns a copy of the full stockpile.
func (l *Ledger) All() map[string]int {
	out := make(map[string]int, len(l.stock))
	for k, v := range l.stock {
		out[k] = v
	}
	return out
}

// TypeInfo returns catalog metadata for a resource type.
func (l *Ledger) TypeInfo(id string) (Type, bool) {
	t, ok := l.types[id]
	return t, ok
}

// Types returns the catalog in declaration order.
func (l *Ledger) Types() []Type {
	out := make([]Type, 0, len(l.typeOrder))
	for _, id := range l.typeOrder {
		out = append(out, l.types[id])
	}
	return out
}

// SetStockpile moves the hauling destination.
func (l *Ledger) SetStockpile(pos world.Position) {
	l.stockpile = pos
	slog.Info("stockpile placed", "x", pos.X, "y", pos.Y)
}

// Stockpile returns the hauling destination.
func (l *Ledger) Stockpile() world.Position {
	return l.stockpile
}

func (l *Ledger) publishStock() {
	l.bus.Publish(notify.Notification{
		Kind: notify.KindResourceChanged,
		Data: map[string]any{"resources": l.All()},
	})
}
