// Package trade handles visiting traders: who shows up, what they carry,
// their price modifiers, and the scam/bonus rolls on every exchange.
package trade

import (
	"fmt"
	"log/slog"

	"github.com/nvandermeer/suburbfall/internal/entropy"
	"github.com/nvandermeer/suburbfall/internal/notify"
	"github.com/nvandermeer/suburbfall/internal/resources"
)

// TraderType is a visiting trader archetype.
type TraderType string

const (
	ShadyDealer     TraderType = "ShadyDealer"
	FactionEmissary TraderType = "FactionEmissary"
	SuburbanMom     TraderType = "SuburbanMom"
)

// Lot is one line of a trade offer.
type Lot struct {
	Resource string `json:"resource"`
	Amount   int    `json:"amount"`
}

// Trader is a visitor with goods and an attitude.
type Trader struct {
	Name           string             `json:"name"`
	Type           TraderType         `json:"type"`
	ValueModifiers map[string]float64 `json:"value_modifiers"`
	ScamChance     float64            `json:"scam_chance"`
	BonusChance    float64            `json:"bonus_chance"`

	inventory map[string]int
	invOrder  []string // insertion order, first entry feeds bonus payouts
}

// Inventory returns the trader's stock as ordered lots.
func (t *Trader) Inventory() []Lot {
	out := make([]Lot, 0, len(t.invOrder))
	for _, res := range t.invOrder {
		out = append(out, Lot{Resource: res, Amount: t.inventory[res]})
	}
	return out
}

// Stock returns how much of one resource the trader holds.
func (t *Trader) Stock(resource string) int {
	return t.inventory[resource]
}

func (t *Trader) addStock(resource string, amount int) {
	if _, seen := t.inventory[resource]; !seen {
		t.invOrder = append(t.invOrder, resource)
	}
	t.inventory[resource] += amount
}

type archetype struct {
	kind        TraderType
	modifiers   map[string]float64
	scamChance  float64
	bonusChance float64
}

func archetypes() []archetype {
	return []archetype{
		{
			kind:        ShadyDealer,
			modifiers:   map[string]float64{resources.Electronics: 1.5, resources.Sauce: 1.2, resources.Nuggets: 0.5},
			scamChance:  0.2,
			bonusChance: 0.05,
		},
		{
			kind:        FactionEmissary,
			modifiers:   map[string]float64{resources.Scrap: 1.2, resources.Fabric: 1.1, resources.Fuel: 0.8},
			scamChance:  0.05,
			bonusChance: 0.1,
		},
		{
			kind:        SuburbanMom,
			modifiers:   map[string]float64{resources.Nuggets: 1.3, resources.Fabric: 1.2, resources.Electronics: 0.6},
			scamChance:  0.1,
			bonusChance: 0.15,
		},
	}
}

// Post manages the single visiting trader slot.
type Post struct {
	bus    *notify.Bus
	rng    entropy.Source
	ledger *resources.Ledger

	current     *Trader
	dwellS      float64
	remainingS  float64
	archetypeSt []archetype
}

// NewPost creates an empty trading post.
func NewPost(bus *notify.Bus, rng entropy.Source, ledger *resources.Ledger) *Post {
	return &Post{
		bus:         bus,
		rng:         rng,
		ledger:      ledger,
		dwellS:      180,
		archetypeSt: archetypes(),
	}
}

// SetDwell overrides how long a trader sticks around, in seconds.
func (p *Post) SetDwell(seconds float64) {
	p.dwellS = seconds
}

// Current returns the visiting trader, or nil.
func (p *Post) Current() *Trader {
	return p.current
}

// GenerateTrader rolls a new visitor, replacing any current one. The trader
// carries five random stacks of goods.
func (p *Post) GenerateTrader() *Trader {
	arch := p.archetypeSt[p.rng.IntN(len(p.archetypeSt))]
	t := &Trader{
		Name:           fmt.Sprintf("%s %d", arch.kind, p.rng.Between(100, 999)),
		Type:           arch.kind,
		ValueModifiers: arch.modifiers,
		ScamChance:     arch.scamChance,
		BonusChance:    arch.bonusChance,
		inventory:      make(map[string]int),
	}
	types := p.ledger.Types()
	for i := 0; i < 5; i++ {
		res := types[p.rng.IntN(len(types))].ID
		t.addStock(res, p.rng.Between(20, 100))
	}

	p.current = t
	p.remainingS = p.dwellS
	slog.Info("trader arrived", "name", t.Name, "type", string(t.Type))
	p.bus.Publish(notify.Notification{
		Kind:    notify.KindTraderArrived,
		Message: fmt.Sprintf("%s has arrived to trade.", t.Name),
		Data:    map[string]any{"name": t.Name, "type": string(t.Type)},
	})
	return t
}

// DismissTrader sends the visitor away.
func (p *Post) DismissTrader() {
	if p.current == nil {
		return
	}
	slog.Info("trader left", "name", p.current.Name)
	p.bus.Publish(notify.Notification{
		Kind:    notify.KindTraderLeft,
		Message: fmt.Sprintf("%s has left.", p.current.Name),
		Data:    map[string]any{"name": p.current.Name},
	})
	p.current = nil
}

// Update counts down the trader's stay.
func (p *Post) Update(deltaMs float64) {
	if p.current == nil {
		return
	}
	p.remainingS -= deltaMs / 1000
	if p.remainingS <= 0 {
		p.DismissTrader()
	}
}

// BaseValue is the flat per-unit worth of any resource.
func (p *Post) BaseValue(string) float64 {
	return 1
}

// TraderValue returns the current trader's effective per-unit price for a
// resource.
func (p *Post) TraderValue(resource string) float64 {
	if p.current == nil {
		return 1
	}
	if mod, ok := p.current.ValueModifiers[resource]; ok {
		return p.BaseValue(resource) * mod
	}
	return p.BaseValue(resource)
}

// ExecuteTrade swaps gives for receives between the stockpile and the
// trader. After a successful swap the trader may scam back half of the first
// received lot, or throw in a bonus from their first inventory stack.
func (p *Post) ExecuteTrade(gives, receives []Lot) error {
	t := p.current
	if t == nil {
		return fmt.Errorf("no trader present")
	}
	for _, lot := range gives {
		if !p.ledger.Has(lot.Resource, lot.Amount) {
			return fmt.Errorf("not enough %s to give", lot.Resource)
		}
	}
	for _, lot := range receives {
		if t.Stock(lot.Resource) < lot.Amount {
			return fmt.Errorf("trader lacks %s", lot.Resource)
		}
	}

	for _, lot := range gives {
		p.ledger.Remove(lot.Resource, lot.Amount)
		t.addStock(lot.Resource, lot.Amount)
	}
	for _, lot := range receives {
		p.ledger.Add(lot.Resource, lot.Amount)
		t.inventory[lot.Resource] -= lot.Amount
	}

	if p.rng.Float() < t.ScamChance && len(receives) > 0 {
		scammed := receives[0]
		take := scammed.Amount / 2
		p.ledger.Remove(scammed.Resource, take)
		slog.Warn("trade scam", "trader", t.Name, "resource", scammed.Resource, "amount", take)
		p.bus.Publish(notify.Notification{
			Kind:    notify.KindTradeScam,
			Message: fmt.Sprintf("%s shorted you %d %s!", t.Name, take, scammed.Resource),
			Data:    map[string]any{"resource": scammed.Resource, "amount": take},
		})
	} else if p.rng.Float() < t.BonusChance && len(t.invOrder) > 0 {
		res := t.invOrder[0]
		give := t.inventory[res] / 10
		if give > 0 && t.inventory[res] >= give {
			p.ledger.Add(res, give)
			t.inventory[res] -= give
			p.bus.Publish(notify.Notification{
				Kind:    notify.KindTradeBonus,
				Message: fmt.Sprintf("%s threw in %d extra %s.", t.Name, give, res),
				Data:    map[string]any{"resource": res, "amount": give},
			})
		}
	}

	p.bus.Publish(notify.Notification{
		Kind: notify.KindTradeCompleted,
		Data: map[string]any{"gives": gives, "receives": receives},
	})
	return nil
}
