// Package events runs the narrative event engine: a pool of suburban
// incidents with immediate effects, player choices, trigger conditions tied
// to conspiracy heat, and timed auto-resolution.
package events

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/nvandermeer/suburbfall/internal/entropy"
	"github.com/nvandermeer/suburbfall/internal/factions"
	"github.com/nvandermeer/suburbfall/internal/notify"
	"github.com/nvandermeer/suburbfall/internal/resources"
	"github.com/nvandermeer/suburbfall/internal/state"
	"github.com/nvandermeer/suburbfall/internal/survivors"
)

// EventType categorizes events for filtering and display.
type EventType string

const (
	TypeConspiracy EventType = "conspiracy"
	TypeFaction    EventType = "faction"
	TypeResource   EventType = "resource"
	TypeSurvivor   EventType = "survivor"
	TypeWeather    EventType = "weather"
	TypeSpecial    EventType = "special"
)

// Severity grades an event's impact.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// EffectType identifies what an effect mutates.
type EffectType string

const (
	EffectResource       EffectType = "resource"
	EffectRelationship   EffectType = "relationship"
	EffectSurvivorStat   EffectType = "survivor_stat"
	EffectConspiracyHeat EffectType = "conspiracy_heat"
	EffectSpawnUnit      EffectType = "spawn_unit"
	EffectSpawnRaid      EffectType = "spawn_raid"
)

// Effect is one mutation applied when an event fires or a choice is made.
type Effect struct {
	Type        EffectType `json:"type"`
	Target      string     `json:"target,omitempty"`
	Value       float64    `json:"value"`
	Description string     `json:"description"`
}

// Choice is one player response to an event.
type Choice struct {
	Text         string   `json:"text"`
	Effects      []Effect `json:"effects"`
	Requirements []string `json:"requirements,omitempty"`
}

// Event is a pool entry or a live instance of one.
type Event struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Type              EventType `json:"type"`
	Severity          Severity  `json:"severity"`
	Effects           []Effect  `json:"effects"`
	Choices           []Choice  `json:"choices,omitempty"`
	DurationMs        float64   `json:"duration_ms,omitempty"`
	TriggerConditions []string  `json:"trigger_conditions,omitempty"`

	remainingMs float64 // countdown for timed events
}

// Engine owns the event pool and active instances.
type Engine struct {
	bus    *notify.Bus
	rng    entropy.Source
	shared *state.State
	ledger *resources.Ledger
	rivals *factions.Manager
	roster *survivors.Roster

	pool        []Event
	active      map[string]*Event
	activeOrder []string
	history     []*Event
	seq         int

	randomChance     float64
	criticalChance   float64
	inspectionChance float64
}

// NewEngine wires the event engine to the systems its effects touch.
func NewEngine(bus *notify.Bus, rng entropy.Source, shared *state.State,
	ledger *resources.Ledger, rivals *factions.Manager, roster *survivors.Roster) *Engine {
	return &Engine{
		bus:              bus,
		rng:              rng,
		shared:           shared,
		ledger:           ledger,
		rivals:           rivals,
		roster:           roster,
		pool:             pool(),
		active:           make(map[string]*Event),
		randomChance:     0.0005,
		criticalChance:   0.002,
		inspectionChance: 0.001,
	}
}

// SetTuning overrides the trigger probabilities.
func (e *Engine) SetTuning(random, critical, inspection float64) {
	e.randomChance = random
	e.criticalChance = critical
	e.inspectionChance = inspection
}

// Active returns live event instances in trigger order.
func (e *Engine) Active() []*Event {
	out := make([]*Event, 0, len(e.activeOrder))
	for _, id := range e.activeOrder {
		if ev, ok := e.active[id]; ok {
			out = append(out, ev)
		}
	}
	return out
}

// ActiveEvent returns a live instance by id.
func (e *Engine) ActiveEvent(id string) (*Event, bool) {
	ev, ok := e.active[id]
	return ev, ok
}

// History returns every triggered instance, oldest first.
func (e *Engine) History() []*Event {
	return e.history
}

// TriggerRandom fires a random event whose trigger conditions hold.
func (e *Engine) TriggerRandom() *Event {
	var eligible []int
	for i := range e.pool {
		if e.conditionsMet(&e.pool[i]) {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	return e.trigger(&e.pool[eligible[e.rng.IntN(len(eligible))]])
}

// TriggerSpecific fires a named pool event, ignoring trigger conditions.
func (e *Engine) TriggerSpecific(eventID string) *Event {
	for i := range e.pool {
		if e.pool[i].ID == eventID {
			return e.trigger(&e.pool[i])
		}
	}
	return nil
}

func (e *Engine) trigger(template *Event) *Event {
	e.seq++
	instance := *template
	instance.ID = fmt.Sprintf("%s_%d", template.ID, e.seq)
	instance.remainingMs = instance.DurationMs

	e.active[instance.ID] = &instance
	e.activeOrder = append(e.activeOrder, instance.ID)
	e.history = append(e.history, &instance)

	e.applyEffects(instance.Effects)

	slog.Info("event triggered", "event", template.ID, "severity", instance.Severity)
	e.bus.Publish(notify.Notification{
		Kind:    notify.KindEventTriggered,
		Message: instance.Title,
		Data:    map[string]any{"event": instance.ID, "template": template.ID, "severity": string(instance.Severity)},
	})
	return &instance
}

// MakeChoice applies a choice's effects and resolves the event. Fails when
// the choice's requirements are not met.
func (e *Engine) MakeChoice(eventID string, choiceIndex int) error {
	ev, ok := e.active[eventID]
	if !ok {
		return fmt.Errorf("no active event %s", eventID)
	}
	if choiceIndex < 0 || choiceIndex >= len(ev.Choices) {
		return fmt.Errorf("event %s has no choice %d", eventID, choiceIndex)
	}
	choice := ev.Choices[choiceIndex]
	for _, req := range choice.Requirements {
		if !e.requirementMet(req) {
			return fmt.Errorf("requirement not met: %s", req)
		}
	}
	e.applyEffects(choice.Effects)
	e.resolve(eventID)
	return nil
}

// Resolve closes an active event without a choice.
func (e *Engine) Resolve(eventID string) {
	e.resolve(eventID)
}

func (e *Engine) resolve(eventID string) {
	ev, ok := e.active[eventID]
	if !ok {
		return
	}
	delete(e.active, eventID)
	e.bus.Publish(notify.Notification{
		Kind:    notify.KindEventResolved,
		Message: fmt.Sprintf("Resolved: %s", ev.Title),
		Data:    map[string]any{"event": eventID},
	})
}

// Update runs timed resolution, heat-driven escalation, and the random
// trigger roll.
func (e *Engine) Update(deltaMs float64) {
	for _, id := range e.activeOrder {
		ev, ok := e.active[id]
		if !ok || ev.DurationMs <= 0 {
			continue
		}
		ev.remainingMs -= deltaMs
		if ev.remainingMs <= 0 {
			e.resolve(id)
		}
	}
	e.compactActiveOrder()

	heat := e.shared.ConspiracyHeat()
	if heat > 75 {
		if e.rng.Float() < e.criticalChance {
			e.TriggerSpecific("usda_raid")
		}
	} else if heat > 50 {
		if e.rng.Float() < e.inspectionChance {
			e.TriggerSpecific("hoa_inspection")
		}
	}

	if e.rng.Float() < e.randomChance {
		e.TriggerRandom()
	}
}

func (e *Engine) compactActiveOrder() {
	if len(e.activeOrder) < len(e.active)*2 || len(e.activeOrder) < 16 {
		return
	}
	kept := e.activeOrder[:0]
	for _, id := range e.activeOrder {
		if _, ok := e.active[id]; ok {
			kept = append(kept, id)
		}
	}
	e.activeOrder = kept
}

// conditionsMet evaluates trigger conditions. Only conspiracy heat
// comparisons are understood; anything else passes.
func (e *Engine) conditionsMet(ev *Event) bool {
	for _, cond := range ev.TriggerConditions {
		if !strings.Contains(cond, "conspiracy_heat") {
			continue
		}
		op, threshold, ok := parseComparison(cond)
		if !ok {
			continue
		}
		heat := e.shared.ConspiracyHeat()
		if op == ">=" && heat < threshold {
			return false
		}
		if op == "<=" && heat > threshold {
			return false
		}
	}
	return true
}

// requirementMet evaluates a choice requirement of the form
// "<resource> >= <amount>". Unknown formats are treated as satisfied.
func (e *Engine) requirementMet(req string) bool {
	parts := strings.Split(req, ">=")
	if len(parts) != 2 {
		return true
	}
	res := strings.TrimSpace(parts[0])
	amount, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return true
	}
	return e.ledger.Has(res, amount)
}

func parseComparison(cond string) (op string, threshold float64, ok bool) {
	for _, candidate := range []string{">=", "<="} {
		if idx := strings.Index(cond, candidate); idx >= 0 {
			v, err := strconv.ParseFloat(strings.TrimSpace(cond[idx+2:]), 64)
			if err != nil {
				return "", 0, false
			}
			return candidate, v, true
		}
	}
	return "", 0, false
}

func (e *Engine) applyEffects(effects []Effect) {
	for _, effect := range effects {
		switch effect.Type {
		case EffectConspiracyHeat:
			e.shared.AdjustConspiracyHeat(effect.Value)
		case EffectResource:
			if effect.Target == "" {
				continue
			}
			if effect.Value >= 0 {
				e.ledger.Add(effect.Target, int(effect.Value))
			} else {
				e.ledger.Remove(effect.Target, int(-effect.Value))
			}
		case EffectRelationship:
			e.rivals.ModifyRelationship(effect.Target, int(effect.Value))
		case EffectSurvivorStat:
			e.roster.AdjustStats(effect.Target, effect.Value)
		case EffectSpawnUnit:
			e.rivals.SpawnUnits(effect.Target, max(1, int(effect.Value)))
		case EffectSpawnRaid:
			e.rivals.SpawnRaid(effect.Target, max(1, int(effect.Value)))
		}
	}
}
