// Package sim assembles every colony system into one world and drives it
// forward on a fixed tick.
package sim

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nvandermeer/suburbfall/internal/clock"
	"github.com/nvandermeer/suburbfall/internal/config"
	"github.com/nvandermeer/suburbfall/internal/construction"
	"github.com/nvandermeer/suburbfall/internal/entropy"
	"github.com/nvandermeer/suburbfall/internal/events"
	"github.com/nvandermeer/suburbfall/internal/factions"
	"github.com/nvandermeer/suburbfall/internal/notify"
	"github.com/nvandermeer/suburbfall/internal/research"
	"github.com/nvandermeer/suburbfall/internal/resources"
	"github.com/nvandermeer/suburbfall/internal/state"
	"github.com/nvandermeer/suburbfall/internal/survivors"
	"github.com/nvandermeer/suburbfall/internal/trade"
	"github.com/nvandermeer/suburbfall/internal/world"
)

// World holds the complete simulation and wires the systems together.
type World struct {
	Bus    *notify.Bus
	RNG    entropy.Source
	Map    *world.Map
	Shared *state.State
	Clock  *clock.Clock
	Ledger *resources.Ledger
	Lab    *research.Lab
	Yard   *construction.Yard
	Rivals *factions.Manager
	Roster *survivors.Roster
	Events *events.Engine
	Post   *trade.Post

	mu     sync.Mutex
	tuning config.Tuning
	ticks  uint64
}

// NewWorld builds and wires a fresh colony from tuning.
func NewWorld(cfg config.Tuning, bus *notify.Bus) *World {
	var rng entropy.Source
	if cfg.Seed != 0 {
		rng = entropy.NewSeeded(cfg.Seed)
	} else {
		rng = entropy.Crypto{}
	}

	m := world.Generate(world.GenConfig{
		Width:    cfg.Map.Width,
		Height:   cfg.Map.Height,
		TileSize: cfg.Map.TileSize,
		Seed:     cfg.Seed,
	})

	shared := state.New(bus)
	clk := clock.New(bus)

	ledger := resources.NewLedger(bus, rng)
	ledger.SetNodeTuning(cfg.Nodes.RegenDelayMs, cfg.Nodes.ClickHarvestAmount,
		cfg.Nodes.ClickRegenDelayS, cfg.Nodes.ClickRegenAmount)
	ledger.GenerateNodes(m)
	ledger.SetStockpile(m.Center())

	lab := research.NewLab(bus, ledger)
	yard := construction.NewYard(bus, ledger, shared)
	lab.SetUnlockHook(yard.UnlockRecipe)

	rivals := factions.NewManager(bus, rng, m)
	rivals.SetTuning(cfg.Factions.DriftChance, cfg.Factions.RaidFlipChance,
		cfg.Factions.MoveChance, cfg.Factions.RaidSpeed, cfg.Factions.RaidDamage,
		cfg.Factions.RaidRadius)
	rivals.SetStockpileLookup(ledger.Stockpile)

	roster := survivors.NewRoster(bus, rng, m, shared, ledger, yard, rivals)
	roster.SetTuning(cfg.Survivors.Speed, cfg.Survivors.HaulAmount,
		cfg.Survivors.GatherSeconds, cfg.Survivors.AttackCooldown,
		cfg.Survivors.AttackDamage, cfg.Survivors.HungerRollChance,
		cfg.Survivors.HostileRadius, cfg.Survivors.WandererCap)
	roster.SpawnInitial(cfg.Survivors.InitialCount)
	yard.SetWorkerFinder(roster)
	rivals.SetSurvivorTargets(roster)

	engine := events.NewEngine(bus, rng, shared, ledger, rivals, roster)
	engine.SetTuning(cfg.Events.RandomChance, cfg.Events.CriticalChance,
		cfg.Events.InspectionChance)

	post := trade.NewPost(bus, rng, ledger)
	post.SetDwell(cfg.Trade.DwellSeconds)

	w := &World{
		Bus:    bus,
		RNG:    rng,
		Map:    m,
		Shared: shared,
		Clock:  clk,
		Ledger: ledger,
		Lab:    lab,
		Yard:   yard,
		Rivals: rivals,
		Roster: roster,
		Events: engine,
		Post:   post,
		tuning: cfg,
	}
	bus.Subscribe(w.onNotification)

	slog.Info("world assembled",
		"map", cfg.Map.Width*cfg.Map.Height,
		"survivors", roster.Count(),
		"nodes", len(ledger.Nodes()),
		"seed", cfg.Seed)
	return w
}

// Ticks returns how many updates have run.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// Do runs fn while holding the world lock. API handlers use this to read
// or mutate state without racing the loop.
func (w *World) Do(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn()
}

// Update advances every system by deltaMs of real time. Systems run in a
// fixed order so a tick is deterministic for a given seed.
func (w *World) Update(deltaMs float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ticks++
	w.Clock.Advance(deltaMs)
	w.Ledger.Update(deltaMs)
	w.Yard.Update(deltaMs)
	w.Roster.Update(deltaMs)
	w.Rivals.Update(deltaMs)
	w.Events.Update(deltaMs)
	// Research progress respects the game clock, including pause.
	w.Lab.SetTimeScale(w.Clock.Scale())
	w.Lab.Update(deltaMs)
	w.Post.Update(deltaMs)
}

// onNotification reacts to clock boundaries: hourly arrival rolls and the
// daily colony report.
func (w *World) onNotification(n notify.Notification) {
	switch n.Kind {
	case notify.KindHourChanged:
		// New faces drift in on the hour.
		if w.RNG.Float() < 0.1 {
			w.Roster.GenerateWanderer()
		}
		if w.Post.Current() == nil && w.RNG.Float() < 0.2 {
			w.Post.GenerateTrader()
		}
	case notify.KindDayChanged:
		w.logDailyReport()
	}
}

func (w *World) logDailyReport() {
	total := 0
	for _, amount := range w.Ledger.All() {
		total += amount
	}
	slog.Info("daily report",
		"day", w.Clock.Day(),
		"survivors", w.Roster.Count(),
		"wanderers", len(w.Roster.Wanderers()),
		"stockpile_total", humanize.Comma(int64(total)),
		"buildings", len(w.Yard.Buildings()),
		"heat", w.Shared.ConspiracyHeat(),
		"active_events", len(w.Events.Active()))
}

// Loop runs the world in real time until the context is canceled. Each tick
// advances the simulation by the tick interval.
func (w *World) Loop(ctx context.Context) {
	interval := time.Duration(w.tuning.TickIntervalMs) * time.Millisecond
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("simulation loop started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation loop stopped", "ticks", w.ticks)
			return
		case <-ticker.C:
			w.Update(float64(interval.Milliseconds()))
		}
	}
}
