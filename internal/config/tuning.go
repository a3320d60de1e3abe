// Package config holds the simulation tuning knobs. Defaults are compiled in;
// a YAML file can override any subset of them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning collects the simulation's numeric knobs in one place.
type Tuning struct {
	Seed           int64 `yaml:"seed"`
	TickIntervalMs int   `yaml:"tick_interval_ms"`

	Map struct {
		Width    int `yaml:"width"`
		Height   int `yaml:"height"`
		TileSize int `yaml:"tile_size"`
	} `yaml:"map"`

	Survivors struct {
		InitialCount     int     `yaml:"initial_count"`
		Speed            float64 `yaml:"speed"`
		HaulAmount       int     `yaml:"haul_amount"`
		GatherSeconds    float64 `yaml:"gather_seconds"`
		AttackCooldown   float64 `yaml:"attack_cooldown"`
		AttackDamage     float64 `yaml:"attack_damage"`
		HungerRollChance float64 `yaml:"hunger_roll_chance"`
		HostileRadius    float64 `yaml:"hostile_radius"`
		WandererCap      int     `yaml:"wanderer_cap"`
	} `yaml:"survivors"`

	Nodes struct {
		RegenDelayMs       int64   `yaml:"regen_delay_ms"`
		ClickHarvestAmount int     `yaml:"click_harvest_amount"`
		ClickRegenDelayS   float64 `yaml:"click_regen_delay_s"`
		ClickRegenAmount   int     `yaml:"click_regen_amount"`
	} `yaml:"nodes"`

	Factions struct {
		DriftChance    float64 `yaml:"drift_chance"`
		RaidFlipChance float64 `yaml:"raid_flip_chance"`
		MoveChance     float64 `yaml:"move_chance"`
		RaidSpeed      float64 `yaml:"raid_speed"`
		RaidDamage     float64 `yaml:"raid_damage"`
		RaidRadius     float64 `yaml:"raid_radius"`
	} `yaml:"factions"`

	Events struct {
		RandomChance     float64 `yaml:"random_chance"`
		CriticalChance   float64 `yaml:"critical_chance"`
		InspectionChance float64 `yaml:"inspection_chance"`
	} `yaml:"events"`

	Trade struct {
		DwellSeconds float64 `yaml:"dwell_seconds"`
	} `yaml:"trade"`
}

// Default returns the compiled-in tuning values, matched to the original
// game balance.
func Default() Tuning {
	var t Tuning
	t.TickIntervalMs = 50

	t.Map.Width = 60
	t.Map.Height = 40
	t.Map.TileSize = 32

	t.Survivors.InitialCount = 3
	t.Survivors.Speed = 50
	t.Survivors.HaulAmount = 5
	t.Survivors.GatherSeconds = 1.2
	t.Survivors.AttackCooldown = 0.8
	t.Survivors.AttackDamage = 15
	t.Survivors.HungerRollChance = 0.01
	t.Survivors.HostileRadius = 120
	t.Survivors.WandererCap = 5

	t.Nodes.RegenDelayMs = 5000
	t.Nodes.ClickHarvestAmount = 5
	t.Nodes.ClickRegenDelayS = 30
	t.Nodes.ClickRegenAmount = 10

	t.Factions.DriftChance = 0.001
	t.Factions.RaidFlipChance = 0.001
	t.Factions.MoveChance = 0.02
	t.Factions.RaidSpeed = 1.2
	t.Factions.RaidDamage = 2
	t.Factions.RaidRadius = 30

	t.Events.RandomChance = 0.0005
	t.Events.CriticalChance = 0.002
	t.Events.InspectionChance = 0.001

	t.Trade.DwellSeconds = 180

	return t
}

// Load reads YAML overrides on top of the defaults.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning yaml: %w", err)
	}
	return t, nil
}
