package factions

import "github.com/nvandermeer/suburbfall/internal/world"

// Faction ids.
const (
	USDA        = "usda"
	GrimaceCult = "grimace_cult"
	Bunker      = "bunker"
	NeonYouth   = "neon_youth"
	Brigade401k = "brigade_401k"
)

func catalog() []Faction {
	return []Faction{
		{
			ID:           USDA,
			Name:         "USDA",
			Description:  "Government remnant obsessed with zoning law and HOA regulations",
			Relationship: -20,
			Territories: []Territory{
				{Center: world.Position{X: 100, Y: 100}, Radius: 80},
				{Center: world.Position{X: 500, Y: 200}, Radius: 60},
			},
			Traits:    []string{"Bureaucratic", "Well-Armed", "Authoritarian"},
			Resources: map[string]int{"ammunition": 100, "fuel": 50, "bureaucracy": 200},
		},
		{
			ID:           GrimaceCult,
			Name:         "Cult of Grimace",
			Description:  "Believes Grimace is a godhead. Their rituals involve nugget offerings.",
			Relationship: 0,
			Territories: []Territory{
				{Center: world.Position{X: 300, Y: 400}, Radius: 100},
			},
			Traits:    []string{"Fanatical", "Unpredictable", "Ritualistic"},
			Resources: map[string]int{"nuggets": 150, "sauce": 75, "faith": 300},
		},
		{
			ID:           Bunker,
			Name:         "B.U.N.K.E.R.",
			Description:  "Paranoid libertarian survivalists holed up in gas stations.",
			Relationship: 10,
			Territories: []Territory{
				{Center: world.Position{X: 600, Y: 300}, Radius: 70},
			},
			Traits:    []string{"Paranoid", "Well-Supplied", "Isolationist"},
			Resources: map[string]int{"ammunition": 200, "food": 100, "fuel": 150},
		},
		{
			ID:           NeonYouth,
			Name:         "Neon Youth",
			Description:  "Glowstick-wielding anarchists living in rave-based society.",
			Relationship: 30,
			Territories: []Territory{
				{Center: world.Position{X: 200, Y: 500}, Radius: 90},
			},
			Traits:    []string{"Chaotic", "Energetic", "Anti-Authority"},
			Resources: map[string]int{"electronics": 80, "drugs": 60, "music": 200},
		},
		{
			ID:           Brigade401k,
			Name:         "401K Brigade",
			Description:  "Retired suburbanites with military-grade golf carts.",
			Relationship: -10,
			Territories: []Territory{
				{Center: world.Position{X: 450, Y: 150}, Radius: 85},
			},
			Traits:    []string{"Organized", "Defensive", "Wealthy"},
			Resources: map[string]int{"money": 500, "equipment": 120, "medicine": 80},
		},
	}
}

var unitNames = map[string][]string{
	USDA:        {"Agent Smith", "Inspector Johnson", "Enforcer Brown", "Supervisor Davis"},
	GrimaceCult: {"Brother Purple", "Sister Nugget", "Cultist McFlurry", "Devotee Shake"},
	Bunker:      {"Prepper Joe", "Survivalist Sam", "Bunker Bob", "Militia Mike"},
	NeonYouth:   {"DJ Neon", "Raver X", "Glowstick Gary", "Bass Drop Betty"},
	Brigade401k: {"Retiree Rick", "Golf Cart Greg", "Senior Steve", "Pension Pete"},
}

var unitEquipment = map[string][]string{
	USDA:        {"SUV", "Clipboard", "Taser", "HOA Handbook"},
	GrimaceCult: {"Purple Robes", "Nugget Offering", "Ritual Dagger", "McFlurry Cup"},
	Bunker:      {"Assault Rifle", "Gas Mask", "MRE", "Conspiracy Theory Book"},
	NeonYouth:   {"Glowsticks", "Boom Box", "Spray Paint", "Energy Drinks"},
	Brigade401k: {"Golf Cart", "Golf Club", "Retirement Fund", "Reading Glasses"},
}

func (mgr *Manager) pickUnitName(factionID string) string {
	names := unitNames[factionID]
	if len(names) == 0 {
		return "Generic Unit"
	}
	return names[mgr.rng.IntN(len(names))]
}

func (mgr *Manager) pickUnitEquipment(factionID string) []string {
	gear := unitEquipment[factionID]
	if len(gear) == 0 {
		return []string{"Basic Gear"}
	}
	return []string{gear[mgr.rng.IntN(len(gear))]}
}
