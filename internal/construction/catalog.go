package construction

import "github.com/nvandermeer/suburbfall/internal/resources"

// catalog returns the full recipe list. Tech-gated recipes start locked and
// are opened by research.
func catalog() []Recipe {
	return []Recipe{
		{
			ID:            "chain_link_fence",
			Name:          "Chain Link Fence",
			Description:   "Basic perimeter defense. Keeps out casual intruders.",
			Category:      CategoryDefense,
			Requirements:  map[string]int{resources.Scrap: 10, resources.Plastic: 5},
			BuildTimeS:    30,
			SkillRequired: "repair",
			MinSkillLevel: 2,
			Effects: []Effect{
				{Type: EffectDefenseBonus, Value: 2, Radius: 1, Description: "Provides light cover"},
			},
		},
		{
			ID:            "pool_moat",
			Name:          "Above-Ground Pool Moat",
			Description:   "Suburban water defense. Surprisingly effective.",
			Category:      CategoryDefense,
			Requirements:  map[string]int{resources.Plastic: 25, resources.Concrete: 15, resources.Fuel: 5},
			BuildTimeS:    120,
			SkillRequired: "repair",
			MinSkillLevel: 5,
			Effects: []Effect{
				{Type: EffectDefenseBonus, Value: 8, Radius: 2, Description: "Strong defensive barrier"},
			},
		},
		{
			ID:            "security_camera",
			Name:          "Security Camera",
			Description:   "Monitors for faction activity. May attract government attention.",
			Category:      CategoryDefense,
			Requirements:  map[string]int{resources.Electronics: 15, resources.Scrap: 8, resources.Plastic: 3},
			BuildTimeS:    45,
			SkillRequired: "tinkering",
			MinSkillLevel: 4,
			Effects: []Effect{
				{Type: EffectDefenseBonus, Value: 3, Radius: 5, Description: "Early warning system"},
			},
		},
		{
			ID:            "fryer_generator",
			Name:          "Fryer-Powered Generator",
			Description:   "Converts grease into electricity. Smells terrible.",
			Category:      CategoryUtility,
			Requirements:  map[string]int{resources.Scrap: 20, resources.Electronics: 10, resources.Sauce: 15},
			BuildTimeS:    90,
			SkillRequired: "tinkering",
			MinSkillLevel: 6,
			Effects: []Effect{
				{Type: EffectResourceGeneration, Value: 1, Description: "Generates power"},
			},
		},
		{
			ID:            "signal_jammer",
			Name:          "Signal Jammer",
			Description:   "Blocks government surveillance. Reduces conspiracy heat.",
			Category:      CategoryConspiracy,
			Requirements:  map[string]int{resources.Electronics: 25, resources.Scrap: 15, resources.Fuel: 10},
			BuildTimeS:    75,
			SkillRequired: "tinkering",
			MinSkillLevel: 7,
			Unlocked:      true,
			Effects: []Effect{
				{Type: EffectConspiracyReduction, Value: 5, Radius: 10, Description: "Blocks surveillance"},
			},
		},
		{
			ID:            "water_purifier",
			Name:          "Water Purifier",
			Description:   "Converts drainage water into something drinkable.",
			Category:      CategoryUtility,
			Requirements:  map[string]int{resources.Scrap: 15, resources.Plastic: 10, resources.Electronics: 8},
			BuildTimeS:    60,
			SkillRequired: "repair",
			MinSkillLevel: 4,
			Unlocked:      true,
			Effects: []Effect{
				{Type: EffectMoodBoost, Value: 3, Radius: 8, Description: "Clean water improves health"},
			},
		},
		{
			ID:            "nugget_farm",
			Name:          "Nugget Farm",
			Description:   "Mysterious protein cultivation. Don't ask questions.",
			Category:      CategoryProduction,
			Requirements:  map[string]int{resources.Plastic: 20, resources.Sauce: 30, resources.Electronics: 12},
			BuildTimeS:    150,
			SkillRequired: "cooking",
			MinSkillLevel: 6,
			Produces:      []Output{{Resource: resources.Nuggets, Amount: 10}},
			Effects: []Effect{
				{Type: EffectResourceGeneration, Value: 10, Description: "Produces nuggets over time"},
			},
		},
		{
			ID:            "scrap_processor",
			Name:          "Scrap Processor",
			Description:   "Breaks down junk into useful materials.",
			Category:      CategoryProduction,
			Requirements:  map[string]int{resources.Scrap: 30, resources.Electronics: 15, resources.Concrete: 10},
			BuildTimeS:    100,
			SkillRequired: "tinkering",
			MinSkillLevel: 5,
			Unlocked:      true,
			Produces:      []Output{{Resource: resources.Plastic, Amount: 5}, {Resource: resources.Electronics, Amount: 2}},
			Effects: []Effect{
				{Type: EffectResourceGeneration, Value: 7, Description: "Processes scrap into materials"},
			},
		},
		{
			ID:            "makeshift_bed",
			Name:          "Makeshift Bed",
			Description:   "Comfortable sleeping arrangement. Improves rest quality.",
			Category:      CategoryComfort,
			Requirements:  map[string]int{resources.Fabric: 15, resources.Plastic: 8, resources.Scrap: 5},
			BuildTimeS:    45,
			SkillRequired: "repair",
			MinSkillLevel: 2,
			Unlocked:      true,
			Effects: []Effect{
				{Type: EffectMoodBoost, Value: 5, Radius: 3, Description: "Better sleep quality"},
			},
		},
		{
			ID:            "panic_room",
			Name:          "Panic Room",
			Description:   "Reinforced safe space for when things go wrong.",
			Category:      CategoryDefense,
			Requirements:  map[string]int{resources.Concrete: 40, resources.Scrap: 25, resources.Electronics: 10},
			BuildTimeS:    200,
			SkillRequired: "repair",
			MinSkillLevel: 8,
			Unlocked:      true,
			Effects: []Effect{
				{Type: EffectMoodBoost, Value: 8, Radius: 5, Description: "Sense of security"},
				{Type: EffectDefenseBonus, Value: 15, Radius: 1, Description: "Ultimate protection"},
			},
		},
		{
			ID:            "conspiracy_board",
			Name:          "Conspiracy Board",
			Description:   "Red string connects the dots. Helps survivors understand the truth.",
			Category:      CategoryConspiracy,
			Requirements:  map[string]int{resources.Fabric: 10, resources.Plastic: 5, resources.Electronics: 3},
			BuildTimeS:    30,
			SkillRequired: "bureaucracy",
			MinSkillLevel: 3,
			Unlocked:      true,
			Effects: []Effect{
				{Type: EffectSkillTraining, Value: 2, Description: "Improves bureaucracy skill"},
				{Type: EffectConspiracyReduction, Value: 2, Radius: 5, Description: "Understanding reduces fear"},
			},
		},
	}
}
