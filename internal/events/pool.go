package events

import (
	"github.com/nvandermeer/suburbfall/internal/factions"
	"github.com/nvandermeer/suburbfall/internal/resources"
)

// pool returns the full event catalog.
func pool() []Event {
	return []Event{
		{
			ID:          "microwave_tower_activation",
			Title:       "5G Tower Activation",
			Description: "A nearby microwave tower begins emitting strange signals. Survivors report headaches and paranoid thoughts.",
			Type:        TypeConspiracy,
			Severity:    SeverityMajor,
			Effects: []Effect{
				{Type: EffectConspiracyHeat, Value: 25, Description: "Conspiracy heat increases"},
				{Type: EffectSurvivorStat, Target: "sanity", Value: -15, Description: "All survivors lose sanity"},
			},
			Choices: []Choice{
				{
					Text: "Investigate the tower",
					Effects: []Effect{
						{Type: EffectConspiracyHeat, Value: 10, Description: "More conspiracy heat"},
						{Type: EffectResource, Target: resources.Scrap, Value: 20, Description: "Find electronic components"},
					},
				},
				{
					Text: "Build signal jammers",
					Effects: []Effect{
						{Type: EffectResource, Target: resources.Scrap, Value: -30, Description: "Use scrap materials"},
						{Type: EffectSurvivorStat, Target: "sanity", Value: 10, Description: "Survivors feel safer"},
					},
					Requirements: []string{"scrap >= 30"},
				},
				{
					Text: "Ignore it",
					Effects: []Effect{
						{Type: EffectSurvivorStat, Target: "sanity", Value: -5, Description: "Ongoing mental effects"},
					},
				},
			},
		},
		{
			ID:          "hoa_inspection",
			Title:       "HOA Annual Inspection",
			Description: "The USDA arrives for a \"routine\" HOA compliance check. They seem very interested in your colony setup.",
			Type:        TypeFaction,
			Severity:    SeverityMajor,
			Effects: []Effect{
				{Type: EffectRelationship, Target: factions.USDA, Value: -10, Description: "USDA becomes more suspicious"},
			},
			Choices: []Choice{
				{
					Text: "Comply with all regulations",
					Effects: []Effect{
						{Type: EffectRelationship, Target: factions.USDA, Value: 5, Description: "USDA approval"},
						{Type: EffectResource, Target: resources.Nuggets, Value: -20, Description: "Compliance costs"},
					},
				},
				{
					Text: "Bribe the inspector",
					Effects: []Effect{
						{Type: EffectResource, Target: resources.Sauce, Value: -15, Description: "Bribe payment"},
						{Type: EffectConspiracyHeat, Value: -10, Description: "Reduced suspicion"},
					},
					Requirements: []string{"sauce >= 15"},
				},
				{
					Text: "Refuse entry",
					Effects: []Effect{
						{Type: EffectRelationship, Target: factions.USDA, Value: -25, Description: "USDA hostility"},
						{Type: EffectConspiracyHeat, Value: 30, Description: "Marked as non-compliant"},
					},
				},
			},
		},
		{
			ID:          "grimace_procession",
			Title:       "Grimace Cult Procession",
			Description: "Purple-robed cultists march through the area, chanting about the \"Great Purple One\" and offering nuggets to passersby.",
			Type:        TypeFaction,
			Severity:    SeverityMinor,
			Effects: []Effect{
				{Type: EffectRelationship, Target: factions.GrimaceCult, Value: 5, Description: "Cult notices your colony"},
				{Type: EffectSpawnUnit, Target: factions.GrimaceCult, Value: 1, Description: "A Grimace priest appears nearby"},
			},
			Choices: []Choice{
				{
					Text: "Join the procession",
					Effects: []Effect{
						{Type: EffectRelationship, Target: factions.GrimaceCult, Value: 20, Description: "Cult approval"},
						{Type: EffectResource, Target: resources.Nuggets, Value: 10, Description: "Receive blessed nuggets"},
						{Type: EffectSurvivorStat, Target: "sanity", Value: -5, Description: "Disturbing experience"},
					},
				},
				{
					Text: "Accept their offerings",
					Effects: []Effect{
						{Type: EffectResource, Target: resources.Nuggets, Value: 15, Description: "Free nuggets"},
						{Type: EffectRelationship, Target: factions.GrimaceCult, Value: 10, Description: "Friendly gesture"},
					},
				},
				{
					Text: "Hide from them",
					Effects: []Effect{
						{Type: EffectConspiracyHeat, Value: -5, Description: "Avoid attention"},
					},
				},
			},
		},
		{
			ID:          "food_shortage",
			Title:       "McRonald's Supply Shortage",
			Description: "The local McRonald's depot has run out of nuggets. Survivors are getting hungry and desperate.",
			Type:        TypeResource,
			Severity:    SeverityMajor,
			Effects: []Effect{
				{Type: EffectResource, Target: resources.Nuggets, Value: -30, Description: "Food supplies dwindle"},
				{Type: EffectSurvivorStat, Target: "hunger", Value: 20, Description: "Survivors get hungrier"},
			},
			Choices: []Choice{
				{
					Text: "Raid the depot",
					Effects: []Effect{
						{Type: EffectResource, Target: resources.Nuggets, Value: 50, Description: "Acquire emergency supplies"},
						{Type: EffectConspiracyHeat, Value: 15, Description: "Criminal activity noticed"},
						{Type: EffectRelationship, Target: factions.USDA, Value: -15, Description: "Law enforcement response"},
					},
				},
				{
					Text: "Trade with other factions",
					Effects: []Effect{
						{Type: EffectResource, Target: resources.Scrap, Value: -25, Description: "Trade materials"},
						{Type: EffectResource, Target: resources.Nuggets, Value: 20, Description: "Acquire food"},
						{Type: EffectRelationship, Target: factions.Bunker, Value: 5, Description: "Trading relationship"},
					},
					Requirements: []string{"scrap >= 25"},
				},
				{
					Text: "Ration existing supplies",
					Effects: []Effect{
						{Type: EffectSurvivorStat, Target: "sanity", Value: -10, Description: "Morale drops"},
						{Type: EffectSurvivorStat, Target: "hunger", Value: 10, Description: "Controlled hunger"},
					},
				},
			},
		},
		{
			ID:          "black_helicopter",
			Title:       "Black Helicopter Flyover",
			Description: "Unmarked black helicopters circle overhead. Are they surveilling your colony, or is it just routine patrol?",
			Type:        TypeConspiracy,
			Severity:    SeverityMinor,
			Effects: []Effect{
				{Type: EffectConspiracyHeat, Value: 15, Description: "Government attention"},
				{Type: EffectSurvivorStat, Target: "sanity", Value: -8, Description: "Paranoia increases"},
				{Type: EffectSpawnRaid, Target: factions.USDA, Value: 2, Description: "USDA agents investigate your area"},
			},
			Choices: []Choice{
				{
					Text: "Wave at them",
					Effects: []Effect{
						{Type: EffectConspiracyHeat, Value: -5, Description: "Appear innocent"},
						{Type: EffectSurvivorStat, Target: "sanity", Value: 5, Description: "Defiant humor"},
					},
				},
				{
					Text: "Take cover",
					Effects: []Effect{
						{Type: EffectConspiracyHeat, Value: 5, Description: "Suspicious behavior"},
						{Type: EffectSurvivorStat, Target: "sanity", Value: -3, Description: "Increased fear"},
					},
				},
				{
					Text: "Document everything",
					Effects: []Effect{
						{Type: EffectConspiracyHeat, Value: 10, Description: "Evidence gathering noticed"},
						{Type: EffectResource, Target: "information", Value: 5, Description: "Gather intelligence"},
					},
				},
			},
		},
		{
			ID:          "fast_food_blizzard",
			Title:       "McFlurry Storm",
			Description: "A mysterious weather phenomenon covers the area in purple ice cream and broken dreams. The Grimace Cult sees this as a sign.",
			Type:        TypeWeather,
			Severity:    SeverityCritical,
			Effects: []Effect{
				{Type: EffectResource, Target: resources.Sauce, Value: 30, Description: "Collect fallen sauce"},
				{Type: EffectRelationship, Target: factions.GrimaceCult, Value: 15, Description: "Cult sees divine intervention"},
				{Type: EffectSurvivorStat, Target: "sanity", Value: -20, Description: "Surreal experience"},
			},
			DurationMs: 60_000,
		},
		{
			ID:          "neon_youth_rave",
			Title:       "Underground Rave",
			Description: "The Neon Youth are throwing a massive rave in the abandoned Chuck E. Cheese. The bass is shaking the ground.",
			Type:        TypeFaction,
			Severity:    SeverityMinor,
			Effects: []Effect{
				{Type: EffectRelationship, Target: factions.NeonYouth, Value: 10, Description: "Party invitation"},
			},
			Choices: []Choice{
				{
					Text: "Join the rave",
					Effects: []Effect{
						{Type: EffectRelationship, Target: factions.NeonYouth, Value: 25, Description: "Party with the youth"},
						{Type: EffectSurvivorStat, Target: "sanity", Value: 15, Description: "Stress relief"},
						{Type: EffectSurvivorStat, Target: "hunger", Value: 10, Description: "Party snacks"},
					},
				},
				{
					Text: "Complain about the noise",
					Effects: []Effect{
						{Type: EffectRelationship, Target: factions.NeonYouth, Value: -15, Description: "Buzzkill reputation"},
						{Type: EffectRelationship, Target: factions.Brigade401k, Value: 10, Description: "Retirees approve"},
					},
				},
				{
					Text: "Ignore it",
					Effects: []Effect{
						{Type: EffectSurvivorStat, Target: "sanity", Value: -5, Description: "Sleep deprivation"},
					},
				},
			},
		},
		{
			ID:          "usda_raid",
			Title:       "USDA Zoning Raid",
			Description: "The USDA has flagged your settlement for numerous violations. An enforcement team has been dispatched!",
			Type:        TypeFaction,
			Severity:    SeverityCritical,
			Effects: []Effect{
				{Type: EffectSpawnRaid, Target: factions.USDA, Value: 3, Description: "A USDA enforcement team is raiding your base."},
				{Type: EffectRelationship, Target: factions.USDA, Value: -20, Description: "Open hostility"},
			},
			TriggerConditions: []string{"conspiracy_heat >= 50"},
		},
	}
}
