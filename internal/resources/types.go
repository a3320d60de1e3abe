// Package resources tracks the colony stockpile and the harvestable resource
// nodes scattered across the map, including the reservation protocol that
// keeps two survivors from targeting the same node.
package resources

// Resource type ids. These are stable catalog keys, not display names.
const (
	Nuggets     = "nuggets"
	Sauce       = "sauce"
	Scrap       = "scrap"
	Electronics = "electronics"
	Plastic     = "plastic"
	Fabric      = "fabric"
	Concrete    = "concrete"
	Fuel        = "fuel"
	Wood        = "wood"
)

// Type is an immutable resource catalog entry.
type Type struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GatherPriority is the fixed order survivors try resource types when
// looking for a node to harvest.
var GatherPriority = []string{Wood, Scrap, Plastic, Electronics, Fabric, Concrete, Fuel, Nuggets}

// catalog returns the full resource type catalog.
func catalog() []Type {
	return []Type{
		{ID: Nuggets, Name: "Nuggets", Description: "Processed chicken-like substance. Primary food source."},
		{ID: Sauce, Name: "Special Sauce", Description: "Mysterious condiment with addictive properties."},
		{ID: Scrap, Name: "Scrap Metal", Description: "Salvaged materials from suburban decay."},
		{ID: Electronics, Name: "Electronics", Description: "Circuit boards, wires, and tech components."},
		{ID: Plastic, Name: "Plastic", Description: "Recycled containers and packaging materials."},
		{ID: Fabric, Name: "Fabric", Description: "Cloth scraps from abandoned clothing stores."},
		{ID: Concrete, Name: "Concrete", Description: "Broken chunks of suburban infrastructure."},
		{ID: Fuel, Name: "Fuel", Description: "Gasoline siphoned from abandoned vehicles."},
		{ID: Wood, Name: "Wood", Description: "Timber from suburban trees and fences."},
	}
}

// startingStock is what the colony begins with.
func startingStock() map[string]int {
	return map[string]int{
		Nuggets:     50,
		Sauce:       25,
		Scrap:       15,
		Electronics: 5,
		Plastic:     10,
		Fabric:      8,
		Concrete:    20,
		Fuel:        12,
		Wood:        20,
	}
}
