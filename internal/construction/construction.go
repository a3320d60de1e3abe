// Package construction manages the building pipeline: recipes, blueprint
// placement, on-site resource delivery, labor, and the production output of
// completed buildings.
package construction

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nvandermeer/suburbfall/internal/notify"
	"github.com/nvandermeer/suburbfall/internal/resources"
	"github.com/nvandermeer/suburbfall/internal/state"
	"github.com/nvandermeer/suburbfall/internal/world"
)

// Category groups recipes for the build menu.
type Category string

const (
	CategoryDefense    Category = "defense"
	CategoryUtility    Category = "utility"
	CategoryProduction Category = "production"
	CategoryComfort    Category = "comfort"
	CategoryConspiracy Category = "conspiracy"
)

// EffectType identifies what a completed building does.
type EffectType string

const (
	EffectMoodBoost           EffectType = "mood_boost"
	EffectDefenseBonus        EffectType = "defense_bonus"
	EffectResourceGeneration  EffectType = "resource_generation"
	EffectConspiracyReduction EffectType = "conspiracy_reduction"
	EffectSkillTraining       EffectType = "skill_training"
)

// Output is one production line of a completed building. The first declared
// output sets the batch cadence, so order matters.
type Output struct {
	Resource string `json:"resource"`
	Amount   int    `json:"amount"`
}

// Effect is one passive bonus a completed building grants.
type Effect struct {
	Type        EffectType `json:"type"`
	Value       float64    `json:"value"`
	Radius      float64    `json:"radius,omitempty"`
	Description string     `json:"description"`
}

// Recipe describes a buildable structure.
type Recipe struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Category      Category       `json:"category"`
	Requirements  map[string]int `json:"requirements"`
	BuildTimeS    float64        `json:"build_time_s"`
	SkillRequired string         `json:"skill_required,omitempty"`
	MinSkillLevel int            `json:"min_skill_level,omitempty"`
	Unlocked      bool           `json:"unlocked"`
	Produces      []Output       `json:"produces,omitempty"`
	Effects       []Effect       `json:"effects,omitempty"`
}

// BuildingStatus is a building's position in the construction lifecycle.
type BuildingStatus string

const (
	StatusBlueprint         BuildingStatus = "blueprint"
	StatusUnderConstruction BuildingStatus = "under_construction"
	StatusCompleted         BuildingStatus = "completed"
	StatusDamaged           BuildingStatus = "damaged"
	StatusDestroyed         BuildingStatus = "destroyed"
)

// Building is a placed structure working its way to completion.
type Building struct {
	ID             string         `json:"id"`
	RecipeID       string         `json:"recipe_id"`
	Pos            world.Position `json:"pos"`
	Status         BuildingStatus `json:"status"`
	Progress       float64        `json:"progress"` // completion fraction in [0, 1]
	AssignedWorker string         `json:"assigned_worker,omitempty"`
	Health         float64        `json:"health"`
	MaxHealth      float64        `json:"max_health"`

	RequiredRemaining map[string]int `json:"required_remaining"`
	WorkRemainingS    float64        `json:"work_remaining_s"`

	productionRate  float64 // items per minute
	sinceProducedMs float64
}

// WorkerFinder locates an idle survivor near a position. Wired in by the
// simulation so placement can auto-assign labor without this package knowing
// about survivors.
type WorkerFinder interface {
	FindNearestIdleWorker(pos world.Position) (string, bool)
}

// Yard owns recipes and buildings.
type Yard struct {
	bus    *notify.Bus
	ledger *resources.Ledger
	shared *state.State

	recipes     map[string]*Recipe
	recipeOrder []string
	buildings   map[string]*Building
	buildOrder  []string

	workers WorkerFinder
}

// NewYard builds the yard with the full recipe catalog.
func NewYard(bus *notify.Bus, ledger *resources.Ledger, shared *state.State) *Yard {
	y := &Yard{
		bus:       bus,
		ledger:    ledger,
		shared:    shared,
		recipes:   make(map[string]*Recipe),
		buildings: make(map[string]*Building),
	}
	for _, r := range catalog() {
		recipe := r
		y.recipes[recipe.ID] = &recipe
		y.recipeOrder = append(y.recipeOrder, recipe.ID)
	}
	return y
}

// SetWorkerFinder wires the idle-worker lookup used for auto-assignment.
func (y *Yard) SetWorkerFinder(wf WorkerFinder) {
	y.workers = wf
}

// UnlockRecipe flips a tech-gated recipe to craftable. Fired by research
// completion.
func (y *Yard) UnlockRecipe(recipeID string) {
	r, ok := y.recipes[recipeID]
	if !ok || r.Unlocked {
		return
	}
	r.Unlocked = true
	slog.Info("recipe unlocked", "recipe", recipeID)
	y.bus.Publish(notify.Notification{
		Kind:    notify.KindRecipeUnlocked,
		Message: fmt.Sprintf("Recipe unlocked: %s", r.Name),
		Data:    map[string]any{"recipe": recipeID},
	})
}

// Recipe returns a recipe by id.
func (y *Yard) Recipe(id string) (*Recipe, bool) {
	r, ok := y.recipes[id]
	return r, ok
}

// Recipes returns the catalog in declaration order.
func (y *Yard) Recipes() []*Recipe {
	out := make([]*Recipe, 0, len(y.recipeOrder))
	for _, id := range y.recipeOrder {
		out = append(out, y.recipes[id])
	}
	return out
}

// AvailableRecipes returns the unlocked subset.
func (y *Yard) AvailableRecipes() []*Recipe {
	var out []*Recipe
	for _, id := range y.recipeOrder {
		if r := y.recipes[id]; r.Unlocked {
			out = append(out, r)
		}
	}
	return out
}

// CanCraft reports whether the stockpile covers a recipe's requirements.
// The unlocked flag is deliberately not checked here; the build menu filters
// on it separately.
func (y *Yard) CanCraft(recipeID string) bool {
	r, ok := y.recipes[recipeID]
	if !ok {
		return false
	}
	for res, amount := range r.Requirements {
		if !y.ledger.Has(res, amount) {
			return false
		}
	}
	return true
}

// StartBuilding places a blueprint. Resources are not consumed up front;
// survivors haul them to the site. When workerID is empty the nearest idle
// survivor is auto-assigned.
func (y *Yard) StartBuilding(recipeID string, pos world.Position, workerID string) (*Building, error) {
	r, ok := y.recipes[recipeID]
	if !ok {
		return nil, fmt.Errorf("unknown recipe %s", recipeID)
	}
	if !y.CanCraft(recipeID) {
		return nil, fmt.Errorf("insufficient resources for %s", recipeID)
	}

	required := make(map[string]int, len(r.Requirements))
	for res, amount := range r.Requirements {
		required[res] = amount
	}
	workS := r.BuildTimeS
	if workS < 1 {
		workS = 1
	}
	rate := 0.0
	if len(r.Produces) > 0 {
		rate = float64(r.Produces[0].Amount)
	}

	b := &Building{
		ID:                uuid.NewString(),
		RecipeID:          recipeID,
		Pos:               pos,
		Status:            StatusBlueprint,
		AssignedWorker:    workerID,
		Health:            100,
		MaxHealth:         100,
		RequiredRemaining: required,
		WorkRemainingS:    workS,
		productionRate:    rate,
	}
	y.buildings[b.ID] = b
	y.buildOrder = append(y.buildOrder, b.ID)

	if b.AssignedWorker == "" && y.workers != nil {
		if id, found := y.workers.FindNearestIdleWorker(pos); found {
			b.AssignedWorker = id
		}
	}

	slog.Info("building placed", "recipe", recipeID, "x", pos.X, "y", pos.Y, "worker", b.AssignedWorker)
	y.bus.Publish(notify.Notification{
		Kind:    notify.KindBuildingPlaced,
		Message: fmt.Sprintf("Construction started: %s", r.Name),
		Data:    map[string]any{"building": b.ID, "recipe": recipeID},
	})
	return b, nil
}

// Building returns a building by id.
func (y *Yard) Building(id string) (*Building, bool) {
	b, ok := y.buildings[id]
	return b, ok
}

// Buildings returns all buildings in placement order.
func (y *Yard) Buildings() []*Building {
	out := make([]*Building, 0, len(y.buildOrder))
	for _, id := range y.buildOrder {
		if b, ok := y.buildings[id]; ok {
			out = append(out, b)
		}
	}
	return out
}

// NeedsResources reports whether a site still waits on deliveries.
func (y *Yard) NeedsResources(buildingID string) bool {
	b, ok := y.buildings[buildingID]
	if !ok {
		return false
	}
	for _, v := range b.RequiredRemaining {
		if v > 0 {
			return true
		}
	}
	return false
}

// NeededResourceTypes lists resource types a site still needs, in a stable
// order.
func (y *Yard) NeededResourceTypes(buildingID string) []string {
	b, ok := y.buildings[buildingID]
	if !ok {
		return nil
	}
	var out []string
	for _, res := range resources.GatherPriority {
		if b.RequiredRemaining[res] > 0 {
			out = append(out, res)
		}
	}
	// Sauce is not in the gather rotation but can still be required.
	if b.RequiredRemaining[resources.Sauce] > 0 {
		out = append(out, resources.Sauce)
	}
	return out
}

// ContributeResources applies a delivery to a site and returns the amount
// actually absorbed. Over-deliveries are returned to the hauler.
func (y *Yard) ContributeResources(buildingID, resourceType string, amount int) int {
	b, ok := y.buildings[buildingID]
	if !ok || amount <= 0 {
		return 0
	}
	needed := b.RequiredRemaining[resourceType]
	if needed <= 0 {
		return 0
	}
	applied := min(needed, amount)
	b.RequiredRemaining[resourceType] = needed - applied
	return applied
}

// WorkOnConstruction lets a worker claim a fully supplied blueprint and move
// it to under_construction.
func (y *Yard) WorkOnConstruction(buildingID, workerID string) {
	b, ok := y.buildings[buildingID]
	if !ok {
		return
	}
	if b.Status == StatusBlueprint && !y.NeedsResources(buildingID) {
		b.Status = StatusUnderConstruction
		b.AssignedWorker = workerID
	}
}

// AssignWorker sets the worker on a blueprint.
func (y *Yard) AssignWorker(buildingID, workerID string) bool {
	b, ok := y.buildings[buildingID]
	if !ok || b.Status != StatusBlueprint {
		return false
	}
	b.AssignedWorker = workerID
	return true
}

// RemoveBuilding deletes a building outright.
func (y *Yard) RemoveBuilding(buildingID string) {
	delete(y.buildings, buildingID)
}

// Update advances every building's lifecycle by deltaMs.
func (y *Yard) Update(deltaMs float64) {
	dt := deltaMs / 1000
	for _, id := range y.buildOrder {
		b, ok := y.buildings[id]
		if !ok {
			continue
		}
		y.updateBuilding(b, dt, deltaMs)
	}
}

func (y *Yard) updateBuilding(b *Building, dt, deltaMs float64) {
	r, ok := y.recipes[b.RecipeID]
	if !ok {
		return
	}

	switch b.Status {
	case StatusBlueprint:
		if !y.NeedsResources(b.ID) && b.AssignedWorker != "" {
			b.Status = StatusUnderConstruction
		}

	case StatusUnderConstruction:
		if y.NeedsResources(b.ID) {
			return
		}
		// One second of labor per second at base rate.
		b.WorkRemainingS = max(0, b.WorkRemainingS-dt)
		base := r.BuildTimeS
		if base < 1 {
			base = 1
		}
		b.Progress = 1 - b.WorkRemainingS/base

		if b.WorkRemainingS <= 0 {
			b.Status = StatusCompleted
			b.Progress = 1
			y.applyEffects(b, r)
			slog.Info("building completed", "recipe", b.RecipeID, "building", b.ID)
			y.bus.Publish(notify.Notification{
				Kind:    notify.KindBuildingCompleted,
				Message: fmt.Sprintf("Construction completed: %s", r.Name),
				Data:    map[string]any{"building": b.ID, "recipe": b.RecipeID},
			})
		}

	case StatusCompleted:
		if len(r.Produces) == 0 || b.productionRate <= 0 {
			return
		}
		b.sinceProducedMs += deltaMs
		interval := 60_000 / b.productionRate
		if b.sinceProducedMs >= interval {
			b.sinceProducedMs = 0
			for _, out := range r.Produces {
				y.ledger.Add(out.Resource, out.Amount)
			}
		}
	}
}

// applyEffects handles completion-time effects. Passive auras (mood, defense)
// are read by their consumers; only heat reduction mutates shared state here.
func (y *Yard) applyEffects(b *Building, r *Recipe) {
	for _, effect := range r.Effects {
		if effect.Type == EffectConspiracyReduction {
			y.shared.AdjustConspiracyHeat(-effect.Value)
		}
	}
}
