// Package research runs the colony's technology tree: a small graph of
// projects with resource costs, durations, and prerequisite edges. At most
// one project is active at a time.
package research

import (
	"fmt"
	"log/slog"

	"github.com/nvandermeer/suburbfall/internal/notify"
	"github.com/nvandermeer/suburbfall/internal/resources"
)

// Status is a project's position in the research lifecycle.
type Status string

const (
	StatusLocked     Status = "locked"
	StatusAvailable  Status = "available"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Project is one node of the research graph.
type Project struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Cost        map[string]int `json:"cost"`
	DurationS   float64        `json:"duration_s"`
	Unlocks     []string       `json:"unlocks"` // recipe ids made craftable on completion
	Deps        []string       `json:"deps,omitempty"`

	Status    Status  `json:"status"`
	ProgressS float64 `json:"progress_s"`
}

// Lab owns the project graph and drives the active project forward.
type Lab struct {
	bus    *notify.Bus
	ledger *resources.Ledger

	projects  map[string]*Project
	order     []string
	active    string
	timeScale float64

	onUnlock func(recipeID string)
}

// NewLab builds the lab with the full project catalog. Projects with no
// dependencies start available, the rest locked.
func NewLab(bus *notify.Bus, ledger *resources.Ledger) *Lab {
	lab := &Lab{
		bus:       bus,
		ledger:    ledger,
		projects:  make(map[string]*Project),
		timeScale: 1,
	}
	for _, p := range catalog() {
		proj := p
		if len(proj.Deps) == 0 {
			proj.Status = StatusAvailable
		} else {
			proj.Status = StatusLocked
		}
		lab.projects[proj.ID] = &proj
		lab.order = append(lab.order, proj.ID)
	}
	return lab
}

func catalog() []Project {
	return []Project{
		{
			ID:          "basic_defense",
			Name:        "Basic Defense",
			Description: "Fundamental perimeter security techniques.",
			Cost:        map[string]int{resources.Scrap: 20, resources.Wood: 15},
			DurationS:   60,
			Unlocks:     []string{"chain_link_fence"},
		},
		{
			ID:          "advanced_defense",
			Name:        "Advanced Defense",
			Description: "Water-based area denial for the discerning suburbanite.",
			Cost:        map[string]int{resources.Plastic: 50, resources.Concrete: 30},
			DurationS:   120,
			Unlocks:     []string{"pool_moat"},
			Deps:        []string{"basic_defense"},
		},
		{
			ID:          "tinkering_101",
			Name:        "Tinkering 101",
			Description: "Basic electronics repair and repurposing.",
			Cost:        map[string]int{resources.Electronics: 30, resources.Plastic: 20},
			DurationS:   90,
			Unlocks:     []string{"security_camera"},
		},
		{
			ID:          "power_generation",
			Name:        "Power Generation",
			Description: "Converting grease into glorious wattage.",
			Cost:        map[string]int{resources.Scrap: 40, resources.Electronics: 25, resources.Sauce: 50},
			DurationS:   180,
			Unlocks:     []string{"fryer_generator"},
			Deps:        []string{"tinkering_101"},
		},
		{
			ID:          "food_science",
			Name:        "Food Science",
			Description: "Industrial nugget cultivation at scale.",
			Cost:        map[string]int{resources.Nuggets: 100, resources.Sauce: 50, resources.Electronics: 30},
			DurationS:   240,
			Unlocks:     []string{"nugget_farm"},
		},
	}
}

// SetUnlockHook registers the callback fired once per unlocked recipe id
// when a project completes.
func (lab *Lab) SetUnlockHook(fn func(recipeID string)) {
	lab.onUnlock = fn
}

// SetTimeScale sets the research speed multiplier.
func (lab *Lab) SetTimeScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	lab.timeScale = scale
}

// Project returns a project by id.
func (lab *Lab) Project(id string) (*Project, bool) {
	p, ok := lab.projects[id]
	return p, ok
}

// Projects returns the catalog in declaration order.
func (lab *Lab) Projects() []*Project {
	out := make([]*Project, 0, len(lab.order))
	for _, id := range lab.order {
		out = append(out, lab.projects[id])
	}
	return out
}

// Active returns the in-progress project, or nil.
func (lab *Lab) Active() *Project {
	if lab.active == "" {
		return nil
	}
	return lab.projects[lab.active]
}

// CanStart reports whether a project could be started right now: it must be
// available, nothing else may be running, and the costs must be on hand.
func (lab *Lab) CanStart(id string) bool {
	p, ok := lab.projects[id]
	if !ok || p.Status != StatusAvailable || lab.active != "" {
		return false
	}
	for res, amount := range p.Cost {
		if !lab.ledger.Has(res, amount) {
			return false
		}
	}
	return true
}

// Start consumes the project's cost and begins it.
func (lab *Lab) Start(id string) error {
	if !lab.CanStart(id) {
		return fmt.Errorf("research %s cannot start", id)
	}
	p := lab.projects[id]
	for res, amount := range p.Cost {
		if !lab.ledger.Remove(res, amount) {
			return fmt.Errorf("research %s: insufficient %s", id, res)
		}
	}
	p.Status = StatusInProgress
	p.ProgressS = 0
	lab.active = id

	slog.Info("research started", "project", id, "duration_s", p.DurationS)
	lab.bus.Publish(notify.Notification{
		Kind:    notify.KindResearchStarted,
		Message: fmt.Sprintf("Research started: %s", p.Name),
		Data:    map[string]any{"project": id},
	})
	return nil
}

// Update advances the active project by deltaMs, scaled. Completion unlocks
// the project's recipe and re-evaluates dependents.
func (lab *Lab) Update(deltaMs float64) {
	if lab.active == "" {
		return
	}
	p := lab.projects[lab.active]
	p.ProgressS += deltaMs / 1000 * lab.timeScale
	if p.ProgressS < p.DurationS {
		return
	}

	p.ProgressS = p.DurationS
	p.Status = StatusCompleted
	lab.active = ""

	slog.Info("research completed", "project", p.ID, "unlocks", p.Unlocks)
	lab.bus.Publish(notify.Notification{
		Kind:    notify.KindResearchCompleted,
		Message: fmt.Sprintf("Research completed: %s", p.Name),
		Data:    map[string]any{"project": p.ID, "unlocks": p.Unlocks},
	})
	if lab.onUnlock != nil {
		for _, recipeID := range p.Unlocks {
			lab.onUnlock(recipeID)
		}
	}
	lab.refreshAvailability()
}

// refreshAvailability flips locked projects to available once every
// dependency is completed.
func (lab *Lab) refreshAvailability() {
	for _, id := range lab.order {
		p := lab.projects[id]
		if p.Status != StatusLocked {
			continue
		}
		ready := true
		for _, dep := range p.Deps {
			if d, ok := lab.projects[dep]; !ok || d.Status != StatusCompleted {
				ready = false
				break
			}
		}
		if ready {
			p.Status = StatusAvailable
		}
	}
}

// Progress returns the active project's completion fraction in [0, 1].
func (lab *Lab) Progress() float64 {
	p := lab.Active()
	if p == nil || p.DurationS == 0 {
		return 0
	}
	return p.ProgressS / p.DurationS
}
