// Package survivors runs the colony roster: each survivor's needs, mood, and
// the task state machine that drives hauling, gathering, construction labor,
// and defense.
package survivors

import (
	"github.com/nvandermeer/suburbfall/internal/world"
)

// Mood labels derived from a survivor's averaged stats.
const (
	MoodContent  = "Content"
	MoodStable   = "Stable"
	MoodStressed = "Stressed"
	MoodUnstable = "Unstable"
	MoodBreaking = "Breaking"
)

// TaskType identifies what a survivor is doing.
type TaskType string

const (
	TaskGather       TaskType = "gather"
	TaskDeliverBuild TaskType = "deliver_build"
	TaskBuildWork    TaskType = "build_work"
	TaskDefend       TaskType = "defend"
	TaskIdle         TaskType = "idle"
)

// Phase is a step within a task.
type Phase string

const (
	PhaseToNode      Phase = "to_node"
	PhaseGathering   Phase = "gathering"
	PhaseToStockpile Phase = "to_stockpile"
	PhaseToBuild     Phase = "to_build"
	PhaseWorking     Phase = "working"
	PhaseToEnemy     Phase = "to_enemy"
	PhaseAttacking   Phase = "attacking"
	PhaseWander      Phase = "wander"
)

// Task is one unit of survivor intent. Which fields matter depends on Type.
type Task struct {
	Type         TaskType       `json:"type"`
	Phase        Phase          `json:"phase"`
	NodeID       string         `json:"node_id,omitempty"`
	BuildingID   string         `json:"building_id,omitempty"`
	EnemyUnitID  string         `json:"enemy_unit_id,omitempty"`
	ResourceType string         `json:"resource_type,omitempty"`
	Amount       int            `json:"amount,omitempty"`
	Target       world.Position `json:"target"`
	TimerS       float64        `json:"timer_s,omitempty"`
}

// Carry is a load of resources in a survivor's arms.
type Carry struct {
	ResourceType string `json:"resource_type"`
	Amount       int    `json:"amount"`
}

// Survivor is one colony member.
type Survivor struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Background Background     `json:"background"`
	Pos        world.Position `json:"pos"`
	Health     float64        `json:"health"`
	Sanity     float64        `json:"sanity"`
	Hunger     float64        `json:"hunger"`
	Mood       string         `json:"mood"`
	Speed      float64        `json:"speed"`
	Skills     map[string]int `json:"skills"`
	Quirks     []string       `json:"quirks"`

	Task     *Task  `json:"task,omitempty"`
	Carrying *Carry `json:"carrying,omitempty"`

	Starving bool `json:"starving"`
	Breaking bool `json:"breaking"`
}

// Idle reports whether the survivor has no task.
func (s *Survivor) Idle() bool {
	return s.Task == nil
}

// calculateMood buckets the average of health, sanity, and fed-ness.
func calculateMood(health, sanity, hunger float64) string {
	average := (health + sanity + (100 - hunger)) / 3
	switch {
	case average > 80:
		return MoodContent
	case average > 60:
		return MoodStable
	case average > 40:
		return MoodStressed
	case average > 20:
		return MoodUnstable
	default:
		return MoodBreaking
	}
}
