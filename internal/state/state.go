// Package state holds session-wide simulation state shared across
// components: the conspiracy heat metric and player-toggled modes. It is an
// explicit context object passed to component updates, not ambient globals.
package state

import "github.com/nvandermeer/suburbfall/internal/notify"

// State is the shared simulation session state.
type State struct {
	bus *notify.Bus

	conspiracyHeat float64
	defenseMode    bool
	buildMode      bool
}

// New creates session state with heat at zero.
func New(bus *notify.Bus) *State {
	return &State{bus: bus}
}

// ConspiracyHeat returns the current heat in [0, 100].
func (s *State) ConspiracyHeat() float64 {
	return s.conspiracyHeat
}

// SetConspiracyHeat clamps the value into [0, 100] and republishes it.
func (s *State) SetConspiracyHeat(value float64) {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	s.conspiracyHeat = value
	s.bus.Publish(notify.Notification{
		Kind: notify.KindConspiracyHeat,
		Data: map[string]any{"value": s.conspiracyHeat},
	})
}

// AdjustConspiracyHeat applies a signed delta with clamping.
func (s *State) AdjustConspiracyHeat(delta float64) {
	s.SetConspiracyHeat(s.conspiracyHeat + delta)
}

// DefenseMode reports whether the defense-mode override is active.
func (s *State) DefenseMode() bool { return s.defenseMode }

// SetDefenseMode toggles the defense-mode override.
func (s *State) SetDefenseMode(active bool) { s.defenseMode = active }

// BuildMode reports whether the player is placing a building.
func (s *State) BuildMode() bool { return s.buildMode }

// SetBuildMode toggles build mode.
func (s *State) SetBuildMode(active bool) { s.buildMode = active }
