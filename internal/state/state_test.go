package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nvandermeer/suburbfall/internal/notify"
)

func TestConspiracyHeatClamps(t *testing.T) {
	s := New(notify.NewBus())

	s.SetConspiracyHeat(150)
	assert.InDelta(t, 100, s.ConspiracyHeat(), 0.001)

	s.AdjustConspiracyHeat(-500)
	assert.InDelta(t, 0, s.ConspiracyHeat(), 0.001)
}

func TestHeatChangePublishes(t *testing.T) {
	bus := notify.NewBus()
	var got []notify.Notification
	bus.Subscribe(func(n notify.Notification) { got = append(got, n) })

	s := New(bus)
	s.AdjustConspiracyHeat(30)

	assert.Len(t, got, 1)
	assert.Equal(t, notify.KindConspiracyHeat, got[0].Kind)
}

func TestModes(t *testing.T) {
	s := New(notify.NewBus())
	assert.False(t, s.DefenseMode())
	assert.False(t, s.BuildMode())

	s.SetDefenseMode(true)
	s.SetBuildMode(true)
	assert.True(t, s.DefenseMode())
	assert.True(t, s.BuildMode())
}
