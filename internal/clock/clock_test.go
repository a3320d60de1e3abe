package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nvandermeer/suburbfall/internal/notify"
)

func TestStartsAtEightAM(t *testing.T) {
	c := New(notify.NewBus())
	assert.Equal(t, 1, c.Day())
	assert.Equal(t, 8, c.Hour())
	assert.Equal(t, 0, c.Minute())
	assert.Equal(t, "Day 1 - 08:00", c.String())
}

func TestAdvancePublishesHourBoundary(t *testing.T) {
	bus := notify.NewBus()
	var kinds []notify.Kind
	bus.Subscribe(func(n notify.Notification) { kinds = append(kinds, n.Kind) })

	c := New(bus)
	c.Advance(59_999) // 59.999 minutes, still 08:59
	assert.Empty(t, kinds)
	c.Advance(2)
	assert.Contains(t, kinds, notify.KindHourChanged)
	assert.Equal(t, 9, c.Hour())
}

func TestDayRollsOver(t *testing.T) {
	bus := notify.NewBus()
	var days []int
	bus.Subscribe(func(n notify.Notification) {
		if n.Kind == notify.KindDayChanged {
			days = append(days, n.Data["day"].(int))
		}
	})

	c := New(bus)
	// 960 more game minutes reaches midnight exactly.
	c.Advance(960_000)
	assert.Equal(t, []int{2}, days)
	assert.Equal(t, 2, c.Day())
	assert.Equal(t, 0, c.Hour())
}

func TestScaleZeroPauses(t *testing.T) {
	c := New(notify.NewBus())
	c.SetScale(0)
	c.Advance(1_000_000)
	assert.Equal(t, 8, c.Hour())

	c.SetScale(-5)
	assert.InDelta(t, 0, c.Scale(), 0.001, "negative scale clamps to pause")
}
