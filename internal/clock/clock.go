// Package clock tracks scaled in-game time and announces hour and day
// boundaries.
package clock

import (
	"fmt"

	"github.com/nvandermeer/suburbfall/internal/notify"
)

// Real-world milliseconds per in-game minute at scale 1.
const msPerMinute = 1000.0

// Clock advances in-game time at a configurable scale. Scale 0 pauses.
type Clock struct {
	bus *notify.Bus

	elapsedMinutes float64
	scale          float64
}

// New creates a clock starting at 08:00 on day 1.
func New(bus *notify.Bus) *Clock {
	return &Clock{bus: bus, elapsedMinutes: 8 * 60, scale: 1}
}

// Advance moves game time forward by deltaMs real milliseconds, scaled.
// Emits hour/day notifications when a boundary is crossed.
func (c *Clock) Advance(deltaMs float64) {
	if c.scale == 0 {
		return
	}

	lastHour := c.Hour()
	lastDay := c.Day()

	c.elapsedMinutes += deltaMs / msPerMinute * c.scale

	if hour := c.Hour(); hour != lastHour {
		c.bus.Publish(notify.Notification{
			Kind: notify.KindHourChanged,
			Data: map[string]any{"day": c.Day(), "hour": hour},
		})
	}
	if day := c.Day(); day != lastDay {
		c.bus.Publish(notify.Notification{
			Kind:    notify.KindDayChanged,
			Message: fmt.Sprintf("Day %d begins.", day),
			Data:    map[string]any{"day": day},
		})
	}
}

// SetScale sets the time multiplier, clamped to >= 0.
func (c *Clock) SetScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	c.scale = scale
}

// Scale returns the current time multiplier.
func (c *Clock) Scale() float64 { return c.scale }

// Day returns the current day, starting at 1.
func (c *Clock) Day() int { return int(c.elapsedMinutes/(24*60)) + 1 }

// Hour returns the hour of day in [0, 24).
func (c *Clock) Hour() int { return int(c.elapsedMinutes/60) % 24 }

// Minute returns the minute of hour in [0, 60).
func (c *Clock) Minute() int { return int(c.elapsedMinutes) % 60 }

// String formats the current time as "Day 3 - 14:05".
func (c *Clock) String() string {
	return fmt.Sprintf("Day %d - %02d:%02d", c.Day(), c.Hour(), c.Minute())
}
