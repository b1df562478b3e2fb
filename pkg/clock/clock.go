// Package clock keeps the in-game time of day. Scenes gate themselves on
// the current hour or on the coarse day/night window, and effects advance
// the clock by their time cost.
package clock

import (
	"fmt"
	"math"
)

// Day/night window names as they appear in content.
const (
	WindowDay   = "day"
	WindowNight = "night"
)

const hoursPerDay = 24

// DaySettings defines when night falls and when it ends.
type DaySettings struct {
	NightStart float64 `yaml:"nightStart"`
	NightEnd   float64 `yaml:"nightEnd"`
}

// DefaultDaySettings matches the stock world: night from 21:00 to 05:00.
func DefaultDaySettings() DaySettings {
	return DaySettings{NightStart: 21, NightEnd: 5}
}

// IsDayHour reports whether the hour falls in the daylight span.
func (d DaySettings) IsDayHour(hour float64) bool {
	return hour >= d.NightEnd && hour < d.NightStart
}

// Event is pushed to subscribers whenever the clock moves.
type Event struct {
	Time    float64
	DayOver bool
}

// Clock tracks the current hour within a bounded game day. When the hour
// advances past the end-of-day mark the clock pins there and reports
// DayOver to subscribers.
type Clock struct {
	start    float64
	end      float64
	current  float64
	settings DaySettings
	subs     []func(Event)
}

// New creates a clock starting at startHour. The day ends when the clock
// reaches endHour (which may be past midnight, e.g. start 9, end 5).
func New(startHour, endHour float64, settings DaySettings) *Clock {
	return &Clock{
		start:    startHour,
		end:      endHour,
		current:  startHour,
		settings: settings,
	}
}

// Normalize maps an hour value into [0, 24).
func Normalize(hour float64) float64 {
	h := math.Mod(hour, hoursPerDay)
	if h < 0 {
		h += hoursPerDay
	}
	return h
}

// CurrentTime returns the current hour in [0, 24).
func (c *Clock) CurrentTime() float64 { return c.current }

// Window returns "day" or "night" for the current hour.
func (c *Clock) Window() string {
	if c.settings.IsDayHour(c.current) {
		return WindowDay
	}
	return WindowNight
}

// Tick advances the clock by the given number of hours.
func (c *Clock) Tick(hours float64) {
	if hours <= 0 {
		return
	}
	c.SetTime(c.current + hours)
}

// SetTime moves the clock to the given hour, clamping at the end of the
// day. Subscribers are notified only on an actual change.
func (c *Clock) SetTime(hour float64) {
	h := Normalize(hour)
	if c.pastEnd(h) {
		c.current = c.end
		c.notify(Event{Time: c.current, DayOver: true})
		return
	}
	if c.current != h {
		c.current = h
		c.notify(Event{Time: c.current, DayOver: false})
	}
}

// pastEnd reports whether the hour has crossed the end-of-day mark,
// accounting for days that wrap midnight (start 9, end 5).
func (c *Clock) pastEnd(hour float64) bool {
	if c.start < c.end {
		return hour >= c.end
	}
	if c.start > c.end {
		return hour < c.start && hour >= c.end
	}
	return false
}

// Reset returns the clock to the start of the day without notifying.
func (c *Clock) Reset() {
	c.current = c.start
}

// Subscribe registers a listener for clock changes.
func (c *Clock) Subscribe(fn func(Event)) {
	if fn != nil {
		c.subs = append(c.subs, fn)
	}
}

func (c *Clock) notify(e Event) {
	for _, fn := range c.subs {
		fn(e)
	}
}

// FormatTime renders an hour value as hh:mm.
func FormatTime(hour float64) string {
	totalMinutes := int(math.Round(Normalize(hour) * 60))
	h := (totalMinutes / 60) % hoursPerDay
	m := totalMinutes % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}
