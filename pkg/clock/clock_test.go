package clock

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{9.5, 9.5},
		{24, 0},
		{25, 1},
		{-3, 21},
		{48.25, 0.25},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWindow(t *testing.T) {
	c := New(9, 5, DefaultDaySettings())
	if got := c.Window(); got != WindowDay {
		t.Errorf("Window at 9:00 = %q, want %q", got, WindowDay)
	}

	c.SetTime(22)
	if got := c.Window(); got != WindowNight {
		t.Errorf("Window at 22:00 = %q, want %q", got, WindowNight)
	}

	c.SetTime(4)
	if got := c.Window(); got != WindowNight {
		t.Errorf("Window at 4:00 = %q, want %q", got, WindowNight)
	}
}

func TestTickAdvancesAndNotifies(t *testing.T) {
	c := New(9, 5, DefaultDaySettings())

	var events []Event
	c.Subscribe(func(e Event) { events = append(events, e) })

	c.Tick(2.5)
	if got := c.CurrentTime(); got != 11.5 {
		t.Errorf("CurrentTime = %v, want 11.5", got)
	}
	if len(events) != 1 || events[0].DayOver {
		t.Fatalf("expected one non-terminal event, got %+v", events)
	}

	// Non-positive ticks are ignored.
	c.Tick(0)
	c.Tick(-1)
	if len(events) != 1 {
		t.Errorf("expected no extra events, got %d", len(events))
	}
}

func TestDayEndWrapsMidnight(t *testing.T) {
	// Day runs 9:00 to 5:00 the next morning.
	c := New(9, 5, DefaultDaySettings())

	var last Event
	c.Subscribe(func(e Event) { last = e })

	c.Tick(14) // 23:00, still within the day
	if last.DayOver {
		t.Fatal("day should not be over at 23:00")
	}

	c.Tick(7) // would be 6:00, past the 5:00 end
	if !last.DayOver {
		t.Fatal("expected DayOver after crossing the end hour")
	}
	if got := c.CurrentTime(); got != 5 {
		t.Errorf("clock should pin at end hour, got %v", got)
	}
}

func TestReset(t *testing.T) {
	c := New(9, 5, DefaultDaySettings())
	c.Tick(3)
	c.Reset()
	if got := c.CurrentTime(); got != 9 {
		t.Errorf("CurrentTime after reset = %v, want 9", got)
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		hour float64
		want string
	}{
		{9, "09:00"},
		{13.5, "13:30"},
		{0.25, "00:15"},
		{23.75, "23:45"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.hour); got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}
