package engine

import "testing"

func TestStepClockFirstCallAnchors(t *testing.T) {
	c := NewStepClock(35)
	if n := c.Due(5000); n != 1 {
		t.Errorf("Due() on first call = %d, expected 1", n)
	}
	if n := c.Due(5000); n != 0 {
		t.Errorf("Due() with stalled clock = %d, expected 0", n)
	}
}

func TestStepClockSteps(t *testing.T) {
	c := NewStepClock(10) // one step every 100ms
	c.Due(0)

	tests := []struct {
		now      uint32
		expected int
	}{
		{50, 0},
		{100, 1},
		{150, 0},
		{399, 2},
		{400, 1},
	}

	for _, tc := range tests {
		if n := c.Due(tc.now); n != tc.expected {
			t.Errorf("Due(%d) = %d, expected %d", tc.now, n, tc.expected)
		}
	}
}

func TestStepClockBacklogCapped(t *testing.T) {
	c := NewStepClock(35)
	c.Due(0)
	if n := c.Due(10_000); n != 35 {
		t.Errorf("Due() after 10s stall = %d, expected 35", n)
	}
	if n := c.Due(10_000); n != 0 {
		t.Errorf("Due() right after catch-up = %d, expected 0", n)
	}
}

func TestStepClockUntil(t *testing.T) {
	c := NewStepClock(10)
	if u := c.Until(0); u != 0 {
		t.Errorf("Until() before start = %d, expected 0", u)
	}

	c.Due(1000)
	tests := []struct {
		now      uint32
		expected uint32
	}{
		{1000, 100},
		{1030, 70},
		{1100, 0},
		{1250, 0},
	}
	for _, tc := range tests {
		if u := c.Until(tc.now); u != tc.expected {
			t.Errorf("Until(%d) = %d, expected %d", tc.now, u, tc.expected)
		}
	}
}

func TestStepClockWraparound(t *testing.T) {
	c := NewStepClock(10)
	c.Due(0xFFFFFFF0)
	if n := c.Due(0x00000090); n != 1 {
		t.Errorf("Due() across counter wrap = %d, expected 1", n)
	}
}

func TestStepClockDefaultRate(t *testing.T) {
	if r := NewStepClock(0).Rate(); r != 35 {
		t.Errorf("Rate() = %d, expected 35", r)
	}
}
