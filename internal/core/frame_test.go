package core

import "testing"

func TestFrameSetGet(t *testing.T) {
	f := NewFrame(4, 3)
	if len(f.Pixels()) != 12 {
		t.Fatalf("len(Pixels()) = %d, expected 12", len(f.Pixels()))
	}

	f.Set(1, 2, ColorRed)
	if got := f.Get(1, 2); got != ColorRed {
		t.Errorf("Get(1, 2) = %#x, expected %#x", got, ColorRed)
	}
	if got := f.Pixels()[2*4+1]; got != ColorRed {
		t.Errorf("pixel not stored row-major, got %#x", got)
	}

	// Out of bounds is ignored
	f.Set(-1, 0, ColorRed)
	f.Set(4, 0, ColorRed)
	if got := f.Get(9, 9); got != ColorBlack {
		t.Errorf("Get() out of bounds = %#x, expected black", got)
	}
}

func TestFrameFillRectClips(t *testing.T) {
	f := NewFrame(10, 10)
	f.FillRect(NewRect(8, 8, 5, 5), ColorGreen)

	count := 0
	for _, p := range f.Pixels() {
		if p == ColorGreen {
			count++
		}
	}
	if count != 4 {
		t.Errorf("filled %d pixels, expected 4", count)
	}
}

func TestFrameDrawBox(t *testing.T) {
	f := NewFrame(5, 5)
	f.DrawBox(NewRect(0, 0, 5, 5), ColorWhite)

	if f.Get(0, 0) != ColorWhite || f.Get(4, 4) != ColorWhite {
		t.Error("box corners not drawn")
	}
	if f.Get(2, 2) != ColorBlack {
		t.Error("box interior should stay untouched")
	}
}

func TestFrameDrawText(t *testing.T) {
	f := NewFrame(16, 8)
	f.DrawText(0, 0, "1", 1, ColorWhite)

	// Glyph '1' is {2, 6, 2, 2, 7}: middle column set on the first row
	if f.Get(1, 0) != ColorWhite {
		t.Error("expected top stroke of '1'")
	}
	if f.Get(0, 0) != ColorBlack {
		t.Error("expected blank top-left of '1'")
	}
	for x := 0; x < 3; x++ {
		if f.Get(x, 4) != ColorWhite {
			t.Errorf("expected base of '1' at x=%d", x)
		}
	}
}

func TestTextWidth(t *testing.T) {
	tests := []struct {
		text     string
		scale    int
		expected int
	}{
		{"", 1, 0},
		{"A", 1, 3},
		{"AB", 1, 7},
		{"AB", 2, 14},
	}

	for _, tc := range tests {
		if got := TextWidth(tc.text, tc.scale); got != tc.expected {
			t.Errorf("TextWidth(%q, %d) = %d, expected %d", tc.text, tc.scale, got, tc.expected)
		}
	}
}

func TestRGB(t *testing.T) {
	p := RGB(0x12, 0x34, 0x56)
	if p != 0x123456 {
		t.Errorf("RGB() = %#x, expected 0x123456", p)
	}
	r, g, b := Channels(p)
	if r != 0x12 || g != 0x34 || b != 0x56 {
		t.Errorf("Channels() = (%#x, %#x, %#x)", r, g, b)
	}
}
