package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	xdraw "golang.org/x/image/draw"

	"github.com/vovakirdan/framehost/internal/core"
	"github.com/vovakirdan/framehost/internal/host"
)

func trueColorRenderer() *lipgloss.Renderer {
	lg := lipgloss.NewRenderer(io.Discard)
	lg.SetColorProfile(termenv.TrueColor)
	return lg
}

// splitFrame is w×h with the top half red and the bottom half blue.
func splitFrame(w, h int) host.Frame {
	f := host.Frame{Width: w, Height: h, Pixels: make([]uint32, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := core.RGB(255, 0, 0)
			if y >= h/2 {
				c = core.RGB(0, 0, 255)
			}
			f.Pixels[y*w+x] = c
		}
	}
	return f
}

func TestFilter(t *testing.T) {
	for _, name := range []string{"nearest", "approx", "bilinear", "catmullrom", ""} {
		if f, err := Filter(name); err != nil || f == nil {
			t.Errorf("Filter(%q) = %v, %v", name, f, err)
		}
	}
	if _, err := Filter("lanczos"); err == nil {
		t.Error("expected an error for an unknown filter")
	}
}

func TestFrameImage(t *testing.T) {
	f := host.Frame{Width: 2, Height: 1, Pixels: []uint32{0x102030, 0xffffff}}
	img := FrameImage(f)

	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if r>>8 != 0x10 || g>>8 != 0x20 || b>>8 != 0x30 || a>>8 != 0xff {
		t.Errorf("At(0, 0) = %x %x %x %x", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	r := NewFrameRenderer(trueColorRenderer(), xdraw.NearestNeighbor)
	out := r.Render(splitFrame(4, 4), 4, 2)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, expected 2", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, halfBlock); n != 4 {
			t.Errorf("line %d has %d cells, expected 4", i, n)
		}
		if w := lipgloss.Width(line); w != 4 {
			t.Errorf("line %d width = %d, expected 4", i, w)
		}
	}

	// Top row is red over red, bottom row blue over blue
	if !strings.Contains(lines[0], "38;2;255;0;0") || !strings.Contains(lines[0], "48;2;255;0;0") {
		t.Errorf("line 0 = %q, expected red cells", lines[0])
	}
	if !strings.Contains(lines[1], "38;2;0;0;255") {
		t.Errorf("line 1 = %q, expected blue cells", lines[1])
	}

	// One run per line: a single style sequence each
	if n := strings.Count(lines[0], "\x1b[0m"); n != 1 {
		t.Errorf("line 0 has %d resets, expected one run", n)
	}
}

func TestRenderKeepsAspect(t *testing.T) {
	r := NewFrameRenderer(trueColorRenderer(), xdraw.NearestNeighbor)

	// 320x200 into 80x50 cells: height bound is 100 pixels, so width 160
	// does not fit; width bound 80 gives 50 pixel rows, 25 text rows
	out := r.Render(splitFrame(320, 200), 80, 50)
	lines := strings.Split(out, "\n")
	if len(lines) != 25 {
		t.Errorf("rendered %d lines, expected 25", len(lines))
	}
	if w := lipgloss.Width(lines[0]); w != 80 {
		t.Errorf("width = %d, expected 80", w)
	}

	// A wide terminal pads the image to the centre
	out = r.Render(splitFrame(320, 200), 100, 10)
	lines = strings.Split(out, "\n")
	// 10 rows = 20 pixels high, so 32 wide; (100-32)/2 = 34 spaces of padding
	if !strings.HasPrefix(lines[0], strings.Repeat(" ", 34)) {
		t.Errorf("line 0 = %q, expected centred", lines[0])
	}
	if n := strings.Count(lines[0], halfBlock); n != 32 {
		t.Errorf("line 0 has %d cells, expected 32", n)
	}
}

func TestRenderOddHeight(t *testing.T) {
	r := NewFrameRenderer(trueColorRenderer(), xdraw.NearestNeighbor)
	f := host.Frame{Width: 1, Height: 3, Pixels: []uint32{0xffffff, 0xffffff, 0xffffff}}

	lines := strings.Split(r.Render(f, 1, 2), "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, expected 2", len(lines))
	}
	// The missing pixel below the last row is black
	if !strings.Contains(lines[1], "48;2;0;0;0") {
		t.Errorf("line 1 = %q, expected a black lower half", lines[1])
	}
}

func TestRenderEmpty(t *testing.T) {
	r := NewFrameRenderer(nil, nil)
	if out := r.Render(splitFrame(4, 4), 0, 10); out != "" {
		t.Errorf("Render() with no columns = %q, expected empty", out)
	}
	if out := r.Render(host.Frame{Width: 4, Height: 4}, 10, 10); out != "" {
		t.Errorf("Render() with no pixels = %q, expected empty", out)
	}
}
