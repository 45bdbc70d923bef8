package tui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"

	"github.com/vovakirdan/framehost/internal/core"
	"github.com/vovakirdan/framehost/internal/host"
)

// halfBlock paints the upper half of a cell with the foreground colour and
// the lower half with the background, giving two pixel rows per text row.
const halfBlock = "▀"

// Filter returns the scaler for a display.filter name.
func Filter(name string) (xdraw.Interpolator, error) {
	switch name {
	case "nearest":
		return xdraw.NearestNeighbor, nil
	case "approx", "":
		return xdraw.ApproxBiLinear, nil
	case "bilinear":
		return xdraw.BiLinear, nil
	case "catmullrom":
		return xdraw.CatmullRom, nil
	}
	return nil, fmt.Errorf("tui: unknown filter %q", name)
}

// FrameRenderer turns host frames into half-block text.
type FrameRenderer struct {
	lg     *lipgloss.Renderer
	filter xdraw.Interpolator
	styles map[[2]core.Pixel]lipgloss.Style
}

// NewFrameRenderer creates a renderer writing styles for lg (the default
// renderer when nil) and scaling with filter.
func NewFrameRenderer(lg *lipgloss.Renderer, filter xdraw.Interpolator) *FrameRenderer {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	if filter == nil {
		filter = xdraw.ApproxBiLinear
	}
	return &FrameRenderer{
		lg:     lg,
		filter: filter,
		styles: make(map[[2]core.Pixel]lipgloss.Style),
	}
}

// FrameImage converts a frame to an RGBA image.
func FrameImage(f host.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i, p := range f.Pixels[:f.Width*f.Height] {
		r, g, b := core.Channels(p)
		img.Pix[i*4] = r
		img.Pix[i*4+1] = g
		img.Pix[i*4+2] = b
		img.Pix[i*4+3] = 0xff
	}
	return img
}

// Render scales f to fit cols×rows cells, keeping its aspect ratio, and
// centres it horizontally.
func (r *FrameRenderer) Render(f host.Frame, cols, rows int) string {
	if cols <= 0 || rows <= 0 || f.Width <= 0 || f.Height <= 0 || len(f.Pixels) < f.Width*f.Height {
		return ""
	}

	w, h := core.Fit(f.Width, f.Height, cols, rows*2)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	r.filter.Scale(dst, dst.Bounds(), FrameImage(f), image.Rect(0, 0, f.Width, f.Height), xdraw.Src, nil)

	pad := strings.Repeat(" ", (cols-w)/2)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(w * (h/2 + 1) * 8)

	for y := 0; y < h; y += 2 {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(pad)

		// Group consecutive cells with the same colours
		x := 0
		for x < w {
			cell := cellAt(dst, x, y)
			n := 1
			for x+n < w && cellAt(dst, x+n, y) == cell {
				n++
			}
			sb.WriteString(r.style(cell).Render(strings.Repeat(halfBlock, n)))
			x += n
		}
	}
	return sb.String()
}

// cellAt returns the upper and lower pixel of the cell at x, y. The row
// below the last one is black.
func cellAt(img *image.RGBA, x, y int) [2]core.Pixel {
	top := pixelAt(img, x, y)
	bottom := core.ColorBlack
	if y+1 < img.Rect.Dy() {
		bottom = pixelAt(img, x, y+1)
	}
	return [2]core.Pixel{top, bottom}
}

func pixelAt(img *image.RGBA, x, y int) core.Pixel {
	i := img.PixOffset(x, y)
	return core.RGB(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
}

func (r *FrameRenderer) style(cell [2]core.Pixel) lipgloss.Style {
	if s, ok := r.styles[cell]; ok {
		return s
	}
	s := r.lg.NewStyle().
		Foreground(lipgloss.Color(hexColor(cell[0]))).
		Background(lipgloss.Color(hexColor(cell[1])))

	// Long-running sessions see many colours; keep the cache bounded
	if len(r.styles) > 4096 {
		clear(r.styles)
	}
	r.styles[cell] = s
	return s
}

func hexColor(p core.Pixel) string {
	return fmt.Sprintf("#%06x", p&0xffffff)
}
