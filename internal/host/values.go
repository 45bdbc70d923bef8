package host

import (
	"github.com/vovakirdan/framehost/internal/hostabi"
)

// Symbol is an interned name with a function cell.
type Symbol struct {
	Name string
	fn   any // builtin, *Function or *Symbol (alias)
}

// String returns the symbol name.
func (s *Symbol) String() string {
	return s.Name
}

// Integer, Float and String are the scalar host values.
type (
	Integer int64
	Float   float64
	String  string
)

// Function is a module-provided function created by MakeFunction.
type Function struct {
	MinArity int
	MaxArity int
	Doc      string
	fn       hostabi.Function
	data     any
}

// builtin is a function implemented by the host itself.
type builtin func(env *Env, args []hostabi.Value) hostabi.Value

// Canvas is a fixed-size pixel surface owned by the host window.
type Canvas struct {
	width     int
	height    int
	pixels    []uint32
	refreshes uint64
}

func newCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		pixels: make([]uint32, width*height),
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Refreshes returns how many times the canvas has been presented.
func (c *Canvas) Refreshes() uint64 { return c.refreshes }

// snapshot copies the canvas for presentation.
func (c *Canvas) snapshot() Frame {
	pixels := make([]uint32, len(c.pixels))
	copy(pixels, c.pixels)
	return Frame{
		Width:  c.width,
		Height: c.height,
		Pixels: pixels,
		Seq:    c.refreshes,
	}
}

// Frame is a presented copy of a canvas.
type Frame struct {
	Width  int
	Height int
	Pixels []uint32
	Seq    uint64
}
