package core

// Frame is a fixed-size XRGB8888 pixel buffer. Engines draw into a Frame and
// hand its backing slice to the host as their screen buffer.
type Frame struct {
	width  int
	height int
	pixels []Pixel
}

// NewFrame allocates a frame of the given geometry, cleared to black.
func NewFrame(width, height int) *Frame {
	return &Frame{
		width:  width,
		height: height,
		pixels: make([]Pixel, width*height),
	}
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int {
	return f.width
}

// Height returns the frame height in pixels.
func (f *Frame) Height() int {
	return f.height
}

// Bounds returns the frame rectangle.
func (f *Frame) Bounds() Rect {
	return NewRect(0, 0, f.width, f.height)
}

// Pixels returns the backing buffer, row-major. The slice is shared.
func (f *Frame) Pixels() []Pixel {
	return f.pixels
}

// Clear fills the whole frame with c.
func (f *Frame) Clear(c Pixel) {
	for i := range f.pixels {
		f.pixels[i] = c
	}
}

// Set writes one pixel. Out-of-bounds coordinates are silently ignored.
func (f *Frame) Set(x, y int, c Pixel) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.pixels[y*f.width+x] = c
}

// Get returns the pixel at (x, y), or black when out of bounds.
func (f *Frame) Get(x, y int) Pixel {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return ColorBlack
	}
	return f.pixels[y*f.width+x]
}

// FillRect fills r, clipped to the frame.
func (f *Frame) FillRect(r Rect, c Pixel) {
	r = r.Intersect(f.Bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		row := f.pixels[y*f.width : (y+1)*f.width]
		for x := r.X; x < r.Right(); x++ {
			row[x] = c
		}
	}
}

// DrawBox draws a one-pixel outline of r.
func (f *Frame) DrawBox(r Rect, c Pixel) {
	if r.Empty() {
		return
	}
	f.HLine(r.X, r.Y, r.W, c)
	f.HLine(r.X, r.Bottom()-1, r.W, c)
	f.VLine(r.X, r.Y, r.H, c)
	f.VLine(r.Right()-1, r.Y, r.H, c)
}

// HLine draws a horizontal line of the given length starting at (x, y).
func (f *Frame) HLine(x, y, length int, c Pixel) {
	f.FillRect(NewRect(x, y, length, 1), c)
}

// VLine draws a vertical line of the given length starting at (x, y).
func (f *Frame) VLine(x, y, length int, c Pixel) {
	f.FillRect(NewRect(x, y, 1, length), c)
}

// DrawText renders text with the built-in 3x5 font, each font pixel scaled
// to scale×scale frame pixels. Unknown characters render as blanks.
func (f *Frame) DrawText(x, y int, text string, scale int, c Pixel) {
	if scale < 1 {
		scale = 1
	}
	for _, r := range text {
		g := glyph(r)
		for row := 0; row < glyphHeight; row++ {
			for col := 0; col < glyphWidth; col++ {
				if g[row]&(1<<(glyphWidth-1-col)) == 0 {
					continue
				}
				f.FillRect(NewRect(x+col*scale, y+row*scale, scale, scale), c)
			}
		}
		x += (glyphWidth + 1) * scale
	}
}

// DrawTextCentered draws text horizontally centered at row y.
func (f *Frame) DrawTextCentered(y int, text string, scale int, c Pixel) {
	x := (f.width - TextWidth(text, scale)) / 2
	f.DrawText(x, y, text, scale, c)
}
