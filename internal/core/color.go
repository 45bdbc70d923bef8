package core

// Pixel is one XRGB8888 frame buffer value: 0x00RRGGBB.
type Pixel = uint32

// RGB packs 8-bit channels into a Pixel.
func RGB(r, g, b uint8) Pixel {
	return Pixel(r)<<16 | Pixel(g)<<8 | Pixel(b)
}

// Channels unpacks a Pixel into its 8-bit channels.
func Channels(p Pixel) (r, g, b uint8) {
	return uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// Predefined colors shared by the bundled engines.
const (
	ColorBlack   Pixel = 0x000000
	ColorWhite   Pixel = 0xffffff
	ColorRed     Pixel = 0xd03030
	ColorGreen   Pixel = 0x30b040
	ColorYellow  Pixel = 0xf0d020
	ColorBlue    Pixel = 0x3050d0
	ColorMagenta Pixel = 0xc040c0
	ColorCyan    Pixel = 0x30c0d0
	ColorOrange  Pixel = 0xf08020
	ColorGray    Pixel = 0x808080
	ColorSky     Pixel = 0x70c0f0
	ColorDirt    Pixel = 0xc09050
)
