// Package engine defines the contract between a portable real-time engine and
// the backend that hosts it.
//
// An engine owns its frame buffer and game state. It is created once, then
// advanced one frame per Tick. While ticking it calls back into its Host for
// everything that depends on the surrounding environment: time, pacing, input,
// presentation and the window title.
package engine

// Host is the callback set an engine requires from any backend.
// All calls happen synchronously on the goroutine running Tick.
type Host interface {
	// Initialize is called once before the first frame.
	Initialize()

	// SetWindowTitle forwards text to the host's title facility.
	SetWindowTitle(text string)

	// SleepMilliseconds yields to the host for roughly ms milliseconds.
	// Hosts must keep servicing their own events meanwhile.
	SleepMilliseconds(ms uint32)

	// GetTicksMilliseconds returns a non-decreasing millisecond counter.
	GetTicksMilliseconds() uint32

	// DrawFrame presents the engine's current screen buffer.
	DrawFrame()

	// PollKey returns one pending key event, if any.
	PollKey() (hasEvent, pressed bool, key byte)
}

// Engine is a portable engine driven by a Host.
type Engine interface {
	// ID returns a unique identifier (e.g., "flappy").
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Resolution returns the fixed frame buffer geometry in pixels.
	Resolution() (width, height int)

	// Create binds the engine to its host and performs one-time setup.
	// It calls host.Initialize before anything else.
	Create(host Host)

	// Tick advances the engine by one frame.
	Tick()

	// ScreenBuffer returns the engine-owned frame buffer: width*height
	// XRGB8888 pixels, row-major.
	ScreenBuffer() []uint32
}

// BytesPerPixel is the size of one frame buffer pixel.
const BytesPerPixel = 4
