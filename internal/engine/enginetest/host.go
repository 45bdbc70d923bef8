// Package enginetest provides a scripted engine.Host for engine tests.
package enginetest

import (
	"github.com/vovakirdan/framehost/internal/engine"
)

// Host records every callback an engine makes. Sleeping advances the clock
// by the requested time, like a host that pumps events until the timeout.
type Host struct {
	Now    uint32
	Keys   []int64
	Titles []string
	Sleeps []uint32
	Draws  int
	Inits  int

	// Frame receives a copy of the engine buffer on every DrawFrame when
	// Source is set.
	Source func() []uint32
	Frame  []uint32
}

var _ engine.Host = (*Host)(nil)

// Press queues a key press.
func (h *Host) Press(key byte) {
	h.Keys = append(h.Keys, 0x100|int64(key))
}

// Release queues a key release.
func (h *Host) Release(key byte) {
	h.Keys = append(h.Keys, int64(key))
}

// Advance moves the clock forward.
func (h *Host) Advance(ms uint32) {
	h.Now += ms
}

// Title returns the last title set, or "".
func (h *Host) Title() string {
	if len(h.Titles) == 0 {
		return ""
	}
	return h.Titles[len(h.Titles)-1]
}

func (h *Host) Initialize() { h.Inits++ }

func (h *Host) SetWindowTitle(text string) {
	h.Titles = append(h.Titles, text)
}

func (h *Host) SleepMilliseconds(ms uint32) {
	h.Sleeps = append(h.Sleeps, ms)
	h.Now += ms
}

func (h *Host) GetTicksMilliseconds() uint32 {
	return h.Now
}

func (h *Host) DrawFrame() {
	h.Draws++
	if h.Source != nil {
		src := h.Source()
		h.Frame = append(h.Frame[:0], src...)
	}
}

func (h *Host) PollKey() (hasEvent, pressed bool, key byte) {
	if len(h.Keys) == 0 {
		return false, false, 0
	}
	v := h.Keys[0]
	h.Keys = h.Keys[1:]
	return true, v>>8 != 0, byte(v)
}
