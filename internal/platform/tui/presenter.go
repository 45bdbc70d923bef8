// Package tui provides the Bubble Tea front end for the reference host: it
// realizes the host window in a terminal, forwards keys and serves sessions
// over SSH.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/framehost/internal/host"
)

// FrameMsg carries the latest frame presented by the host.
type FrameMsg host.Frame

// TitleMsg carries a new window title.
type TitleMsg string

// HostDoneMsg is sent once the host loop has stopped.
type HostDoneMsg struct {
	Err error
}

// mailbox is the host's Presenter. It keeps only the newest frame and title
// so a slow terminal never stalls the host loop.
type mailbox struct {
	frames chan host.Frame
	titles chan string
	done   chan struct{}
}

var _ host.Presenter = (*mailbox)(nil)

func newMailbox() *mailbox {
	return &mailbox{
		frames: make(chan host.Frame, 1),
		titles: make(chan string, 1),
		done:   make(chan struct{}),
	}
}

// Present replaces any frame the UI has not picked up yet. The host
// goroutine is the only sender, so the second send never blocks.
func (m *mailbox) Present(f host.Frame) {
	select {
	case <-m.frames:
	default:
	}
	m.frames <- f
}

func (m *mailbox) SetTitle(title string) {
	select {
	case <-m.titles:
	default:
	}
	m.titles <- title
}

func (m *mailbox) close() {
	close(m.done)
}

// waitForFrame returns a command that delivers the next frame.
func (m *mailbox) waitForFrame() tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-m.frames:
			return FrameMsg(f)
		case <-m.done:
			return nil
		}
	}
}

// waitForTitle returns a command that delivers the next title change.
func (m *mailbox) waitForTitle() tea.Cmd {
	return func() tea.Msg {
		select {
		case t := <-m.titles:
			return TitleMsg(t)
		case <-m.done:
			return nil
		}
	}
}
