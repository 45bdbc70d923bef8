package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/bmp"

	"github.com/vovakirdan/framehost/internal/config"
	"github.com/vovakirdan/framehost/internal/host"
)

// Rows taken by the title bar and the footer.
const chromeRows = 2

// screenshotMsg reports the outcome of ctrl+s.
type screenshotMsg struct {
	path string
	err  error
}

// Model is the Bubble Tea model showing one host window.
type Model struct {
	session  *Session
	keys     *KeyMapper
	renderer *FrameRenderer
	shotDir  string

	titleStyle  lipgloss.Style
	footerStyle lipgloss.Style

	frame    host.Frame
	hasFrame bool
	title    string
	status   string
	dropped  int
	width    int
	height   int
	quitting bool
}

// NewModel creates a model for a started session.
func NewModel(session *Session, renderer *FrameRenderer, screenshotDir string) Model {
	lg := renderer.lg
	return Model{
		session:  session,
		keys:     NewKeyMapper(),
		renderer: renderer,
		shotDir:  screenshotDir,
		titleStyle: lg.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")),
		footerStyle: lg.NewStyle().
			Foreground(lipgloss.Color("241")),
		title: session.Engine().Title(),
	}
}

// Init starts listening for host output.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.session.mailbox.waitForFrame(),
		m.session.mailbox.waitForTitle(),
		m.session.waitForDone(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.send(host.ResizeEvent{Cols: msg.Width, Rows: max(msg.Height-chromeRows, 1)})
		return m, nil

	case FrameMsg:
		m.frame = host.Frame(msg)
		m.hasFrame = true
		return m, m.session.mailbox.waitForFrame()

	case TitleMsg:
		m.title = string(msg)
		return m, tea.Batch(m.session.mailbox.waitForTitle(), tea.SetWindowTitle(m.title))

	case screenshotMsg:
		if msg.err != nil {
			m.status = "screenshot failed: " + msg.err.Error()
		} else {
			m.status = "saved " + msg.path
		}
		return m, nil

	case HostDoneMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		m.session.Stop()
		return m, tea.Quit
	case "ctrl+s":
		return m, m.saveScreenshot()
	}

	if key, ok := m.keys.MapKey(msg); ok {
		m.send(host.KeyEvent{Key: key})
	}
	return m, nil
}

func (m *Model) send(ev host.Event) {
	if !m.session.Send(ev) {
		m.dropped++
	}
}

// saveScreenshot writes the current frame as a BMP file.
func (m Model) saveScreenshot() tea.Cmd {
	if !m.hasFrame {
		return func() tea.Msg {
			return screenshotMsg{err: fmt.Errorf("no frame yet")}
		}
	}
	frame := m.frame
	dir := config.ExpandPath(m.shotDir)
	engineID := m.session.Engine().ID()

	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return screenshotMsg{err: err}
		}

		timestamp := time.Now().Format("20060102_150405")
		path := filepath.Join(dir, fmt.Sprintf("%s_%s_%d.bmp", engineID, timestamp, frame.Seq))

		f, err := os.Create(path)
		if err != nil {
			return screenshotMsg{err: err}
		}
		if err := bmp.Encode(f, FrameImage(frame)); err != nil {
			f.Close()
			return screenshotMsg{err: err}
		}
		return screenshotMsg{path: path, err: f.Close()}
	}
}

// View renders the title bar, the latest frame and the footer.
func (m Model) View() string {
	if m.quitting || m.width == 0 {
		return ""
	}

	bodyRows := max(m.height-chromeRows, 1)

	seq := fmt.Sprintf("frame %d ", m.frame.Seq)
	titleText := " " + m.title
	gap := max(m.width-lipgloss.Width(titleText)-lipgloss.Width(seq), 1)
	titleBar := m.titleStyle.Render(titleText + strings.Repeat(" ", gap) + seq)

	var body string
	if m.hasFrame {
		body = m.renderer.Render(m.frame, m.width, bodyRows)
	}
	body = lipgloss.Place(m.width, bodyRows, lipgloss.Center, lipgloss.Center,
		orDefault(body, "waiting for the first frame..."))

	footer := "ctrl+s screenshot  |  ctrl+c quit"
	if m.dropped > 0 {
		footer += fmt.Sprintf("  |  %d events dropped", m.dropped)
	}
	if m.status != "" {
		footer += "  |  " + m.status
	}

	return lipgloss.JoinVertical(lipgloss.Left, titleBar, body, m.footerStyle.Render(footer))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// RunOptions configure Run.
type RunOptions struct {
	Session SessionOptions
	Display config.DisplayConfig
}

// Run loads the engine into a new host and shows it until the user quits.
// It returns the final host counters.
func Run(ctx context.Context, opts RunOptions) (host.Stats, error) {
	filter, err := Filter(opts.Display.Filter)
	if err != nil {
		return host.Stats{}, err
	}

	session, err := NewSession(opts.Session)
	if err != nil {
		return host.Stats{}, err
	}
	if err := session.Start(ctx); err != nil {
		return session.Stats(), err
	}

	model := NewModel(session, NewFrameRenderer(nil, filter), opts.Display.ScreenshotDir)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	_, runErr := p.Run()
	session.Stop()
	hostErr := session.Wait()

	if runErr != nil && ctx.Err() == nil {
		return session.Stats(), fmt.Errorf("tui: %w", runErr)
	}
	return session.Stats(), hostErr
}
