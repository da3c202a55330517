// Package tui is the render loop: once per tick it polls the decode worker
// for a fresh background grid, redraws the chat foreground, composites the
// two and repaints the terminal. It never blocks on the worker; a decoder
// stall freezes the background, not the app.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lalomorales22/megacli/chat"
	"github.com/lalomorales22/megacli/grid"
	"github.com/lalomorales22/megacli/video"
)

// Messages
type (
	tickMsg  time.Time
	replyMsg struct {
		provider chat.Provider
		content  string
		err      error
	}
)

// tickInterval is the UI repaint cadence; the decode worker runs at its
// own rate and the two only meet at the frame slot.
const tickInterval = 33 * time.Millisecond

// Config carries the startup flags into the model. Opacity is clamped
// once here and never mutated afterwards.
type Config struct {
	Opacity   float64
	Provider  chat.Provider
	Responder chat.Responder
}

// Model is the Bubble Tea model.
type Model struct {
	background *video.Background
	chat       *chat.Chat
	responder  chat.Responder
	opacity    float64

	width  int
	height int

	input    textinput.Model
	spin     spinner.Model
	showHelp bool

	bg grid.Grid // background grid as of the last tick
}

// NewModel creates the render-loop model around a running background.
func NewModel(background *video.Background, cfg Config) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	// Unstyled: the spinner frames are drawn into the cell grid, which
	// carries its own colors.
	s.Style = lipgloss.NewStyle()

	return Model{
		background: background,
		chat:       chat.New(cfg.Provider),
		responder:  cfg.Responder,
		opacity:    grid.ClampOpacity(cfg.Opacity),
		input:      ti,
		spin:       s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, tick())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Both grids are regenerated at the new size on the next tick and
		// in View; no stale-size cells survive a resize.
		m.bg = m.background.Advance(m.width, m.height)
		return m, nil

	case tickMsg:
		m.bg = m.background.Advance(m.width, m.height)
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case replyMsg:
		// A provider switch abandons replies addressed to the old provider.
		if msg.provider == m.chat.Provider() && m.chat.Streaming() {
			m.chat.Reply(msg.content, msg.err)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.background.Stop()
		return m, tea.Quit

	case "f1":
		m.showHelp = !m.showHelp
		return m, nil

	case "f2":
		m.chat.SwitchProvider()
		return m, nil

	case "ctrl+l":
		m.chat.Clear()
		return m, nil

	case "up":
		m.chat.ScrollUp(1)
		return m, nil

	case "down":
		m.chat.ScrollDown(1)
		return m, nil

	case "pgup":
		m.chat.ScrollUp(10)
		return m, nil

	case "pgdown":
		m.chat.ScrollDown(10)
		return m, nil

	case "enter":
		line := strings.TrimSpace(m.input.Value())
		if line == "" || m.chat.Streaming() {
			return m, nil
		}
		m.input.Reset()
		history := m.chat.Submit(line)
		provider := m.chat.Provider()
		responder := m.responder
		return m, func() tea.Msg {
			content, err := responder(provider, history)
			return replyMsg{provider: provider, content: content, err: err}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View composites the background beneath the chat foreground and paints
// the result.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "\n\n   " + titleStyle.Render("MEGA-CLI") + "  " + m.spin.View() + " opening video...\n\n"
	}

	fg := m.foregroundGrid()
	final, err := grid.Composite(m.bg, fg, m.opacity)
	if err != nil {
		// Stale background after a resize: regenerate at the authoritative
		// viewport size and retry, never composite unequal shapes.
		bg := m.background.Advance(m.width, m.height)
		final, err = grid.Composite(bg, fg, m.opacity)
		if err != nil {
			final = fg
		}
	}
	return grid.Paint(final)
}
